package state

// Key is a key identifier delivered to listeners.
type Key int

const (
	KeyOther Key = iota
	KeyRight
	KeyLeft
	KeyEscape
)

// KeyListener receives keys before normal handling. Returning true consumes
// the key and suppresses the default handling.
type KeyListener interface {
	HandleKey(key Key) bool
}

// KeyRegistry installs global key listeners. The returned func removes the
// listener and is safe to call more than once.
type KeyRegistry interface {
	Register(listener KeyListener) (unregister func())
}

// galleryKeys is installed only while the lightbox is open.
type galleryKeys struct {
	emit func(Action)
}

func (g galleryKeys) HandleKey(key Key) bool {
	switch key {
	case KeyRight:
		g.emit(GalleryNavigateAction{Direction: DirectionNext})
	case KeyLeft:
		g.emit(GalleryNavigateAction{Direction: DirectionPrev})
	case KeyEscape:
		g.emit(GalleryCloseAction{})
	default:
		return false
	}
	return true
}

// GalleryKeysBound reports whether the lightbox key listener is installed.
func (s *AppState) GalleryKeysBound() bool {
	return s.galleryUnbind != nil
}

func (r *StateReducer) bindGalleryKeys(state *AppState) {
	if state.galleryUnbind != nil || state.Keys == nil {
		return
	}
	emit := state.getDispatch()
	if emit == nil {
		emit = func(a Action) {
			if _, err := r.Reduce(state, a); err != nil {
				state.LastError = err
			}
		}
	}
	state.galleryUnbind = state.Keys.Register(galleryKeys{emit: emit})
}

func (r *StateReducer) unbindGalleryKeys(state *AppState) {
	if state.galleryUnbind == nil {
		return
	}
	unbind := state.galleryUnbind
	state.galleryUnbind = nil
	unbind()
}
