package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
)

// Listeners is the global key listener registry. Registered listeners see
// every key before mode handling and may consume it.
type Listeners struct {
	mu      sync.Mutex
	next    int
	entries []listenerEntry
}

type listenerEntry struct {
	id       int
	listener statepkg.KeyListener
}

// NewListeners returns an empty registry.
func NewListeners() *Listeners {
	return &Listeners{}
}

// Register installs listener and returns its removal func.
func (l *Listeners) Register(listener statepkg.KeyListener) func() {
	l.mu.Lock()
	l.next++
	id := l.next
	l.entries = append(l.entries, listenerEntry{id: id, listener: listener})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *Listeners) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// Dispatch offers key to the listeners, newest first, and reports whether one
// consumed it.
func (l *Listeners) Dispatch(key statepkg.Key) bool {
	l.mu.Lock()
	snapshot := make([]statepkg.KeyListener, len(l.entries))
	for i, e := range l.entries {
		snapshot[len(l.entries)-1-i] = e.listener
	}
	l.mu.Unlock()

	for _, listener := range snapshot {
		if listener.HandleKey(key) {
			return true
		}
	}
	return false
}

// Len reports how many listeners are installed.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// KeyFromEvent maps a terminal key event to a listener key.
func KeyFromEvent(ev *tcell.EventKey) statepkg.Key {
	switch ev.Key() {
	case tcell.KeyRight:
		return statepkg.KeyRight
	case tcell.KeyLeft:
		return statepkg.KeyLeft
	case tcell.KeyEscape:
		return statepkg.KeyEscape
	default:
		return statepkg.KeyOther
	}
}
