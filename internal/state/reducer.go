package state

import (
	"context"
	"errors"
	"strings"

	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"github.com/kk-code-lab/rgal/internal/logging"
	"github.com/kk-code-lab/rgal/internal/metrics"
	"github.com/kk-code-lab/rgal/internal/photo"
)

const (
	// previewByteLimit caps how much of a text file the preview decodes.
	previewByteLimit = 256 * 1024
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	pendingPreview  FileEntry
	pendingExport   FileEntry
	pendingMetadata FileEntry
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies an action to state. All session mutations go through here and
// run on the application's event loop.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if dismissesNotice(action) {
		state.Notice = ""
	}

	switch a := action.(type) {

	// ===== SESSION =====

	case SelectFolderAction:
		if a.Dir == nil {
			return state, nil
		}
		if state.HasFolder() {
			r.reset(state)
		}
		state.PromptActive = false
		state.PromptInput = ""
		state.Notice = ""
		state.Path.Push(a.Dir)
		logging.Info("folder selected", logging.String("dir", a.Dir.Name()))
		r.startDirectoryLoad(state, a.Dir)
		return state, nil

	case CapabilityUnavailableAction:
		state.Notice = "Folder access is not available: " + errorText(a.Err)
		logging.Warn("directory capability unavailable", logging.Err(a.Err))
		return state, nil

	case ResetAction:
		r.reset(state)
		return state, nil

	// ===== NAVIGATION =====

	case DescendAction:
		if a.Dir == nil || !state.HasFolder() {
			return state, nil
		}
		state.Path.Push(a.Dir)
		r.startDirectoryLoad(state, a.Dir)
		return state, nil

	case BackAction:
		if !state.Path.Pop() {
			return state, nil
		}
		r.startDirectoryLoad(state, state.Path.Top())
		return state, nil

	case NavigateDownAction:
		visible := state.VisibleEntries()
		if len(visible) == 0 || state.SelectedIndex >= len(visible)-1 {
			return state, nil
		}
		state.SelectedIndex++
		state.updateScrollVisibility()
		return state, nil

	case NavigateUpAction:
		if len(state.VisibleEntries()) == 0 || state.SelectedIndex <= 0 {
			return state, nil
		}
		state.SelectedIndex--
		state.updateScrollVisibility()
		return state, nil

	case OpenSelectedAction:
		entry := state.SelectedEntry()
		if entry == nil {
			return state, nil
		}
		return r.Reduce(state, OpenEntryAction{Entry: *entry})

	case OpenEntryAction:
		r.openEntry(state, a.Entry)
		return state, nil

	case DirectoryLoadResultAction:
		r.applyDirectoryResult(state, a)
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		if !state.HasFolder() {
			return state, nil
		}
		state.SearchActive = true
		return state, nil

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		state.setSearchQuery(state.SearchQuery + string(a.Char))
		return state, nil

	case SearchBackspaceAction:
		if !state.SearchActive || state.SearchQuery == "" {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		state.setSearchQuery(string(runes[:len(runes)-1]))
		return state, nil

	case SearchSubmitAction:
		state.SearchActive = false
		return state, nil

	case SearchClearAction:
		state.clearSearch()
		return state, nil

	// ===== GALLERY =====

	case GalleryOpenAction:
		index := indexOfImage(state.ImageSubset(), a.Entry)
		if index < 0 {
			return state, nil
		}
		state.Gallery = GalleryState{Open: true, Index: index}
		r.bindGalleryKeys(state)
		r.refreshGalleryMetadata(state)
		return state, nil

	case GalleryNavigateAction:
		if !state.Gallery.Open {
			return state, nil
		}
		n := len(state.ImageSubset())
		if n == 0 {
			return state, nil
		}
		state.Gallery.Index = cycleIndex(state.Gallery.Index, n, a.Direction)
		r.refreshGalleryMetadata(state)
		return state, nil

	case GalleryCloseAction:
		r.closeGallery(state)
		return state, nil

	case MetadataLoadResultAction:
		r.applyMetadataResult(state, FileLoadResult(a))
		return state, nil

	// ===== PREVIEW / EXPORT =====

	case PreviewLoadResultAction:
		r.applyPreviewResult(state, FileLoadResult(a))
		return state, nil

	case PreviewCloseAction:
		state.Preview = nil
		state.previewLoadToken = 0
		return state, nil

	case ExportLoadResultAction:
		r.applyExportResult(state, FileLoadResult(a))
		return state, nil

	// ===== FOLDER PROMPT =====

	case PromptStartAction:
		state.PromptActive = true
		state.PromptInput = ""
		return state, nil

	case PromptCharAction:
		if state.PromptActive {
			state.PromptInput += string(a.Char)
		}
		return state, nil

	case PromptBackspaceAction:
		if state.PromptActive && state.PromptInput != "" {
			runes := []rune(state.PromptInput)
			state.PromptInput = string(runes[:len(runes)-1])
		}
		return state, nil

	case PromptCancelAction:
		state.PromptActive = false
		state.PromptInput = ""
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()
		return state, nil
	}

	return state, nil
}

// Teardown releases everything the session holds. Results of loads still in
// flight are dropped when they arrive.
func (r *StateReducer) Teardown(state *AppState) {
	r.reset(state)
}

func (r *StateReducer) reset(state *AppState) {
	r.closeGallery(state)
	state.Resources.ReleaseAll()
	state.Path.Reset()
	state.Entries = nil
	state.Loading = false
	state.directoryLoadToken = 0
	state.previewLoadToken = 0
	state.exportLoadToken = 0
	state.Preview = nil
	state.Export = nil
	state.clearSearch()
	state.resetViewport()
}

func (r *StateReducer) openEntry(state *AppState, entry FileEntry) {
	switch {
	case entry.IsDir():
		dir, ok := entry.Handle.(fsutil.Directory)
		if !ok {
			return
		}
		_, _ = r.Reduce(state, DescendAction{Dir: dir})
	case entry.IsImage():
		_, _ = r.Reduce(state, GalleryOpenAction{Entry: entry})
	case entry.IsText():
		file, ok := entry.Handle.(fsutil.File)
		if !ok {
			return
		}
		r.pendingPreview = entry
		state.previewLoadToken = state.nextFileLoadToken()
		r.startFileLoad(state, file, state.previewLoadToken, func(res FileLoadResult) Action {
			return PreviewLoadResultAction(res)
		})
	default:
		file, ok := entry.Handle.(fsutil.File)
		if !ok {
			return
		}
		r.pendingExport = entry
		state.exportLoadToken = state.nextFileLoadToken()
		r.startFileLoad(state, file, state.exportLoadToken, func(res FileLoadResult) Action {
			return ExportLoadResultAction(res)
		})
	}
}

// ===== DIRECTORY LOADS =====

func (r *StateReducer) startDirectoryLoad(state *AppState, dir fsutil.Directory) {
	token := state.nextDirectoryLoadToken()
	state.Loading = true
	// A preview requested in the previous directory must not open over the new one.
	state.previewLoadToken = 0

	loader := state.DirectoryLoader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		result := LoadDirectory(context.Background(), dir, state.Store, state.Locale)
		r.applyDirectoryResult(state, DirectoryLoadResultAction{
			Token:     token,
			Dir:       dir,
			Entries:   result.Entries,
			Resources: result.Resources,
			Err:       result.Err,
		})
		return
	}

	loader.Start(DirectoryLoadRequest{
		Token:  token,
		Dir:    dir,
		Store:  state.Store,
		Locale: state.Locale,
		Callback: func(result DirectoryLoadResult) {
			dispatch(DirectoryLoadResultAction(result))
		},
	})
}

func (r *StateReducer) applyDirectoryResult(state *AppState, a DirectoryLoadResultAction) {
	if a.Token == 0 || a.Token != state.ActiveDirectoryLoadToken() {
		state.Resources.Discard(a.Resources)
		metrics.RecordStaleLoadDiscarded()
		logging.Debug("stale directory load discarded", logging.Int("token", a.Token), logging.Int("active", state.ActiveDirectoryLoadToken()))
		return
	}

	state.Loading = false
	r.closeGallery(state)
	state.Preview = nil
	state.previewLoadToken = 0

	if a.Err != nil {
		state.LastError = a.Err
		state.Entries = nil
		state.Resources.Replace(nil)
		state.Resources.Discard(a.Resources)
		state.resetViewport()
		return
	}

	state.LastError = nil
	state.Entries = a.Entries
	state.Resources.Replace(a.Resources)
	state.resetViewport()
	state.clampSelection()
}

// ===== GALLERY =====

func (r *StateReducer) closeGallery(state *AppState) {
	state.Gallery = GalleryState{Index: -1}
	state.GalleryMetadata = nil
	state.metadataLoadToken = 0
	clearMetadataError(state)
	r.unbindGalleryKeys(state)
}

// clearMetadataError drops a lightbox refresh failure from the status line.
func clearMetadataError(state *AppState) {
	var metaErr *MetadataRefreshError
	if errors.As(state.LastError, &metaErr) {
		state.LastError = nil
	}
}

func (r *StateReducer) refreshGalleryMetadata(state *AppState) {
	img := state.SelectedImage()
	if img == nil {
		return
	}
	file, ok := img.Handle.(fsutil.File)
	if !ok {
		return
	}
	r.pendingMetadata = *img
	state.metadataLoadToken = state.nextFileLoadToken()
	r.startFileLoad(state, file, state.metadataLoadToken, func(res FileLoadResult) Action {
		return MetadataLoadResultAction(res)
	})
}

func (r *StateReducer) applyMetadataResult(state *AppState, res FileLoadResult) {
	if res.Token == 0 || res.Token != state.metadataLoadToken || !state.Gallery.Open {
		return
	}
	state.metadataLoadToken = 0
	name := r.pendingMetadata.Name

	if res.Err != nil {
		err := &MetadataRefreshError{Name: name, Err: res.Err}
		logging.Warn("metadata refresh failed", logging.String("name", name), logging.Err(res.Err))
		state.LastError = err
		return
	}

	clearMetadataError(state)
	exif := photo.ReadExif(res.Content.Data)
	state.GalleryMetadata = &ImageMetadata{
		Name:      name,
		Size:      res.Content.Size,
		Modified:  res.Content.Modified,
		MediaType: res.Content.MediaType,
		Camera:    exif.Camera(),
		Taken:     exif.DateTaken,
	}
}

// ===== PREVIEW / EXPORT =====

func (r *StateReducer) startFileLoad(state *AppState, file fsutil.File, token int, wrap func(FileLoadResult) Action) {
	loader := state.FileLoader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		content, err := file.Read(context.Background())
		_, _ = r.Reduce(state, wrap(FileLoadResult{Token: token, Content: content, Err: err}))
		return
	}

	loader.Start(FileLoadRequest{
		Token: token,
		File:  file,
		Callback: func(res FileLoadResult) {
			dispatch(wrap(res))
		},
	})
}

func (r *StateReducer) applyPreviewResult(state *AppState, res FileLoadResult) {
	if res.Token == 0 || res.Token != state.previewLoadToken {
		return
	}
	state.previewLoadToken = 0
	entry := r.pendingPreview

	if res.Err != nil {
		err := &EntryReadError{Name: entry.Name, Err: res.Err}
		logging.Warn("text preview failed", logging.String("name", entry.Name), logging.Err(res.Err))
		state.LastError = err
		return
	}

	data := res.Content.Data
	if len(data) > previewByteLimit {
		data = data[:previewByteLimit]
	}
	modified := res.Content.Modified
	preview := &TextPreview{
		Entry:    entry,
		Size:     res.Content.Size,
		Modified: &modified,
		MimeType: res.Content.MediaType,
	}
	if text, ok := fsutil.DecodeText(entry.Name, data); ok {
		preview.Lines = splitPreviewLines(text)
	} else {
		preview.Binary = true
	}
	state.Preview = preview
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (r *StateReducer) applyExportResult(state *AppState, res FileLoadResult) {
	if res.Token == 0 || res.Token != state.exportLoadToken {
		return
	}
	state.exportLoadToken = 0
	entry := r.pendingExport

	if res.Err != nil {
		err := &EntryReadError{Name: entry.Name, Err: res.Err}
		logging.Warn("export read failed", logging.String("name", entry.Name), logging.Err(res.Err))
		state.LastError = err
		return
	}

	state.Export = &ExportOffer{
		Name:      entry.Name,
		Data:      res.Content.Data,
		MediaType: res.Content.MediaType,
	}
}

// dismissesNotice reports whether action is user navigation that should
// replace a one-off notice with the normal footer.
func dismissesNotice(action Action) bool {
	switch action.(type) {
	case DescendAction, BackAction, NavigateUpAction, NavigateDownAction,
		OpenSelectedAction, OpenEntryAction, SearchStartAction, SearchCharAction,
		SearchClearAction, GalleryOpenAction, GalleryNavigateAction, GalleryCloseAction,
		PreviewCloseAction:
		return true
	}
	return false
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
