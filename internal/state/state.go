package state

import (
	"time"

	"github.com/kk-code-lab/rgal/internal/blob"
	"github.com/kk-code-lab/rgal/internal/classify"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"golang.org/x/text/language"
)

// FileEntry is one item of the current directory listing. Size, Modified and
// MimeType are only populated when the content was read (images and text).
type FileEntry struct {
	Name     string
	Handle   fsutil.Handle
	Kind     fsutil.Kind
	Type     classify.Descriptor
	Size     int64
	Modified *time.Time
	MimeType string
}

// ID returns the identity of the entry's capability.
func (e FileEntry) ID() fsutil.HandleID {
	if e.Handle == nil {
		return ""
	}
	return e.Handle.ID()
}

func (e FileEntry) IsDir() bool {
	return e.Kind == fsutil.KindDirectory
}

func (e FileEntry) IsImage() bool {
	return e.Kind == fsutil.KindFile && e.Type.Category == classify.CategoryImage
}

func (e FileEntry) IsText() bool {
	return e.Kind == fsutil.KindFile && e.Type.Category == classify.CategoryText
}

// SameAs compares entries by identity: name plus capability.
func (e FileEntry) SameAs(other FileEntry) bool {
	return e.Name == other.Name && e.ID() == other.ID()
}

// ResourceMap maps an image capability to its locator.
type ResourceMap map[fsutil.HandleID]blob.Locator

// GalleryState is the lightbox state. Index is -1 while closed.
type GalleryState struct {
	Open  bool
	Index int
}

// ImageMetadata is the freshly re-read metadata of the image in the lightbox.
type ImageMetadata struct {
	Name      string
	Size      int64
	Modified  time.Time
	MediaType string
	Camera    string
	Taken     *time.Time
}

// TextPreview is the content of an opened text file.
type TextPreview struct {
	Entry    FileEntry
	Lines    []string
	Binary   bool
	Size     int64
	Modified *time.Time
	MimeType string
}

// ExportOffer carries the raw content of a file the UI should save to disk.
type ExportOffer struct {
	Name      string
	Data      []byte
	MediaType string
}

// AppState is the single source of truth for one browsing session.
type AppState struct {
	// Navigation
	Path      PathStack
	Entries   []FileEntry // Full listing of the current directory (always sorted)
	Resources *ResourcePool
	Loading   bool
	Locale    language.Tag

	// Cursor over the visible (filtered) listing
	SelectedIndex int
	ScrollOffset  int

	// Search
	SearchActive bool
	SearchQuery  string

	// Gallery
	Gallery         GalleryState
	GalleryMetadata *ImageMetadata
	Keys            KeyRegistry
	galleryUnbind   func()

	// Previews
	Preview *TextPreview
	Export  *ExportOffer

	// Folder prompt shown when no folder is selected
	PromptActive bool
	PromptInput  string

	// Collaborators
	Store           blob.Store
	DirectoryLoader DirectoryLoader
	FileLoader      FileLoader
	dispatchAction  func(Action)

	// Load generations
	directoryLoadSeq   int
	directoryLoadToken int
	fileLoadSeq        int
	metadataLoadToken  int
	previewLoadToken   int
	exportLoadToken    int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	Notice    string
	LastError error
}

// NewAppState returns an empty session (no folder selected) that issues
// locators through store.
func NewAppState(store blob.Store) *AppState {
	if store == nil {
		store = blob.NewRegistry()
	}
	return &AppState{
		Store:     store,
		Resources: NewResourcePool(store),
		Locale:    language.English,
		Gallery:   GalleryState{Index: -1},
	}
}

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

// HasFolder reports whether a folder has been selected.
func (s *AppState) HasFolder() bool {
	return s.Path.Len() > 0
}

// Breadcrumb renders the navigation trail.
func (s *AppState) Breadcrumb() string {
	return s.Path.Breadcrumb(BreadcrumbSeparator)
}

// ActiveDirectoryLoadToken returns the generation of the newest directory load.
func (s *AppState) ActiveDirectoryLoadToken() int {
	return s.directoryLoadToken
}

func (s *AppState) nextDirectoryLoadToken() int {
	s.directoryLoadSeq++
	s.directoryLoadToken = s.directoryLoadSeq
	return s.directoryLoadToken
}

func (s *AppState) nextFileLoadToken() int {
	s.fileLoadSeq++
	return s.fileLoadSeq
}

// TakeExport returns and clears the pending export offer.
func (s *AppState) TakeExport() *ExportOffer {
	offer := s.Export
	s.Export = nil
	return offer
}
