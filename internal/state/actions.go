package state

import fsutil "github.com/kk-code-lab/rgal/internal/fs"

// Action is the base interface for all state mutations
type Action interface{}

// ===== SESSION ACTIONS =====

// SelectFolderAction starts a new session rooted at Dir.
type SelectFolderAction struct {
	Dir fsutil.Directory
}

// CapabilityUnavailableAction reports that the host could not grant a folder.
type CapabilityUnavailableAction struct {
	Err error
}

type ResetAction struct{}

// ===== NAVIGATION ACTIONS =====

type DescendAction struct {
	Dir fsutil.Directory
}
type BackAction struct{}
type NavigateUpAction struct{}
type NavigateDownAction struct{}
type OpenSelectedAction struct{}
type OpenEntryAction struct {
	Entry FileEntry
}

type DirectoryLoadResultAction DirectoryLoadResult

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchSubmitAction struct{}
type SearchClearAction struct{}

// ===== GALLERY ACTIONS =====

type GalleryOpenAction struct {
	Entry FileEntry
}
type GalleryNavigateAction struct {
	Direction Direction
}
type GalleryCloseAction struct{}
type MetadataLoadResultAction FileLoadResult

// ===== PREVIEW / EXPORT ACTIONS =====

type PreviewCloseAction struct{}
type PreviewLoadResultAction FileLoadResult
type ExportLoadResultAction FileLoadResult

// ===== FOLDER PROMPT ACTIONS =====

type PromptStartAction struct{}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptCancelAction struct{}
type PromptSubmitAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
