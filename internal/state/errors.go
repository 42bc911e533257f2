package state

import "fmt"

// DirectoryOpenError reports that a directory could not be enumerated. The
// session keeps navigating and shows an empty folder.
type DirectoryOpenError struct {
	Name string
	Err  error
}

func (e *DirectoryOpenError) Error() string {
	return fmt.Sprintf("cannot open folder %s: %v", e.Name, e.Err)
}

func (e *DirectoryOpenError) Unwrap() error { return e.Err }

// EntryReadError reports that one file's content could not be read.
type EntryReadError struct {
	Name string
	Err  error
}

func (e *EntryReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Name, e.Err)
}

func (e *EntryReadError) Unwrap() error { return e.Err }

// MetadataRefreshError reports that the lightbox could not re-read an image.
type MetadataRefreshError struct {
	Name string
	Err  error
}

func (e *MetadataRefreshError) Error() string {
	return fmt.Sprintf("cannot refresh metadata for %s: %v", e.Name, e.Err)
}

func (e *MetadataRefreshError) Unwrap() error { return e.Err }
