package fs

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned when the host cannot grant a directory capability
// for the requested location.
var ErrUnsupported = errors.New("directory capability not supported")

// HandleID identifies a capability. Two handles with the same ID refer to the
// same file or directory.
type HandleID string

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Handle is the common part of every capability.
type Handle interface {
	ID() HandleID
	Name() string
}

// Directory grants enumeration of one directory.
type Directory interface {
	Handle
	Entries(ctx context.Context) ([]Child, error)
}

// File grants read access to one file.
type File interface {
	Handle
	Read(ctx context.Context) (Content, error)
}

// Child is one direct entry of a directory. Handle is a Directory when Kind is
// KindDirectory and a File otherwise.
type Child struct {
	Name   string
	Kind   Kind
	Handle Handle
}

// Content is the result of reading a file capability.
type Content struct {
	Data      []byte
	Size      int64
	Modified  time.Time
	MediaType string
}
