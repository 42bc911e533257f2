package state

import (
	"context"

	fsutil "github.com/kk-code-lab/rgal/internal/fs"
)

// FileLoader reads single files asynchronously (lightbox metadata, text
// previews, exports).
type FileLoader interface {
	Start(req FileLoadRequest)
}

// FileLoadRequest describes a file read to perform.
type FileLoadRequest struct {
	Token    int
	File     fsutil.File
	Callback func(FileLoadResult)
}

// FileLoadResult carries the content or the read error.
type FileLoadResult struct {
	Token   int
	Content fsutil.Content
	Err     error
}

// NewAsyncFileLoader constructs the default goroutine-based file loader.
func NewAsyncFileLoader() FileLoader {
	return asyncFileLoader{}
}

type asyncFileLoader struct{}

func (asyncFileLoader) Start(req FileLoadRequest) {
	if req.Token == 0 || req.File == nil || req.Callback == nil {
		return
	}

	go func() {
		content, err := req.File.Read(context.Background())
		req.Callback(FileLoadResult{
			Token:   req.Token,
			Content: content,
			Err:     err,
		})
	}()
}
