package state

import (
	"context"

	"github.com/kk-code-lab/rgal/internal/blob"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"golang.org/x/text/language"
)

// DirectoryLoader performs directory loads asynchronously. There is no
// cancellation: a superseded load still completes and its result is dropped
// by the reducer.
type DirectoryLoader interface {
	Start(req DirectoryLoadRequest)
}

// DirectoryLoadRequest describes a directory load to perform.
type DirectoryLoadRequest struct {
	Token    int
	Dir      fsutil.Directory
	Store    blob.Store
	Locale   language.Tag
	Callback func(DirectoryLoadResult)
}

// DirectoryLoadResult is emitted by DirectoryLoader once the load completes.
type DirectoryLoadResult struct {
	Token     int
	Dir       fsutil.Directory
	Entries   []FileEntry
	Resources ResourceMap
	Err       error
}

// NewAsyncDirectoryLoader constructs the default goroutine-based loader.
func NewAsyncDirectoryLoader() DirectoryLoader {
	return asyncDirectoryLoader{}
}

type asyncDirectoryLoader struct{}

func (asyncDirectoryLoader) Start(req DirectoryLoadRequest) {
	if req.Token == 0 || req.Dir == nil || req.Store == nil || req.Callback == nil {
		return
	}

	go func() {
		result := LoadDirectory(context.Background(), req.Dir, req.Store, req.Locale)
		req.Callback(DirectoryLoadResult{
			Token:     req.Token,
			Dir:       req.Dir,
			Entries:   result.Entries,
			Resources: result.Resources,
			Err:       result.Err,
		})
	}()
}

// ReleaseActionResources releases the locators carried by an action that will
// never reach the reducer, e.g. a load result arriving after teardown.
func ReleaseActionResources(store blob.Store, action Action) {
	res, ok := action.(DirectoryLoadResultAction)
	if !ok || store == nil {
		return
	}
	for _, loc := range res.Resources {
		store.Release(loc)
	}
}
