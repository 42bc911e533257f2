package state

import (
	"slices"
	"testing"
)

func asyncTestState(t *testing.T) (*AppState, *StateReducer, *manualLoader, *countingStore) {
	t.Helper()
	store := newCountingStore()
	state := newTestState(store)
	loader := &manualLoader{}
	state.DirectoryLoader = loader
	r := NewStateReducer()
	state.SetDispatch(func(a Action) {
		mustReduce(t, r, state, a)
	})
	return state, r, loader, store
}

func TestStaleLoad_SupersededResultIsDiscarded(t *testing.T) {
	state, r, loader, store := asyncTestState(t)
	dirA := newFakeDir("a", newFakeFile("a1.png"), newFakeFile("a2.png"))
	dirB := newFakeDir("b", newFakeFile("b1.png"))

	mustReduce(t, r, state, SelectFolderAction{Dir: dirA})
	mustReduce(t, r, state, SelectFolderAction{Dir: dirB})
	if !state.Loading || len(loader.requests) != 2 {
		t.Fatalf("expected two pending loads")
	}

	loader.complete(1)
	loader.complete(0)

	if got := entryNames(state.Entries); !slices.Equal(got, []string{"b1.png"}) {
		t.Fatalf("entries = %v, want only b's", got)
	}
	if state.Loading {
		t.Fatalf("loading should end with the current load")
	}
	if state.Resources.Len() != 1 || store.liveCount() != 1 {
		t.Fatalf("installed = %d, live = %d, want 1", state.Resources.Len(), store.liveCount())
	}
	if store.created() != 3 {
		t.Fatalf("created = %d, want 3", store.created())
	}
	if over := store.overReleased(); len(over) != 0 {
		t.Fatalf("released more than once: %v", over)
	}
}

func TestStaleLoad_InOrderCompletionStillKeepsNewest(t *testing.T) {
	state, r, loader, store := asyncTestState(t)
	root := newFakeDir("root", newFakeFile("r.png"))
	sub := newFakeDir("sub", newFakeFile("s.png"))

	mustReduce(t, r, state, SelectFolderAction{Dir: root})
	loader.complete(0)
	mustReduce(t, r, state, DescendAction{Dir: sub})
	mustReduce(t, r, state, BackAction{})

	loader.complete(1)
	if got := entryNames(state.Entries); !slices.Equal(got, []string{"r.png"}) {
		t.Fatalf("superseded sub load must not install, got %v", got)
	}

	loader.complete(2)
	if got := entryNames(state.Entries); !slices.Equal(got, []string{"r.png"}) {
		t.Fatalf("entries = %v", got)
	}
	if store.liveCount() != state.Resources.Len() {
		t.Fatalf("live = %d, installed = %d", store.liveCount(), state.Resources.Len())
	}
}

func TestStaleLoad_ResultAfterTeardownIsReleased(t *testing.T) {
	state, r, loader, store := asyncTestState(t)
	dir := newFakeDir("a", newFakeFile("a1.png"))

	mustReduce(t, r, state, SelectFolderAction{Dir: dir})
	r.Teardown(state)
	loader.complete(0)

	if len(state.Entries) != 0 || state.HasFolder() {
		t.Fatalf("late result must not repopulate a torn down session")
	}
	if store.liveCount() != 0 {
		t.Fatalf("live locators = %d, want 0", store.liveCount())
	}
}

func TestReleaseActionResources(t *testing.T) {
	store := newCountingStore()
	loc, _ := store.Create(nil, "image/png")

	ReleaseActionResources(store, DirectoryLoadResultAction{Resources: ResourceMap{"x": loc}})
	ReleaseActionResources(store, ResetAction{})

	if store.releaseCount(loc) != 1 {
		t.Fatalf("release count = %d", store.releaseCount(loc))
	}
}

func asyncFileState(t *testing.T, dir *fakeDir) (*AppState, *StateReducer, *manualFileLoader) {
	t.Helper()
	state := newTestState(newCountingStore())
	files := &manualFileLoader{}
	state.FileLoader = files
	r := NewStateReducer()
	state.SetDispatch(func(a Action) {
		mustReduce(t, r, state, a)
	})
	mustReduce(t, r, state, SelectFolderAction{Dir: dir})
	return state, r, files
}

func TestStaleLoad_MetadataKeepsSelectedImage(t *testing.T) {
	root, _ := galleryFixture()
	state, r, files := asyncFileState(t, root)

	mustReduce(t, r, state, GalleryOpenAction{Entry: entryByName(t, state, "a.png")})
	mustReduce(t, r, state, GalleryNavigateAction{Direction: DirectionNext})
	mustReduce(t, r, state, GalleryNavigateAction{Direction: DirectionNext})
	if len(files.requests) != 3 {
		t.Fatalf("expected 3 metadata reads, got %d", len(files.requests))
	}

	files.complete(2)
	files.complete(0)
	files.complete(1)

	selected := state.SelectedImage()
	if selected == nil || selected.Name != "c.png" {
		t.Fatalf("selected = %+v, want c.png", selected)
	}
	if state.GalleryMetadata == nil || state.GalleryMetadata.Name != "c.png" {
		t.Fatalf("metadata = %+v, want c.png", state.GalleryMetadata)
	}
}

func TestStaleLoad_PreviewShowsNewestFile(t *testing.T) {
	dir := newFakeDir("docs", newFakeFile("a.txt"), newFakeFile("b.txt"))
	state, r, files := asyncFileState(t, dir)

	mustReduce(t, r, state, OpenEntryAction{Entry: entryByName(t, state, "a.txt")})
	mustReduce(t, r, state, OpenEntryAction{Entry: entryByName(t, state, "b.txt")})

	files.complete(1)
	files.complete(0)

	if state.Preview == nil || state.Preview.Entry.Name != "b.txt" {
		t.Fatalf("preview = %+v, want b.txt", state.Preview)
	}
	if !slices.Equal(state.Preview.Lines, []string{"content of b.txt"}) {
		t.Fatalf("preview lines = %q", state.Preview.Lines)
	}
}

func TestStaleLoad_PreviewDroppedAfterDirectoryChange(t *testing.T) {
	sub := newFakeDir("sub", newFakeFile("inner.png"))
	root := newFakeDir("root", newFakeFile("a.txt"), sub)
	state, r, files := asyncFileState(t, root)
	dirs := &manualLoader{}
	state.DirectoryLoader = dirs

	mustReduce(t, r, state, OpenEntryAction{Entry: entryByName(t, state, "a.txt")})
	mustReduce(t, r, state, DescendAction{Dir: sub})

	files.complete(0)
	if state.Preview != nil {
		t.Fatalf("preview from the previous directory must be dropped, got %+v", state.Preview)
	}

	dirs.complete(0)
	if got := entryNames(state.Entries); !slices.Equal(got, []string{"inner.png"}) {
		t.Fatalf("entries = %v", got)
	}
	if state.Preview != nil {
		t.Fatalf("preview should stay closed")
	}
}
