package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kk-code-lab/rgal/internal/blob"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
)

var errFakeRead = errors.New("read denied")

type fakeFile struct {
	name     string
	data     []byte
	modified time.Time
	err      error
	reads    int
}

func (f *fakeFile) ID() fsutil.HandleID { return fsutil.HandleID("file:" + f.name) }
func (f *fakeFile) Name() string        { return f.name }

func (f *fakeFile) Read(context.Context) (fsutil.Content, error) {
	f.reads++
	if f.err != nil {
		return fsutil.Content{}, f.err
	}
	return fsutil.Content{
		Data:      f.data,
		Size:      int64(len(f.data)),
		Modified:  f.modified,
		MediaType: fsutil.MediaTypeFor(f.name),
	}, nil
}

type fakeDir struct {
	name     string
	children []fsutil.Handle
	err      error
}

func (d *fakeDir) ID() fsutil.HandleID { return fsutil.HandleID("dir:" + d.name) }
func (d *fakeDir) Name() string        { return d.name }

func (d *fakeDir) Entries(context.Context) ([]fsutil.Child, error) {
	if d.err != nil {
		return nil, d.err
	}
	children := make([]fsutil.Child, 0, len(d.children))
	for _, h := range d.children {
		kind := fsutil.KindFile
		if _, ok := h.(fsutil.Directory); ok {
			kind = fsutil.KindDirectory
		}
		children = append(children, fsutil.Child{Name: h.Name(), Kind: kind, Handle: h})
	}
	return children, nil
}

func newFakeDir(name string, children ...fsutil.Handle) *fakeDir {
	return &fakeDir{name: name, children: children}
}

func newFakeFile(name string) *fakeFile {
	return &fakeFile{
		name:     name,
		data:     []byte("content of " + name),
		modified: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// countingStore records every create and release so tests can assert that
// each locator is released exactly once.
type countingStore struct {
	mu       sync.Mutex
	seq      int
	live     map[blob.Locator]bool
	releases map[blob.Locator]int
}

func newCountingStore() *countingStore {
	return &countingStore{
		live:     make(map[blob.Locator]bool),
		releases: make(map[blob.Locator]int),
	}
}

func (s *countingStore) Create([]byte, string) (blob.Locator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	loc := blob.Locator(fmt.Sprintf("blob:test/%d", s.seq))
	s.live[loc] = true
	return loc, nil
}

func (s *countingStore) Release(loc blob.Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases[loc]++
	delete(s.live, loc)
}

func (s *countingStore) liveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

func (s *countingStore) created() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

func (s *countingStore) releaseCount(loc blob.Locator) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases[loc]
}

func (s *countingStore) overReleased() []blob.Locator {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []blob.Locator
	for loc, n := range s.releases {
		if n > 1 {
			out = append(out, loc)
		}
	}
	return out
}

// manualLoader holds directory requests until the test completes them.
type manualLoader struct {
	requests []DirectoryLoadRequest
}

func (l *manualLoader) Start(req DirectoryLoadRequest) {
	l.requests = append(l.requests, req)
}

func (l *manualLoader) complete(i int) {
	req := l.requests[i]
	result := LoadDirectory(context.Background(), req.Dir, req.Store, req.Locale)
	req.Callback(DirectoryLoadResult{
		Token:     req.Token,
		Dir:       req.Dir,
		Entries:   result.Entries,
		Resources: result.Resources,
		Err:       result.Err,
	})
}

// manualFileLoader holds file reads until the test completes them, so results
// can arrive in any order.
type manualFileLoader struct {
	requests []FileLoadRequest
}

func (l *manualFileLoader) Start(req FileLoadRequest) {
	l.requests = append(l.requests, req)
}

func (l *manualFileLoader) complete(i int) {
	req := l.requests[i]
	content, err := req.File.Read(context.Background())
	req.Callback(FileLoadResult{Token: req.Token, Content: content, Err: err})
}

// fakeKeys is a KeyRegistry that delivers keys to registered listeners.
type fakeKeys struct {
	next      int
	listeners map[int]KeyListener
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{listeners: make(map[int]KeyListener)}
}

func (k *fakeKeys) Register(l KeyListener) func() {
	k.next++
	id := k.next
	k.listeners[id] = l
	return func() { delete(k.listeners, id) }
}

func (k *fakeKeys) press(key Key) bool {
	for _, l := range k.listeners {
		if l.HandleKey(key) {
			return true
		}
	}
	return false
}

func (k *fakeKeys) count() int {
	return len(k.listeners)
}

func newTestState(store blob.Store) *AppState {
	state := NewAppState(store)
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	return state
}

func entryNames(entries []FileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func mustReduce(t *testing.T, r *StateReducer, state *AppState, action Action) {
	t.Helper()
	if _, err := r.Reduce(state, action); err != nil {
		t.Fatalf("Reduce(%T) error: %v", action, err)
	}
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func mkTestDir(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
}
