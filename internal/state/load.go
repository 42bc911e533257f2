package state

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/kk-code-lab/rgal/internal/blob"
	"github.com/kk-code-lab/rgal/internal/classify"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"github.com/kk-code-lab/rgal/internal/logging"
	"github.com/kk-code-lab/rgal/internal/metrics"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var errNotReadable = errors.New("entry has no readable file capability")

// LoadResult is one complete directory load: the sorted entries and a locator
// for every image whose content could be read.
type LoadResult struct {
	Entries   []FileEntry
	Resources ResourceMap
	Err       error
}

// LoadDirectory enumerates dir, classifies every child and reads image and
// text content. A failed read only degrades that entry; a failed enumeration
// yields no entries and a *DirectoryOpenError.
func LoadDirectory(ctx context.Context, dir fsutil.Directory, store blob.Store, locale language.Tag) LoadResult {
	start := time.Now()

	children, err := dir.Entries(ctx)
	if err != nil {
		openErr := &DirectoryOpenError{Name: dir.Name(), Err: err}
		logging.Error("directory enumeration failed", logging.String("dir", dir.Name()), logging.Err(err))
		metrics.RecordDirectoryLoad(time.Since(start), false)
		return LoadResult{Resources: ResourceMap{}, Err: openErr}
	}

	entries := make([]FileEntry, 0, len(children))
	resources := make(ResourceMap)

	for _, child := range children {
		if child.Kind == fsutil.KindDirectory {
			entries = append(entries, FileEntry{
				Name:   child.Name,
				Handle: child.Handle,
				Kind:   fsutil.KindDirectory,
				Type:   classify.Directory(),
			})
			continue
		}

		entry := FileEntry{
			Name:   child.Name,
			Handle: child.Handle,
			Kind:   fsutil.KindFile,
			Type:   classify.Classify(child.Name),
		}
		if entry.IsImage() || entry.IsText() {
			readEntryContent(ctx, &entry, store, resources)
		}
		entries = append(entries, entry)
	}

	SortEntries(entries, locale)
	metrics.RecordDirectoryLoad(time.Since(start), true)
	logging.Debug("directory loaded",
		logging.String("dir", dir.Name()),
		logging.Int("entries", len(entries)),
		logging.Int("images", len(resources)),
		logging.Duration("took", time.Since(start)),
	)

	return LoadResult{Entries: entries, Resources: resources}
}

func readEntryContent(ctx context.Context, entry *FileEntry, store blob.Store, resources ResourceMap) {
	file, ok := entry.Handle.(fsutil.File)
	if !ok {
		recordEntryReadFailure(&EntryReadError{Name: entry.Name, Err: errNotReadable})
		return
	}

	content, err := file.Read(ctx)
	if err != nil {
		recordEntryReadFailure(&EntryReadError{Name: entry.Name, Err: err})
		return
	}

	modified := content.Modified
	entry.Size = content.Size
	entry.Modified = &modified
	entry.MimeType = content.MediaType

	if !entry.IsImage() {
		return
	}
	loc, err := store.Create(content.Data, content.MediaType)
	if err != nil {
		recordEntryReadFailure(&EntryReadError{Name: entry.Name, Err: err})
		return
	}
	resources[entry.ID()] = loc
}

func recordEntryReadFailure(err *EntryReadError) {
	metrics.RecordEntryReadFailure()
	logging.Warn("entry read failed", logging.String("name", err.Name), logging.Err(err.Err))
}

// SortEntries orders directories before files and, within a kind, by name
// using locale collation. Names that collate equal fall back to byte order so
// the result is the same for any input permutation.
func SortEntries(entries []FileEntry, locale language.Tag) {
	col := collate.New(locale)
	slices.SortStableFunc(entries, func(a, b FileEntry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}
