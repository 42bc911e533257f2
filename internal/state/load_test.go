package state

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kk-code-lab/rgal/internal/classify"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"golang.org/x/text/language"
)

func TestSortEntries_DirectoriesFirstThenName(t *testing.T) {
	root := newFakeDir("root",
		newFakeFile("b.txt"),
		newFakeFile("A.png"),
		newFakeDir("sub"),
	)

	result := LoadDirectory(context.Background(), root, newCountingStore(), language.English)
	if result.Err != nil {
		t.Fatalf("LoadDirectory error: %v", result.Err)
	}

	got := entryNames(result.Entries)
	want := []string{"sub", "A.png", "b.txt"}
	if !slices.Equal(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if !result.Entries[0].IsDir() {
		t.Fatalf("first entry should be a directory")
	}
}

func TestSortEntries_LocaleCollationIgnoresCase(t *testing.T) {
	entries := []FileEntry{
		{Name: "cherry.txt"},
		{Name: "Banana.txt"},
		{Name: "apple.txt"},
	}
	SortEntries(entries, language.English)

	want := []string{"apple.txt", "Banana.txt", "cherry.txt"}
	if got := entryNames(entries); !slices.Equal(got, want) {
		t.Fatalf("sorted = %v, want %v", got, want)
	}
}

func TestSortEntries_IdempotentAndPermutationIndependent(t *testing.T) {
	base := []FileEntry{
		{Name: "a.txt"},
		{Name: "A.txt"},
		{Name: "docs", Kind: fsutil.KindDirectory},
		{Name: "b.png"},
		{Name: "Docs", Kind: fsutil.KindDirectory},
	}

	first := slices.Clone(base)
	SortEntries(first, language.English)

	again := slices.Clone(first)
	SortEntries(again, language.English)
	if !slices.Equal(entryNames(first), entryNames(again)) {
		t.Fatalf("sorting is not idempotent: %v vs %v", entryNames(first), entryNames(again))
	}

	reversed := slices.Clone(base)
	slices.Reverse(reversed)
	SortEntries(reversed, language.English)
	if !slices.Equal(entryNames(first), entryNames(reversed)) {
		t.Fatalf("order depends on input permutation: %v vs %v", entryNames(first), entryNames(reversed))
	}

	for i, e := range first {
		if i < 2 && !e.IsDir() {
			t.Fatalf("expected directories first, got %v", entryNames(first))
		}
	}
}

func TestLoadDirectory_ClassifiesAndReadsContent(t *testing.T) {
	img := newFakeFile("photo.png")
	txt := newFakeFile("notes.txt")
	zip := newFakeFile("bundle.zip")
	root := newFakeDir("root", img, txt, zip, newFakeDir("sub"))

	store := newCountingStore()
	result := LoadDirectory(context.Background(), root, store, language.English)
	if result.Err != nil {
		t.Fatalf("LoadDirectory error: %v", result.Err)
	}

	byName := make(map[string]FileEntry)
	for _, e := range result.Entries {
		byName[e.Name] = e
	}

	photo := byName["photo.png"]
	if photo.Type.Category != classify.CategoryImage {
		t.Fatalf("photo.png category = %s", photo.Type.Category)
	}
	if photo.Size != int64(len(img.data)) || photo.Modified == nil {
		t.Fatalf("photo.png metadata not populated: %+v", photo)
	}
	if photo.MimeType != "image/png" {
		t.Fatalf("photo.png mime = %q", photo.MimeType)
	}

	notes := byName["notes.txt"]
	if notes.Size == 0 || notes.Modified == nil {
		t.Fatalf("text entry metadata not populated: %+v", notes)
	}

	bundle := byName["bundle.zip"]
	if bundle.Modified != nil || bundle.Size != 0 {
		t.Fatalf("archives should not be read during load: %+v", bundle)
	}
	if zip.reads != 0 {
		t.Fatalf("bundle.zip was read %d times", zip.reads)
	}

	if byName["sub"].Type.Category != classify.CategoryDirectory {
		t.Fatalf("sub should classify as directory")
	}

	if len(result.Resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(result.Resources))
	}
	if _, ok := result.Resources[img.ID()]; !ok {
		t.Fatalf("no locator for photo.png")
	}
	if store.created() != 1 {
		t.Fatalf("store created %d locators, want 1", store.created())
	}
}

func TestLoadDirectory_EntryReadFailureDegradesOnlyThatEntry(t *testing.T) {
	good := newFakeFile("good.png")
	bad := newFakeFile("bad.png")
	bad.err = errFakeRead
	badText := newFakeFile("bad.md")
	badText.err = errFakeRead
	root := newFakeDir("root", good, bad, badText)

	result := LoadDirectory(context.Background(), root, newCountingStore(), language.English)
	if result.Err != nil {
		t.Fatalf("partial failure should not fail the load: %v", result.Err)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("entries = %v, want all three", entryNames(result.Entries))
	}

	for _, e := range result.Entries {
		switch e.Name {
		case "bad.png", "bad.md":
			if e.Size != 0 || e.Modified != nil || e.MimeType != "" {
				t.Fatalf("%s should have no metadata: %+v", e.Name, e)
			}
		case "good.png":
			if e.Modified == nil {
				t.Fatalf("good.png should have metadata")
			}
		}
	}

	if _, ok := result.Resources[bad.ID()]; ok {
		t.Fatalf("failed image must not get a locator")
	}
	if _, ok := result.Resources[good.ID()]; !ok {
		t.Fatalf("readable image must get a locator")
	}
}

func TestLoadDirectory_ResourceKeysAreImageEntries(t *testing.T) {
	root := newFakeDir("root",
		newFakeFile("a.jpg"),
		newFakeFile("b.gif"),
		newFakeFile("c.txt"),
		newFakeFile("d.webp"),
		newFakeDir("e.png"),
	)

	result := LoadDirectory(context.Background(), root, newCountingStore(), language.English)

	var imageIDs []fsutil.HandleID
	for _, e := range result.Entries {
		if e.IsImage() {
			imageIDs = append(imageIDs, e.ID())
		}
	}
	if len(imageIDs) != len(result.Resources) {
		t.Fatalf("image entries = %d, resources = %d", len(imageIDs), len(result.Resources))
	}
	for _, id := range imageIDs {
		if _, ok := result.Resources[id]; !ok {
			t.Fatalf("missing locator for %s", id)
		}
	}
}

func TestLoadDirectory_EnumerationFailure(t *testing.T) {
	root := newFakeDir("locked")
	root.err = errFakeRead

	result := LoadDirectory(context.Background(), root, newCountingStore(), language.English)
	var openErr *DirectoryOpenError
	if !errors.As(result.Err, &openErr) {
		t.Fatalf("expected DirectoryOpenError, got %v", result.Err)
	}
	if openErr.Name != "locked" || !errors.Is(result.Err, errFakeRead) {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Entries) != 0 || len(result.Resources) != 0 {
		t.Fatalf("failed enumeration should yield nothing")
	}
}

func TestLoadDirectory_FromDisk(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "zeta.txt", "hello")
	writeTestFile(t, root, "alpha.png", "not really a png")
	mkTestDir(t, root, "nested")

	dir, err := fsutil.OpenDirectory(root)
	if err != nil {
		t.Fatalf("OpenDirectory: %v", err)
	}

	result := LoadDirectory(context.Background(), dir, newCountingStore(), language.English)
	if result.Err != nil {
		t.Fatalf("LoadDirectory: %v", result.Err)
	}
	want := []string{"nested", "alpha.png", "zeta.txt"}
	if got := entryNames(result.Entries); !slices.Equal(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if _, ok := result.Entries[0].Handle.(fsutil.Directory); !ok {
		t.Fatalf("nested should carry a directory capability")
	}
	if len(result.Resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(result.Resources))
	}
}
