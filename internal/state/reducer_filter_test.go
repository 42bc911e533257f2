package state

import (
	"slices"
	"testing"
)

func TestFilterEntries(t *testing.T) {
	entries := []FileEntry{
		{Name: "Holiday.PNG"},
		{Name: "notes.txt"},
		{Name: "holiday-notes.md"},
		{Name: "Straße.jpg"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Holiday.PNG", "notes.txt", "holiday-notes.md", "Straße.jpg"}},
		{"holiday", []string{"Holiday.PNG", "holiday-notes.md"}},
		{"NOTES", []string{"notes.txt", "holiday-notes.md"}},
		{"strasse", []string{"Straße.jpg"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got := entryNames(FilterEntries(entries, tt.query))
		if !slices.Equal(got, tt.want) {
			t.Errorf("FilterEntries(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestReducer_SearchTypingFiltersAndClamps(t *testing.T) {
	root, _ := galleryFixture()
	state := newTestState(newCountingStore())
	r := NewStateReducer()
	mustReduce(t, r, state, SelectFolderAction{Dir: root})

	for i := 0; i < 5; i++ {
		mustReduce(t, r, state, NavigateDownAction{})
	}
	mustReduce(t, r, state, SearchStartAction{})
	for _, ch := range ".PNG" {
		mustReduce(t, r, state, SearchCharAction{Char: ch})
	}

	if got := entryNames(state.VisibleEntries()); !slices.Equal(got, []string{"a.png", "b.png", "c.png"}) {
		t.Fatalf("visible = %v", got)
	}
	if state.SelectedIndex != 2 {
		t.Fatalf("selection should clamp to the filtered list, got %d", state.SelectedIndex)
	}
	if len(state.Entries) != 6 {
		t.Fatalf("filtering must not change the full listing")
	}

	mustReduce(t, r, state, SearchSubmitAction{})
	if state.SearchActive || state.SearchQuery != ".PNG" {
		t.Fatalf("submit keeps the query but ends typing")
	}
	mustReduce(t, r, state, SearchCharAction{Char: 'x'})
	if state.SearchQuery != ".PNG" {
		t.Fatalf("chars are ignored once search is inactive")
	}

	mustReduce(t, r, state, SearchStartAction{})
	for i := 0; i < 10; i++ {
		mustReduce(t, r, state, SearchBackspaceAction{})
	}
	if state.SearchQuery != "" || len(state.VisibleEntries()) != 6 {
		t.Fatalf("backspace should empty the query")
	}

	mustReduce(t, r, state, SearchCharAction{Char: 'q'})
	mustReduce(t, r, state, SearchClearAction{})
	if state.SearchActive || state.SearchQuery != "" {
		t.Fatalf("clear should reset search")
	}
}

func TestReducer_SearchRequiresFolder(t *testing.T) {
	state := newTestState(newCountingStore())
	r := NewStateReducer()
	mustReduce(t, r, state, SearchStartAction{})
	if state.SearchActive {
		t.Fatalf("search needs a selected folder")
	}
}

func TestReducer_SearchClearedOnReset(t *testing.T) {
	root, _ := galleryFixture()
	state := newTestState(newCountingStore())
	r := NewStateReducer()
	mustReduce(t, r, state, SelectFolderAction{Dir: root})
	mustReduce(t, r, state, SearchStartAction{})
	mustReduce(t, r, state, SearchCharAction{Char: 'a'})

	mustReduce(t, r, state, ResetAction{})
	if state.SearchQuery != "" || state.SearchActive {
		t.Fatalf("reset should clear search")
	}
}
