package state

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterEntries keeps the entries whose name contains query, ignoring case.
// An empty query returns entries unchanged; otherwise relative order is kept.
func FilterEntries(entries []FileEntry, query string) []FileEntry {
	if query == "" {
		return entries
	}

	folder := cases.Fold()
	needle := folder.String(query)
	matched := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(folder.String(entry.Name), needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// VisibleEntries is the listing after the search filter.
func (s *AppState) VisibleEntries() []FileEntry {
	return FilterEntries(s.Entries, s.SearchQuery)
}

func (s *AppState) setSearchQuery(query string) {
	s.SearchQuery = query
	s.clampSelection()
}

func (s *AppState) clearSearch() {
	s.SearchActive = false
	s.SearchQuery = ""
	s.clampSelection()
}
