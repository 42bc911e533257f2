package state

// listChromeRows is the number of screen rows not available to the listing
// (header, search line and status line).
const listChromeRows = 3

// SelectedEntry returns the entry under the cursor in the visible listing.
func (s *AppState) SelectedEntry() *FileEntry {
	visible := s.VisibleEntries()
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(visible) {
		return nil
	}
	entry := visible[s.SelectedIndex]
	return &entry
}

func (s *AppState) visibleRows() int {
	rows := s.ScreenHeight - listChromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

func (s *AppState) clampSelection() {
	count := len(s.VisibleEntries())
	if count == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex >= count {
		s.SelectedIndex = count - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.updateScrollVisibility()
}

func (s *AppState) updateScrollVisibility() {
	visibleLines := s.visibleRows()

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}

	maxOffset := len(s.VisibleEntries()) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}
