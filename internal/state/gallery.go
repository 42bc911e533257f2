package state

// Direction is a lightbox navigation intent.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrev
)

// ImageSubset returns the images of entries in listing order.
func ImageSubset(entries []FileEntry) []FileEntry {
	images := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsImage() {
			images = append(images, e)
		}
	}
	return images
}

func indexOfImage(images []FileEntry, target FileEntry) int {
	for i, img := range images {
		if img.SameAs(target) {
			return i
		}
	}
	return -1
}

// cycleIndex moves index one step in dir, wrapping at both ends.
func cycleIndex(index, n int, dir Direction) int {
	if n <= 0 {
		return index
	}
	if dir == DirectionPrev {
		return (index - 1 + n) % n
	}
	return (index + 1) % n
}

// ImageSubset is the lightbox's index space. It is computed from the full
// listing, not the search-filtered one.
func (s *AppState) ImageSubset() []FileEntry {
	return ImageSubset(s.Entries)
}

// SelectedImage returns the entry shown in the lightbox.
func (s *AppState) SelectedImage() *FileEntry {
	if !s.Gallery.Open {
		return nil
	}
	images := s.ImageSubset()
	if s.Gallery.Index < 0 || s.Gallery.Index >= len(images) {
		return nil
	}
	img := images[s.Gallery.Index]
	return &img
}
