package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/blob"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
	"github.com/kk-code-lab/rgal/internal/textutil"
)

const metadataTimeLayout = "2006-01-02 15:04:05"

// box is a rectangle in cells.
type box struct {
	x, y, w, h int
}

func overlayBox(w, h int) box {
	b := box{x: 2, y: 1, w: w - 4, h: h - 2}
	if b.w < 10 || b.h < 6 {
		return box{w: w, h: h}
	}
	return b
}

// drawFrame clears b with the overlay background and draws a border.
func (r *Renderer) drawFrame(b box) tcell.Style {
	bg := tcell.StyleDefault.Background(r.theme.OverlayBg).Foreground(r.theme.OverlayFg)
	border := bg.Foreground(r.theme.BorderFg)
	for y := b.y; y < b.y+b.h; y++ {
		r.fillRow(b.x, b.x+b.w, y, bg)
	}
	right, bottom := b.x+b.w-1, b.y+b.h-1
	for x := b.x; x <= right; x++ {
		r.screen.SetContent(x, b.y, tcell.RuneHLine, nil, border)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, border)
	}
	for y := b.y; y <= bottom; y++ {
		r.screen.SetContent(b.x, y, tcell.RuneVLine, nil, border)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, border)
	}
	r.screen.SetContent(b.x, b.y, tcell.RuneULCorner, nil, border)
	r.screen.SetContent(right, b.y, tcell.RuneURCorner, nil, border)
	r.screen.SetContent(b.x, bottom, tcell.RuneLLCorner, nil, border)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, border)
	return bg
}

// drawLightbox renders the open image with navigation markers and the
// metadata read when it was opened.
func (r *Renderer) drawLightbox(state *statepkg.AppState, w, h int) {
	img := state.SelectedImage()
	frame := overlayBox(w, h)
	bg := r.drawFrame(frame)
	innerX, innerW := frame.x+2, frame.w-4

	title := fmt.Sprintf(" %d / %d ", state.Gallery.Index+1, len(state.ImageSubset()))
	r.drawTextLine(frame.x+2, frame.y, innerW, title, bg.Bold(true))
	r.drawTextLine(frame.x+frame.w-10, frame.y, 8, " Esc × ", bg)

	metaLines := lightboxMetadataLines(state)
	imageTop := frame.y + 1
	imageRows := frame.h - 2 - len(metaLines) - 1
	navY := imageTop + max(imageRows, 1)/2

	r.screen.SetContent(frame.x+1, navY, '‹', nil, bg.Bold(true))
	r.screen.SetContent(frame.x+frame.w-2, navY, '›', nil, bg.Bold(true))

	if imageRows > 0 && innerW > 0 {
		r.drawLightboxImage(state, img, box{x: innerX, y: imageTop, w: innerW, h: imageRows}, bg)
	}

	y := frame.y + frame.h - 1 - len(metaLines)
	for _, line := range metaLines {
		r.drawTextLine(innerX, y, innerW, r.truncateTextToWidth(line, innerW), bg)
		y++
	}
}

func (r *Renderer) drawLightboxImage(state *statepkg.AppState, entry *statepkg.FileEntry, area box, bg tcell.Style) {
	message := ""
	switch loc, ok := locatorFor(state, entry); {
	case entry == nil || !ok:
		message = "Image not found"
	default:
		img, err := r.images.fitted(loc, area.w, area.h)
		if err != nil {
			message = "Preview unavailable: " + err.Error()
			break
		}
		r.drawHalfBlocks(img, area.x, area.y, area.w, area.h, r.theme.OverlayBg)
		return
	}
	message = r.truncateTextToWidth(message, area.w)
	x := area.x + (area.w-r.measureTextWidth(message))/2
	r.drawTextLine(x, area.y+area.h/2, area.w, message, bg)
}

func locatorFor(state *statepkg.AppState, entry *statepkg.FileEntry) (blob.Locator, bool) {
	if entry == nil {
		return "", false
	}
	return state.Resources.Locator(entry.ID())
}

func lightboxMetadataLines(state *statepkg.AppState) []string {
	meta := state.GalleryMetadata
	if meta == nil {
		name := ""
		if img := state.SelectedImage(); img != nil {
			name = img.Name
		}
		return []string{"Name: " + textutil.SanitizeTerminalText(name), "", "", ""}
	}
	mediaType := meta.MediaType
	if mediaType == "" {
		mediaType = "Unknown"
	}
	lines := []string{
		"Name: " + textutil.SanitizeTerminalText(meta.Name),
		"Size: " + textutil.FormatKilobytes(meta.Size),
		"Modified: " + meta.Modified.Local().Format(metadataTimeLayout),
		"Type: " + mediaType,
	}
	if meta.Camera != "" {
		lines = append(lines, "Camera: "+textutil.SanitizeTerminalText(meta.Camera))
	}
	if meta.Taken != nil {
		lines = append(lines, "Taken: "+meta.Taken.Format(metadataTimeLayout))
	}
	return lines
}
