package render

import (
	"fmt"

	statepkg "github.com/kk-code-lab/rgal/internal/state"
	"github.com/kk-code-lab/rgal/internal/textutil"
)

// drawTextPreview renders an opened text file: its metadata followed by as
// many lines as fit.
func (r *Renderer) drawTextPreview(state *statepkg.AppState, w, h int) {
	p := state.Preview
	frame := overlayBox(w, h)
	bg := r.drawFrame(frame)
	innerX, innerW := frame.x+2, frame.w-4

	title := " " + p.Entry.Type.Icon + " " + textutil.SanitizeTerminalText(p.Entry.Name) + " "
	r.drawTextLine(innerX, frame.y, innerW, r.truncateTextToWidth(title, innerW), bg.Bold(true))

	y := frame.y + 1
	bottom := frame.y + frame.h - 1
	for _, line := range previewMetadataLines(p) {
		if y >= bottom {
			return
		}
		r.drawTextLine(innerX, y, innerW, r.truncateTextToWidth(line, innerW), bg.Foreground(r.theme.DetailFg))
		y++
	}
	y++

	if p.Binary {
		if y < bottom {
			r.drawTextLine(innerX, y, innerW, "Binary content cannot be previewed.", bg)
		}
		return
	}

	for i, line := range p.Lines {
		if y >= bottom {
			break
		}
		if y == bottom-1 && i < len(p.Lines)-1 {
			more := fmt.Sprintf("… %d more lines", len(p.Lines)-i)
			r.drawTextLine(innerX, y, innerW, more, bg.Foreground(r.theme.DetailFg))
			break
		}
		text := textutil.SanitizeTerminalText(textutil.ExpandTabs(line, textutil.DefaultTabWidth))
		r.drawTextLine(innerX, y, innerW, r.truncateTextToWidth(text, innerW), bg)
		y++
	}
}

func previewMetadataLines(p *statepkg.TextPreview) []string {
	modified := "Unknown"
	if p.Modified != nil {
		modified = p.Modified.Local().Format(metadataTimeLayout)
	}
	mimeType := p.MimeType
	if mimeType == "" {
		mimeType = "Unknown"
	}
	return []string{
		"Type: " + p.Entry.Type.Description,
		"Size: " + textutil.FormatFileSize(p.Size),
		"Modified: " + modified,
		"MIME Type: " + mimeType,
	}
}
