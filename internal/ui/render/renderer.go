package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/blob"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
	"github.com/kk-code-lab/rgal/internal/textutil"
)

const appTitle = "rgal"

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	images           *imageCache
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer. Image content is resolved through
// opener.
func NewRenderer(screen tcell.Screen, opener blob.Opener) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		images: newImageCache(opener),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if !state.HasFolder() {
		r.drawWelcome(state, w, h)
	} else {
		r.drawHeader(state, w)
		r.drawSearchLine(state, w)
		r.drawFileList(state, w, h)
		r.drawStatusLine(state, w, h)

		switch {
		case state.Gallery.Open:
			r.drawLightbox(state, w, h)
		case state.Preview != nil:
			r.drawTextPreview(state, w, h)
		}
	}

	r.images.prune(state.Resources.Has)
	r.screen.Show()
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	endX := r.drawTextLine(0, 0, w, appTitle+" ", headerStyle.Bold(true))

	names := state.Path.Names()
	for i, name := range names {
		if endX >= w {
			break
		}
		if i > 0 {
			endX = r.drawTextLine(endX, 0, w-endX, statepkg.BreadcrumbSeparator, headerStyle)
		}
		style := headerStyle
		if i == len(names)-1 {
			style = style.Bold(true)
		}
		segment := r.truncateTextToWidth(textutil.SanitizeTerminalText(name), w-endX)
		endX = r.drawTextLine(endX, 0, w-endX, segment, style)
	}

	r.fillRow(endX, w, 0, headerStyle)
}

func (r *Renderer) drawSearchLine(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.DetailFg)
	if !state.SearchActive && state.SearchQuery == "" {
		r.fillRow(0, w, 1, style)
		return
	}

	text := "/" + textutil.SanitizeTerminalText(state.SearchQuery)
	if state.SearchActive {
		text += "▏"
	}
	queryStyle := tcell.StyleDefault.Foreground(r.theme.Foreground).Bold(true)
	endX := r.drawTextLine(1, 1, w-1, text, queryStyle)

	matches := fmt.Sprintf("%d of %d", len(state.VisibleEntries()), len(state.Entries))
	r.drawRightAligned(w-1, 1, endX+2, matches, style)
}

// drawFileList renders the visible entries between the search line and the
// status line.
func (r *Renderer) drawFileList(state *statepkg.AppState, w, h int) {
	const listStartY = 2
	bottomLimit := h - 1
	visible := state.VisibleEntries()

	if len(visible) == 0 {
		msg := emptyListingMessage(state)
		style := tcell.StyleDefault.Foreground(r.theme.DetailFg)
		if listStartY < bottomLimit {
			r.drawTextLine(2, listStartY, w-2, msg, style)
		}
		return
	}

	y := listStartY
	for idx := state.ScrollOffset; idx < len(visible) && y < bottomLimit; idx++ {
		r.drawEntryRow(visible[idx], idx == state.SelectedIndex, y, w)
		y++
	}
}

func emptyListingMessage(state *statepkg.AppState) string {
	switch {
	case state.Loading:
		return "Loading…"
	case state.SearchQuery != "":
		return "No files match your search."
	default:
		return "This folder is empty."
	}
}

func (r *Renderer) drawEntryRow(entry statepkg.FileEntry, selected bool, y, w int) {
	rowStyle := tcell.StyleDefault.Foreground(r.theme.FileFg)
	detailStyle := tcell.StyleDefault.Foreground(r.theme.DetailFg)
	switch {
	case selected:
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		detailStyle = rowStyle
	case entry.IsDir():
		rowStyle = rowStyle.Foreground(r.theme.DirectoryFg)
	case entry.IsImage():
		rowStyle = rowStyle.Foreground(r.theme.ImageFg)
	}
	r.fillRow(0, w, y, rowStyle)

	details := entry.Type.Description
	if entry.Modified != nil {
		details += "  " + textutil.FormatFileSize(entry.Size)
	}
	detailsX := w - 1 - r.measureTextWidth(details)

	x := r.drawTextLine(1, y, 3, entry.Type.Icon, rowStyle)
	if x < 4 {
		x = 4
	}
	nameWidth := detailsX - 2 - x
	if nameWidth < 8 {
		// Too narrow for details; give the name the whole row.
		nameWidth = w - 1 - x
		detailsX = w
	}
	name := r.truncateTextToWidth(textutil.SanitizeTerminalText(entry.Name), nameWidth)
	r.drawTextLine(x, y, nameWidth, name, rowStyle)
	if detailsX < w {
		r.drawTextLine(detailsX, y, w-detailsX, details, detailStyle)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 2 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, w, y, normalStyle)

	var text string
	style := normalStyle
	switch {
	case state.PromptActive:
		text = " Folder: " + textutil.SanitizeTerminalText(state.PromptInput) + "▏"
	case state.LastError != nil:
		text = " " + textutil.SanitizeTerminalText(state.LastError.Error())
		style = normalStyle.Foreground(r.theme.ErrorFg)
	case state.Notice != "":
		text = " " + textutil.SanitizeTerminalText(state.Notice)
	default:
		text = buildFooterHelpText(state)
	}

	summaryX := r.drawRightAligned(w-1, y, w/2, listingSummary(state), normalStyle.Foreground(r.theme.DetailFg))
	textWidth := summaryX - 1
	r.drawTextLine(0, y, textWidth, r.truncateTextToWidth(text, textWidth), style)
}

func listingSummary(state *statepkg.AppState) string {
	if state.Loading {
		return "loading…"
	}
	images := len(state.ImageSubset())
	return fmt.Sprintf("%d items · %d images", len(state.Entries), images)
}

// drawWelcome is shown while no folder is selected.
func (r *Renderer) drawWelcome(state *statepkg.AppState, w, h int) {
	lines := []string{
		appTitle,
		"Browse a folder of images and files.",
		"",
		"Press Enter or o to choose a folder, q to quit.",
	}
	top := h/2 - len(lines)
	if top < 0 {
		top = 0
	}
	for i, line := range lines {
		style := tcell.StyleDefault
		if i == 0 {
			style = style.Bold(true)
		}
		x := (w - r.measureTextWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		r.drawTextLine(x, top+i, w-x, line, style)
	}

	y := top + len(lines) + 1
	if state.PromptActive && y < h {
		prompt := "Folder: " + textutil.SanitizeTerminalText(state.PromptInput) + "▏"
		x := max((w-40)/2, 0)
		r.drawTextLine(x, y, w-x, r.truncateTextToWidth(prompt, w-x), tcell.StyleDefault.Bold(true))
		y++
	}
	if state.Notice != "" && y+1 < h {
		notice := r.truncateTextToWidth(textutil.SanitizeTerminalText(state.Notice), w)
		x := max((w-r.measureTextWidth(notice))/2, 0)
		r.drawTextLine(x, y+1, w-x, notice, tcell.StyleDefault.Foreground(r.theme.ErrorFg))
	}
}
