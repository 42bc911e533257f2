package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rgal/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with a leading space.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := footerHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ")
}

func footerHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state == nil:
		return nil
	case state.Gallery.Open:
		return []string{"←/→: previous/next", "Esc: close"}
	case state.Preview != nil:
		return []string{"Esc/q: close preview"}
	case state.SearchActive:
		return []string{"type: search", "↵: done", "Esc: clear"}
	default:
		return []string{
			"↑↓: move",
			"↵/→: open",
			"←: back",
			"/: search",
			"o: folder",
			"r: reset",
			"q: quit",
		}
	}
}
