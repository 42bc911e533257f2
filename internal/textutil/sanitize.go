package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// formatLabels names the invisible formatting runes most often used to
// disguise file names. Other format runes are shown by code point.
var formatLabels = map[rune]string{
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0x00AD: "SHY",
	0xFEFF: "BOM",
}

// SanitizeTerminalText replaces control characters so names read from disk
// cannot inject terminal escape sequences when rendered.
func SanitizeTerminalText(text string) string {
	if !strings.ContainsFunc(text, needsSanitizing) {
		return text
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		case isFormatRune(r):
			b.WriteString(formatLabel(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(r rune) bool {
	return r < 0x20 || r == 0x7f || isFormatRune(r)
}

func isFormatRune(r rune) bool {
	return unicode.Is(unicode.Cf, r)
}

func formatLabel(r rune) string {
	if name, ok := formatLabels[r]; ok {
		return "⟪" + name + "⟫"
	}
	return fmt.Sprintf("⟪U+%04X⟫", r)
}
