package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	ImageFg     tcell.Color
	FileFg      tcell.Color
	DetailFg    tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
	OverlayBg   tcell.Color
	OverlayFg   tcell.Color
	BorderFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		ImageFg:     tcell.Color44,
		FileFg:      tcell.ColorDefault,
		DetailFg:    tcell.ColorLightSlateGray,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		OverlayBg:   tcell.Color234, // dark backdrop behind the lightbox
		OverlayFg:   tcell.Color252,
		BorderFg:    tcell.Color240,
	}
}
