package ui

import "image/color"

type Theme struct {
	AppBackground   color.RGBA
	TopBar          color.RGBA
	Toolbar         color.RGBA
	Canvas          color.RGBA
	Page            color.RGBA
	Border          color.RGBA
	StatusBar       color.RGBA
	Accent          color.RGBA
	Shadow          color.RGBA
	Text            color.RGBA
	MutedText       color.RGBA
	Link            color.RGBA
	Highlight       color.RGBA
	InlineCode      color.RGBA
	CodeBackground  color.RGBA
	Selection       color.RGBA
	Caret           color.RGBA
	ActiveBlock     color.RGBA
	Separator       color.RGBA
	MenuBackground  color.RGBA
	MenuSelected    color.RGBA
	ButtonActive    color.RGBA
	ButtonHover     color.RGBA
	MenuHeightDp    int
	ToolbarHeightDp int
	StatusHeightDp  int
	PageMarginDp    int
	MaxPageWidthDp  int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground:   color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		TopBar:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Toolbar:         color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Canvas:          color.RGBA{0xE2, 0xE7, 0xEF, 0xFF},
		Page:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Border:          color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		StatusBar:       color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		Accent:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:          color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		Text:            color.RGBA{0x20, 0x20, 0x20, 0xFF},
		MutedText:       color.RGBA{0x8A, 0x96, 0xA8, 0xFF},
		Link:            color.RGBA{0x00, 0x57, 0xB8, 0xFF},
		Highlight:       color.RGBA{0xFF, 0xF4, 0xA8, 0xFF},
		InlineCode:      color.RGBA{0xEE, 0xF1, 0xF5, 0xFF},
		CodeBackground:  color.RGBA{0xF6, 0xF8, 0xFA, 0xFF},
		Selection:       color.RGBA{0xBF, 0xD6, 0xFF, 0xFF},
		Caret:           color.RGBA{0x15, 0x54, 0xA4, 0xFF},
		ActiveBlock:     color.RGBA{0xD7, 0xE5, 0xF8, 0xFF},
		Separator:       color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		MenuBackground:  color.RGBA{0xF9, 0xFB, 0xFE, 0xFF},
		MenuSelected:    color.RGBA{0xDF, 0xEC, 0xFC, 0xFF},
		ButtonActive:    color.RGBA{0xD7, 0xE5, 0xF8, 0xFF},
		ButtonHover:     color.RGBA{0xDF, 0xEC, 0xFC, 0xFF},
		MenuHeightDp:    34,
		ToolbarHeightDp: 42,
		StatusHeightDp:  28,
		PageMarginDp:    24,
		MaxPageWidthDp:  860,
	}
}
