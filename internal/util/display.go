package util

import "github.com/mattn/go-runewidth"

// Terminal control sequences used by the watch display
const (
	ClearScreen     = "\033[2J"
	MoveCursorHome  = "\033[H"
	ClearScrollback = "\033[3J"
	HideCursor      = "\033[?25l"
	ShowCursor      = "\033[?25h"
	EnterAltScreen  = "\033[?1049h"
	ExitAltScreen   = "\033[?1049l"
)

// GetDisplayWidth returns the number of terminal cells text occupies
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads or truncates text to exactly width terminal cells.
func PadRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if GetDisplayWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}
