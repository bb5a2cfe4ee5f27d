package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when stdout is not a terminal
	DefaultWidth = 100
	// MinWidth keeps at least a few years visible next to the name column
	MinWidth = 40
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct {
}

// displayWidth calculates the display width of a string containing wide runes
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width. Longer strings are
// returned unchanged.
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// FitString pads or truncates s to exactly width cells.
func (i Sizer) FitString(s string, width int) string {
	return util.PadRight(s, width)
}

// GetMaxWidth returns the width to render into. A positive override wins;
// otherwise the terminal width is used, falling back to DefaultWidth.
func (i Sizer) GetMaxWidth(override int) int {
	if override > 0 {
		return max(override, MinWidth)
	}

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		termWidth = DefaultWidth
	}
	maxWidth := max(termWidth-1, MinWidth)

	util.LogDebugf("GetMaxWidth %d", maxWidth)
	return maxWidth
}

// GetSizer returns the shared sizer instance
func GetSizer() *Sizer {
	return sharedSizer
}
