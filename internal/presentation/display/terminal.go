// Package display manages the terminal screen of the watch command.
package display

import (
	"io"
	"sync"

	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// TerminalDisplay writes renders to out. Inside the alternate screen every
// render starts on a clean screen; outside it renders are simply appended.
type TerminalDisplay struct {
	mu                sync.Mutex
	out               io.Writer
	inAlternateScreen bool
}

func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{out: out}
}

// Writer returns the destination of renders.
func (td *TerminalDisplay) Writer() io.Writer {
	return td.out
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if !td.inAlternateScreen {
		io.WriteString(td.out, util.EnterAltScreen+util.ClearScreen+util.MoveCursorHome+util.ClearScrollback+util.HideCursor)
		td.inAlternateScreen = true
	}
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if td.inAlternateScreen {
		io.WriteString(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAltScreen)
		td.inAlternateScreen = false
	}
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if td.inAlternateScreen {
		io.WriteString(td.out, util.ClearScreen+util.MoveCursorHome)
	}
}

// InAlternateScreen reports whether the alternate screen is active.
func (td *TerminalDisplay) InAlternateScreen() bool {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.inAlternateScreen
}
