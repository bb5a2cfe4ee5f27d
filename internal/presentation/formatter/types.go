package formatter

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"unicode"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/core/timeline"
)

// ErrUnknownFormat is returned by New for an unsupported output name.
var ErrUnknownFormat = errors.New("unknown output format")

// BandTimeline is one band ready for output. Timeline is nil when no
// timeline could be built for the lineup.
type BandTimeline struct {
	Lineup   *model.ParsedLineup
	Timeline *timeline.Timeline
}

// Formatter writes bands in one output format.
type Formatter interface {
	Format(w io.Writer, data []BandTimeline) error
}

// Options tune the terminal oriented formatters.
type Options struct {
	// Width overrides the detected terminal width when positive.
	Width int
	// Style selects the table layout: "full" or "minimal".
	Style string
}

// New returns the formatter for an output name from constants.OutputFormats.
func New(output string, opts Options) (Formatter, error) {
	switch output {
	case constants.OutputTable:
		return NewTableFormatter(opts), nil
	case constants.OutputJSON:
		return NewJSONFormatter(), nil
	case constants.OutputCSV:
		return NewCSVFormatter(), nil
	case constants.OutputSummary:
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, output)
	}
}

// One symbol per registry slot, in bit order.
const roleSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ12"

// Grid glyphs
const (
	glyphInactive          = '·'
	glyphMultiple          = '*'
	glyphMultipleUncertain = '#'
)

func roleSymbol(index int) rune {
	if index < 0 || index >= len(roleSymbols) {
		return '?'
	}
	return rune(roleSymbols[index])
}

// cellGlyph maps a timeline cell to a single grid character. A cell whose
// interval had an unknown bound is shown in lower case.
func cellGlyph(cell int) rune {
	roles := uint(cell & timeline.RoleMask)
	uncertain := cell&timeline.TagMask != 0

	switch {
	case roles == 0:
		return glyphInactive
	case roles&(roles-1) != 0:
		if uncertain {
			return glyphMultipleUncertain
		}
		return glyphMultiple
	}

	symbol := roleSymbol(bits.TrailingZeros(roles) - 1)
	if uncertain {
		return unicode.ToLower(symbol)
	}
	return symbol
}

func activeYears(row timeline.TimelineRow) int {
	n := 0
	for _, cell := range row.Years {
		if cell&timeline.RoleMask != 0 {
			n++
		}
	}
	return n
}

// gridLegend lists the role symbols followed by the special glyphs.
func gridLegend(registry *timeline.RoleRegistry) []string {
	names := registry.Names()
	legend := make([]string, 0, len(names)+4)
	for i, name := range names {
		legend = append(legend, fmt.Sprintf("%c %s", roleSymbol(i), name))
	}
	return append(legend,
		fmt.Sprintf("%c several roles", glyphMultiple),
		fmt.Sprintf("%c several, uncertain", glyphMultipleUncertain),
		"a-z uncertain bound",
		fmt.Sprintf("%c inactive", glyphInactive),
	)
}
