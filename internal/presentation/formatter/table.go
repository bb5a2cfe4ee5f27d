package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/presentation/layout"
)

// TableFormatter draws each band as a member by year grid.
type TableFormatter struct {
	width    int
	strategy layout.LayoutStrategy
}

func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{
		width:    opts.Width,
		strategy: layout.GetLayoutStrategy(opts.Style),
	}
}

func (f *TableFormatter) Format(w io.Writer, data []BandTimeline) error {
	width := layout.GetSizer().GetMaxWidth(f.width)

	for i, band := range data {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := f.formatBand(w, band, width); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) formatBand(w io.Writer, band BandTimeline, width int) error {
	lineup := band.Lineup
	if band.Timeline == nil {
		_, err := fmt.Fprintf(w, "%s: no timeline\n", lineup.Band)
		return err
	}

	tl := band.Timeline
	grid := &layout.Grid{
		Title:         fmt.Sprintf("%s (%s)", lineup.Band, tl.Span()),
		StartYear:     tl.StartYear,
		Years:         tl.Len(),
		Names:         make([]string, len(tl.Rows)),
		Cells:         make([][]rune, len(tl.Rows)),
		Legend:        gridLegend(tl.Registry),
		Width:         width,
		LabelInterval: constants.YearLabelInterval,
	}
	for i, row := range tl.Rows {
		grid.Names[i] = row.Name
		cells := make([]rune, len(row.Years))
		for j, cell := range row.Years {
			cells[j] = cellGlyph(cell)
		}
		grid.Cells[i] = cells
	}

	if err := f.strategy.Render(w, grid); err != nil {
		return err
	}
	return writeNotes(w, lineup)
}

// writeNotes lists skipped members and dropped role text below the grid.
func writeNotes(w io.Writer, lineup *model.ParsedLineup) error {
	var sb strings.Builder
	for _, s := range lineup.Skipped {
		fmt.Fprintf(&sb, "skipped %s: %s\n", s.Name, s.Reason)
	}
	for _, d := range lineup.Dropped {
		fmt.Fprintf(&sb, "ignored %s: %q\n", d.Name, d.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
