package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-lineup-timeline/internal/core/timeline"
)

// CSVFormatter writes one record per member and active year.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, data []BandTimeline) error {
	cw := csv.NewWriter(w)

	headers := []string{
		"Band", "Member", "Year", "Roles", "Cell", "Uncertain Start", "Uncertain End",
	}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, band := range data {
		tl := band.Timeline
		if tl == nil {
			continue
		}
		for _, row := range tl.Rows {
			for i, cell := range row.Years {
				if cell&timeline.RoleMask == 0 {
					continue
				}
				record := []string{
					band.Lineup.Band,
					row.Name,
					strconv.Itoa(tl.StartYear + i),
					strings.Join(tl.Registry.RolesIn(cell), "; "),
					strconv.Itoa(cell),
					strconv.FormatBool(cell&timeline.IndeterminateStart != 0),
					strconv.FormatBool(cell&timeline.IndeterminateEnd != 0),
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
