package layout

import (
	"io"
	"strings"
)

// FullLayoutStrategy draws each chunk of years as a boxed table.
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full"
}

func (s *FullLayoutStrategy) Render(w io.Writer, grid *Grid) error {
	sizer := s.GetSizer()
	nameWidth := s.NameWidth(grid)
	// "│ " + name + " │ " + years + " │"
	chunkSize := s.ChunkSize(grid, nameWidth+7)

	var sb strings.Builder
	if grid.Title != "" {
		sb.WriteString(grid.Title)
		sb.WriteString("\n")
	}

	for _, chunk := range Chunks(grid.Years, chunkSize) {
		widths := []int{nameWidth, chunk.To - chunk.From}

		sb.WriteString(s.Border(widths, "top") + "\n")
		axis := YearAxis(grid.StartYear+chunk.From, chunk.To-chunk.From, s.interval(grid))
		writeBoxRow(&sb, sizer.PadString(nameHeader, nameWidth, true), axis)
		sb.WriteString(s.Border(widths, "middle") + "\n")
		for i, name := range grid.Names {
			writeBoxRow(&sb, sizer.FitString(name, nameWidth), string(grid.Cells[i][chunk.From:chunk.To]))
		}
		sb.WriteString(s.Border(widths, "bottom") + "\n")
	}

	for _, line := range s.WrapItems(grid.Legend, grid.Width) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBoxRow(sb *strings.Builder, name, years string) {
	sb.WriteString("│ ")
	sb.WriteString(name)
	sb.WriteString(" │ ")
	sb.WriteString(years)
	sb.WriteString(" │\n")
}
