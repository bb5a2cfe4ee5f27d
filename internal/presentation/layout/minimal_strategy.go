package layout

import (
	"io"
	"strings"
)

// MinimalLayoutStrategy prints the grid without borders, for narrow
// terminals and plain-text pipes.
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal"
}

func (s *MinimalLayoutStrategy) Render(w io.Writer, grid *Grid) error {
	sizer := s.GetSizer()
	nameWidth := s.NameWidth(grid)
	chunkSize := s.ChunkSize(grid, nameWidth+1)

	var sb strings.Builder
	if grid.Title != "" {
		sb.WriteString(grid.Title)
		sb.WriteString("\n")
	}

	for n, chunk := range Chunks(grid.Years, chunkSize) {
		if n > 0 {
			sb.WriteString("\n")
		}
		axis := YearAxis(grid.StartYear+chunk.From, chunk.To-chunk.From, s.interval(grid))
		sb.WriteString(strings.TrimRight(strings.Repeat(" ", nameWidth+1)+axis, " "))
		sb.WriteString("\n")
		for i, name := range grid.Names {
			sb.WriteString(sizer.FitString(name, nameWidth))
			sb.WriteString(" ")
			sb.WriteString(string(grid.Cells[i][chunk.From:chunk.To]))
			sb.WriteString("\n")
		}
	}

	for _, line := range s.WrapItems(grid.Legend, grid.Width) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
