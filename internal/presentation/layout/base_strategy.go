package layout

import (
	"strings"
)

const (
	nameHeader    = "Member"
	maxNameWidth  = 24
	minChunkYears = 10
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// NewBaseStrategy creates a new BaseStrategy instance
func NewBaseStrategy() *BaseStrategy {
	return &BaseStrategy{}
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// NameWidth is the width of the member name column, capped so that the
// year grid keeps most of the line.
func (b *BaseStrategy) NameWidth(grid *Grid) int {
	width := len(nameHeader)
	for _, name := range grid.Names {
		width = max(width, sharedSizer.displayWidth(name))
	}
	limit := min(maxNameWidth, max(grid.Width/3, len(nameHeader)))
	return min(width, limit)
}

// ChunkSize returns how many years fit on a line after overhead cells.
func (b *BaseStrategy) ChunkSize(grid *Grid, overhead int) int {
	return max(grid.Width-overhead, minChunkYears)
}

// Border draws a horizontal box border over columns of the given widths.
func (b *BaseStrategy) Border(widths []int, borderType string) string {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	return sb.String()
}

// WrapItems joins items with two spaces, starting a new line whenever the
// next item would exceed width.
func (b *BaseStrategy) WrapItems(items []string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, item := range items {
		itemWidth := sharedSizer.displayWidth(item)
		if lineWidth > 0 && lineWidth+2+itemWidth > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString("  ")
			lineWidth += 2
		}
		line.WriteString(item)
		lineWidth += itemWidth
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func (b *BaseStrategy) interval(grid *Grid) int {
	if grid.LabelInterval <= 0 {
		return 1
	}
	return grid.LabelInterval
}
