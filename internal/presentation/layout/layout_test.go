package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(width int) *Grid {
	return &Grid{
		Title:     "Example (1990-2004)",
		StartYear: 1990,
		Years:     15,
		Names:     []string{"Alice", "Björk Guðmundsdóttir"},
		Cells: [][]rune{
			[]rune("AAAAAABBBBB····"),
			[]rune("···········CCCC"),
		},
		Legend:        []string{"A Bass", "B Drums", "C Vocals"},
		Width:         width,
		LabelInterval: 5,
	}
}

func TestChunks(t *testing.T) {
	assert.Nil(t, Chunks(0, 10))
	assert.Equal(t, []Chunk{{0, 5}}, Chunks(5, 10))
	assert.Equal(t, []Chunk{{0, 4}, {4, 8}, {8, 10}}, Chunks(10, 4))
	assert.Equal(t, []Chunk{{0, 7}}, Chunks(7, 0))
}

func TestYearAxis(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		count    int
		interval int
		want     string
	}{
		{"aligned", 1990, 15, 5, "1990 1995 2000 "},
		{"offset_start", 1988, 10, 5, "  1990    "},
		{"label_does_not_fit", 1993, 5, 5, "     "},
		{"labels_would_overlap", 2000, 6, 1, "2000  "},
		{"empty", 2000, 0, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearAxis(tt.start, tt.count, tt.interval)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.count)
		})
	}
}

func TestYearAxisTruncatedLabelIsSkipped(t *testing.T) {
	assert.Equal(t, "   ", YearAxis(1995, 3, 5))
}

func TestGetLayoutStrategy(t *testing.T) {
	assert.IsType(t, &FullLayoutStrategy{}, GetLayoutStrategy(StyleFull))
	assert.IsType(t, &MinimalLayoutStrategy{}, GetLayoutStrategy(StyleMinimal))
	assert.IsType(t, &FullLayoutStrategy{}, GetLayoutStrategy("unknown"))
	assert.Equal(t, "Full", GetLayoutStrategy(StyleFull).GetName())
	assert.Equal(t, "Minimal", GetLayoutStrategy(StyleMinimal).GetName())
}

func TestFullLayoutRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&FullLayoutStrategy{}).Render(&buf, testGrid(80)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Example (1990-2004)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "┌"))
	assert.Contains(t, lines[2], "1990 1995 2000")
	assert.Contains(t, lines[4], "│ Alice")
	assert.Contains(t, lines[4], "AAAAAABBBBB····")
	assert.Contains(t, lines[5], "Björk Guðmundsdóttir")
	assert.True(t, strings.HasPrefix(lines[6], "└"))
	assert.Equal(t, "A Bass  B Drums  C Vocals", lines[7])

	// every boxed line has the same display width
	width := runewidth.StringWidth(lines[1])
	for _, line := range lines[1:7] {
		assert.Equal(t, width, runewidth.StringWidth(line), line)
	}
}

func TestFullLayoutWrapsYears(t *testing.T) {
	grid := testGrid(40)
	grid.Names = []string{"Alice", "Bob"}

	var buf bytes.Buffer
	require.NoError(t, (&FullLayoutStrategy{}).Render(&buf, grid))

	// 6 name cells and 7 border cells leave 27 years per box
	assert.Equal(t, 1, strings.Count(buf.String(), "┌"))

	grid.Years = 30
	grid.Cells = [][]rune{
		[]rune(strings.Repeat("A", 30)),
		[]rune(strings.Repeat("·", 30)),
	}
	buf.Reset()
	require.NoError(t, (&FullLayoutStrategy{}).Render(&buf, grid))
	assert.Equal(t, 2, strings.Count(buf.String(), "┌"))
}

func TestMinimalLayoutRender(t *testing.T) {
	grid := testGrid(80)
	grid.Title = ""

	var buf bytes.Buffer
	require.NoError(t, (&MinimalLayoutStrategy{}).Render(&buf, grid))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.NotContains(t, buf.String(), "│")
	assert.True(t, strings.HasSuffix(lines[0], "1990 1995 2000"))
	assert.True(t, strings.HasPrefix(lines[1], "Alice "))
	assert.True(t, strings.HasSuffix(lines[1], "AAAAAABBBBB····"))
}

func TestBaseStrategyNameWidth(t *testing.T) {
	b := NewBaseStrategy()
	grid := &Grid{Names: []string{"Al"}, Width: 80}
	assert.Equal(t, len(nameHeader), b.NameWidth(grid))

	grid.Names = []string{strings.Repeat("x", 40)}
	assert.Equal(t, maxNameWidth, b.NameWidth(grid))

	grid.Width = 30
	assert.Equal(t, 10, b.NameWidth(grid))
}

func TestBaseStrategyWrapItems(t *testing.T) {
	b := NewBaseStrategy()
	lines := b.WrapItems([]string{"A Bass", "B Drums", "C Lead vocals"}, 16)
	assert.Equal(t, []string{"A Bass  B Drums", "C Lead vocals"}, lines)
	assert.Nil(t, b.WrapItems(nil, 10))
}

func TestSizer(t *testing.T) {
	s := GetSizer()
	assert.Equal(t, "ab   ", s.PadString("ab", 5, true))
	assert.Equal(t, "   ab", s.PadString("ab", 5, false))
	assert.Equal(t, "abcdef", s.PadString("abcdef", 3, true))
	assert.Equal(t, "ab…", s.FitString("abcdef", 3))
	assert.Equal(t, 120, s.GetMaxWidth(120))
	assert.Equal(t, MinWidth, s.GetMaxWidth(10))
	assert.GreaterOrEqual(t, s.GetMaxWidth(0), MinWidth)
}
