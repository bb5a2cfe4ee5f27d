package layout

import (
	"strconv"
)

// Grid is a renderer-agnostic year grid: one row of glyphs per member, one
// glyph per year starting at StartYear.
type Grid struct {
	Title     string
	StartYear int
	Years     int
	Names     []string
	Cells     [][]rune
	Legend    []string

	// Width is the total number of terminal cells available.
	Width int
	// LabelInterval places a year label on every year divisible by it.
	LabelInterval int
}

// Chunk is a half-open range [From, To) of year offsets rendered together.
type Chunk struct {
	From int
	To   int
}

// Chunks splits count years into consecutive chunks of at most size years.
func Chunks(count, size int) []Chunk {
	if count <= 0 {
		return nil
	}
	if size <= 0 {
		size = count
	}
	chunks := make([]Chunk, 0, (count+size-1)/size)
	for from := 0; from < count; from += size {
		chunks = append(chunks, Chunk{From: from, To: min(from+size, count)})
	}
	return chunks
}

// YearAxis renders count cells starting at start with a label at every
// year divisible by interval. Labels that would run past the end or into
// the previous label are skipped.
func YearAxis(start, count, interval int) string {
	if count <= 0 {
		return ""
	}
	if interval <= 0 {
		interval = 1
	}

	axis := make([]byte, count)
	for i := range axis {
		axis[i] = ' '
	}

	next := 0
	for i := 0; i < count; i++ {
		year := start + i
		if i < next || year%interval != 0 {
			continue
		}
		label := strconv.Itoa(year)
		if i+len(label) > count {
			break
		}
		copy(axis[i:], label)
		next = i + len(label) + 1
	}
	return string(axis)
}
