package layout

import (
	"io"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
)

// Layout styles
const (
	StyleFull    = constants.LayoutFull
	StyleMinimal = constants.LayoutMinimal
)

// LayoutStrategy renders a year grid in one visual style.
type LayoutStrategy interface {
	Render(w io.Writer, grid *Grid) error
	GetName() string
}

// GetLayoutStrategy returns the strategy for style, defaulting to the boxed
// full layout.
func GetLayoutStrategy(style string) LayoutStrategy {
	strategies := map[string]LayoutStrategy{
		StyleFull:    &FullLayoutStrategy{},
		StyleMinimal: &MinimalLayoutStrategy{},
	}

	if strategy, exists := strategies[style]; exists {
		return strategy
	}

	return &FullLayoutStrategy{}
}
