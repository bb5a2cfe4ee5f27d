package model

import "math"

// Year tokens with special meaning inside a role string
const (
	UnknownToken = "?"
	PresentToken = "present"
)

// UnknownYear marks a bound written as "?" in the source text. It sorts before
// every real year and lies outside [MinYear, MaxYear], so no integer token
// can produce it.
const UnknownYear = math.MinInt32

// Range of years accepted from year tokens and band years.
const (
	MinYear = 0
	MaxYear = 9999
)

// DefaultBandStartYear is used when a band's active years cannot be read.
const DefaultBandStartYear = 1970
