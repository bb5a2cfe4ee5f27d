package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseActiveYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected YearSpan
	}{
		{name: "ongoing", text: "1981-present", expected: YearSpan{Start: 1981, End: testYear}},
		{name: "closed", text: "1983-1996", expected: YearSpan{Start: 1983, End: 1996}},
		{name: "multiple_entries", text: "1983-1990 (as Foo), 1996-2010", expected: YearSpan{Start: 1983, End: 2010}},
		{name: "last_entry_ongoing", text: "1983-1990, 1996-Present", expected: YearSpan{Start: 1983, End: testYear}},
		{name: "spaced_hyphen", text: "1990 - 1999", expected: YearSpan{Start: 1990, End: 1999}},
		{name: "empty", text: "", expected: YearSpan{Start: DefaultBandStartYear, End: testYear}},
		{name: "no_years", text: "N/A", expected: YearSpan{Start: DefaultBandStartYear, End: testYear}},
		{name: "end_out_of_range", text: "1990-99999999999", expected: YearSpan{Start: 1990, End: testYear}},
		{name: "start_out_of_range", text: "12345-1999", expected: YearSpan{Start: DefaultBandStartYear, End: 1999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseActiveYears(tt.text, testYear))
		})
	}
}

func TestLineupSpan(t *testing.T) {
	lineup := &Lineup{Band: "Example", ActiveYears: "1981-present"}
	assert.Equal(t, YearSpan{Start: 1981, End: testYear}, lineup.Span(testYear))
}
