package model

import (
	"regexp"
	"strconv"
	"strings"
)

// activeYearsPattern matches one "start[-end]" entry of a band's years-active
// field, e.g. "1981-1990 (as Foo), 1995-present".
var activeYearsPattern = regexp.MustCompile(`(?i)(\d+)(?:\s*-\s*(\d+|present))?`)

// ParseActiveYears reads a band's years-active text. The span starts at the
// first entry's start year and ends at the last entry's end year. Missing
// pieces fall back to DefaultBandStartYear and currentYear, as does an
// ongoing ("present") or open last entry. Years outside [MinYear, MaxYear]
// count as missing.
func ParseActiveYears(text string, currentYear int) YearSpan {
	span := YearSpan{Start: DefaultBandStartYear, End: currentYear}

	matches := activeYearsPattern.FindAllStringSubmatch(strings.TrimSpace(text), -1)
	if len(matches) == 0 {
		return span
	}

	if year, ok := plausibleYear(matches[0][1]); ok {
		span.Start = year
	}
	if year, ok := plausibleYear(matches[len(matches)-1][2]); ok {
		span.End = year
	}
	if span.End < span.Start {
		span.End = span.Start
	}
	return span
}

func plausibleYear(text string) (int, bool) {
	year, err := strconv.Atoi(text)
	if err != nil || year < MinYear || year > MaxYear {
		return 0, false
	}
	return year, true
}
