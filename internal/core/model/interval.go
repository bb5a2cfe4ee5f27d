package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// ParseYear interprets a committed year token. "?" yields UnknownYear and
// "present" (any case) yields currentYear. Anything else must be a base-10
// integer in [MinYear, MaxYear] once surrounding whitespace is removed.
func ParseYear(token string, currentYear int) (int, error) {
	token = strings.TrimSpace(token)
	switch {
	case token == UnknownToken:
		return UnknownYear, nil
	case strings.EqualFold(token, PresentToken):
		return currentYear, nil
	}

	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedYearToken, token)
	}
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: %q out of range %d-%d", ErrMalformedYearToken, token, MinYear, MaxYear)
	}
	return year, nil
}

// YearInterval is one start/end pair of a role history. Either bound may be
// UnknownYear. "present" never survives construction: it is resolved to the
// current year when the token is committed.
type YearInterval struct {
	Start int
	End   int
}

// NewYearInterval opens an interval from its start token. Until SetEnd is
// called the interval covers exactly its start year.
func NewYearInterval(startToken string, currentYear int) (YearInterval, error) {
	start, err := ParseYear(startToken, currentYear)
	if err != nil {
		return YearInterval{}, err
	}
	return YearInterval{Start: start, End: start}, nil
}

// SetEnd completes an interval opened by NewYearInterval. An empty token keeps
// the single-year interval.
func (y *YearInterval) SetEnd(token string, currentYear int) error {
	if strings.TrimSpace(token) == "" {
		y.End = y.Start
		return nil
	}
	end, err := ParseYear(token, currentYear)
	if err != nil {
		return err
	}
	y.End = end
	return nil
}

// UnknownStart reports whether the start bound was "?".
func (y YearInterval) UnknownStart() bool {
	return y.Start == UnknownYear
}

// UnknownEnd reports whether the end bound was "?".
func (y YearInterval) UnknownEnd() bool {
	return y.End == UnknownYear
}

// Resolve substitutes the span bounds for unknown ones.
func (y YearInterval) Resolve(span YearSpan) (start, end int) {
	start, end = y.Start, y.End
	if y.UnknownStart() {
		start = span.Start
	}
	if y.UnknownEnd() {
		end = span.End
	}
	return start, end
}

// String renders the interval as "start-end" with "?" for unknown bounds.
func (y YearInterval) String() string {
	return formatYear(y.Start) + "-" + formatYear(y.End)
}

func formatYear(year int) string {
	if year == UnknownYear {
		return UnknownToken
	}
	return strconv.Itoa(year)
}

type yearIntervalJSON struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// MarshalJSON encodes unknown bounds as null.
func (y YearInterval) MarshalJSON() ([]byte, error) {
	var out yearIntervalJSON
	if !y.UnknownStart() {
		start := y.Start
		out.Start = &start
	}
	if !y.UnknownEnd() {
		end := y.End
		out.End = &end
	}
	return sonic.Marshal(out)
}

// UnmarshalJSON decodes null bounds as UnknownYear.
func (y *YearInterval) UnmarshalJSON(data []byte) error {
	var in yearIntervalJSON
	if err := sonic.Unmarshal(data, &in); err != nil {
		return err
	}
	y.Start, y.End = UnknownYear, UnknownYear
	if in.Start != nil {
		y.Start = *in.Start
	}
	if in.End != nil {
		y.End = *in.End
	}
	return nil
}

// YearSpan is an inclusive range of concrete years, such as a band's active
// years or the extent of a timeline.
type YearSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether both bounds are concrete and ordered.
func (s YearSpan) Valid() bool {
	return s.Start != UnknownYear && s.End != UnknownYear && s.Start <= s.End
}

// Len returns the number of years in the span, 0 for an invalid span.
func (s YearSpan) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Start + 1
}

// Contains reports whether year lies inside the span.
func (s YearSpan) Contains(year int) bool {
	return s.Valid() && year >= s.Start && year <= s.End
}

// Interval converts the span into a concrete YearInterval.
func (s YearSpan) Interval() YearInterval {
	return YearInterval{Start: s.Start, End: s.End}
}

func (s YearSpan) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// RoleInterval is a set of roles held together over one or more year
// intervals, e.g. "Bass, vocals (1992-1995, 2003-present)".
type RoleInterval struct {
	Roles []string       `json:"roles"`
	Years []YearInterval `json:"years"`
}

// NewRoleInterval bundles roles with their intervals. A group written without
// any years gets the fallback span as its only interval.
func NewRoleInterval(roles []string, years []YearInterval, fallback YearSpan) (RoleInterval, error) {
	if len(roles) == 0 {
		return RoleInterval{}, ErrNoRoles
	}

	ri := RoleInterval{
		Roles: append([]string(nil), roles...),
		Years: append([]YearInterval(nil), years...),
	}
	if len(ri.Years) == 0 {
		if !fallback.Valid() {
			return RoleInterval{}, fmt.Errorf("%w: %v", ErrInvalidSpan, fallback)
		}
		ri.Years = []YearInterval{fallback.Interval()}
	}
	return ri, nil
}

// String renders the canonical form "role1, role2 (start-end, start-end)".
// Parsing the result yields the same roles and intervals.
func (r RoleInterval) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Roles, ", "))
	b.WriteString(" (")
	for i, y := range r.Years {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(y.String())
	}
	b.WriteString(")")
	return b.String()
}
