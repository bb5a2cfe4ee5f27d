package model

// MemberRecord is one raw lineup row: a member name and the free-text role
// history exactly as it appeared on the band page.
type MemberRecord struct {
	Name  string `json:"name" yaml:"name"`
	Roles string `json:"roles" yaml:"roles"`
}

// Lineup is the raw input for one band, as handed over by the page extraction
// step or read from a lineup file.
type Lineup struct {
	Band        string         `json:"band" yaml:"band"`
	ActiveYears string         `json:"activeYears,omitempty" yaml:"active_years,omitempty"`
	Members     []MemberRecord `json:"members" yaml:"members"`

	// Source is the file the lineup was read from, if any.
	Source string `json:"-" yaml:"-"`
}

// Span resolves the band's active years, falling back to
// DefaultBandStartYear..currentYear when the text is missing or unreadable.
func (l *Lineup) Span(currentYear int) YearSpan {
	return ParseActiveYears(l.ActiveYears, currentYear)
}

// SkippedMember records a member whose role string could not be parsed.
type SkippedMember struct {
	Name   string `json:"name"`
	Roles  string `json:"roles"`
	Reason string `json:"reason"`
}

// DroppedGroup records trailing role text that never reached a closing
// parenthesis and was ignored.
type DroppedGroup struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ParsedLineup is a lineup whose role strings have been parsed, in input
// order. Members that failed to parse are listed in Skipped.
type ParsedLineup struct {
	Band        string          `json:"band"`
	Source      string          `json:"source,omitempty"`
	Span        YearSpan        `json:"span"`
	CurrentYear int             `json:"currentYear"`
	Members     []BandMember    `json:"members"`
	Skipped     []SkippedMember `json:"skipped,omitempty"`
	Dropped     []DroppedGroup  `json:"dropped,omitempty"`
}
