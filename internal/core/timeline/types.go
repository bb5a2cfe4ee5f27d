package timeline

import (
	"errors"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
)

// Bit layout of a timeline cell. Bit 0 means "no role", bits 1..MaxRoles
// carry roles and the two highest bits of a signed 32-bit word tag
// uncertain interval bounds.
const (
	MaxRoles = 28

	IndeterminateStart = 1 << 29
	IndeterminateEnd   = 1 << 30

	TagMask  = IndeterminateStart | IndeterminateEnd
	RoleMask = (1<<(MaxRoles+1) - 1) &^ 1

	// MaxYears bounds the number of years a timeline may cover.
	MaxYears = model.MaxYear - model.MinYear + 1
)

var (
	// ErrRoleCapacityExceeded is returned when the members use more than
	// MaxRoles distinct roles.
	ErrRoleCapacityExceeded = errors.New("too many distinct roles")

	// ErrEmptyTimeline is returned when no concrete year is known at all.
	ErrEmptyTimeline = errors.New("timeline has no concrete years")

	// ErrTimelineTooLong is returned when the years to cover exceed MaxYears.
	ErrTimelineTooLong = errors.New("timeline covers too many years")
)

// TimelineRow is one member's activity. Years[i] holds the cell for
// StartYear+i of the owning timeline.
type TimelineRow struct {
	Name  string   `json:"name"`
	Years []int    `json:"yearBitmasks"`
	Roles []string `json:"roles"`
}

// Active reports whether any year of the row has a role.
func (r TimelineRow) Active() bool {
	for _, cell := range r.Years {
		if cell&RoleMask != 0 {
			return true
		}
	}
	return false
}

// Timeline is the per-year role grid of a band.
type Timeline struct {
	StartYear int           `json:"startYear"`
	EndYear   int           `json:"endYear"`
	Registry  *RoleRegistry `json:"roleRegistry"`
	Rows      []TimelineRow `json:"rows"`
}

// Span returns the covered years.
func (t *Timeline) Span() model.YearSpan {
	return model.YearSpan{Start: t.StartYear, End: t.EndYear}
}

// Len returns the number of years covered.
func (t *Timeline) Len() int {
	return t.Span().Len()
}

// Cell returns the cell of row at year, 0 outside the span.
func (t *Timeline) Cell(row, year int) int {
	if row < 0 || row >= len(t.Rows) || !t.Span().Contains(year) {
		return 0
	}
	return t.Rows[row].Years[year-t.StartYear]
}

// MembersWithRole lists the members whose row uses role, in row order.
func (t *Timeline) MembersWithRole(role string) []string {
	var names []string
	for _, row := range t.Rows {
		for _, r := range row.Roles {
			if r == role {
				names = append(names, row.Name)
				break
			}
		}
	}
	return names
}
