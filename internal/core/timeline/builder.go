package timeline

import (
	"fmt"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
)

// BuilderOption configures a TimelineBuilder.
type BuilderOption func(*TimelineBuilder)

// WithBandYears widens the timeline to the band's active years. Unknown
// interval bounds then resolve to the band's first and last year.
func WithBandYears(span model.YearSpan) BuilderOption {
	return func(tb *TimelineBuilder) {
		if span.Valid() {
			tb.bandYears = &span
		}
	}
}

// TimelineBuilder builds timelines from parsed members.
type TimelineBuilder struct {
	bandYears *model.YearSpan
}

// NewTimelineBuilder creates a new timeline builder
func NewTimelineBuilder(opts ...BuilderOption) *TimelineBuilder {
	tb := &TimelineBuilder{}
	for _, opt := range opts {
		opt(tb)
	}
	return tb
}

// Build registers every role and fills one row per member. Overlapping
// intervals within a row are not merged: the later interval overwrites.
func (tb *TimelineBuilder) Build(members []model.BandMember) (*Timeline, error) {
	registry, err := NewRoleRegistry(members)
	if err != nil {
		return nil, err
	}

	span, ok := tb.span(members)
	if !ok {
		return nil, ErrEmptyTimeline
	}
	if span.Len() > MaxYears {
		return nil, fmt.Errorf("%w: %s", ErrTimelineTooLong, span)
	}

	t := &Timeline{
		StartYear: span.Start,
		EndYear:   span.End,
		Registry:  registry,
		Rows:      make([]TimelineRow, 0, len(members)),
	}
	for _, member := range members {
		t.Rows = append(t.Rows, buildRow(member, registry, span))
	}
	return t, nil
}

// span covers every concrete year mentioned by any member and the band
// years, if set.
func (tb *TimelineBuilder) span(members []model.BandMember) (model.YearSpan, bool) {
	span := model.YearSpan{Start: model.UnknownYear, End: model.UnknownYear}
	include := func(year int) {
		if year == model.UnknownYear {
			return
		}
		if span.Start == model.UnknownYear || year < span.Start {
			span.Start = year
		}
		if span.End == model.UnknownYear || year > span.End {
			span.End = year
		}
	}

	if tb.bandYears != nil {
		include(tb.bandYears.Start)
		include(tb.bandYears.End)
	}
	for _, member := range members {
		for _, section := range member.Sections {
			for _, y := range section.Years {
				include(y.Start)
				include(y.End)
			}
		}
	}
	return span, span.Valid()
}

func buildRow(member model.BandMember, registry *RoleRegistry, span model.YearSpan) TimelineRow {
	row := TimelineRow{
		Name:  member.Name,
		Years: make([]int, span.Len()),
		Roles: member.Roles(),
	}
	for _, section := range member.Sections {
		bits := registry.Mask(section.Roles)
		for _, y := range section.Years {
			tags := 0
			if y.UnknownStart() {
				tags |= IndeterminateStart
			}
			if y.UnknownEnd() {
				tags |= IndeterminateEnd
			}
			start, end := y.Resolve(span)
			for year := start; year <= end; year++ {
				row.Years[year-span.Start] = bits | tags
			}
		}
	}
	return row
}
