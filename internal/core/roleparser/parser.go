// Package roleparser turns a free-text role history such as
// "Bass (1992-1995, 2003-present), drums (1995-2003)" into role intervals.
package roleparser

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
)

// ErrEmptyRoleString is returned for input that is empty or only whitespace.
var ErrEmptyRoleString = errors.New("empty role string")

// YearSource supplies the year that "present" resolves to.
type YearSource interface {
	CurrentYear() int
}

// YearSourceFunc adapts a function to YearSource.
type YearSourceFunc func() int

func (f YearSourceFunc) CurrentYear() int {
	return f()
}

// Option configures a Parser.
type Option func(*Parser)

// WithYearSource resolves "present" through src.
func WithYearSource(src YearSource) Option {
	return func(p *Parser) {
		if src != nil {
			p.years = src
		}
	}
}

// WithCurrentYear pins "present" to a fixed year.
func WithCurrentYear(year int) Option {
	return WithYearSource(YearSourceFunc(func() int { return year }))
}

// Parser parses role strings. It holds no per-parse state and is safe for
// concurrent use.
type Parser struct {
	years YearSource
}

// New creates a parser. Without options "present" is the local calendar year.
func New(opts ...Option) *Parser {
	p := &Parser{
		years: YearSourceFunc(func() int { return time.Now().Year() }),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CurrentYear returns the year "present" currently resolves to.
func (p *Parser) CurrentYear() int {
	return p.years.CurrentYear()
}

// Result is the outcome of parsing one role string.
type Result struct {
	Sections []model.RoleInterval

	// Dropped holds the text of a trailing group that never reached its
	// closing parenthesis. It is ignored, not reported as an error.
	Dropped string
}

// Parse reads raw and returns its sections in source order. span is used for
// groups written without years, e.g. "Vocals ()".
func (p *Parser) Parse(raw string, span model.YearSpan) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyRoleString
	}
	r := &run{currentYear: p.years.CurrentYear(), span: span}
	return r.parse([]rune(raw))
}

// run is the mutable state of a single parse.
type run struct {
	currentYear int
	span        model.YearSpan

	token tokenBuffer
	roles []string
	years []model.YearInterval
	// open is set while the last interval still accepts an end year.
	open bool

	sections   []model.RoleInterval
	groupStart int
}

func (r *run) parse(input []rune) (*Result, error) {
	s := stateStart
	for i, c := range input {
		last := s
		s = advance(last, c)

		// "Guitar (rhythm)": a parenthesis followed by a letter is part of
		// the role name.
		if last == stateRole && s == stateStartYear && i+1 < len(input) && unicode.IsLetter(input[i+1]) {
			s = stateRole
		}

		var err error
		switch {
		case last == stateRole && s != stateRole:
			r.commitRole()
		case last == stateStartYear && s == stateEndYear:
			err = r.commitStart()
		case s == stateNewYear && last != stateNewYear:
			err = r.commitYear(last)
		case s == stateStart && last != stateStart:
			if err = r.commitYear(last); err == nil {
				err = r.closeGroup(i + 1)
			}
		case s != last || !s.delimiting():
			r.token.add(c)
		}
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
	}

	res := &Result{Sections: r.sections}
	if r.groupStart < len(input) {
		res.Dropped = strings.TrimSpace(strings.TrimLeft(string(input[r.groupStart:]), " ,"))
	}
	return res, nil
}

func (r *run) commitRole() {
	if role := r.token.commit(nil); role != "" {
		r.roles = append(r.roles, role)
	}
}

// commitStart opens a new interval from the pending start token.
func (r *run) commitStart() error {
	token := r.token.commit(notYearRune)
	r.open = false
	if token == "" {
		return nil
	}
	y, err := model.NewYearInterval(token, r.currentYear)
	if err != nil {
		return err
	}
	r.years = append(r.years, y)
	r.open = true
	return nil
}

// commitYear stores the pending token according to the state that was left.
func (r *run) commitYear(last state) error {
	switch last {
	case stateStartYear:
		err := r.commitStart()
		r.open = false
		return err
	case stateEndYear:
		token := r.token.commit(notYearRune)
		if !r.open {
			if token == "" {
				return nil
			}
			return fmt.Errorf("%w: end year %q has no start year", model.ErrMalformedYearToken, token)
		}
		r.open = false
		return r.years[len(r.years)-1].SetEnd(token, r.currentYear)
	default:
		r.token.reset()
		return nil
	}
}

func (r *run) closeGroup(next int) error {
	section, err := model.NewRoleInterval(r.roles, r.years, r.span)
	if err != nil {
		return err
	}
	r.sections = append(r.sections, section)
	r.roles = nil
	r.years = nil
	r.open = false
	r.groupStart = next
	return nil
}
