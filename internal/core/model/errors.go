package model

import "errors"

var (
	// ErrMalformedYearToken is returned when a committed year token is neither
	// "?", "present", empty (for an end year) nor a base-10 integer between
	// MinYear and MaxYear.
	ErrMalformedYearToken = errors.New("malformed year token")

	// ErrNoRoles is returned when a role interval is built without any role name.
	ErrNoRoles = errors.New("role interval has no roles")

	// ErrInvalidSpan is returned when a fallback span is needed but not usable.
	ErrInvalidSpan = errors.New("invalid year span")
)
