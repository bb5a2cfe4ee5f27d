package roleparser

import (
	"strings"
	"unicode"
)

// tokenBuffer accumulates the characters of the token being read.
type tokenBuffer struct {
	b strings.Builder
}

func (t *tokenBuffer) add(r rune) {
	t.b.WriteRune(r)
}

func (t *tokenBuffer) reset() {
	t.b.Reset()
}

func (t *tokenBuffer) String() string {
	return t.b.String()
}

// commit returns the token with trailing runes matching trim removed and
// surrounding whitespace stripped, then empties the buffer.
func (t *tokenBuffer) commit(trim func(rune) bool) string {
	s := t.b.String()
	t.reset()
	if trim != nil {
		s = strings.TrimRightFunc(s, trim)
	}
	return strings.TrimSpace(s)
}

// notYearRune matches characters that may not end a year token.
func notYearRune(r rune) bool {
	return !(r == '?' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
