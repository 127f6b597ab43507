// Package normalize canonicalizes expressions so that free-text answers can
// be compared despite surface variation, and so that typing hints stay
// consistent with the comparison.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical form of text: lower-cased, trimmed, with
// internal whitespace runs collapsed to a single space and at most one
// trailing '.', ',', ';' or ':' removed. Hyphens and apostrophes are kept so
// contractions and hyphenated expressions survive intact. Idempotent.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), " ")
	if n := len(s); n > 0 {
		switch s[n-1] {
		case '.', ',', ';', ':':
			s = strings.TrimSpace(s[:n-1])
		}
	}
	return s
}

// FirstCharHint returns the upper-cased first character of an already
// normalized expression, or "" for an empty one.
func FirstCharHint(normalized string) string {
	for _, r := range normalized {
		return strings.ToUpper(string(r))
	}
	return ""
}

// LengthHint returns the number of non-whitespace characters in an already
// normalized expression.
func LengthHint(normalized string) int {
	n := 0
	for _, r := range normalized {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Equal reports whether two raw strings normalize to the same expression
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
