package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/heroes/internal/hero"
)

// Normalize prepares text for case-insensitive comparison: surrounding
// whitespace is trimmed, the result is NFC-normalized and then case-folded.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A Caser carries transform state and is not safe for concurrent use,
	// so each call gets its own.
	return cases.Fold().String(norm.NFC.String(s))
}

// Matcher is the filter predicate for one search term.
type Matcher struct {
	needle     string
	matchBrand bool
}

// NewMatcher builds a matcher for term. With matchBrand, a record also
// matches when its Brand contains the term.
func NewMatcher(term string, matchBrand bool) Matcher {
	return Matcher{needle: Normalize(term), matchBrand: matchBrand}
}

// MatchesAll reports whether the term is empty, so every record matches.
func (m Matcher) MatchesAll() bool {
	return m.needle == ""
}

// Match reports whether r passes the filter.
func (m Matcher) Match(r hero.Record) bool {
	if m.needle == "" {
		return true
	}
	if strings.Contains(Normalize(r.Name), m.needle) {
		return true
	}
	return m.matchBrand && strings.Contains(Normalize(r.Brand), m.needle)
}

// Filter returns the records that pass m, in their original order.
// The result is always a new slice.
func Filter(records []hero.Record, m Matcher) []hero.Record {
	out := make([]hero.Record, 0, len(records))
	for _, r := range records {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
