package library

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// matcher holds a query in raw and lower-cased form.
type matcher struct {
	caser cases.Caser
	raw   string
	lower string
}

// newMatcher returns a matcher for one search. Casers must not be shared
// between goroutines.
func newMatcher(query string) *matcher {
	c := cases.Lower(language.Und)
	return &matcher{caser: c, raw: query, lower: c.String(query)}
}

// fold matches s against the query ignoring case.
func (m *matcher) fold(s string) bool {
	return strings.Contains(m.caser.String(s), m.lower)
}

// exact matches s against the query as written.
func (m *matcher) exact(s string) bool {
	return strings.Contains(s, m.raw)
}
