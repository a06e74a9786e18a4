package trace

import "strings"

// IdentifierMatcher recognizes occurrences of one correlation identifier in
// raw log lines regardless of the surrounding format. The recognized surface
// forms are the keyed ones (traceId=<id>, trace_id: <id>, requestId : <id>,
// request_id=<id>, keys case-insensitive), the bracketed form [<id>], and a
// bare substring occurrence. Every keyed and bracketed form contains the
// identifier verbatim, so for a yes/no decision the substring test subsumes
// the whole list; Match is implemented as exactly that single check. The
// identifier value itself is case-sensitive.
type IdentifierMatcher struct {
	identifier string
}

// NewIdentifierMatcher builds a matcher for the given identifier.
func NewIdentifierMatcher(identifier string) *IdentifierMatcher {
	return &IdentifierMatcher{identifier: identifier}
}

// Identifier returns the identifier this matcher was built for.
func (m *IdentifierMatcher) Identifier() string {
	return m.identifier
}

// Match reports whether the line contains the identifier in any recognized
// form. Absence of a match is a normal false result, never a failure.
func (m *IdentifierMatcher) Match(line string) bool {
	return m.identifier != "" && strings.Contains(line, m.identifier)
}
