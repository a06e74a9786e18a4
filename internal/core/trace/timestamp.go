package trace

import (
	"regexp"
	"strings"
	"time"
)

// timestampPattern pairs a recognizer regexp with the Go layouts used to
// parse what it matched. Patterns are tried in declaration order so that
// ambiguous lines resolve the same way on every run.
type timestampPattern struct {
	name    string
	re      *regexp.Regexp
	layouts []string
}

var timestampPatterns = []timestampPattern{
	{
		name:    "iso-t",
		re:      regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?(?:Z|[+-]\d{2}:\d{2})?`),
		layouts: []string{"2006-01-02T15:04:05.999999999Z07:00", "2006-01-02T15:04:05.999999999"},
	},
	{
		name:    "datetime",
		re:      regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{1,9})?`),
		layouts: []string{"2006-01-02 15:04:05.999999999"},
	},
	{
		name:    "slash-date",
		re:      regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`),
		layouts: []string{"02/01/2006 15:04:05"},
	},
}

// ParseTimestamp extracts a timestamp from the first physical line of an
// entry. Each known pattern is tried in fixed order and the first successful
// parse wins. The bracketed form [2006-01-02 15:04:05] is covered by the
// plain datetime pattern matching inside the brackets. A line without any
// recognized pattern yields ok=false; that is a normal outcome consumed by
// the merger's fallback ordering, not an error.
func ParseTimestamp(line string) (time.Time, bool) {
	for _, p := range timestampPatterns {
		match := p.re.FindString(line)
		if match == "" {
			continue
		}
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, match); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// HasTimestamp reports whether the line carries any recognized timestamp.
func HasTimestamp(line string) bool {
	_, ok := ParseTimestamp(line)
	return ok
}

// FormatTimestamp renders a parsed timestamp for display. Sub-second
// precision is kept only when present.
func FormatTimestamp(t time.Time) string {
	s := t.Format("2006-01-02 15:04:05.000")
	return strings.TrimSuffix(s, ".000")
}
