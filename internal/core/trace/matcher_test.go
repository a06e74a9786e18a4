package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherKeyValueForms(t *testing.T) {
	m := NewIdentifierMatcher("abc-123")

	lines := []string{
		"2024-01-15 10:00:01 INFO traceId=abc-123 handling request",
		"2024-01-15 10:00:01 INFO trace_id: abc-123 handling request",
		"2024-01-15 10:00:01 INFO TraceId : abc-123 handling request",
		"2024-01-15 10:00:01 INFO requestId=abc-123 handling request",
		"2024-01-15 10:00:01 INFO request_id:abc-123 handling request",
		"2024-01-15 10:00:01 INFO REQUEST_ID = abc-123 handling request",
	}
	for _, line := range lines {
		assert.True(t, m.Match(line), "should match: %s", line)
	}
}

func TestMatcherBracketedForm(t *testing.T) {
	m := NewIdentifierMatcher("abc-123")

	assert.True(t, m.Match("2024-01-15 10:00:01 [abc-123] INFO handling request"))
}

func TestMatcherBareSubstringFallback(t *testing.T) {
	m := NewIdentifierMatcher("abc-123")

	assert.True(t, m.Match("correlation token abc-123 seen in payload"))
	assert.False(t, m.Match("correlation token abc-999 seen in payload"))
	assert.False(t, m.Match(""))
}

func TestMatcherIdentifierValueIsCaseSensitive(t *testing.T) {
	m := NewIdentifierMatcher("ABC-123")

	assert.True(t, m.Match("traceId=ABC-123"))
	assert.False(t, m.Match("traceId=abc-123"), "identifier value must match case exactly")
}

func TestMatcherPunctuatedIdentifier(t *testing.T) {
	m := NewIdentifierMatcher("req.(42)")

	assert.True(t, m.Match("requestId=req.(42) done"))
	assert.False(t, m.Match("requestId=reqX(42) done"), "punctuation matches literally")
}

func TestMatcherEmptyIdentifierNeverMatches(t *testing.T) {
	m := NewIdentifierMatcher("")

	assert.False(t, m.Match("2024-01-15 10:00:01 INFO anything"))
	assert.False(t, m.Match(""))
}

func TestMatcherIdentifier(t *testing.T) {
	m := NewIdentifierMatcher("abc")
	assert.Equal(t, "abc", m.Identifier())
}
