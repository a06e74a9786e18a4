package model

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryRaw(t *testing.T) {
	entry := LogEntry{
		Lines: []string{
			"2024-01-15 10:00:01 ERROR request failed",
			"\tat com.example.Handler.handle(Handler.java:42)",
		},
	}

	assert.Equal(t,
		"2024-01-15 10:00:01 ERROR request failed\n\tat com.example.Handler.handle(Handler.java:42)",
		entry.Raw())

	single := LogEntry{Lines: []string{"one line"}}
	assert.Equal(t, "one line", single.Raw())
}

func TestLogEntryHasTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 0, 1, 0, time.UTC)

	dated := LogEntry{Timestamp: &ts}
	assert.True(t, dated.HasTimestamp())

	undated := LogEntry{}
	assert.False(t, undated.HasTimestamp())
}

func TestTimelineJSONRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 0, 1, 0, time.UTC)
	timeline := Timeline{
		Identifier: "7f3a9c12",
		Entries: []LogEntry{
			{
				Lines:      []string{"2024-01-15 10:00:01 INFO traceId=7f3a9c12 accepted"},
				Timestamp:  &ts,
				Severity:   SeverityInfo,
				SourceFile: "/var/log/gateway.log",
				SourceLine: 7,
			},
			{
				Lines:      []string{"undated mention of 7f3a9c12"},
				Severity:   SeverityUnknown,
				SourceFile: "/var/log/worker.log",
				SourceLine: 3,
			},
		},
		Stats: TimelineStats{
			Total:       2,
			BySeverity:  map[Severity]int{SeverityInfo: 1, SeverityUnknown: 1},
			SourceFiles: []string{"/var/log/gateway.log", "/var/log/worker.log"},
		},
	}

	data, err := sonic.Marshal(timeline)
	require.NoError(t, err)

	var decoded Timeline
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, timeline, decoded)

	// Undated entries omit the timestamp field entirely.
	assert.NotContains(t, string(data), `"timestamp":null`)
}
