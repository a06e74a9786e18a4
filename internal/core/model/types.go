package model

import (
	"strings"
	"time"
)

// Severity is the classified level of a log entry.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarn    Severity = "WARN"
	SeverityInfo    Severity = "INFO"
	SeverityUnknown Severity = "UNKNOWN"
)

// LogEntry is one logical log record. A record may span multiple physical
// lines: stack-trace and wrapped-message continuations are appended to the
// entry that started them. Entries are treated as immutable once built.
type LogEntry struct {
	// Lines holds the physical lines in original order. The first line is
	// the one that matched the correlation identifier; it is never empty.
	Lines []string `json:"lines"`
	// Timestamp is nil when no recognized pattern matched the first line.
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	Severity   Severity   `json:"severity"`
	SourceFile string     `json:"sourceFile"`
	// SourceLine is the 1-based line number of the entry's first physical
	// line within SourceFile. Stable tie-break for same-instant entries.
	SourceLine int `json:"sourceLine"`
}

// Raw returns the entry's physical lines joined with newlines.
func (e *LogEntry) Raw() string {
	return strings.Join(e.Lines, "\n")
}

// HasTimestamp reports whether a timestamp was parsed from the entry.
func (e *LogEntry) HasTimestamp() bool {
	return e.Timestamp != nil
}

// ScanResult is the outcome of scanning one file for one identifier.
// Entries are in original file order.
type ScanResult struct {
	File    string     `json:"file"`
	Entries []LogEntry `json:"entries"`
	Found   bool       `json:"found"`
}

// TimelineStats summarizes a merged timeline in a single pass.
type TimelineStats struct {
	Total       int              `json:"total"`
	BySeverity  map[Severity]int `json:"bySeverity"`
	SourceFiles []string         `json:"sourceFiles"`
}

// Timeline is the globally ordered, cross-file sequence of entries for one
// correlation identifier. It is an immutable snapshot: consumers read it,
// nothing mutates it after construction.
type Timeline struct {
	Identifier string        `json:"identifier"`
	Entries    []LogEntry    `json:"entries"`
	Stats      TimelineStats `json:"stats"`
}

// ExceptionGroup aggregates full-scan ERROR anchors sharing one exception
// type. Exactly one representative stack trace is kept per group.
type ExceptionGroup struct {
	Type            string   `json:"type"`
	Count           int      `json:"count"`
	FirstStackTrace []string `json:"firstStackTrace,omitempty"`
	SampleMessages  []string `json:"sampleMessages,omitempty"`
}

// ScanError records a per-file failure that did not abort the scan.
type ScanError struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// FileEvent is a filesystem change notification from the watcher.
type FileEvent struct {
	Path      string
	Operation string
}
