package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/core/trace"
)

const separator = "================================================================================"

// RenderTimeline prepares the full timeline as the collaborator's input.
// The collaborator always receives every entry, never the bounded display
// prefix, and the undated-entries-last ordering policy is stated explicitly
// so the narrative cannot misread their placement.
func RenderTimeline(tl *model.Timeline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Correlation identifier: %s\n", tl.Identifier)
	fmt.Fprintf(&b, "Total entries: %d\n", tl.Stats.Total)
	fmt.Fprintf(&b, "ERROR: %d, WARN: %d, INFO: %d, UNKNOWN: %d\n",
		tl.Stats.BySeverity[model.SeverityError],
		tl.Stats.BySeverity[model.SeverityWarn],
		tl.Stats.BySeverity[model.SeverityInfo],
		tl.Stats.BySeverity[model.SeverityUnknown])
	if len(tl.Stats.SourceFiles) > 0 {
		names := make([]string, len(tl.Stats.SourceFiles))
		for i, f := range tl.Stats.SourceFiles {
			names[i] = filepath.Base(f)
		}
		fmt.Fprintf(&b, "Source files (%d): %s\n", len(names), strings.Join(names, ", "))
	}
	b.WriteString("Ordering: chronological; entries without a parseable timestamp are placed after all timestamped entries, ordered by (file, line).\n")

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Complete timeline:\n")
	b.WriteString(separator + "\n")

	for i := range tl.Entries {
		e := &tl.Entries[i]
		fmt.Fprintf(&b, "\n[entry #%d] %s\n", i+1, e.Severity)
		if e.HasTimestamp() {
			fmt.Fprintf(&b, "Time: %s\n", trace.FormatTimestamp(*e.Timestamp))
		} else {
			b.WriteString("Time: unknown (fallback ordering)\n")
		}
		fmt.Fprintf(&b, "Source: %s:%d\n", filepath.Base(e.SourceFile), e.SourceLine)
		for _, line := range e.Lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Analyze the complete request path: execution flow across services, where and why the failure occurred, upstream/downstream relationships, root cause and remediation.\n")

	return b.String()
}

// RenderExceptions prepares full-scan exception groups as collaborator input.
func RenderExceptions(groups []model.ExceptionGroup, source string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Distinct exception types: %d\n", len(groups))

	for i, g := range groups {
		b.WriteString("\n" + separator + "\n")
		fmt.Fprintf(&b, "Exception #%d: %s (%d occurrences)\n", i+1, g.Type, g.Count)
		b.WriteString(separator + "\n")
		if len(g.SampleMessages) > 0 {
			b.WriteString("Sample messages:\n")
			for _, msg := range g.SampleMessages {
				fmt.Fprintf(&b, "  %s\n", msg)
			}
		}
		if len(g.FirstStackTrace) > 0 {
			b.WriteString("Representative stack trace:\n")
			for _, frame := range g.FirstStackTrace {
				fmt.Fprintf(&b, "  %s\n", frame)
			}
		}
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Analyze these exceptions: likely root causes, severity ranking, and concrete fixes.\n")

	return b.String()
}
