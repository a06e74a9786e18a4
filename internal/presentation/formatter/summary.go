package formatter

import (
	"fmt"
	"strings"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/core/trace"
)

// SummaryFormatter prints an aggregate report without the per-entry table.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) FormatTrace(report *TraceReport) error {
	tl := report.Timeline

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Trace Correlation Summary")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Identifier: %s\n", tl.Identifier)
	fmt.Printf("Files scanned: %d\n", report.FilesScanned)
	fmt.Printf("Files with matches: %d\n", len(tl.Stats.SourceFiles))
	fmt.Printf("Total entries: %d\n", tl.Stats.Total)
	fmt.Println()

	if tl.Stats.Total == 0 {
		fmt.Println("Identifier not found in any scanned file.")
	} else {
		fmt.Println("Severity breakdown:")
		for _, sev := range []model.Severity{model.SeverityError, model.SeverityWarn, model.SeverityInfo, model.SeverityUnknown} {
			if count := tl.Stats.BySeverity[sev]; count > 0 {
				fmt.Printf("  %-8s %d\n", sev, count)
			}
		}
		fmt.Println()

		// Render the parsed instants as-is, matching the per-entry table.
		if first, last, ok := timeSpan(tl); ok {
			fmt.Printf("Time span: %s to %s\n",
				trace.FormatTimestamp(*first.Timestamp),
				trace.FormatTimestamp(*last.Timestamp))
		}

		fmt.Println("Source files:")
		for _, file := range tl.Stats.SourceFiles {
			fmt.Printf("  %s\n", file)
		}

		if hasUndated(tl) {
			fmt.Printf("\nNote: %s\n", fallbackNote)
		}
	}

	if len(report.Errors) > 0 {
		fmt.Printf("\nUnreadable files (%d, coverage is partial):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  %s: %s\n", e.File, e.Err)
		}
	}

	printAnalysis(report.Analysis)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	return nil
}

func (f *SummaryFormatter) FormatExceptions(report *ExceptionReport) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Exception Scan Summary")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Source: %s\n", report.Source)
	fmt.Printf("Lines read: %d\n", report.TotalLines)
	fmt.Printf("Distinct exception types: %d\n", len(report.Groups))
	fmt.Println()

	total := 0
	for _, g := range report.Groups {
		total += g.Count
		fmt.Printf("  %-40s %d\n", g.Type, g.Count)
	}
	if total > 0 {
		fmt.Printf("\nTotal exception occurrences: %d\n", total)
	}

	if len(report.Errors) > 0 {
		fmt.Printf("\nUnreadable files (%d, coverage is partial):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  %s: %s\n", e.File, e.Err)
		}
	}

	printAnalysis(report.Analysis)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	return nil
}

// timeSpan returns the first and last timestamped entries, if any exist.
func timeSpan(tl *model.Timeline) (first, last *model.LogEntry, ok bool) {
	for i := range tl.Entries {
		if tl.Entries[i].HasTimestamp() {
			if first == nil {
				first = &tl.Entries[i]
			}
			last = &tl.Entries[i]
		}
	}
	return first, last, first != nil
}
