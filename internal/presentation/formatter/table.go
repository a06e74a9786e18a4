package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/core/trace"
	"github.com/tracewell/tracewell/internal/util"
)

// TableFormatter renders a severity-colored, width-aware timeline table.
type TableFormatter struct {
	color bool
	width int
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		color: util.IsTerminal(),
		width: util.TerminalWidth(),
	}
}

func (f *TableFormatter) FormatTrace(report *TraceReport) error {
	tl := report.Timeline

	fmt.Printf("Trace %s: %d entries across %d files (%d scanned)\n",
		tl.Identifier, tl.Stats.Total, len(tl.Stats.SourceFiles), report.FilesScanned)

	if tl.Stats.Total == 0 {
		fmt.Println("No log entries matched the identifier.")
		f.printErrors(report.Errors)
		return nil
	}

	limit := report.DisplayLimit
	if limit <= 0 || limit > len(tl.Entries) {
		limit = len(tl.Entries)
	}

	sourceWidth := 0
	for i := 0; i < limit; i++ {
		w := util.DisplayWidth(sourceLabel(&tl.Entries[i]))
		if w > sourceWidth {
			sourceWidth = w
		}
	}

	const timeWidth = 23 // 2006-01-02 15:04:05.000
	messageWidth := f.width - timeWidth - sourceWidth - 14
	if messageWidth < 20 {
		messageWidth = 20
	}

	fmt.Println()
	for i := 0; i < limit; i++ {
		e := &tl.Entries[i]

		ts := "-"
		if e.HasTimestamp() {
			ts = trace.FormatTimestamp(*e.Timestamp)
		}
		severity := util.Colorize(util.PadRight(string(e.Severity), 7),
			util.SeverityColor(string(e.Severity)), f.color)

		fmt.Printf("%s  %s %s  %s\n",
			util.PadRight(ts, timeWidth),
			severity,
			util.PadRight(sourceLabel(e), sourceWidth),
			util.TruncateString(e.Lines[0], messageWidth))

		// Continuation lines are shown indented under their entry.
		for _, line := range e.Lines[1:] {
			fmt.Printf("%s  %s\n",
				strings.Repeat(" ", timeWidth),
				util.TruncateString(strings.TrimRight(line, " \t"), messageWidth+sourceWidth))
		}
	}

	if limit < len(tl.Entries) {
		fmt.Printf("\n... %d more entries (use --limit to show more)\n", len(tl.Entries)-limit)
	}
	if tl.Stats.BySeverity[model.SeverityUnknown] > 0 || hasUndated(tl) {
		fmt.Printf("\nNote: %s\n", fallbackNote)
	}

	f.printSeverityCounts(tl)
	f.printErrors(report.Errors)
	printAnalysis(report.Analysis)
	return nil
}

func (f *TableFormatter) FormatExceptions(report *ExceptionReport) error {
	fmt.Printf("Scanned %s: %d lines, %d distinct exception types\n",
		report.Source, report.TotalLines, len(report.Groups))

	if len(report.Groups) == 0 {
		fmt.Println("No exceptions found.")
		f.printErrors(report.Errors)
		return nil
	}

	typeWidth := len("Exception Type")
	for _, g := range report.Groups {
		if w := util.DisplayWidth(g.Type); w > typeWidth {
			typeWidth = w
		}
	}

	fmt.Println()
	fmt.Printf("%s  %s\n", util.PadRight("Exception Type", typeWidth), "Count")
	fmt.Printf("%s  %s\n", strings.Repeat("-", typeWidth), "-----")
	for _, g := range report.Groups {
		label := util.Colorize(util.PadRight(g.Type, typeWidth), util.ColorRed, f.color)
		fmt.Printf("%s  %d\n", label, g.Count)
	}

	top := report.Groups[0]
	if len(top.FirstStackTrace) > 0 {
		fmt.Printf("\nRepresentative stack trace (%s):\n", top.Type)
		for _, frame := range top.FirstStackTrace {
			fmt.Printf("    %s\n", util.TruncateString(frame, f.width-4))
		}
	}

	f.printErrors(report.Errors)
	printAnalysis(report.Analysis)
	return nil
}

func (f *TableFormatter) printSeverityCounts(tl *model.Timeline) {
	fmt.Println()
	for _, sev := range []model.Severity{model.SeverityError, model.SeverityWarn, model.SeverityInfo, model.SeverityUnknown} {
		count := tl.Stats.BySeverity[sev]
		if count == 0 {
			continue
		}
		label := util.Colorize(string(sev), util.SeverityColor(string(sev)), f.color)
		fmt.Printf("%s: %d  ", label, count)
	}
	fmt.Println()
}

func (f *TableFormatter) printErrors(errors []model.ScanError) {
	if len(errors) == 0 {
		return
	}
	fmt.Printf("\n%d files could not be read (coverage is partial):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("  %s: %s\n", e.File, e.Err)
	}
}

func printAnalysis(analysis string) {
	if analysis == "" {
		return
	}
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Diagnostic analysis")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(analysis)
}

func sourceLabel(e *model.LogEntry) string {
	return fmt.Sprintf("%s:%d", filepath.Base(e.SourceFile), e.SourceLine)
}

func hasUndated(tl *model.Timeline) bool {
	for i := range tl.Entries {
		if !tl.Entries[i].HasTimestamp() {
			return true
		}
	}
	return false
}
