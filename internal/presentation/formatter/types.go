package formatter

import (
	"fmt"

	"github.com/tracewell/tracewell/internal/core/model"
)

// TraceReport is everything a formatter needs to render one trace scan.
// The timeline is complete; DisplayLimit bounds only what human-facing
// formatters print verbatim.
type TraceReport struct {
	Timeline     *model.Timeline   `json:"timeline"`
	FilesScanned int               `json:"filesScanned"`
	Errors       []model.ScanError `json:"errors,omitempty"`
	DisplayLimit int               `json:"-"`
	Analysis     string            `json:"analysis,omitempty"`
}

// ExceptionReport is the full-scan counterpart.
type ExceptionReport struct {
	Source       string                 `json:"source"`
	FilesScanned int                    `json:"filesScanned"`
	TotalLines   int                    `json:"totalLines"`
	Groups       []model.ExceptionGroup `json:"groups"`
	Errors       []model.ScanError      `json:"errors,omitempty"`
	Analysis     string                 `json:"analysis,omitempty"`
}

// Formatter renders reports to stdout.
type Formatter interface {
	FormatTrace(report *TraceReport) error
	FormatExceptions(report *ExceptionReport) error
}

// New returns the formatter for the given output format name.
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "table", "":
		return NewTableFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}

// fallbackNote is printed whenever undated entries are shown; the placement
// policy is part of the contract, not an implementation detail.
const fallbackNote = "Entries without a parseable timestamp are listed after all timestamped entries, ordered by (file, line)."
