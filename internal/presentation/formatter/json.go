package formatter

import (
	"encoding/json"
	"os"
)

// JSONFormatter emits the complete report, never the bounded display view;
// programmatic consumers get every entry.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatTrace(report *TraceReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *JSONFormatter) FormatExceptions(report *ExceptionReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
