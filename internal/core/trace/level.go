package trace

import (
	"strings"

	"github.com/tracewell/tracewell/internal/core/model"
)

var severityKeywords = []struct {
	keyword  string
	severity model.Severity
}{
	{"ERROR", model.SeverityError},
	{"WARN", model.SeverityWarn}, // also covers WARNING
	{"INFO", model.SeverityInfo},
}

// ClassifySeverity derives a severity from the first physical line of an
// entry. The keyword appearing earliest in the line wins, so a message such
// as "INFO retrying after ERROR" classifies as INFO. Lines without any level
// keyword classify as UNKNOWN.
func ClassifySeverity(line string) model.Severity {
	best := model.SeverityUnknown
	bestIdx := -1
	for _, k := range severityKeywords {
		idx := strings.Index(line, k.keyword)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best = k.severity
			bestIdx = idx
		}
	}
	return best
}

// HasLeadingSeverityMarker reports whether the line begins with a level
// keyword. Used by the source scanner to decide entry boundaries: only a
// marker at the start of the line opens a new record, so a level token
// embedded in a stack frame (at com.example.ERRORCode.check) never closes
// the entry the frame belongs to. Indented lines are always continuations.
func HasLeadingSeverityMarker(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return false
	}
	for _, k := range severityKeywords {
		if strings.HasPrefix(line, k.keyword) {
			return true
		}
	}
	return false
}
