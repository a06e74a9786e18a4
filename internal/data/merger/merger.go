package merger

import (
	"sort"

	"github.com/tracewell/tracewell/internal/core/model"
)

// Merger combines per-file scan results into one globally ordered timeline.
// Merging is a pure single-threaded aggregation over an immutable input
// collection; callers run it after all workers have returned.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// Merge produces the timeline for one identifier.
//
// Ordering: entries with a parsed timestamp sort by (timestamp, sourceFile,
// sourceLineNumber) ascending. Entries without one sort after all dated
// entries, ordered by (sourceFile, sourceLineNumber). The secondary keys
// make repeated runs over unchanged input byte-identical. Undated entries
// are never dropped; the fallback placement is stated wherever the timeline
// is rendered.
//
// A zero-entry timeline is a valid outcome: the identifier was simply not
// found anywhere.
func (m *Merger) Merge(identifier string, results []model.ScanResult) *model.Timeline {
	var entries []model.LogEntry
	for _, r := range results {
		entries = append(entries, r.Entries...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entryLess(&entries[i], &entries[j])
	})

	return &model.Timeline{
		Identifier: identifier,
		Entries:    entries,
		Stats:      computeStats(entries),
	}
}

func entryLess(a, b *model.LogEntry) bool {
	switch {
	case a.HasTimestamp() && b.HasTimestamp():
		if !a.Timestamp.Equal(*b.Timestamp) {
			return a.Timestamp.Before(*b.Timestamp)
		}
	case a.HasTimestamp():
		return true
	case b.HasTimestamp():
		return false
	}
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	return a.SourceLine < b.SourceLine
}

// computeStats runs a single pass over the merged entries.
func computeStats(entries []model.LogEntry) model.TimelineStats {
	stats := model.TimelineStats{
		Total:      len(entries),
		BySeverity: make(map[model.Severity]int),
	}
	seen := make(map[string]bool)
	for i := range entries {
		stats.BySeverity[entries[i].Severity]++
		if !seen[entries[i].SourceFile] {
			seen[entries[i].SourceFile] = true
			stats.SourceFiles = append(stats.SourceFiles, entries[i].SourceFile)
		}
	}
	sort.Strings(stats.SourceFiles)
	return stats
}
