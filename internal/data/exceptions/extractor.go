package exceptions

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/tracewell/tracewell/internal/core/model"
)

const (
	// DefaultMaxFrames bounds the captured stack per exception anchor.
	DefaultMaxFrames = 50
	// DefaultMaxSamples bounds the retained messages per group.
	DefaultMaxSamples = 5

	// UnclassifiedType groups ERROR anchors with no class-like token
	// near the marker. They still count; hiding them would understate
	// the error rate.
	UnclassifiedType = "(unclassified)"
)

var exceptionTypeRe = regexp.MustCompile(`\w+(?:Exception|Error)`)

// Extractor groups raw ERROR blocks in full file content into discrete
// exceptions with captured stack frames. It runs without any identifier
// filter; this is the full-scan analysis pass.
type Extractor struct {
	maxFrames  int
	maxSamples int
}

func NewExtractor(maxFrames, maxSamples int) *Extractor {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	return &Extractor{maxFrames: maxFrames, maxSamples: maxSamples}
}

// ExtractFile streams one file and groups its ERROR anchors.
func (x *Extractor) ExtractFile(path string) ([]model.ExceptionGroup, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	return x.Extract(lines), len(lines), nil
}

// Extract groups exception anchors in the given lines. An anchor is a line
// carrying an ERROR marker that is not itself a stack-frame continuation.
// Contiguous frame-looking lines after the anchor become its stack trace,
// bounded at maxFrames. Groups are keyed by exact string match on the
// class-like token nearest the ERROR marker and ordered by occurrence count
// descending, then type ascending, so output is reproducible.
func (x *Extractor) Extract(lines []string) []model.ExceptionGroup {
	groups := make(map[string]*model.ExceptionGroup)

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !isAnchor(line) {
			i++
			continue
		}

		var frames []string
		j := i + 1
		for j < len(lines) && isStackFrame(lines[j]) {
			if len(frames) < x.maxFrames {
				frames = append(frames, strings.TrimSpace(lines[j]))
			}
			j++
		}

		typ := extractType(line)
		group, ok := groups[typ]
		if !ok {
			group = &model.ExceptionGroup{Type: typ, FirstStackTrace: frames}
			groups[typ] = group
		}
		group.Count++
		if len(group.SampleMessages) < x.maxSamples {
			group.SampleMessages = append(group.SampleMessages, strings.TrimSpace(line))
		}

		i = j
	}

	result := make([]model.ExceptionGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	return result
}

// MergeGroups combines per-file groups by exception type, keeping the first
// representative stack seen and re-bounding samples. Used when full-scan
// runs over a directory.
func (x *Extractor) MergeGroups(groupSets ...[]model.ExceptionGroup) []model.ExceptionGroup {
	merged := make(map[string]*model.ExceptionGroup)
	for _, set := range groupSets {
		for _, g := range set {
			existing, ok := merged[g.Type]
			if !ok {
				copied := g
				merged[g.Type] = &copied
				continue
			}
			existing.Count += g.Count
			for _, msg := range g.SampleMessages {
				if len(existing.SampleMessages) >= x.maxSamples {
					break
				}
				existing.SampleMessages = append(existing.SampleMessages, msg)
			}
			if len(existing.FirstStackTrace) == 0 {
				existing.FirstStackTrace = g.FirstStackTrace
			}
		}
	}

	result := make([]model.ExceptionGroup, 0, len(merged))
	for _, g := range merged {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	return result
}

func isAnchor(line string) bool {
	return strings.Contains(line, "ERROR") && !isStackFrame(line)
}

// isStackFrame recognizes continuation lines of a stack trace: indented
// lines and the conventional frame prefixes.
func isStackFrame(line string) bool {
	return strings.HasPrefix(line, "\t") ||
		strings.HasPrefix(line, "    ") ||
		strings.HasPrefix(line, "at ") ||
		strings.HasPrefix(line, "Caused by:") ||
		strings.HasPrefix(line, "...")
}

// extractType returns the class-like token nearest the ERROR marker, or
// UnclassifiedType when the line has none.
func extractType(line string) string {
	marker := strings.Index(line, "ERROR")
	matches := exceptionTypeRe.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return UnclassifiedType
	}
	best := ""
	bestDist := -1
	for _, m := range matches {
		dist := m[0] - marker
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = line[m[0]:m[1]]
		}
	}
	return best
}
