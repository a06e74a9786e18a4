package parser

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/core/trace"
	"github.com/tracewell/tracewell/internal/util"
)

// DefaultMaxContinuationLines bounds how many continuation lines one entry
// may accumulate. Lines past the bound belong to the same logical record but
// are discarded; the truncation is logged at debug level.
const DefaultMaxContinuationLines = 200

// TraceParser scans files for entries matching one correlation identifier.
// It is safe for concurrent use: all fields are read-only after construction
// and every ParseFile call works on private state.
type TraceParser struct {
	matcher         *trace.IdentifierMatcher
	concurrency     int
	maxContinuation int
}

// ParseResult is the per-file outcome delivered by ParseFiles. A failed file
// carries its error here; it never aborts the remaining files.
type ParseResult struct {
	File   string
	Result model.ScanResult
	Error  error
}

// NewTraceParser creates a parser for the given identifier.
// maxContinuation <= 0 selects DefaultMaxContinuationLines.
func NewTraceParser(identifier string, concurrency int, maxContinuation int) *TraceParser {
	if concurrency <= 0 {
		concurrency = 1
	}
	if maxContinuation <= 0 {
		maxContinuation = DefaultMaxContinuationLines
	}
	return &TraceParser{
		matcher:         trace.NewIdentifierMatcher(identifier),
		concurrency:     concurrency,
		maxContinuation: maxContinuation,
	}
}

// ParseFile streams one file and returns the entries matching the
// identifier, in original file order. A new entry begins at any matching
// line; subsequent lines with no timestamp and no leading severity marker
// are continuations of that entry (stack frames, wrapped messages). Lines
// that match nothing and continue nothing are skipped.
func (p *TraceParser) ParseFile(path string) (model.ScanResult, error) {
	result := model.ScanResult{File: path}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	// Cap pathological single-line files instead of loading them whole.
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var current *model.LogEntry
	truncated := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if p.matcher.Match(line) {
			if current != nil {
				result.Entries = append(result.Entries, *current)
			}
			entry := model.LogEntry{
				Lines:      []string{line},
				Severity:   trace.ClassifySeverity(line),
				SourceFile: path,
				SourceLine: lineNo,
			}
			if ts, ok := trace.ParseTimestamp(line); ok {
				entry.Timestamp = &ts
			}
			current = &entry
			continue
		}

		if current != nil && isContinuation(line) {
			if len(current.Lines) <= p.maxContinuation {
				current.Lines = append(current.Lines, line)
			} else {
				truncated++
			}
			continue
		}

		// Non-matching, non-continuation line closes the open entry.
		if current != nil {
			result.Entries = append(result.Entries, *current)
			current = nil
		}
	}
	if err := sc.Err(); err != nil {
		return model.ScanResult{File: path}, fmt.Errorf("read %s: %w", path, err)
	}
	if current != nil {
		result.Entries = append(result.Entries, *current)
	}
	if truncated > 0 {
		util.LogDebug(fmt.Sprintf("Truncated %d continuation lines past the %d-line window in %s",
			truncated, p.maxContinuation, path))
	}

	result.Found = len(result.Entries) > 0
	return result, nil
}

// isContinuation reports whether the line extends the preceding entry
// rather than starting a new record: it carries no timestamp and no
// severity marker at the start of the line.
func isContinuation(line string) bool {
	return !trace.HasTimestamp(line) && !trace.HasLeadingSeverityMarker(line)
}

// ParseFiles scans files concurrently behind a bounded worker pool and
// returns a channel of per-file results. The channel closes once all work
// finishes or the context is cancelled; results already produced stay valid
// after cancellation.
func (p *TraceParser) ParseFiles(ctx context.Context, files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent scan of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			fileStart := time.Now()
			res, err := p.ParseFile(f)
			if err != nil {
				util.LogDebug(fmt.Sprintf("File scan failed: %s, duration %v - %v", f, time.Since(fileStart), err))
			}

			results <- ParseResult{File: f, Result: res, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Concurrent scan finished, total duration: %v", time.Since(start)))
	}()

	return results
}
