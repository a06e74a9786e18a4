package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/data/merger"
	"github.com/tracewell/tracewell/internal/data/parser"
	"github.com/tracewell/tracewell/internal/data/scanner"
	"github.com/tracewell/tracewell/internal/presentation/formatter"
	"github.com/tracewell/tracewell/internal/summarizer"
	"github.com/tracewell/tracewell/internal/util"
)

// ErrEmptyIdentifier is the fatal configuration error for a missing
// correlation identifier; nothing is scanned when it is returned.
var ErrEmptyIdentifier = errors.New("correlation identifier must not be empty")

// DefaultDisplayLimit bounds how many entries human-facing output renders
// verbatim. Programmatic output always carries the full timeline.
const DefaultDisplayLimit = 20

// Config carries every knob the engine honors. It is a plain value threaded
// through the components; concurrent scans with different configs cannot
// interfere.
type Config struct {
	Identifier           string
	Path                 string
	Recursive            bool
	Extensions           []string
	OutputFormat         string
	DisplayLimit         int
	Concurrency          int
	MaxContinuationLines int

	Summarize  bool
	Summarizer summarizer.Config
}

func (c *Config) normalize() {
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.DisplayLimit <= 0 {
		c.DisplayLimit = DefaultDisplayLimit
	}
	if len(c.Extensions) == 0 {
		c.Extensions = scanner.DefaultExtensions
	}
}

// Analyzer runs trace correlation over one path for one identifier.
type Analyzer struct {
	config     *Config
	merger     *merger.Merger
	summarizer summarizer.Client
}

// New validates the configuration and builds a trace analyzer. An empty
// identifier is fatal here, before any file is touched.
func New(config *Config) (*Analyzer, error) {
	if config.Identifier == "" {
		return nil, ErrEmptyIdentifier
	}
	return build(config)
}

func build(config *Config) (*Analyzer, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("log path must not be empty")
	}
	config.normalize()

	a := &Analyzer{
		config: config,
		merger: merger.NewMerger(),
	}
	if config.Summarize {
		client, err := summarizer.NewHTTPClient(config.Summarizer)
		if err != nil {
			return nil, fmt.Errorf("summarizer: %w", err)
		}
		a.summarizer = client
	}
	return a, nil
}

// BuildTimeline performs the scan-parse-merge pipeline and returns the full
// timeline together with the per-file errors that were skipped over and the
// number of files scanned. Per-file failures never abort the scan; a
// non-existent root does, before any parsing starts.
func (a *Analyzer) BuildTimeline(ctx context.Context) (*model.Timeline, []model.ScanError, int, error) {
	startTime := time.Now()

	// Phase 1: enumerate candidate files.
	scanStart := time.Now()
	fs := scanner.NewFileScanner(a.config.Path, a.config.Extensions, a.config.Recursive)
	go drainProgress(fs)
	files, err := fs.Scan()
	if err != nil {
		return nil, nil, 0, err
	}
	util.LogDebug(fmt.Sprintf("Phase 1 - file enumeration: %v, %d candidates", time.Since(scanStart), len(files)))

	// Phase 2: scan files concurrently for the identifier.
	parseStart := time.Now()
	p := parser.NewTraceParser(a.config.Identifier, a.config.Concurrency, a.config.MaxContinuationLines)

	var results []model.ScanResult
	var scanErrors []model.ScanError
	for res := range p.ParseFiles(ctx, files) {
		if res.Error != nil {
			util.LogWarn(fmt.Sprintf("Skipping unreadable file %s: %v", res.File, res.Error))
			scanErrors = append(scanErrors, model.ScanError{File: res.File, Err: res.Error.Error()})
			continue
		}
		results = append(results, res.Result)
	}
	if err := ctx.Err(); err != nil {
		return nil, scanErrors, len(files), err
	}
	util.LogDebug(fmt.Sprintf("Phase 2 - file scanning: %v, %d files ok, %d skipped",
		time.Since(parseStart), len(results), len(scanErrors)))

	// Phase 3: merge into the timeline.
	mergeStart := time.Now()
	timeline := a.merger.Merge(a.config.Identifier, results)
	util.LogDebug(fmt.Sprintf("Phase 3 - merge: %v, %d entries from %d files",
		time.Since(mergeStart), timeline.Stats.Total, len(timeline.Stats.SourceFiles)))

	util.LogDebug(fmt.Sprintf("Trace scan total duration: %v", time.Since(startTime)))
	return timeline, scanErrors, len(files), nil
}

// Run executes the full pipeline and renders the result. The zero-entry
// timeline is reported as a normal outcome, not an error.
func (a *Analyzer) Run(ctx context.Context) error {
	timeline, scanErrors, filesScanned, err := a.BuildTimeline(ctx)
	if err != nil {
		return err
	}

	report := &formatter.TraceReport{
		Timeline:     timeline,
		FilesScanned: filesScanned,
		Errors:       scanErrors,
		DisplayLimit: a.config.DisplayLimit,
	}

	if a.summarizer != nil && timeline.Stats.Total > 0 {
		util.LogInfo("Requesting diagnostic analysis from summarizer...")
		analysis, err := a.summarizer.Summarize(ctx, summarizer.RenderTimeline(timeline))
		if err != nil {
			// Analysis is additive; the timeline stands on its own.
			util.LogWarn(fmt.Sprintf("Summarizer failed: %v", err))
		} else {
			report.Analysis = analysis
		}
	}

	out, err := formatter.New(a.config.OutputFormat)
	if err != nil {
		return err
	}
	return out.FormatTrace(report)
}

func drainProgress(fs *scanner.FileScanner) {
	for event := range fs.Events() {
		util.LogDebug(fmt.Sprintf("Discovered log file #%d: %s", event.Discovered, event.Path))
	}
}
