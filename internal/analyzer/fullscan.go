package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/data/exceptions"
	"github.com/tracewell/tracewell/internal/data/scanner"
	"github.com/tracewell/tracewell/internal/presentation/formatter"
	"github.com/tracewell/tracewell/internal/summarizer"
	"github.com/tracewell/tracewell/internal/util"
)

// FullScanAnalyzer runs the identifier-free exception extraction pass over
// a file or directory.
type FullScanAnalyzer struct {
	config     *Config
	extractor  *exceptions.Extractor
	summarizer summarizer.Client
}

// NewFullScan builds the full-scan analyzer. No identifier is required in
// this mode.
func NewFullScan(config *Config) (*FullScanAnalyzer, error) {
	base, err := build(config)
	if err != nil {
		return nil, err
	}
	return &FullScanAnalyzer{
		config:     base.config,
		extractor:  exceptions.NewExtractor(0, 0),
		summarizer: base.summarizer,
	}, nil
}

// Run extracts and groups exceptions, merging groups by type when the path
// covers several files, then renders the report. Unreadable files are
// skipped with a warning, exactly like the trace scan.
func (a *FullScanAnalyzer) Run(ctx context.Context) error {
	startTime := time.Now()

	fs := scanner.NewFileScanner(a.config.Path, a.config.Extensions, a.config.Recursive)
	go drainProgress(fs)
	files, err := fs.Scan()
	if err != nil {
		return err
	}

	var groupSets [][]model.ExceptionGroup
	var scanErrors []model.ScanError
	totalLines := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		groups, lines, err := a.extractor.ExtractFile(file)
		if err != nil {
			util.LogWarn(fmt.Sprintf("Skipping unreadable file %s: %v", file, err))
			scanErrors = append(scanErrors, model.ScanError{File: file, Err: err.Error()})
			continue
		}
		totalLines += lines
		if len(groups) > 0 {
			groupSets = append(groupSets, groups)
		}
	}

	merged := a.extractor.MergeGroups(groupSets...)
	util.LogDebug(fmt.Sprintf("Full scan: %v, %d files, %d lines, %d exception types",
		time.Since(startTime), len(files), totalLines, len(merged)))

	report := &formatter.ExceptionReport{
		Source:       a.config.Path,
		FilesScanned: len(files),
		TotalLines:   totalLines,
		Groups:       merged,
		Errors:       scanErrors,
	}

	if a.summarizer != nil && len(merged) > 0 {
		util.LogInfo("Requesting diagnostic analysis from summarizer...")
		analysis, err := a.summarizer.Summarize(ctx, summarizer.RenderExceptions(merged, a.config.Path))
		if err != nil {
			util.LogWarn(fmt.Sprintf("Summarizer failed: %v", err))
		} else {
			report.Analysis = analysis
		}
	}

	out, err := formatter.New(a.config.OutputFormat)
	if err != nil {
		return err
	}
	return out.FormatExceptions(report)
}
