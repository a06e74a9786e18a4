package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracewell/tracewell/internal/analyzer"
	"github.com/tracewell/tracewell/internal/summarizer"
	"github.com/tracewell/tracewell/internal/util"
	"github.com/tracewell/tracewell/internal/watcher"
)

var (
	// Logging related
	debug bool

	// Scan input
	identifier string
	logPath    string
	recursive  bool
	extensions []string

	// Output related
	outputFormat string
	displayLimit int

	// Scan behavior
	concurrency     int
	maxContinuation int
	watchMode       bool

	// Summarizer related
	summarize   bool
	llmProvider string
	llmBaseURL  string
	llmModel    string
	llmAPIKey   string
	llmTimeout  time.Duration

	rootCmd = &cobra.Command{
		Use:   "tracewell [flags]",
		Short: "Cross-file trace correlation for log diagnostics",
		Long: `tracewell reconstructs the execution path of a single request across
independently rotated, heterogeneously formatted log files.

It finds every log line carrying a correlation identifier (traceId,
requestId, bracketed or bare), normalizes timestamps, folds stack traces
into their originating entries and merges everything into one
deterministic, chronologically ordered timeline with per-file provenance.

Examples:
  tracewell --id 7f3a9c12 --path /var/log/services          # Scan a directory tree
  tracewell --id 7f3a9c12 --path gateway.log                # Scan a single file
  tracewell --id 7f3a9c12 --path /var/log --output json     # Full timeline as JSON
  tracewell --id 7f3a9c12 --path /var/log --limit 50        # Show more entries
  tracewell --id 7f3a9c12 --path /var/log --watch           # Rescan on file changes
  tracewell --id 7f3a9c12 --path /var/log --summarize       # Ask the LLM collaborator
  tracewell scan --path app.log                             # Exception scan, no identifier`,
		RunE: runTrace,
	}
)

const defaultLogFile = "~/.tracewell/logs/app.log"

func init() {
	// Scan input
	rootCmd.PersistentFlags().StringVarP(&logPath, "path", "p", ".",
		"Log file or directory to scan")
	rootCmd.PersistentFlags().BoolVar(&recursive, "recursive", true,
		"Descend into subdirectories")
	rootCmd.PersistentFlags().StringSliceVar(&extensions, "extensions", nil,
		"Log file extensions to scan (default .log,.txt,.out)")

	rootCmd.Flags().StringVarP(&identifier, "id", "i", "",
		"Correlation identifier (traceId/requestId) to follow")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, summary)")
	rootCmd.Flags().IntVar(&displayLimit, "limit", analyzer.DefaultDisplayLimit,
		"Max entries rendered in table output (full timeline always kept)")

	// Scan behavior
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", runtime.NumCPU(),
		"Concurrent file scans")
	rootCmd.Flags().IntVar(&maxContinuation, "max-continuation", 0,
		"Continuation lines kept per entry (0 = default bound)")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false,
		"Rescan whenever a watched log file changes")

	// Summarizer configuration
	rootCmd.PersistentFlags().BoolVar(&summarize, "summarize", false,
		"Send the result to the LLM collaborator for diagnostic analysis")
	rootCmd.PersistentFlags().StringVar(&llmProvider, "llm-provider", summarizer.ProviderOllama,
		"Summarizer provider (ollama, openai)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-url", "http://localhost:11434",
		"Summarizer base URL")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "llama3",
		"Summarizer model name")
	rootCmd.PersistentFlags().StringVar(&llmAPIKey, "llm-key", "",
		"API key for OpenAI-compatible endpoints")
	rootCmd.PersistentFlags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute,
		"Summarizer request timeout")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runTrace(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	config := buildConfig()
	config.Identifier = identifier
	config.DisplayLimit = displayLimit
	config.MaxContinuationLines = maxContinuation

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := a.Run(ctx); err != nil {
		return err
	}

	if watchMode {
		return watchAndRerun(ctx, config)
	}
	return nil
}

// watchAndRerun re-executes the trace scan whenever a watched log file
// changes. Bursts of events within the debounce window collapse into one
// rescan.
func watchAndRerun(ctx context.Context, config *analyzer.Config) error {
	fw, err := watcher.NewFileWatcher(config.Path, config.Extensions)
	if err != nil {
		return fmt.Errorf("watch %s: %w", config.Path, err)
	}
	defer fw.Close()

	util.LogInfo(fmt.Sprintf("Watching %s for changes (Ctrl-C to stop)", config.Path))

	const debounce = 500 * time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebug(fmt.Sprintf("Change detected: %s (%s)", event.Path, event.Operation))
			// Let the burst settle before rescanning.
			timer := time.NewTimer(debounce)
		drain:
			for {
				select {
				case <-fw.Events():
				case <-timer.C:
					break drain
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				}
			}

			a, err := analyzer.New(config)
			if err != nil {
				return err
			}
			if err := a.Run(ctx); err != nil {
				util.LogError(fmt.Sprintf("Rescan failed: %v", err))
			}
		}
	}
}

func buildConfig() *analyzer.Config {
	return &analyzer.Config{
		Path:         expandPath(logPath),
		Recursive:    recursive,
		Extensions:   extensions,
		OutputFormat: outputFormat,
		Concurrency:  concurrency,
		Summarize:    summarize,
		Summarizer: summarizer.Config{
			Provider: llmProvider,
			BaseURL:  llmBaseURL,
			Model:    llmModel,
			APIKey:   llmAPIKey,
			Timeout:  llmTimeout,
		},
	}
}

func initLogging() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return util.InitLogger(logLevel, logFile, debug)
}

func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
