package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tracewell/tracewell/internal/analyzer"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags]",
	Short: "Scan full log content for exceptions (no identifier filter)",
	Long: `scan runs the identifier-free analysis pass: every ERROR block in the
target file or directory is grouped into discrete exceptions with captured
stack frames, occurrence counts and sample messages.

Examples:
  tracewell scan --path app.log                  # One file
  tracewell scan --path /var/log/services        # Whole tree, groups merged by type
  tracewell scan --path app.log --output json    # Machine-readable groups
  tracewell scan --path app.log --summarize      # Ask the LLM collaborator`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	a, err := analyzer.NewFullScan(buildConfig())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Run(ctx)
}
