// internal/cli/report.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
	"github.com/arc-language/libyear/pkg/manifest"
	"github.com/arc-language/libyear/pkg/report"
)

var reportConcurrency int

var reportCmd = &cobra.Command{
	Use:   "report [file...]",
	Short: "Report the staleness of every pinned dependency",
	Long: `Read requirements files or pyproject.toml and compute libdays for each
dependency pinned with == or bounded with <.

Examples:
  libyear report requirements.txt
  libyear report requirements.txt requirements-dev.txt -o json
  libyear report pyproject.toml --concurrency=8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportConcurrency, "concurrency", 0, "packages evaluated at once (default from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	var reqs []manifest.Requirement
	for _, path := range args {
		found, err := manifest.LoadFile(path)
		if err != nil {
			return err
		}
		reqs = append(reqs, found...)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no pinned requirements found in %v", args)
	}

	concurrency := config.Concurrency
	if reportConcurrency > 0 {
		concurrency = reportConcurrency
	}

	return withCalculator(cmd, func(ctx context.Context, calc *libyear.Calculator) error {
		rep, err := report.NewRunner(calc, concurrency, newLogger()).Run(ctx, reqs)
		if err != nil {
			return err
		}
		return rep.Render(cmd.OutOrStdout(), cmd.ErrOrStderr(), config.Output)
	})
}
