// internal/cli/versions.go
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
)

var versionsExact string

var versionsCmd = &cobra.Command{
	Use:   "versions [package]",
	Short: "List the published versions of a package",
	Long: `List every published version of a package in ascending order with its
publish time.

Examples:
  libyear versions requests
  libyear versions requests --exact=2.31.0`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().StringVar(&versionsExact, "exact", "", "only list this exact version string")
}

type versionView struct {
	Version   string     `json:"version" yaml:"version"`
	Published *time.Time `json:"published,omitempty" yaml:"published,omitempty"`
}

func runVersions(cmd *cobra.Command, args []string) error {
	return withCalculator(cmd, func(ctx context.Context, calc *libyear.Calculator) error {
		set, err := calc.ListVersions(ctx, args[0], versionsExact)
		if err != nil {
			return err
		}

		views := make([]versionView, 0, set.Len())
		for _, pv := range set.Versions {
			views = append(views, versionView{Version: pv.Version.String(), Published: pv.Published})
		}

		out := cmd.OutOrStdout()
		return render(out, views, func() error {
			for _, v := range views {
				fmt.Fprintf(out, "%-20s %s\n", v.Version, formatTime(v.Published))
			}
			return nil
		})
	})
}
