// internal/cli/releases.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
)

var releasesCmd = &cobra.Command{
	Use:   "releases [package] [version]",
	Short: "Count the releases published after a version",
	Args:  cobra.ExactArgs(2),
	RunE:  runReleases,
}

func runReleases(cmd *cobra.Command, args []string) error {
	return withCalculator(cmd, func(ctx context.Context, calc *libyear.Calculator) error {
		n, err := calc.CountReleasesAfter(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		view := struct {
			Name          string `json:"name" yaml:"name"`
			Version       string `json:"version" yaml:"version"`
			ReleasesAfter int    `json:"releases_after" yaml:"releases_after"`
		}{args[0], args[1], n}

		return render(out, view, func() error {
			fmt.Fprintf(out, "%s %s: %d newer releases\n", args[0], args[1], n)
			return nil
		})
	})
}
