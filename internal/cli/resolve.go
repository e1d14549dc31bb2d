// internal/cli/resolve.go
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
)

var (
	resolveVersion  string
	resolveLessThan string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [package]",
	Short: "Show the current and latest versions of a package",
	Long:  `Display which version is current, which is latest, and when each was published.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveVersion, "version", "", "pinned version")
	resolveCmd.Flags().StringVar(&resolveLessThan, "lt", "", "use the greatest version below this bound")
	resolveCmd.MarkFlagsMutuallyExclusive("version", "lt")
}

type resolutionView struct {
	Name             string     `json:"name" yaml:"name"`
	Version          string     `json:"version,omitempty" yaml:"version,omitempty"`
	VersionPublished *time.Time `json:"version_published,omitempty" yaml:"version_published,omitempty"`
	Latest           string     `json:"latest,omitempty" yaml:"latest,omitempty"`
	LatestPublished  *time.Time `json:"latest_published,omitempty" yaml:"latest_published,omitempty"`
	Status           string     `json:"status" yaml:"status"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	return withCalculator(cmd, func(ctx context.Context, calc *libyear.Calculator) error {
		res, err := calc.Resolve(ctx, args[0], resolveVersion, resolveLessThan)
		if err != nil {
			return err
		}

		view := resolutionView{
			Name:             res.Name,
			Version:          res.Version,
			VersionPublished: res.VersionPublished,
			Latest:           res.Latest,
			LatestPublished:  res.LatestPublished,
			Status:           string(res.Status),
		}

		out := cmd.OutOrStdout()
		return render(out, view, func() error {
			fmt.Fprintf(out, "Package: %s\n", res.Name)
			fmt.Fprintf(out, "Status:  %s\n", res.Status)
			if res.Resolved() {
				fmt.Fprintf(out, "Current: %s (%s)\n", res.Version, formatTime(res.VersionPublished))
				fmt.Fprintf(out, "Latest:  %s (%s)\n", res.Latest, formatTime(res.LatestPublished))
			}
			fmt.Fprintf(out, "Backend: %s\n", calc.Backend())
			return nil
		})
	})
}
