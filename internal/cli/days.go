// internal/cli/days.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
)

var (
	daysVersion  string
	daysLessThan string
)

var daysCmd = &cobra.Command{
	Use:   "days [package]",
	Short: "Show how many days a version is behind the latest release",
	Long: `Compute libdays: the days between the publish time of the current version
and the latest version of a package.

Examples:
  libyear days requests --version=2.28.0
  libyear days django --lt=4.0
  libyear days urllib3 --backend=artifactregistry -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runDays,
}

func init() {
	daysCmd.Flags().StringVar(&daysVersion, "version", "", "pinned version")
	daysCmd.Flags().StringVar(&daysLessThan, "lt", "", "use the greatest version below this bound")
	daysCmd.MarkFlagsMutuallyExclusive("version", "lt")
}

func runDays(cmd *cobra.Command, args []string) error {
	return withCalculator(cmd, func(ctx context.Context, calc *libyear.Calculator) error {
		res, err := calc.LibDays(ctx, args[0], daysVersion, daysLessThan)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		return render(out, res, func() error {
			switch res.Status {
			case libyear.StatusKnown:
				fmt.Fprintf(out, "%s %s -> %s: %d days (%.2f years)\n", res.Name, res.Version, res.Latest, res.Days, res.Years())
			case libyear.StatusUnknown:
				fmt.Fprintf(out, "%s %s -> %s: %d days (publish time unknown)\n", res.Name, res.Version, res.Latest, res.Days)
			case libyear.StatusUnsatisfiable:
				fmt.Fprintf(out, "%s: %d days (no version below %s)\n", res.Name, res.Days, daysLessThan)
			case libyear.StatusUnpinned:
				fmt.Fprintf(out, "%s: no data (pass --version or --lt)\n", res.Name)
			default:
				fmt.Fprintf(out, "%s: %d days (no versions found)\n", res.Name, res.Days)
			}
			return nil
		})
	})
}
