// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the libyear release
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "libyear version %s\n", Version)
		fmt.Fprintln(out, "Dependency staleness for private Python registries")
		fmt.Fprintln(out, "https://github.com/arc-language/libyear")
	},
}
