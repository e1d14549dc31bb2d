// internal/cli/backends.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear/pkg/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List supported registry backends",
	Long:  `List the registry backends and show which one the current configuration selects.`,
	Args:  cobra.NoArgs,
	RunE:  runBackends,
}

func runBackends(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bcfg := backend.FromCoreConfig(config, nil)

	selected := backend.BackendType(config.Backend)
	if selected == "" || selected == backend.BackendAuto {
		selected, _ = backend.Detect(bcfg)
	}

	fmt.Fprintf(out, "Registered backends:\n")
	for _, b := range backend.Types() {
		marker := " "
		if b == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %-18s %s\n", marker, b, describe(b, bcfg))
	}

	if selected != "" {
		fmt.Fprintf(out, "\n* = selected backend\n")
	} else {
		fmt.Fprintf(out, "\nNo backend configured: set NEXUS_URL or GOOGLE_ARTIFACT_REGISTRY_PROJECT\n")
	}

	return nil
}

func describe(b backend.BackendType, cfg *backend.Config) string {
	switch b {
	case backend.BackendNexus:
		if cfg.Nexus.URL == "" {
			return "(not configured)"
		}
		return fmt.Sprintf("%s repository=%s", cfg.Nexus.URL, cfg.Nexus.Repository)
	case backend.BackendArtifactRegistry:
		if cfg.ArtifactRegistry.Project == "" {
			return "(not configured)"
		}
		return fmt.Sprintf("projects/%s/locations/%s/repositories/%s",
			cfg.ArtifactRegistry.Project, cfg.ArtifactRegistry.Location, cfg.ArtifactRegistry.Repository)
	}
	return ""
}
