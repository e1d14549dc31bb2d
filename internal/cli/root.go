// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/libyear"
	"github.com/arc-language/libyear/pkg/backend"
	"github.com/arc-language/libyear/pkg/core"
)

var (
	cfgFile     string
	backendName string
	debug       bool
	output      string
	config      *core.Config
)

// newCalculator builds the calculator every registry command uses
var newCalculator = func(ctx context.Context, diagnostics io.Writer) (*libyear.Calculator, error) {
	return libyear.NewCalculator(ctx,
		libyear.BackendType(config.Backend),
		backend.FromCoreConfig(config, newLogger()),
		libyear.WithDiagnostics(diagnostics))
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libyear",
	Short: "Dependency staleness for private Python registries",
	Long: `libyear - dependency staleness in days

Measures how far behind a pinned Python dependency is, as the days between
its publish time and the latest release's, against a Sonatype Nexus or a
Google Artifact Registry repository.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/libyear/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "registry backend to use (nexus, artifactregistry)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (table, json, yaml)")

	// Add commands
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(releasesCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	if err := core.ApplyEnv(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
	}

	// Override config with flags
	if backendName != "" {
		config.Backend = backendName
	}
	if debug {
		config.Debug = true
	}
	if output != "" {
		config.Output = output
	}
}

func newLogger() *log.Logger {
	if config.Debug {
		return log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	}
	return nil
}

// commandContext bounds a command by the configured timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, config.Timeout)
}

// withCalculator runs fn with a calculator that is closed afterwards
func withCalculator(cmd *cobra.Command, fn func(ctx context.Context, calc *libyear.Calculator) error) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	calc, err := newCalculator(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer calc.Close()

	return fn(ctx, calc)
}
