// Package cmd defines and implements the CLI commands for the sarwrangler
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcouto/sarwrangler/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// logger is built by the root PersistentPreRunE and shared by subcommands.
	logger *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sarwrangler",
		Short: "Fetches Brazilian SAR reservoir telemetry and exports it to local files",
		Long: `sarwrangler scrapes the national water agency's SAR portal: the system
directory, each system's reservoir listing, and each reservoir's measurement
series. Every discovery level is exported to the output directory in each of
the enabled formats (CSV, JSON, SQLite, gob).`,
		SilenceUsage: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				logger.Sync() //nolint:errcheck // best-effort flush
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.json)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRunCmd())

	return cmd
}

// Execute is the main entry point. Cobra prints the failing error; the exit
// code is the only other signal a wrapper script gets.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
