package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmixlab/cmix/internal/config"
	"github.com/cmixlab/cmix/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cmix",
		Short: "Constrained mixture simulator for soft-tissue walls",
		Long: `cmix simulates the mechanical and mass-turnover behavior of a
two-constituent soft-tissue wall (elastin + collagen over an inert matrix)
under constant, linearly ramped, and cyclic stretch histories, with an
optional stress-mediated feedback loop on collagen production.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, warn (overrides config)")

	rootCmd.AddCommand(
		newRunCmd(),
		newParamsCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cmix version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cmix %s\n", version)
		},
	}
}

// resolveSetup loads the configuration named by --config (defaults when the
// flag is empty) and builds the diagnostic logger, letting --log-level win
// over the file.
func resolveSetup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}

	level := cfg.Logging.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	return cfg, logging.NewLogger(level, os.Stderr), nil
}
