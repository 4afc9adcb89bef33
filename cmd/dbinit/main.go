// Package main is the entry point for the QAVerse database init CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qaverse/dbinit/cmd/dbinit/commands"
	"github.com/qaverse/dbinit/internal/config"
	"github.com/qaverse/dbinit/internal/debug"
	"github.com/qaverse/dbinit/internal/ui"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := run(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rootCmd := &cobra.Command{
		Use:     "dbinit",
		Short:   "QAVerse database initializer",
		Long:    "Bring a QAVerse database to the current schema and seed default data",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A bare invocation seeds sample data over a current schema.
			return commands.RunSampleData(cmd, cfg)
		},
	}

	var saveConfig bool
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Database connection URL")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Print each schema step as it runs")
	rootCmd.PersistentFlags().BoolVar(&saveConfig, "save-config", false, "Persist the effective configuration for future runs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		debug.Init(cfg.Verbose)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if !saveConfig {
			return nil
		}
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		ui.PrintInfo("Configuration saved")
		return nil
	}

	rootCmd.AddCommand(commands.NewFullInitCommand(cfg))
	rootCmd.AddCommand(commands.NewMigrateOnlyCommand(cfg))
	rootCmd.AddCommand(commands.NewSampleDataCommand(cfg))

	return rootCmd.ExecuteContext(ctx)
}
