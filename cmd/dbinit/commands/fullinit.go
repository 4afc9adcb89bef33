package commands

import (
	"github.com/spf13/cobra"

	"github.com/qaverse/dbinit/internal/config"
	"github.com/qaverse/dbinit/internal/ui"
)

// NewFullInitCommand creates the full-init command.
func NewFullInitCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "full-init",
		Short: "Create tables, apply the schema catalog, and seed default data",
		Long: `Bring a fresh or legacy database to the current schema and populate it
with the default admin accounts and sample projects.

Safe to run repeatedly; every step checks before it changes anything.`,
		Example: `  dbinit full-init
  DATABASE_URL=sqlite:///qaverse.db dbinit full-init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ui.PrintHeader("QAVerse Database Initialization", "schema catalog + seed data")

			conn, _, err := runSchema(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.DB.Close()

			if !cfg.SeedData {
				ui.PrintInfo("Seeding disabled by configuration")
				return nil
			}
			return runSeed(ctx, conn)
		},
	}
}
