package commands

import (
	"github.com/spf13/cobra"

	"github.com/qaverse/dbinit/internal/config"
	"github.com/qaverse/dbinit/internal/ui"
)

// NewMigrateOnlyCommand creates the migrate-only command.
func NewMigrateOnlyCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-only",
		Short: "Apply the schema catalog without touching data",
		Long: `Create missing base tables and apply every pending schema step. No
accounts or sample data are written, which suits production deploys.`,
		Example: `  dbinit migrate-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintHeader("QAVerse Database Migration", "schema catalog only")

			conn, _, err := runSchema(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return conn.DB.Close()
		},
	}
}
