package commands

import (
	"github.com/spf13/cobra"

	"github.com/qaverse/dbinit/internal/config"
	"github.com/qaverse/dbinit/internal/ui"
)

// NewSampleDataCommand creates the sample-data command, which is also the
// behavior of a bare invocation.
func NewSampleDataCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sample-data",
		Short: "Seed default accounts and sample projects",
		Long: `Seed the default admin accounts, sample projects, test runs, and test
management structures. The schema catalog runs first so the data always
lands in a current schema.

Already populated databases are left untouched.`,
		Example: `  dbinit
  dbinit sample-data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSampleData(cmd, cfg)
		},
	}
}

// RunSampleData is shared with the bare root invocation.
func RunSampleData(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	ui.PrintHeader("QAVerse Sample Data", "seed over a current schema")

	conn, _, err := runSchema(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.DB.Close()

	return runSeed(ctx, conn)
}
