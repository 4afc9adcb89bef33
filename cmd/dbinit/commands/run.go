// Package commands implements CLI commands.
package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/qaverse/dbinit/internal/config"
	"github.com/qaverse/dbinit/internal/database"
	"github.com/qaverse/dbinit/internal/debug"
	"github.com/qaverse/dbinit/internal/migrate"
	"github.com/qaverse/dbinit/internal/seed"
	"github.com/qaverse/dbinit/internal/ui"
)

var (
	statusColors = map[migrate.Status]*color.Color{
		migrate.StatusApplied:   color.New(color.FgGreen),
		migrate.StatusSatisfied: color.New(color.FgCyan),
		migrate.StatusSkipped:   color.New(color.FgHiBlack),
		migrate.StatusFailed:    color.New(color.FgRed),
	}
)

// runSchema opens the database, runs the full schema catalog, and renders
// the report. The returned error is fatal: base tables or the ledger could
// not be brought up. Per-step failures are reported and absorbed so a
// partially healthy database still boots the application.
func runSchema(ctx context.Context, cfg *config.Config) (*migrate.Conn, *migrate.RunReport, error) {
	db, d, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	conn := migrate.NewConn(db, d)
	runner := migrate.NewRunner(conn, migrate.DefaultCatalog())
	var spinner *pterm.SpinnerPrinter
	if debug.Enabled() {
		runner.Progress = printStep
	} else {
		spinner, _ = ui.PrintSpinner("Applying schema catalog")
	}

	report, err := runner.RunAll(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	renderReport(report)
	return conn, report, nil
}

func printStep(res migrate.StepResult) {
	c, ok := statusColors[res.Status]
	if !ok {
		c = color.New(color.Reset)
	}
	ui.ColorPrint(c, "  %-10s", res.Status)
	if res.Err != nil {
		fmt.Printf(" %s: %v\n", res.Step, res.Err)
		return
	}
	fmt.Printf(" %s\n", res.Step)
}

func renderReport(report *migrate.RunReport) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		rows = append(rows, []string{res.Step, res.Status.String(), detail})
	}
	ui.PrintSection("Schema catalog")
	ui.PrintTable([]string{"Step", "Status", "Detail"}, rows)

	if n := report.Failed(); n > 0 {
		ui.PrintWarning("%d step(s) failed and will be retried on the next run", n)
	} else {
		ui.PrintSuccess("Schema is up to date (%d applied)", report.Applied())
	}
}

// runSeed bootstraps default accounts and sample data over a migrated
// database.
func runSeed(ctx context.Context, conn *migrate.Conn) error {
	seeder := seed.New(conn.DB, conn.Dialect)
	seeder.Progress = func(stage seed.Stage) {
		if stage == seed.StageIdle || stage == seed.StageDone {
			return
		}
		ui.PrintStep(int(stage), int(seed.StagePhaseStructures), "Seeding "+stage.String())
	}

	report, err := seeder.Run(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if report.UsersCreated+report.Projects+report.TestRuns+report.Phases == 0 {
		ui.PrintInfo("Database already populated, nothing to seed")
		return nil
	}
	ui.PrintSuccess("Sample data seeded")
	ui.PrintList([]string{
		fmt.Sprintf("%d user(s)", report.UsersCreated),
		fmt.Sprintf("%d project(s)", report.Projects),
		fmt.Sprintf("%d test run(s)", report.TestRuns),
		fmt.Sprintf("%d phase(s), %d plan(s), %d package(s)",
			report.Phases, report.Plans, report.Packages),
	})
	if report.UsersBackfilled > 0 {
		ui.PrintInfo("Backfilled model preference on %d existing user(s)", report.UsersBackfilled)
	}
	return nil
}
