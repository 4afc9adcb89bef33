package migrate

import (
	"context"
	"fmt"

	"github.com/qaverse/dbinit/internal/debug"
)

// Runner executes a catalog against one connection, each step in its own
// transaction. A failing step is reported and the run continues; only the
// base-table group and the ledger are fatal, since nothing later can be
// trusted without them.
type Runner struct {
	conn    *Conn
	catalog *Catalog
	ledger  *Ledger

	// Progress, when set, is invoked after every step with its result.
	Progress func(StepResult)
}

// NewRunner wires a runner. The caller owns the connection's lifecycle.
func NewRunner(conn *Conn, catalog *Catalog) *Runner {
	return &Runner{
		conn:    conn,
		catalog: catalog,
		ledger:  NewLedger(conn),
	}
}

// RunAll applies the whole catalog in dependency order and reports per-step
// outcomes. The returned error is non-nil only for fatal failures.
func (r *Runner) RunAll(ctx context.Context) (*RunReport, error) {
	report := &RunReport{}

	if err := r.ledger.EnsureTable(ctx); err != nil {
		return report, err
	}

	// Base tables first, in declaration order. A failure here is fatal.
	for _, step := range r.catalog.Base {
		res := r.runStep(ctx, step)
		report.add(res)
		r.notify(res)
		if res.Status == StatusFailed {
			return report, fmt.Errorf("base table step %s failed: %w", step.Name(), res.Err)
		}
	}

	ordered, err := r.catalog.Ordered()
	if err != nil {
		return report, err
	}

	for _, step := range ordered {
		res := r.runStep(ctx, step)
		report.add(res)
		r.notify(res)
	}

	return report, nil
}

func (r *Runner) notify(res StepResult) {
	if r.Progress != nil {
		r.Progress(res)
	}
}

// runStep applies one step: ledger check, live precondition check, then the
// step's DDL inside a transaction.
func (r *Runner) runStep(ctx context.Context, step Step) StepResult {
	name := step.Name()

	recorded, err := r.ledger.Applied(ctx, name)
	if err != nil {
		return StepResult{Step: name, Status: StatusFailed, Err: err}
	}

	satisfied, verifiable, err := step.Satisfied(ctx, r.conn)
	if err != nil {
		return StepResult{Step: name, Status: StatusFailed, Err: err}
	}

	// Ledger is the source of truth; introspection is the consistency
	// check. A recorded step re-runs only when the catalog visibly
	// disagrees (e.g. a column dropped by hand).
	if recorded && (!verifiable || satisfied) {
		return StepResult{Step: name, Status: StatusSatisfied}
	}
	if satisfied && verifiable {
		if err := r.ledger.Record(ctx, name); err != nil {
			return StepResult{Step: name, Status: StatusFailed, Err: err}
		}
		return StepResult{Step: name, Status: StatusSatisfied}
	}

	stmts := step.Statements(r.conn.Dialect)
	if len(stmts) == 0 {
		if err := r.ledger.Record(ctx, name); err != nil {
			return StepResult{Step: name, Status: StatusFailed, Err: err}
		}
		return StepResult{Step: name, Status: StatusSkipped}
	}

	if err := r.execute(ctx, name, stmts); err != nil {
		if step.SoftConflicts() && isSoftConflict(err) {
			// The backend says the end state already holds.
			if lerr := r.ledger.Record(ctx, name); lerr != nil {
				return StepResult{Step: name, Status: StatusFailed, Err: lerr}
			}
			return StepResult{Step: name, Status: StatusSatisfied}
		}
		return StepResult{Step: name, Status: StatusFailed, Err: err}
	}

	if err := r.ledger.Record(ctx, name); err != nil {
		return StepResult{Step: name, Status: StatusFailed, Err: err}
	}
	return StepResult{Step: name, Status: StatusApplied}
}

// execute runs the step's statements in one transaction, rolling back on
// the first rejection.
func (r *Runner) execute(ctx context.Context, name string, stmts []string) error {
	tx, err := r.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, stmt := range stmts {
		debug.SQL(name, stmt)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("statement rejected: %w\nSQL: %s", err, stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
