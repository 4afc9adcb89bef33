package migrate

import (
	"context"
	"fmt"

	"github.com/qaverse/dbinit/internal/dialect"
)

// ledgerTable records which catalog steps have been applied. It is the
// source of truth for "already done"; live introspection stays on as a
// consistency check so that a hand-dropped column is re-added on the next
// run.
const ledgerTable = "schema_migrations"

// Ledger tracks applied step names in the target database itself.
type Ledger struct {
	conn *Conn
}

// NewLedger creates a ledger over the run's connection.
func NewLedger(conn *Conn) *Ledger {
	return &Ledger{conn: conn}
}

// EnsureTable creates the ledger table. This must succeed before any
// catalog step runs.
func (l *Ledger) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			step_name VARCHAR(255) PRIMARY KEY,
			applied_at %s DEFAULT CURRENT_TIMESTAMP
		)`, ledgerTable, l.conn.Dialect.TimestampType())

	if _, err := l.conn.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create %s table: %w", ledgerTable, err)
	}
	return nil
}

// Applied reports whether the named step has been recorded.
func (l *Ledger) Applied(ctx context.Context, name string) (bool, error) {
	query := l.conn.Dialect.Rebind(
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE step_name = ?", ledgerTable))

	var n int
	if err := l.conn.DB.QueryRowContext(ctx, query, name).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to query ledger for %s: %w", name, err)
	}
	return n > 0, nil
}

// Record marks the named step applied. Recording twice is harmless.
func (l *Ledger) Record(ctx context.Context, name string) error {
	var query string
	switch l.conn.Dialect.Driver {
	case dialect.DriverSQLite:
		query = fmt.Sprintf("INSERT OR IGNORE INTO %s (step_name) VALUES (?)", ledgerTable)
	case dialect.DriverMySQL:
		query = fmt.Sprintf("INSERT IGNORE INTO %s (step_name) VALUES (?)", ledgerTable)
	default:
		query = fmt.Sprintf("INSERT INTO %s (step_name) VALUES ($1) ON CONFLICT (step_name) DO NOTHING", ledgerTable)
	}

	if _, err := l.conn.DB.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to record %s in ledger: %w", name, err)
	}
	return nil
}
