// Package introspect reads the live database catalog. Every query runs
// against the engine's own metadata, never against a cached model, because
// each migration step may have just mutated the schema.
package introspect

import (
	"context"
	"database/sql"

	"github.com/qaverse/dbinit/internal/dialect"
)

// Inspector answers existence and shape questions about the live schema.
// All methods are read-only. Against a database that does not yet contain
// the application's tables every existence query returns false, not an
// error.
type Inspector interface {
	// TableExists reports whether the named table exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// ColumnExists reports whether the column exists on the table. A
	// missing table yields false.
	ColumnExists(ctx context.Context, table, column string) (bool, error)

	// ColumnWidth returns the declared character width of the column. ok is
	// false when the width is unknown: missing column, unbounded text type,
	// or an engine that does not declare widths.
	ColumnWidth(ctx context.Context, table, column string) (width int, ok bool, err error)
}

// New returns the inspector for the connection's engine.
func New(db *sql.DB, d dialect.Dialect) Inspector {
	if d.Driver == dialect.DriverSQLite {
		return &sqliteInspector{db: db}
	}
	return &catalogInspector{db: db, driver: d.Driver}
}
