// Package introspect: information_schema implementation shared by
// PostgreSQL and MySQL.
package introspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qaverse/dbinit/internal/dialect"
)

// catalogInspector implements Inspector over information_schema for the
// client-server engines.
type catalogInspector struct {
	db     *sql.DB
	driver dialect.Driver
}

// schemaPredicate narrows catalog queries to the application's schema:
// the public schema on PostgreSQL, the current database on MySQL.
func (i *catalogInspector) schemaPredicate() string {
	if i.driver == dialect.DriverMySQL {
		return "table_schema = DATABASE()"
	}
	return "table_schema = 'public'"
}

func (i *catalogInspector) TableExists(ctx context.Context, table string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE %s
		  AND table_name = %s
	`, i.schemaPredicate(), i.placeholder(1))

	var n int
	if err := i.db.QueryRowContext(ctx, query, table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to query information_schema.tables for %s: %w", table, err)
	}
	return n > 0, nil
}

func (i *catalogInspector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE %s
		  AND table_name = %s
		  AND column_name = %s
	`, i.schemaPredicate(), i.placeholder(1), i.placeholder(2))

	var n int
	if err := i.db.QueryRowContext(ctx, query, table, column).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to query information_schema.columns for %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

func (i *catalogInspector) ColumnWidth(ctx context.Context, table, column string) (int, bool, error) {
	query := fmt.Sprintf(`
		SELECT character_maximum_length
		FROM information_schema.columns
		WHERE %s
		  AND table_name = %s
		  AND column_name = %s
	`, i.schemaPredicate(), i.placeholder(1), i.placeholder(2))

	var width sql.NullInt64
	err := i.db.QueryRowContext(ctx, query, table, column).Scan(&width)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query declared width for %s.%s: %w", table, column, err)
	}
	if !width.Valid {
		// TEXT and unbounded varchar report NULL.
		return 0, false, nil
	}
	return int(width.Int64), true, nil
}

func (i *catalogInspector) placeholder(n int) string {
	return dialect.Dialect{Driver: i.driver}.Placeholder(n)
}
