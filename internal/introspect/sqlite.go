// Package introspect: SQLite implementation over sqlite_master and PRAGMA
// table_info.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
)

// sqliteInspector implements Inspector for SQLite.
type sqliteInspector struct {
	db *sql.DB
}

func (i *sqliteInspector) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table'
		  AND name = ?
	`

	var n int
	if err := i.db.QueryRowContext(ctx, query, table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to query sqlite_master for %s: %w", table, err)
	}
	return n > 0, nil
}

func (i *sqliteInspector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	_, found, err := i.columnType(ctx, table, column)
	return found, err
}

// widthPattern matches the parenthesized length of declared types like
// VARCHAR(36) or character varying(255).
var widthPattern = regexp.MustCompile(`\(\s*(\d+)\s*\)`)

func (i *sqliteInspector) ColumnWidth(ctx context.Context, table, column string) (int, bool, error) {
	declared, found, err := i.columnType(ctx, table, column)
	if err != nil || !found {
		return 0, false, err
	}

	m := widthPattern.FindStringSubmatch(declared)
	if m == nil {
		// TEXT and friends carry no declared width; SQLite does not enforce
		// one either way.
		return 0, false, nil
	}
	width, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, nil
	}
	return width, true, nil
}

// columnType reads the declared type of a column via PRAGMA table_info.
// PRAGMA on a missing table returns an empty row set, which maps to
// found=false.
func (i *sqliteInspector) columnType(ctx context.Context, table, column string) (string, bool, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return "", false, fmt.Errorf("failed to query table_info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			declared  string
			notNull   int
			dfltValue sql.NullString
			isPk      int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dfltValue, &isPk); err != nil {
			return "", false, fmt.Errorf("failed to scan column: %w", err)
		}
		if name == column {
			return declared, true, nil
		}
	}
	return "", false, rows.Err()
}
