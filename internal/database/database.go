// Package database opens and tunes the single connection the bootstrap
// runs over.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/qaverse/dbinit/internal/debug"
	"github.com/qaverse/dbinit/internal/dialect"
)

// minPostgresVersion is the oldest server the catalog's JSONB columns work
// on.
const minPostgresVersion = "9.4"

const connectTimeout = 30 * time.Second

// Open connects to the database named by the connection descriptor and
// verifies it is usable. The caller owns the returned handle for the
// lifetime of the run.
func Open(ctx context.Context, url string) (*sql.DB, dialect.Dialect, error) {
	d := dialect.New(url)
	debug.Info("opening database", "driver", d.Driver, "family", d.Family.String())

	db, err := sql.Open(string(d.Driver), dialect.DSN(url))
	if err != nil {
		return nil, d, fmt.Errorf("failed to open database: %w", err)
	}

	if d.Driver == dialect.DriverSQLite {
		// SQLite wants a single writer; DDL and seeding are strictly
		// sequential anyway.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, d, fmt.Errorf("failed to ping database: %w", err)
	}

	if d.Driver == dialect.DriverSQLite {
		if _, err := db.ExecContext(pingCtx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, d, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if d.Driver == dialect.DriverPostgres {
		if err := checkPostgresVersion(pingCtx, db); err != nil {
			db.Close()
			return nil, d, err
		}
	}

	return db, d, nil
}

// checkPostgresVersion refuses servers too old for the JSONB columns the
// catalog creates.
func checkPostgresVersion(ctx context.Context, db *sql.DB) error {
	var raw string
	if err := db.QueryRowContext(ctx, "SHOW server_version").Scan(&raw); err != nil {
		return fmt.Errorf("failed to read server_version: %w", err)
	}

	// Strip vendor suffixes like "16.2 (Debian 16.2-1.pgdg120+2)".
	if i := strings.IndexByte(raw, ' '); i > 0 {
		raw = raw[:i]
	}

	current, err := goversion.NewVersion(raw)
	if err != nil {
		// Unparseable version strings come from forks; let them through.
		return nil
	}

	minimum := goversion.Must(goversion.NewVersion(minPostgresVersion))
	if current.LessThan(minimum) {
		return fmt.Errorf("postgresql %s is too old: JSONB columns require %s or newer", raw, minPostgresVersion)
	}
	return nil
}
