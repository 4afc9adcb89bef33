package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qaverse/dbinit/internal/dialect"
	"github.com/qaverse/dbinit/internal/introspect"
)

// Conn bundles the single connection a run operates over with its dialect
// and inspector. It is threaded explicitly; nothing in this package keeps
// ambient database state.
type Conn struct {
	DB        *sql.DB
	Dialect   dialect.Dialect
	Inspector introspect.Inspector
}

// NewConn wraps an open connection.
func NewConn(db *sql.DB, d dialect.Dialect) *Conn {
	return &Conn{DB: db, Dialect: d, Inspector: introspect.New(db, d)}
}

// Step is a named idempotent unit of schema change.
//
// Satisfied evaluates the step's precondition against the live catalog.
// verifiable=false means the catalog cannot cheaply answer (constraint
// existence) and the applied-steps ledger is authoritative instead.
//
// Statements returns the DDL for the dialect; an empty slice marks the step
// a documented no-op under that dialect.
type Step interface {
	Name() string
	Requires() []string
	Satisfied(ctx context.Context, conn *Conn) (satisfied, verifiable bool, err error)
	Statements(d dialect.Dialect) []string
	// SoftConflicts reports whether backend duplicate-object errors count
	// as success for this step.
	SoftConflicts() bool
}

// AddColumn adds a column when it is missing. Under the embedded family a
// foreign key reference is inlined into the ADD COLUMN; the client-server
// family gets it from a companion AddConstraint step.
type AddColumn struct {
	ID     string
	Table  string
	Column ColumnDef
	After  []string
}

func (s AddColumn) Name() string        { return s.ID }
func (s AddColumn) Requires() []string  { return s.After }
func (s AddColumn) SoftConflicts() bool { return false }

func (s AddColumn) Satisfied(ctx context.Context, conn *Conn) (bool, bool, error) {
	exists, err := conn.Inspector.ColumnExists(ctx, s.Table, s.Column.Name)
	return exists, true, err
}

func (s AddColumn) Statements(d dialect.Dialect) []string {
	inline := d.Family == dialect.EmbeddedFile
	col := s.Column
	// SQLite only accepts constant defaults when altering an existing
	// table, so expression defaults apply to the server family alone.
	if inline && col.Default != nil && col.Default.expr {
		col.Default = nil
	}
	return []string{fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", s.Table, col.render(d, inline))}
}

// CreateTable creates a table from its blueprint when it is missing.
type CreateTable struct {
	ID    string
	Def   Table
	After []string
}

func (s CreateTable) Name() string        { return s.ID }
func (s CreateTable) Requires() []string  { return s.After }
func (s CreateTable) SoftConflicts() bool { return false }

func (s CreateTable) Satisfied(ctx context.Context, conn *Conn) (bool, bool, error) {
	exists, err := conn.Inspector.TableExists(ctx, s.Def.Name)
	return exists, true, err
}

func (s CreateTable) Statements(d dialect.Dialect) []string {
	return []string{s.Def.CreateSQL(d)}
}

// WidenColumn widens a varchar column to at least MinWidth characters. The
// embedded family has no fixed text widths, so the step is a documented
// no-op there.
type WidenColumn struct {
	ID       string
	Table    string
	Column   string
	MinWidth int
	After    []string
}

func (s WidenColumn) Name() string        { return s.ID }
func (s WidenColumn) Requires() []string  { return s.After }
func (s WidenColumn) SoftConflicts() bool { return false }

func (s WidenColumn) Satisfied(ctx context.Context, conn *Conn) (bool, bool, error) {
	if !conn.Dialect.SupportsAlterColumnType() {
		// Unbounded text; nothing to widen.
		return true, true, nil
	}
	width, known, err := conn.Inspector.ColumnWidth(ctx, s.Table, s.Column)
	if err != nil {
		return false, true, err
	}
	// Unknown width means widen anyway, matching the conservative policy.
	return known && width >= s.MinWidth, true, nil
}

func (s WidenColumn) Statements(d dialect.Dialect) []string {
	if !d.SupportsAlterColumnType() {
		return nil
	}
	if d.Driver == dialect.DriverMySQL {
		return []string{fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s VARCHAR(%d)", s.Table, s.Column, s.MinWidth)}
	}
	return []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE VARCHAR(%d)", s.Table, s.Column, s.MinWidth)}
}

// AddConstraint adds a named constraint, optionally dropping stale
// constraints first (used to rewrite foreign keys with CASCADE). Duplicate
// errors from the backend count as success: the desired end state already
// holds. Constraint existence is not cheaply verifiable through
// information_schema on every engine, so the ledger is authoritative.
type AddConstraint struct {
	ID         string
	Table      string
	Constraint string
	// Definition is the constraint body, e.g.
	// "UNIQUE (project_id, name)" or
	// "FOREIGN KEY (user_id) REFERENCES users(id)".
	Definition string
	// DropFirst lists constraint names to drop before adding.
	DropFirst []string
	After     []string
}

func (s AddConstraint) Name() string        { return s.ID }
func (s AddConstraint) Requires() []string  { return s.After }
func (s AddConstraint) SoftConflicts() bool { return true }

func (s AddConstraint) Satisfied(ctx context.Context, conn *Conn) (bool, bool, error) {
	if !conn.Dialect.SupportsNamedConstraints() {
		return true, true, nil
	}
	return false, false, nil
}

func (s AddConstraint) Statements(d dialect.Dialect) []string {
	if !d.SupportsNamedConstraints() {
		return nil
	}
	var stmts []string
	for _, name := range s.DropFirst {
		stmts = append(stmts, dropConstraintSQL(d, s.Table, name))
	}
	stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s", s.Table, s.Constraint, s.Definition))
	return stmts
}

// DropConstraint removes a named constraint if present. A missing
// constraint is success.
type DropConstraint struct {
	ID         string
	Table      string
	Constraint string
	After      []string
}

func (s DropConstraint) Name() string        { return s.ID }
func (s DropConstraint) Requires() []string  { return s.After }
func (s DropConstraint) SoftConflicts() bool { return true }

func (s DropConstraint) Satisfied(ctx context.Context, conn *Conn) (bool, bool, error) {
	if !conn.Dialect.SupportsNamedConstraints() {
		return true, true, nil
	}
	return false, false, nil
}

func (s DropConstraint) Statements(d dialect.Dialect) []string {
	if !d.SupportsNamedConstraints() {
		return nil
	}
	return []string{dropConstraintSQL(d, s.Table, s.Constraint)}
}

func dropConstraintSQL(d dialect.Dialect, table, name string) string {
	if d.Driver == dialect.DriverMySQL {
		// MySQL has no IF EXISTS here; the soft-conflict policy absorbs a
		// missing constraint.
		return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, name)
	}
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s", table, name)
}
