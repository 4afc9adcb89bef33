// Package migrate owns the fixed catalog of idempotent schema steps and
// the runner that applies them.
package migrate

import (
	"fmt"
	"strings"

	"github.com/qaverse/dbinit/internal/dialect"
)

// Portable type names resolved per dialect family at render time.
const (
	// TypeJSON renders as JSONB on the client-server family and TEXT on
	// the embedded family.
	TypeJSON = "JSON"
	// TypeTimestamp renders as TIMESTAMP or DATETIME.
	TypeTimestamp = "TIMESTAMP"
)

// FK is a foreign key reference from a column.
type FK struct {
	Table    string
	Column   string
	OnDelete string // "", "CASCADE", "SET NULL"
}

// Default is a column default literal, spelled per dialect.
type Default struct {
	raw    string
	expr   bool
	isBool bool
	b      bool
}

// DefaultRaw uses the expression verbatim (e.g. CURRENT_TIMESTAMP).
func DefaultRaw(expr string) *Default { return &Default{raw: expr, expr: true} }

// DefaultString quotes a string literal.
func DefaultString(s string) *Default { return &Default{raw: "'" + s + "'"} }

// DefaultInt uses an integer literal.
func DefaultInt(n int) *Default { return &Default{raw: fmt.Sprintf("%d", n)} }

// DefaultBool uses the family's boolean literal (TRUE/FALSE vs 1/0).
func DefaultBool(v bool) *Default { return &Default{isBool: true, b: v} }

func (v *Default) literal(d dialect.Dialect) string {
	if v.isBool {
		return d.BoolLiteral(v.b)
	}
	return v.raw
}

// ColumnDef describes one column of a table blueprint.
type ColumnDef struct {
	Name       string
	Type       string // concrete SQL type or TypeJSON/TypeTimestamp
	NotNull    bool
	PrimaryKey bool
	Unique     bool
	Default    *Default
	References *FK
}

// resolveType maps the portable type names onto the dialect.
func resolveType(t string, d dialect.Dialect) string {
	switch t {
	case TypeJSON:
		return d.JSONType()
	case TypeTimestamp:
		return d.TimestampType()
	default:
		return t
	}
}

// render spells the column for a CREATE TABLE or ADD COLUMN clause. Foreign
// keys are inlined only for the embedded family; the client-server family
// declares them as named table constraints instead.
func (c ColumnDef) render(d dialect.Dialect, inlineFK bool) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(resolveType(c.Type, d))
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default.literal(d))
	}
	if c.References != nil && inlineFK {
		fmt.Fprintf(&b, " REFERENCES %s(%s)", c.References.Table, c.References.Column)
		if c.References.OnDelete != "" {
			b.WriteString(" ON DELETE ")
			b.WriteString(c.References.OnDelete)
		}
	}
	return b.String()
}

// Table is a blueprint for one catalog table.
type Table struct {
	Name    string
	Columns []ColumnDef
}

// constraintName derives the named-constraint identifier for a column FK.
func constraintName(table, column string) string {
	return fmt.Sprintf("fk_%s_%s", table, column)
}

// CreateSQL renders the full CREATE TABLE IF NOT EXISTS statement for the
// dialect. Embedded family: inline column references. Client-server family:
// named CONSTRAINT ... FOREIGN KEY clauses after the column list.
func (t Table) CreateSQL(d dialect.Dialect) string {
	inline := d.Family == dialect.EmbeddedFile

	parts := make([]string, 0, len(t.Columns)+2)
	for _, c := range t.Columns {
		parts = append(parts, "\t"+c.render(d, inline))
	}
	if !inline {
		for _, c := range t.Columns {
			if c.References == nil {
				continue
			}
			clause := fmt.Sprintf("\tCONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
				constraintName(t.Name, c.Name), c.Name, c.References.Table, c.References.Column)
			if c.References.OnDelete != "" {
				clause += " ON DELETE " + c.References.OnDelete
			}
			parts = append(parts, clause)
		}
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", t.Name, strings.Join(parts, ",\n"))
}
