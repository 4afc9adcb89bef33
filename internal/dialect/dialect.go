// Package dialect classifies connection descriptors into the two SQL
// dialect families the bootstrap supports and maps them onto concrete
// database/sql drivers.
package dialect

import (
	"strconv"
	"strings"
)

// Family is a class of SQL engines sharing ALTER/CREATE syntax.
type Family int

const (
	// EmbeddedFile is the sqlite-style family: file-based engine, limited
	// ALTER support, text columns without fixed widths, no native JSON type.
	EmbeddedFile Family = iota
	// ClientServer is the postgres/mysql-style family: full ALTER and named
	// constraint support, native JSON column type.
	ClientServer
)

func (f Family) String() string {
	if f == EmbeddedFile {
		return "embedded-file"
	}
	return "client-server"
}

// Driver identifies the concrete database/sql driver behind a descriptor.
type Driver string

const (
	DriverSQLite   Driver = "sqlite3"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Classify derives the dialect family from a connection descriptor. It is a
// pure function over the descriptor string; a "sqlite" scheme (or a bare
// "file:" path) selects the embedded family, anything else the
// client-server family.
func Classify(url string) Family {
	if strings.HasPrefix(url, "sqlite") || strings.HasPrefix(url, "file:") {
		return EmbeddedFile
	}
	return ClientServer
}

// DetectDriver maps a connection descriptor onto a driver name.
func DetectDriver(url string) Driver {
	switch {
	case strings.HasPrefix(url, "sqlite"), strings.HasPrefix(url, "file:"):
		return DriverSQLite
	case strings.HasPrefix(url, "mysql:"):
		return DriverMySQL
	default:
		return DriverPostgres
	}
}

// DSN normalizes a connection descriptor into the string the driver's Open
// expects. Postgres drivers accept the URL as-is; the sqlite and mysql
// drivers want the scheme stripped.
func DSN(url string) string {
	switch DetectDriver(url) {
	case DriverSQLite:
		s := strings.TrimPrefix(url, "sqlite://")
		s = strings.TrimPrefix(s, "sqlite:")
		if s == "" {
			return ":memory:"
		}
		return s
	case DriverMySQL:
		return strings.TrimPrefix(url, "mysql://")
	default:
		return url
	}
}

// Dialect carries the driver and family for SQL spelling decisions.
type Dialect struct {
	Driver Driver
	Family Family
}

// New builds a Dialect from a connection descriptor.
func New(url string) Dialect {
	return Dialect{Driver: DetectDriver(url), Family: Classify(url)}
}

// JSONType returns the column type used for JSON payloads. The embedded
// family stores JSON as text; each server driver has its own native type.
func (d Dialect) JSONType() string {
	if d.Family == EmbeddedFile {
		return "TEXT"
	}
	if d.Driver == DriverMySQL {
		return "JSON"
	}
	return "JSONB"
}

// BoolLiteral spells a boolean default. SQLite predates true boolean
// literals in older deployments, so the embedded family uses 0/1.
func (d Dialect) BoolLiteral(v bool) string {
	if d.Family == EmbeddedFile {
		if v {
			return "1"
		}
		return "0"
	}
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// TimestampType returns the declared type for timestamp columns.
func (d Dialect) TimestampType() string {
	if d.Family == EmbeddedFile {
		return "DATETIME"
	}
	return "TIMESTAMP"
}

// SupportsAlterColumnType reports whether ALTER ... TYPE is available.
// SQLite cannot retype existing columns, but its text columns are unbounded
// so width migrations are documented no-ops there.
func (d Dialect) SupportsAlterColumnType() bool {
	return d.Family == ClientServer
}

// SupportsNamedConstraints reports whether ADD/DROP CONSTRAINT works.
func (d Dialect) SupportsNamedConstraints() bool {
	return d.Family == ClientServer
}

// Placeholder returns the bind placeholder for position n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.Driver == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rebind rewrites "?" placeholders into the driver's positional form.
func (d Dialect) Rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
