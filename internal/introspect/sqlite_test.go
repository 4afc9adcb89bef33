package introspect

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaverse/dbinit/internal/dialect"
)

func openSQLite(t *testing.T) Inspector {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(80) NOT NULL,
			bio TEXT
		)`)
	require.NoError(t, err)

	return New(db, dialect.New("sqlite://"))
}

func TestSQLiteTableExists(t *testing.T) {
	ctx := context.Background()
	insp := openSQLite(t)

	exists, err := insp.TableExists(ctx, "users")
	require.NoError(t, err)
	assert.True(t, exists)

	// Absence is an answer, not an error.
	exists, err = insp.TableExists(ctx, "projects")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteColumnExists(t *testing.T) {
	ctx := context.Background()
	insp := openSQLite(t)

	exists, err := insp.ColumnExists(ctx, "users", "username")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = insp.ColumnExists(ctx, "users", "email")
	require.NoError(t, err)
	assert.False(t, exists)

	// Missing table reads as missing column.
	exists, err = insp.ColumnExists(ctx, "projects", "name")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteColumnWidth(t *testing.T) {
	ctx := context.Background()
	insp := openSQLite(t)

	width, ok, err := insp.ColumnWidth(ctx, "users", "username")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 80, width)

	// Unbounded text declares no width.
	_, ok, err = insp.ColumnWidth(ctx, "users", "bio")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = insp.ColumnWidth(ctx, "users", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewPicksImplementation(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, isSQLite := New(db, dialect.New("sqlite://")).(*sqliteInspector)
	assert.True(t, isSQLite)

	_, isCatalog := New(db, dialect.New("postgresql://localhost/db")).(*catalogInspector)
	assert.True(t, isCatalog)
}
