package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qaverse/dbinit/internal/database"
	"github.com/qaverse/dbinit/internal/dialect"
	"github.com/qaverse/dbinit/internal/migrate"
)

func openMigrated(t *testing.T) (*sql.DB, dialect.Dialect) {
	t.Helper()
	ctx := context.Background()

	db, d, err := database.Open(ctx, "sqlite://")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	report, err := migrate.NewRunner(migrate.NewConn(db, d), migrate.DefaultCatalog()).RunAll(ctx)
	require.NoError(t, err)
	require.Zero(t, report.Failed())

	return db, d
}

func TestRunSeedsFreshDatabase(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)

	report, err := New(db, d).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.UsersCreated)
	assert.Equal(t, 3, report.Projects)
	assert.Equal(t, 9, report.TestRuns)
	assert.Equal(t, 9, report.Phases)
	assert.Equal(t, 18, report.Plans)
	assert.Equal(t, 18, report.Packages)
}

func TestAdminAccounts(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)

	_, err := New(db, d).Run(ctx)
	require.NoError(t, err)

	var (
		username, fullName, role, pref, hash string
		active, verified                     bool
	)
	err = db.QueryRowContext(ctx, `
		SELECT username, full_name, role, ai_model_preference, password_hash,
		       is_active, email_verified
		FROM users WHERE email = 'admin@qaverse.com'`).
		Scan(&username, &fullName, &role, &pref, &hash, &active, &verified)
	require.NoError(t, err)

	assert.Equal(t, "admin", username)
	assert.Equal(t, "QAVerse Administrator", fullName)
	assert.Equal(t, "admin", role)
	assert.Equal(t, "gpt-5", pref)
	assert.True(t, active)
	assert.True(t, verified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin")))

	err = db.QueryRowContext(ctx,
		"SELECT full_name FROM users WHERE email = 'miriam.dahmoun@gmail.com'").Scan(&fullName)
	require.NoError(t, err)
	assert.Equal(t, "Miriam Dahmoun", fullName)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)
	seeder := New(db, d)

	_, err := seeder.Run(ctx)
	require.NoError(t, err)

	second, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Report{}, second, "populated database must take zero inserts")

	var users, projects int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&users))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&projects))
	assert.Equal(t, 2, users)
	assert.Equal(t, 3, projects)
}

func TestAdminGuardReturnsExistingID(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)
	seeder := New(db, d)

	rep := &Report{}
	first, err := seeder.EnsureAdminAccounts(ctx, rep)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := seeder.EnsureAdminAccounts(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, rep.UsersCreated)
}

func TestBackfillsModelPreference(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)

	// A user from before the preference column carried a value.
	_, err := db.ExecContext(ctx, d.Rebind(`
		INSERT INTO users (id, username, email, ai_model_preference)
		VALUES (?, 'old', 'old@qaverse.com', '')`),
		uuid.NewString())
	require.NoError(t, err)

	rep := &Report{}
	_, err = New(db, d).EnsureAdminAccounts(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.UsersBackfilled)

	var pref string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT ai_model_preference FROM users WHERE email = 'old@qaverse.com'").Scan(&pref))
	assert.Equal(t, "gpt-5", pref)
}

func TestProjectsSkippedWhenAnyExist(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)

	_, err := db.ExecContext(ctx, d.Rebind(
		"INSERT INTO projects (id, name, status) VALUES (?, 'Existing', 'active')"),
		uuid.NewString())
	require.NoError(t, err)

	rep := &Report{}
	require.NoError(t, New(db, d).EnsureSampleProjects(ctx, "owner", rep))
	assert.Zero(t, rep.Projects)
}

func TestRunMetadataCarriesDomainProfile(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)

	_, err := New(db, d).Run(ctx)
	require.NoError(t, err)

	var meta string
	err = db.QueryRowContext(ctx, `
		SELECT meta_data FROM test_runs
		WHERE name = 'Initial Requirements Analysis - Banking Application'`).Scan(&meta)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(meta), &decoded))
	assert.Equal(t, true, decoded["hasDomainExpertise"])
	info, ok := decoded["domain_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Banking and Financial Services", info["primary_business_domain"])

	// The regression run carries no expertise block.
	err = db.QueryRowContext(ctx, `
		SELECT meta_data FROM test_runs
		WHERE name = 'Sprint 1 Regression - Healthcare Portal'`).Scan(&meta)
	require.NoError(t, err)
	decoded = map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(meta), &decoded))
	assert.Equal(t, false, decoded["hasDomainExpertise"])
	assert.NotContains(t, decoded, "domain_info")
}

func TestPhaseStructuresPerProject(t *testing.T) {
	ctx := context.Background()
	db, d := openMigrated(t)
	seeder := New(db, d)

	_, err := seeder.Run(ctx)
	require.NoError(t, err)

	var active int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM test_plans WHERE status = 'active'").Scan(&active))
	// One in-progress phase per project, two plans each.
	assert.Equal(t, 6, active)

	// A project added later picks up the structure on the next pass while
	// seeded projects stay untouched.
	newProject := uuid.NewString()
	_, err = db.ExecContext(ctx, d.Rebind(
		"INSERT INTO projects (id, name, status) VALUES (?, 'Late Project', 'active')"),
		newProject)
	require.NoError(t, err)

	rep := &Report{}
	require.NoError(t, seeder.EnsurePhaseStructures(ctx, rep))
	assert.Equal(t, 3, rep.Phases)
	assert.Equal(t, 6, rep.Plans)
	assert.Equal(t, 6, rep.Packages)

	var phases int
	require.NoError(t, db.QueryRowContext(ctx, d.Rebind(
		"SELECT COUNT(*) FROM test_phases WHERE project_id = ?"), newProject).Scan(&phases))
	assert.Equal(t, 3, phases)
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, "Banking and Financial Services",
		ProfileFor("Banking Application").DomainInfo.PrimaryBusinessDomain)
	assert.Equal(t, "E-Commerce and Retail",
		ProfileFor("E-Commerce Platform").DomainInfo.PrimaryBusinessDomain)
	assert.Equal(t, "Healthcare and Medical Services",
		ProfileFor("Healthcare Portal").DomainInfo.PrimaryBusinessDomain)
	// Anything unrecognized falls back to healthcare.
	assert.Equal(t, "Healthcare and Medical Services",
		ProfileFor("Mystery System").DomainInfo.PrimaryBusinessDomain)
}

func TestStageNames(t *testing.T) {
	names := []string{}
	for s := StageIdle; s <= StageDone; s++ {
		names = append(names, s.String())
	}
	assert.Equal(t, "idle admin accounts sample projects sample test runs test management structures done",
		strings.Join(names, " "))
}
