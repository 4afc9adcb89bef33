package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qaverse/dbinit/internal/dialect"
)

// Stage names a phase of the bootstrap state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageAdmins
	StageProjects
	StageRuns
	StagePhaseStructures
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAdmins:
		return "admin accounts"
	case StageProjects:
		return "sample projects"
	case StageRuns:
		return "sample test runs"
	case StagePhaseStructures:
		return "test management structures"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Report counts what a bootstrap pass actually inserted. Zero counts mean
// the database already carried the data.
type Report struct {
	UsersCreated    int
	UsersBackfilled int
	Projects        int
	TestRuns        int
	Phases          int
	Plans           int
	Packages        int
}

// Seeder walks the bootstrap stages over an already migrated database.
// Each stage commits independently so a failure never unwinds earlier
// stages.
type Seeder struct {
	db *sql.DB
	d  dialect.Dialect

	// Progress, when set, is called as each stage begins.
	Progress func(Stage)

	now func() time.Time
}

func New(db *sql.DB, d dialect.Dialect) *Seeder {
	return &Seeder{db: db, d: d, now: time.Now}
}

// Run executes the stage machine from idle through done and reports what
// was inserted.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	rep := &Report{}
	adminID := ""
	for stage := StageIdle; stage != StageDone; {
		next := stage + 1
		if s.Progress != nil && next != StageDone {
			s.Progress(next)
		}
		switch next {
		case StageAdmins:
			id, err := s.EnsureAdminAccounts(ctx, rep)
			if err != nil {
				return rep, fmt.Errorf("admin accounts: %w", err)
			}
			adminID = id
		case StageProjects:
			if err := s.EnsureSampleProjects(ctx, adminID, rep); err != nil {
				return rep, fmt.Errorf("sample projects: %w", err)
			}
		case StageRuns:
			if err := s.EnsureSampleRuns(ctx, adminID, rep); err != nil {
				return rep, fmt.Errorf("sample test runs: %w", err)
			}
		case StagePhaseStructures:
			if err := s.EnsurePhaseStructures(ctx, rep); err != nil {
				return rep, fmt.Errorf("test management structures: %w", err)
			}
		}
		stage = next
	}
	if s.Progress != nil {
		s.Progress(StageDone)
	}
	return rep, nil
}

type account struct {
	username string
	email    string
	fullName string
	password string
}

var defaultAccounts = []account{
	{username: "admin", email: "admin@qaverse.com", fullName: "QAVerse Administrator", password: "admin"},
	{username: "miriam", email: "miriam.dahmoun@gmail.com", fullName: "Miriam Dahmoun", password: "password123"},
}

// EnsureAdminAccounts inserts the default admin accounts, guarded by email,
// and returns the primary admin's id. It also backfills the model
// preference on any pre-existing user rows that lack one.
func (s *Seeder) EnsureAdminAccounts(ctx context.Context, rep *Report) (string, error) {
	adminID := ""
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for i, acct := range defaultAccounts {
		var existing string
		err := tx.QueryRowContext(ctx,
			s.d.Rebind("SELECT id FROM users WHERE email = ?"), acct.email,
		).Scan(&existing)
		switch {
		case err == nil:
			if i == 0 {
				adminID = existing
			}
			continue
		case err != sql.ErrNoRows:
			return "", err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acct.password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		id := uuid.NewString()
		now := s.now()
		_, err = tx.ExecContext(ctx, s.d.Rebind(`
			INSERT INTO users
				(id, username, email, password_hash, full_name, role,
				 is_active, email_verified, ai_model_preference,
				 created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, 'admin', ?, ?, 'gpt-5', ?, ?)`),
			id, acct.username, acct.email, string(hash), acct.fullName,
			true, true, now, now)
		if err != nil {
			return "", err
		}
		rep.UsersCreated++
		if i == 0 {
			adminID = id
		}
	}

	res, err := tx.ExecContext(ctx, s.d.Rebind(
		"UPDATE users SET ai_model_preference = 'gpt-5' WHERE ai_model_preference IS NULL OR ai_model_preference = ''"))
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil {
		rep.UsersBackfilled += int(n)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return adminID, nil
}

type sampleProject struct {
	name        string
	description string
}

var sampleProjects = []sampleProject{
	{
		name:        "E-Commerce Platform",
		description: "Online shopping platform with user accounts, product catalog, and checkout process.",
	},
	{
		name:        "Banking Application",
		description: "Secure banking application with account management, transfers, and bill payments.",
	},
	{
		name:        "Healthcare Portal",
		description: "Patient portal for appointment scheduling, medical records, and communication with providers.",
	},
}

// EnsureSampleProjects inserts the sample projects owned by ownerID. Any
// existing project row means a populated database and the stage is skipped
// wholesale.
func (s *Seeder) EnsureSampleProjects(ctx context.Context, ownerID string, rep *Report) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range sampleProjects {
		now := s.now()
		_, err := tx.ExecContext(ctx, s.d.Rebind(`
			INSERT INTO projects
				(id, user_id, name, description, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'active', ?, ?)`),
			uuid.NewString(), ownerID, p.name, p.description, now, now)
		if err != nil {
			return err
		}
		rep.Projects++
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}

type runMeta struct {
	HasAnalysis        bool `json:"hasAnalysis"`
	HasBddFeatures     bool `json:"hasBddFeatures"`
	HasManualTestCases bool `json:"hasManualTestCases"`
	HasDomainExpertise bool `json:"hasDomainExpertise"`
	*DomainProfile
}

// EnsureSampleRuns inserts three representative test runs per project, with
// the domain expertise profile matching the project embedded in meta_data.
// Skipped entirely when any test run exists.
func (s *Seeder) EnsureSampleRuns(ctx context.Context, ownerID string, rep *Report) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM test_runs").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM projects")
	if err != nil {
		return err
	}
	defer rows.Close()

	type proj struct{ id, name string }
	var projects []proj
	for rows.Next() {
		var p proj
		if err := rows.Scan(&p.id, &p.name); err != nil {
			return err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	for _, p := range projects {
		profile := ProfileFor(p.name)
		runs := []struct {
			name      string
			status    string
			runType   string
			started   time.Time
			completed *time.Time
			tests     [4]int // total, passed, failed, skipped
			scenarios [4]int // total, passed, failed, pending
			meta      runMeta
		}{
			{
				name:    "Initial Requirements Analysis - " + p.name,
				status:  "passed",
				runType: "bdd",
				started: now.AddDate(0, 0, -30), completed: timePtr(now.AddDate(0, 0, -29)),
				tests:     [4]int{10, 8, 1, 1},
				scenarios: [4]int{15, 12, 2, 1},
				meta: runMeta{
					HasAnalysis: true, HasBddFeatures: true,
					HasManualTestCases: true, HasDomainExpertise: true,
					DomainProfile: profile,
				},
			},
			{
				name:    "Sprint 1 Regression - " + p.name,
				status:  "passed",
				runType: "selenium",
				started: now.AddDate(0, 0, -15), completed: timePtr(now.AddDate(0, 0, -14)),
				tests: [4]int{15, 13, 2, 0},
				meta:  runMeta{},
			},
			{
				name:      "Sprint 2 Features - " + p.name,
				status:    "running",
				runType:   "bdd",
				started:   now.Add(-2 * time.Hour),
				tests:     [4]int{8, 3, 1, 4},
				scenarios: [4]int{12, 5, 2, 5},
				meta: runMeta{
					HasAnalysis: true, HasBddFeatures: true,
					HasManualTestCases: true, HasDomainExpertise: true,
					DomainProfile: profile,
				},
			},
		}

		for _, r := range runs {
			meta, err := json.Marshal(r.meta)
			if err != nil {
				return err
			}
			var completed interface{}
			if r.completed != nil {
				completed = *r.completed
			}
			_, err = tx.ExecContext(ctx, s.d.Rebind(`
				INSERT INTO test_runs
					(id, project_id, user_id, name, status, type,
					 started_at, completed_at,
					 total_tests, passed_tests, failed_tests, skipped_tests,
					 total_scenarios, passed_scenarios, failed_scenarios, pending_scenarios,
					 meta_data, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				uuid.NewString(), p.id, ownerID, r.name, r.status, r.runType,
				r.started, completed,
				r.tests[0], r.tests[1], r.tests[2], r.tests[3],
				r.scenarios[0], r.scenarios[1], r.scenarios[2], r.scenarios[3],
				string(meta), now, now)
			if err != nil {
				return err
			}
			rep.TestRuns++
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}

// EnsurePhaseStructures inserts three phases per project with two plans and
// two packages each. Projects that already carry phases are left alone, so
// new projects can pick up the structure on a later run.
func (s *Seeder) EnsurePhaseStructures(ctx context.Context, rep *Report) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM projects")
	if err != nil {
		return err
	}
	defer rows.Close()

	var projectIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		projectIDs = append(projectIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, projectID := range projectIDs {
		var count int
		err := s.db.QueryRowContext(ctx,
			s.d.Rebind("SELECT COUNT(*) FROM test_phases WHERE project_id = ?"), projectID,
		).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.seedProjectPhases(ctx, projectID, rep); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedProjectPhases(ctx context.Context, projectID string, rep *Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	phases := []struct {
		name        string
		description string
		status      string
		start, end  time.Time
	}{
		{
			name:        "Requirements Analysis Phase",
			description: "Initial analysis and BDD scenario generation",
			status:      "completed",
			start:       now.AddDate(0, 0, -45), end: now.AddDate(0, 0, -30),
		},
		{
			name:        "Development Testing Phase",
			description: "Unit and integration testing during development",
			status:      "in_progress",
			start:       now.AddDate(0, 0, -30), end: now.AddDate(0, 0, 15),
		},
		{
			name:        "System Testing Phase",
			description: "End-to-end system testing and validation",
			status:      "planned",
			start:       now.AddDate(0, 0, 15), end: now.AddDate(0, 0, 45),
		},
	}

	for _, ph := range phases {
		phaseID := uuid.NewString()
		_, err := tx.ExecContext(ctx, s.d.Rebind(`
			INSERT INTO test_phases
				(id, project_id, name, description, status,
				 start_date, end_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			phaseID, projectID, ph.name, ph.description, ph.status,
			ph.start, ph.end, now, now)
		if err != nil {
			return err
		}
		rep.Phases++

		// Plans and packages inherit activity from the phase.
		status := "draft"
		if ph.status == "in_progress" {
			status = "active"
		}

		plans := []struct{ suffix, description string }{
			{" - Functional Tests", "Functional testing plan"},
			{" - Security Tests", "Security testing plan"},
		}
		for _, pl := range plans {
			_, err := tx.ExecContext(ctx, s.d.Rebind(`
				INSERT INTO test_plans
					(id, test_phase_id, name, description, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`),
				uuid.NewString(), phaseID, ph.name+pl.suffix, pl.description, status, now, now)
			if err != nil {
				return err
			}
			rep.Plans++
		}

		packages := []struct{ suffix, description string }{
			{" - Smoke Tests", "Smoke testing package"},
			{" - Regression Tests", "Regression testing package"},
		}
		for _, pk := range packages {
			_, err := tx.ExecContext(ctx, s.d.Rebind(`
				INSERT INTO test_packages
					(id, test_phase_id, name, description, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`),
				uuid.NewString(), phaseID, ph.name+pk.suffix, pk.description, status, now, now)
			if err != nil {
				return err
			}
			rep.Packages++
		}
	}
	return tx.Commit()
}

func timePtr(t time.Time) *time.Time { return &t }
