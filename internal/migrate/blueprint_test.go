package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qaverse/dbinit/internal/dialect"
)

var (
	embedded     = dialect.Dialect{Driver: dialect.DriverSQLite, Family: dialect.EmbeddedFile}
	postgres     = dialect.Dialect{Driver: dialect.DriverPostgres, Family: dialect.ClientServer}
	mysqlDialect = dialect.Dialect{Driver: dialect.DriverMySQL, Family: dialect.ClientServer}
)

func TestCreateSQLEmbeddedFamily(t *testing.T) {
	ddl := workflowExecutionsTable.CreateSQL(embedded)

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS workflow_executions")
	// JSON payloads become plain text, booleans become 0/1, and foreign
	// keys are inlined on the column.
	assert.NotContains(t, ddl, "JSONB")
	assert.Contains(t, ddl, "input_data TEXT")
	assert.Contains(t, ddl, "workflow_id VARCHAR(36) NOT NULL REFERENCES workflows(id) ON DELETE CASCADE")
	assert.NotContains(t, ddl, "CONSTRAINT fk_")
}

func TestCreateSQLClientServerFamily(t *testing.T) {
	ddl := workflowExecutionsTable.CreateSQL(postgres)

	assert.Contains(t, ddl, "input_data JSONB")
	assert.Contains(t, ddl, "CONSTRAINT fk_workflow_executions_workflow_id FOREIGN KEY (workflow_id) REFERENCES workflows(id) ON DELETE CASCADE")
	// No inline references on the column itself.
	assert.Contains(t, ddl, "workflow_id VARCHAR(36) NOT NULL,")

	// MySQL shares the server shape but spells the JSON type its own way.
	my := workflowExecutionsTable.CreateSQL(mysqlDialect)
	assert.Contains(t, my, "input_data JSON")
	assert.NotContains(t, my, "JSONB")
}

func TestCreateSQLBooleanDefaults(t *testing.T) {
	assert.Contains(t, usersTable.CreateSQL(embedded), "is_active BOOLEAN DEFAULT 1")
	assert.Contains(t, usersTable.CreateSQL(postgres), "is_active BOOLEAN DEFAULT TRUE")
}

func TestAddColumnStatements(t *testing.T) {
	step := AddColumn{ID: "projects_user_id_column", Table: "projects", Column: ref("user_id", "users")}

	lite := step.Statements(embedded)
	assert.Len(t, lite, 1)
	assert.Equal(t, "ALTER TABLE projects ADD COLUMN user_id VARCHAR(36) REFERENCES users(id)", lite[0])

	pg := step.Statements(postgres)
	assert.Equal(t, "ALTER TABLE projects ADD COLUMN user_id VARCHAR(36)", pg[0])
}

func TestAddColumnDropsExpressionDefaultOnEmbedded(t *testing.T) {
	step := AddColumn{
		ID:    "sdd_reviews_analyzed_at_column",
		Table: "sdd_reviews",
		Column: ColumnDef{
			Name: "analyzed_at", Type: TypeTimestamp,
			Default: DefaultRaw("CURRENT_TIMESTAMP"),
		},
	}

	assert.Equal(t,
		"ALTER TABLE sdd_reviews ADD COLUMN analyzed_at DATETIME",
		step.Statements(embedded)[0])
	assert.Equal(t,
		"ALTER TABLE sdd_reviews ADD COLUMN analyzed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
		step.Statements(postgres)[0])
}

func TestWidenColumnStatements(t *testing.T) {
	step := WidenColumn{ID: "bdd_scenarios_name_widened", Table: "bdd_scenarios", Column: "name", MinWidth: 1000}

	assert.Empty(t, step.Statements(embedded))
	assert.Equal(t,
		[]string{"ALTER TABLE bdd_scenarios ALTER COLUMN name TYPE VARCHAR(1000)"},
		step.Statements(postgres))
	assert.Equal(t,
		[]string{"ALTER TABLE bdd_scenarios MODIFY COLUMN name VARCHAR(1000)"},
		step.Statements(mysqlDialect))
}

func TestAddConstraintStatements(t *testing.T) {
	step := AddConstraint{
		ID:         "test_plan_test_runs_cascade_fk",
		Table:      "test_plan_test_runs",
		Constraint: "fk_test_plan_test_runs_test_run_id_cascade",
		Definition: "FOREIGN KEY (test_run_id) REFERENCES test_runs(id) ON DELETE CASCADE",
		DropFirst:  []string{"test_plan_test_runs_test_run_id_fkey"},
	}

	assert.Empty(t, step.Statements(embedded))

	pg := step.Statements(postgres)
	assert.Len(t, pg, 2)
	assert.Equal(t, "ALTER TABLE test_plan_test_runs DROP CONSTRAINT IF EXISTS test_plan_test_runs_test_run_id_fkey", pg[0])
	assert.Contains(t, pg[1], "ADD CONSTRAINT fk_test_plan_test_runs_test_run_id_cascade")

	my := step.Statements(mysqlDialect)
	// MySQL has no IF EXISTS on DROP CONSTRAINT.
	assert.False(t, strings.Contains(my[0], "IF EXISTS"))
	assert.True(t, step.SoftConflicts())
}

func TestDefaultLiterals(t *testing.T) {
	assert.Equal(t, "'gpt-5'", DefaultString("gpt-5").literal(postgres))
	assert.Equal(t, "10", DefaultInt(10).literal(postgres))
	assert.Equal(t, "CURRENT_TIMESTAMP", DefaultRaw("CURRENT_TIMESTAMP").literal(embedded))
}
