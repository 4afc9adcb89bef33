package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaverse/dbinit/internal/dialect"
)

func stepIndex(t *testing.T, steps []Step, name string) int {
	t.Helper()
	for i, s := range steps {
		if s.Name() == name {
			return i
		}
	}
	t.Fatalf("step %q not in ordered catalog", name)
	return -1
}

func TestOrderedRespectsRequirements(t *testing.T) {
	ordered, err := DefaultCatalog().Ordered()
	require.NoError(t, err)

	pairs := [][2]string{
		{"projects_user_id_column", "projects_user_id_fk"},
		{"projects_user_id_column", "uploaded_code_files_table"},
		{"users_organization_id_column", "users_organization_id_fk"},
		{"virtual_test_executions_table", "generated_bdd_scenarios_table"},
		{"virtual_test_executions_table", "test_execution_comparisons_table"},
		{"workflows_table", "workflow_executions_table"},
		{"workflow_executions_table", "workflow_node_executions_table"},
		{"sdd_reviews_table", "sdd_enhancements_table"},
	}
	for _, p := range pairs {
		assert.Less(t, stepIndex(t, ordered, p[0]), stepIndex(t, ordered, p[1]),
			"%s must run before %s", p[0], p[1])
	}
}

func TestOrderedIsStable(t *testing.T) {
	first, err := DefaultCatalog().Ordered()
	require.NoError(t, err)
	second, err := DefaultCatalog().Ordered()
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name(), second[i].Name())
	}
}

func TestOrderedIndependentStepsKeepDeclarationOrder(t *testing.T) {
	c := &Catalog{Steps: []Step{
		AddColumn{ID: "a", Table: "t", Column: ColumnDef{Name: "a", Type: "TEXT"}},
		AddColumn{ID: "b", Table: "t", Column: ColumnDef{Name: "b", Type: "TEXT"}},
		AddColumn{ID: "c", Table: "t", Column: ColumnDef{Name: "c", Type: "TEXT"}},
	}}
	ordered, err := c.Ordered()
	require.NoError(t, err)
	assert.Equal(t, "a", ordered[0].Name())
	assert.Equal(t, "b", ordered[1].Name())
	assert.Equal(t, "c", ordered[2].Name())
}

func TestOrderedRejectsUnknownRequirement(t *testing.T) {
	c := &Catalog{Steps: []Step{
		AddColumn{ID: "a", Table: "t", Column: ColumnDef{Name: "a", Type: "TEXT"}, After: []string{"missing"}},
	}}
	_, err := c.Ordered()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestOrderedRejectsCycle(t *testing.T) {
	c := &Catalog{Steps: []Step{
		AddColumn{ID: "a", Table: "t", Column: ColumnDef{Name: "a", Type: "TEXT"}, After: []string{"b"}},
		AddColumn{ID: "b", Table: "t", Column: ColumnDef{Name: "b", Type: "TEXT"}, After: []string{"a"}},
	}}
	_, err := c.Ordered()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestOrderedRejectsDuplicateNames(t *testing.T) {
	c := &Catalog{Steps: []Step{
		AddColumn{ID: "a", Table: "t", Column: ColumnDef{Name: "a", Type: "TEXT"}},
		AddColumn{ID: "a", Table: "t", Column: ColumnDef{Name: "a2", Type: "TEXT"}},
	}}
	_, err := c.Ordered()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestDefaultCatalogShapes(t *testing.T) {
	c := DefaultCatalog()
	require.NotEmpty(t, c.Base)
	require.NotEmpty(t, c.Steps)

	// Base tables must render for both families without the server-only
	// syntax leaking into the embedded one.
	for _, s := range c.Base {
		ct, ok := s.(CreateTable)
		require.True(t, ok, "base step %s must create a table", s.Name())
		assert.NotContains(t, ct.Def.CreateSQL(embedded), "JSONB")
		assert.NotContains(t, ct.Def.CreateSQL(embedded), "CONSTRAINT fk_")
	}

	// Every step name referenced as a requirement must resolve.
	_, err := c.Ordered()
	require.NoError(t, err)
}

func TestConstraintStepsAreNoOpsOnEmbedded(t *testing.T) {
	lite := dialect.Dialect{Driver: dialect.DriverSQLite, Family: dialect.EmbeddedFile}
	for _, s := range DefaultCatalog().Steps {
		switch s.(type) {
		case AddConstraint, DropConstraint:
			assert.Empty(t, s.Statements(lite), "step %s", s.Name())
		}
	}
}
