package migrate

// Blueprints for every table the bootstrap owns. Column sets follow the
// application's entity catalog; dialect differences (JSON columns, boolean
// literals, inline vs named foreign keys) are resolved at render time.

func pk() ColumnDef {
	return ColumnDef{Name: "id", Type: "VARCHAR(36)", PrimaryKey: true}
}

func ref(name, table string) ColumnDef {
	return ColumnDef{Name: name, Type: "VARCHAR(36)", References: &FK{Table: table, Column: "id"}}
}

func refNotNull(name, table string) ColumnDef {
	c := ref(name, table)
	c.NotNull = true
	return c
}

func createdAt() ColumnDef {
	return ColumnDef{Name: "created_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")}
}

func updatedAt() ColumnDef {
	return ColumnDef{Name: "updated_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")}
}

// Legacy tables, created as the fatal base group.

var usersTable = Table{Name: "users", Columns: []ColumnDef{
	pk(),
	{Name: "username", Type: "VARCHAR(80)", NotNull: true},
	{Name: "email", Type: "VARCHAR(120)", NotNull: true, Unique: true},
	{Name: "password_hash", Type: "VARCHAR(255)"},
	{Name: "full_name", Type: "VARCHAR(255)"},
	{Name: "role", Type: "VARCHAR(20)", Default: DefaultString("user")},
	{Name: "is_active", Type: "BOOLEAN", Default: DefaultBool(true)},
	createdAt(),
	updatedAt(),
}}

var organizationsTable = Table{Name: "organizations", Columns: []ColumnDef{
	pk(),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	createdAt(),
	updatedAt(),
}}

var organizationMembersTable = Table{Name: "organization_members", Columns: []ColumnDef{
	pk(),
	refNotNull("organization_id", "organizations"),
	refNotNull("user_id", "users"),
	{Name: "role", Type: "VARCHAR(20)", Default: DefaultString("member")},
	createdAt(),
}}

var projectsTable = Table{Name: "projects", Columns: []ColumnDef{
	pk(),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("active")},
	createdAt(),
	updatedAt(),
}}

var testRunsTable = Table{Name: "test_runs", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("pending")},
	{Name: "type", Type: "VARCHAR(20)"},
	{Name: "started_at", Type: TypeTimestamp},
	{Name: "completed_at", Type: TypeTimestamp},
	{Name: "total_tests", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "passed_tests", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "failed_tests", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "skipped_tests", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "total_scenarios", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "passed_scenarios", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "failed_scenarios", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "pending_scenarios", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "meta_data", Type: TypeJSON},
	createdAt(),
	updatedAt(),
}}

var testPhasesTable = Table{Name: "test_phases", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("planned")},
	{Name: "start_date", Type: TypeTimestamp},
	{Name: "end_date", Type: TypeTimestamp},
	createdAt(),
	updatedAt(),
}}

var testPlansTable = Table{Name: "test_plans", Columns: []ColumnDef{
	pk(),
	refNotNull("test_phase_id", "test_phases"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("draft")},
	createdAt(),
	updatedAt(),
}}

var testPackagesTable = Table{Name: "test_packages", Columns: []ColumnDef{
	pk(),
	refNotNull("test_phase_id", "test_phases"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("draft")},
	createdAt(),
	updatedAt(),
}}

var testPlanTestRunsTable = Table{Name: "test_plan_test_runs", Columns: []ColumnDef{
	pk(),
	refNotNull("test_plan_id", "test_plans"),
	refNotNull("test_run_id", "test_runs"),
	createdAt(),
}}

var testPackageTestRunsTable = Table{Name: "test_package_test_runs", Columns: []ColumnDef{
	pk(),
	refNotNull("test_package_id", "test_packages"),
	refNotNull("test_run_id", "test_runs"),
	createdAt(),
}}

var bddFeaturesTable = Table{Name: "bdd_features", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	createdAt(),
	updatedAt(),
}}

var bddScenariosTable = Table{Name: "bdd_scenarios", Columns: []ColumnDef{
	pk(),
	ref("feature_id", "bdd_features"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "scenario_type", Type: "VARCHAR(50)"},
	createdAt(),
}}

var bddStepsTable = Table{Name: "bdd_steps", Columns: []ColumnDef{
	pk(),
	ref("scenario_id", "bdd_scenarios"),
	{Name: "keyword", Type: "VARCHAR(20)"},
	{Name: "text", Type: "TEXT", NotNull: true},
	{Name: "step_order", Type: "INTEGER", Default: DefaultInt(0)},
	createdAt(),
}}

var userRolesTable = Table{Name: "user_roles", Columns: []ColumnDef{
	pk(),
	ref("user_id", "users"),
	{Name: "name", Type: "VARCHAR(80)", NotNull: true},
	createdAt(),
}}

var documentAnalysisTable = Table{Name: "document_analysis", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	{Name: "document_name", Type: "VARCHAR(255)"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("pending")},
	createdAt(),
	updatedAt(),
}}

var testCasesTable = Table{Name: "test_cases", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	{Name: "title", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "category", Type: "VARCHAR(100)"},
	{Name: "priority", Type: "VARCHAR(20)"},
	createdAt(),
	updatedAt(),
}}

var seleniumTestsTable = Table{Name: "selenium_tests", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "test_code", Type: "TEXT"},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("draft")},
	createdAt(),
	updatedAt(),
}}

var unitTestsTable = Table{Name: "unit_tests", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "test_code", Type: "TEXT"},
	{Name: "language", Type: "VARCHAR(50)"},
	createdAt(),
	updatedAt(),
}}

// Tables introduced by later features, created by catalog steps.

var uploadedCodeFilesTable = Table{Name: "uploaded_code_files", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	refNotNull("user_id", "users"),
	{Name: "file_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "original_file_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "file_path", Type: "VARCHAR(500)", NotNull: true},
	{Name: "file_size", Type: "INTEGER", NotNull: true},
	{Name: "file_content", Type: "TEXT", NotNull: true},
	{Name: "language", Type: "VARCHAR(50)"},
	{Name: "framework", Type: "VARCHAR(100)"},
	{Name: "code_type", Type: "VARCHAR(50)"},
	{Name: "testing_framework", Type: "VARCHAR(50)"},
	{Name: "testing_strategy", Type: "VARCHAR(100)"},
	{Name: "analysis_data", Type: TypeJSON},
	{Name: "confidence", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "unit_test_generated", Type: "BOOLEAN", Default: DefaultBool(false)},
	ref("unit_test_id", "unit_tests"),
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("uploaded")},
	{Name: "error_message", Type: "TEXT"},
	createdAt(),
	updatedAt(),
}}

var userPreferencesTable = Table{Name: "user_preferences", Columns: []ColumnDef{
	pk(),
	refNotNull("user_id", "users"),
	{Name: "ai_model", Type: "VARCHAR(50)", Default: DefaultString("gpt-5")},
	{Name: "temperature", Type: "REAL", Default: DefaultRaw("1.0")},
	{Name: "max_tokens", Type: "INTEGER", Default: DefaultInt(4000)},
	{Name: "timeout", Type: "INTEGER", Default: DefaultInt(30)},
	createdAt(),
	updatedAt(),
}}

var sddReviewsTable = Table{Name: "sdd_reviews", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	refNotNull("user_id", "users"),
	{Name: "document_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "original_file_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "overall_score", Type: "REAL", NotNull: true},
	{Name: "executive_summary", Type: "TEXT"},
	{Name: "pain_points", Type: TypeJSON},
	{Name: "good_points", Type: TypeJSON},
	{Name: "enhancements", Type: TypeJSON},
	{Name: "architecture_analysis", Type: TypeJSON},
	{Name: "missing_sections", Type: TypeJSON},
	{Name: "recommendations", Type: TypeJSON},
	{Name: "chunks_analyzed", Type: "INTEGER", Default: DefaultInt(1)},
	{Name: "analyzed_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")},
	createdAt(),
	updatedAt(),
}}

var sddEnhancementsTable = Table{Name: "sdd_enhancements", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	refNotNull("user_id", "users"),
	ref("sdd_review_id", "sdd_reviews"),
	{Name: "original_document_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "enhanced_content", Type: "TEXT", NotNull: true},
	{Name: "improvements_made", Type: TypeJSON},
	{Name: "enhancement_summary", Type: "TEXT"},
	{Name: "sections_added", Type: TypeJSON},
	{Name: "sections_improved", Type: TypeJSON},
	{Name: "chunks_processed", Type: "INTEGER", Default: DefaultInt(1)},
	{Name: "enhanced_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")},
	createdAt(),
	updatedAt(),
}}

var projectUnitTestsTable = Table{Name: "project_unit_tests", Columns: []ColumnDef{
	pk(),
	refNotNull("project_id", "projects"),
	refNotNull("user_id", "users"),
	{Name: "original_file_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "test_file_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "full_code", Type: "TEXT", NotNull: true},
	{Name: "language", Type: "VARCHAR(50)"},
	{Name: "testing_framework", Type: "VARCHAR(100)"},
	{Name: "analysis_data", Type: TypeJSON},
	{Name: "generated_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")},
	createdAt(),
	updatedAt(),
}}

var virtualTestExecutionsTable = Table{Name: "virtual_test_executions", Columns: []ColumnDef{
	pk(),
	ref("test_run_id", "test_runs"),
	refNotNull("user_id", "users"),
	ref("project_id", "projects"),
	{Name: "test_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "test_description", Type: "TEXT", NotNull: true},
	{Name: "target_url", Type: "VARCHAR(500)"},
	{Name: "target_type", Type: "VARCHAR(20)", Default: DefaultString("web")},
	{Name: "status", Type: "VARCHAR(20)", Default: DefaultString("pending")},
	{Name: "total_turns", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "max_turns", Type: "INTEGER", Default: DefaultInt(15)},
	{Name: "timeout_seconds", Type: "INTEGER", Default: DefaultInt(300)},
	{Name: "headless", Type: "BOOLEAN", Default: DefaultBool(false)},
	{Name: "start_time", Type: TypeTimestamp},
	{Name: "end_time", Type: TypeTimestamp},
	{Name: "duration_seconds", Type: "REAL"},
	{Name: "final_output", Type: "TEXT"},
	{Name: "error_message", Type: "TEXT"},
	{Name: "test_actions", Type: TypeJSON},
	{Name: "screenshots_path", Type: "VARCHAR(500)"},
	{Name: "report_path", Type: "VARCHAR(500)"},
	{Name: "execution_log", Type: "TEXT"},
	{Name: "gemini_model", Type: "VARCHAR(100)", Default: DefaultString("gemini-2.5-computer-use-preview-10-2025")},
	ref("parent_execution_id", "virtual_test_executions"),
	{Name: "version_number", Type: "INTEGER", Default: DefaultInt(1)},
	{Name: "is_replay", Type: "BOOLEAN", Default: DefaultBool(false)},
	createdAt(),
	updatedAt(),
}}

var generatedBDDScenariosTable = Table{Name: "generated_bdd_scenarios", Columns: []ColumnDef{
	pk(),
	{Name: "execution_id", Type: "VARCHAR(36)", NotNull: true,
		References: &FK{Table: "virtual_test_executions", Column: "id", OnDelete: "CASCADE"}},
	refNotNull("user_id", "users"),
	{Name: "feature_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "scenario_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "tags", Type: TypeJSON},
	{Name: "gherkin_content", Type: "TEXT", NotNull: true},
	{Name: "file_path", Type: "VARCHAR(500)"},
	{Name: "model", Type: "VARCHAR(100)", Default: DefaultString("gpt-5")},
	createdAt(),
	updatedAt(),
}}

var generatedManualTestsTable = Table{Name: "generated_manual_tests", Columns: []ColumnDef{
	pk(),
	{Name: "execution_id", Type: "VARCHAR(36)", NotNull: true,
		References: &FK{Table: "virtual_test_executions", Column: "id", OnDelete: "CASCADE"}},
	refNotNull("user_id", "users"),
	{Name: "test_id", Type: "VARCHAR(100)", NotNull: true},
	{Name: "title", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "objective", Type: "TEXT"},
	{Name: "priority", Type: "VARCHAR(20)"},
	{Name: "severity", Type: "VARCHAR(20)"},
	{Name: "test_type", Type: "VARCHAR(50)"},
	{Name: "markdown_content", Type: "TEXT", NotNull: true},
	{Name: "json_content", Type: TypeJSON},
	{Name: "markdown_file_path", Type: "VARCHAR(500)"},
	{Name: "json_file_path", Type: "VARCHAR(500)"},
	{Name: "model", Type: "VARCHAR(100)", Default: DefaultString("gpt-5")},
	createdAt(),
	updatedAt(),
}}

var generatedAutomationTestsTable = Table{Name: "generated_automation_tests", Columns: []ColumnDef{
	pk(),
	{Name: "execution_id", Type: "VARCHAR(36)", NotNull: true,
		References: &FK{Table: "virtual_test_executions", Column: "id", OnDelete: "CASCADE"}},
	refNotNull("user_id", "users"),
	{Name: "test_id", Type: "VARCHAR(100)", NotNull: true},
	{Name: "test_name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "framework", Type: "VARCHAR(50)", NotNull: true},
	{Name: "language", Type: "VARCHAR(50)", NotNull: true},
	{Name: "pattern", Type: "VARCHAR(50)"},
	{Name: "test_code", Type: "TEXT", NotNull: true},
	{Name: "dependencies", Type: TypeJSON},
	{Name: "tags", Type: TypeJSON},
	{Name: "priority", Type: "VARCHAR(20)"},
	{Name: "usage_instructions", Type: "TEXT"},
	{Name: "output_path", Type: "VARCHAR(500)"},
	{Name: "files", Type: TypeJSON},
	{Name: "model", Type: "VARCHAR(100)", Default: DefaultString("gpt-5")},
	createdAt(),
	updatedAt(),
}}

var testExecutionComparisonsTable = Table{Name: "test_execution_comparisons", Columns: []ColumnDef{
	pk(),
	refNotNull("baseline_execution_id", "virtual_test_executions"),
	refNotNull("compared_execution_id", "virtual_test_executions"),
	refNotNull("user_id", "users"),
	{Name: "comparison_type", Type: "VARCHAR(50)", Default: DefaultString("version_comparison")},
	{Name: "ai_model", Type: "VARCHAR(100)"},
	{Name: "summary", Type: "TEXT"},
	{Name: "regressions", Type: TypeJSON},
	{Name: "enhancements", Type: TypeJSON},
	{Name: "neutral_changes", Type: TypeJSON},
	{Name: "screenshot_differences", Type: TypeJSON},
	{Name: "step_differences", Type: TypeJSON},
	{Name: "performance_comparison", Type: TypeJSON},
	{Name: "overall_status", Type: "VARCHAR(50)"},
	{Name: "regression_count", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "enhancement_count", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "neutral_count", Type: "INTEGER", Default: DefaultInt(0)},
	{Name: "recommendations", Type: TypeJSON},
	createdAt(),
	updatedAt(),
}}

var workflowsTable = Table{Name: "workflows", Columns: []ColumnDef{
	pk(),
	refNotNull("user_id", "users"),
	ref("project_id", "projects"),
	{Name: "name", Type: "VARCHAR(255)", NotNull: true},
	{Name: "description", Type: "TEXT"},
	{Name: "workflow_data", Type: TypeJSON, NotNull: true},
	{Name: "is_active", Type: "BOOLEAN", Default: DefaultBool(true)},
	createdAt(),
	updatedAt(),
}}

var workflowExecutionsTable = Table{Name: "workflow_executions", Columns: []ColumnDef{
	pk(),
	{Name: "workflow_id", Type: "VARCHAR(36)", NotNull: true,
		References: &FK{Table: "workflows", Column: "id", OnDelete: "CASCADE"}},
	refNotNull("user_id", "users"),
	{Name: "status", Type: "VARCHAR(50)", Default: DefaultString("pending")},
	{Name: "input_data", Type: TypeJSON},
	{Name: "execution_data", Type: TypeJSON},
	{Name: "error_message", Type: "TEXT"},
	{Name: "started_at", Type: TypeTimestamp},
	{Name: "completed_at", Type: TypeTimestamp},
	createdAt(),
}}

var workflowNodeExecutionsTable = Table{Name: "workflow_node_executions", Columns: []ColumnDef{
	pk(),
	{Name: "execution_id", Type: "VARCHAR(36)", NotNull: true,
		References: &FK{Table: "workflow_executions", Column: "id", OnDelete: "CASCADE"}},
	{Name: "node_id", Type: "VARCHAR(255)", NotNull: true},
	{Name: "node_type", Type: "VARCHAR(100)", NotNull: true},
	{Name: "status", Type: "VARCHAR(50)", Default: DefaultString("pending")},
	{Name: "input_data", Type: TypeJSON},
	{Name: "output_data", Type: TypeJSON},
	{Name: "error_message", Type: "TEXT"},
	{Name: "started_at", Type: TypeTimestamp},
	{Name: "completed_at", Type: TypeTimestamp},
	createdAt(),
}}
