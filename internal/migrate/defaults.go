package migrate

// DefaultCatalog is the full schema evolution history of the application.
// Base tables are created first with fatal semantics; every later step is
// isolated and retryable on the next run.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Base:  baseSteps(),
		Steps: evolutionSteps(),
	}
}

func baseSteps() []Step {
	tables := []Table{
		usersTable,
		organizationsTable,
		organizationMembersTable,
		projectsTable,
		testRunsTable,
		testPhasesTable,
		testPlansTable,
		testPackagesTable,
		testPlanTestRunsTable,
		testPackageTestRunsTable,
		bddFeaturesTable,
		bddScenariosTable,
		bddStepsTable,
		userRolesTable,
		documentAnalysisTable,
		testCasesTable,
		seleniumTestsTable,
		unitTestsTable,
	}
	steps := make([]Step, 0, len(tables))
	for _, t := range tables {
		steps = append(steps, CreateTable{ID: t.Name + "_table", Def: t})
	}
	return steps
}

// sddReviewRepairSteps backfills sdd_reviews columns on databases whose
// table was created by an earlier build with a narrower review schema.
// Identity and owner columns are skipped: a row cannot grow a usable
// primary or foreign key after the fact. Required columns are given
// placeholder defaults so the additions succeed on populated tables.
func sddReviewRepairSteps() []Step {
	steps := make([]Step, 0, len(sddReviewsTable.Columns))
	for _, col := range sddReviewsTable.Columns {
		switch col.Name {
		case "id", "project_id", "user_id":
			continue
		}
		if col.NotNull && col.Default == nil {
			if col.Type == "REAL" {
				col.Default = DefaultInt(0)
			} else {
				col.Default = DefaultString("")
			}
		}
		steps = append(steps, AddColumn{
			ID:     "sdd_reviews_" + col.Name + "_column",
			Table:  "sdd_reviews",
			Column: col,
			After:  []string{"sdd_reviews_table"},
		})
	}
	return steps
}

func evolutionSteps() []Step {
	steps := []Step{
		// Usernames stopped being unique once email became the login key.
		DropConstraint{
			ID:         "users_username_unique_dropped",
			Table:      "users",
			Constraint: "users_username_key",
		},

		AddColumn{
			ID:     "projects_user_id_column",
			Table:  "projects",
			Column: ref("user_id", "users"),
		},
		AddConstraint{
			ID:         "projects_user_id_fk",
			Table:      "projects",
			Constraint: constraintName("projects", "user_id"),
			Definition: "FOREIGN KEY (user_id) REFERENCES users(id)",
			After:      []string{"projects_user_id_column"},
		},

		AddColumn{
			ID:     "users_organization_id_column",
			Table:  "users",
			Column: ref("organization_id", "organizations"),
		},
		AddConstraint{
			ID:         "users_organization_id_fk",
			Table:      "users",
			Constraint: constraintName("users", "organization_id"),
			Definition: "FOREIGN KEY (organization_id) REFERENCES organizations(id)",
			After:      []string{"users_organization_id_column"},
		},

		AddColumn{
			ID:    "users_ai_model_preference_column",
			Table: "users",
			Column: ColumnDef{
				Name: "ai_model_preference", Type: "VARCHAR(50)",
				Default: DefaultString("gpt-5"),
			},
		},

		AddColumn{
			ID:     "bdd_scenarios_examples_data_column",
			Table:  "bdd_scenarios",
			Column: ColumnDef{Name: "examples_data", Type: "TEXT"},
		},
		AddColumn{
			ID:     "bdd_features_content_column",
			Table:  "bdd_features",
			Column: ColumnDef{Name: "content", Type: "TEXT"},
		},
		AddColumn{
			ID:     "bdd_steps_element_metadata_column",
			Table:  "bdd_steps",
			Column: ColumnDef{Name: "element_metadata", Type: TypeJSON},
		},
		AddColumn{
			ID:     "user_roles_content_column",
			Table:  "user_roles",
			Column: ColumnDef{Name: "content", Type: TypeJSON},
		},
		AddColumn{
			ID:     "document_analysis_content_column",
			Table:  "document_analysis",
			Column: ColumnDef{Name: "content", Type: TypeJSON},
		},

		WidenColumn{
			ID:       "bdd_scenarios_name_widened",
			Table:    "bdd_scenarios",
			Column:   "name",
			MinWidth: 1000,
		},

		AddColumn{
			ID:     "test_runs_user_id_column",
			Table:  "test_runs",
			Column: ref("user_id", "users"),
		},
		AddConstraint{
			ID:         "test_runs_user_id_fk",
			Table:      "test_runs",
			Constraint: constraintName("test_runs", "user_id"),
			Definition: "FOREIGN KEY (user_id) REFERENCES users(id)",
			After:      []string{"test_runs_user_id_column"},
		},

		// Deleting a test run must cascade through its plan and package links.
		AddConstraint{
			ID:         "test_plan_test_runs_cascade_fk",
			Table:      "test_plan_test_runs",
			Constraint: "fk_test_plan_test_runs_test_run_id_cascade",
			Definition: "FOREIGN KEY (test_run_id) REFERENCES test_runs(id) ON DELETE CASCADE",
			DropFirst: []string{
				"test_plan_test_runs_test_run_id_fkey",
				constraintName("test_plan_test_runs", "test_run_id"),
			},
		},
		AddConstraint{
			ID:         "test_package_test_runs_cascade_fk",
			Table:      "test_package_test_runs",
			Constraint: "fk_test_package_test_runs_test_run_id_cascade",
			Definition: "FOREIGN KEY (test_run_id) REFERENCES test_runs(id) ON DELETE CASCADE",
			DropFirst: []string{
				"test_package_test_runs_test_run_id_fkey",
				constraintName("test_package_test_runs", "test_run_id"),
			},
		},

		WidenColumn{
			ID:       "test_cases_category_widened",
			Table:    "test_cases",
			Column:   "category",
			MinWidth: 255,
		},

		CreateTable{
			ID:    "uploaded_code_files_table",
			Def:   uploadedCodeFilesTable,
			After: []string{"projects_user_id_column"},
		},
		CreateTable{
			ID:  "user_preferences_table",
			Def: userPreferencesTable,
		},

		AddColumn{
			ID:    "users_email_verified_column",
			Table: "users",
			Column: ColumnDef{
				Name: "email_verified", Type: "BOOLEAN",
				Default: DefaultBool(false),
			},
		},
		AddColumn{
			ID:     "users_verification_token_column",
			Table:  "users",
			Column: ColumnDef{Name: "verification_token", Type: "VARCHAR(100)"},
		},
		AddColumn{
			ID:     "users_verification_token_expires_at_column",
			Table:  "users",
			Column: ColumnDef{Name: "verification_token_expires_at", Type: TypeTimestamp},
		},

		AddColumn{
			ID:    "users_test_runs_passed_column",
			Table: "users",
			Column: ColumnDef{
				Name: "test_runs_passed", Type: "INTEGER",
				Default: DefaultInt(0),
			},
		},
		AddColumn{
			ID:     "users_test_runs_limit_column",
			Table:  "users",
			Column: ColumnDef{Name: "test_runs_limit", Type: "INTEGER"},
		},

		AddColumn{
			ID:    "selenium_tests_test_framework_column",
			Table: "selenium_tests",
			Column: ColumnDef{
				Name: "test_framework", Type: "VARCHAR(50)",
				Default: DefaultString("selenium_python"),
			},
		},
		AddColumn{
			ID:     "selenium_tests_last_run_output_column",
			Table:  "selenium_tests",
			Column: ColumnDef{Name: "last_run_output", Type: "TEXT"},
		},
		AddColumn{
			ID:     "selenium_tests_last_run_error_column",
			Table:  "selenium_tests",
			Column: ColumnDef{Name: "last_run_error", Type: "TEXT"},
		},
		AddColumn{
			ID:     "selenium_tests_last_run_duration_column",
			Table:  "selenium_tests",
			Column: ColumnDef{Name: "last_run_duration", Type: "INTEGER"},
		},
		AddColumn{
			ID:     "selenium_tests_last_run_screenshots_column",
			Table:  "selenium_tests",
			Column: ColumnDef{Name: "last_run_screenshots", Type: TypeJSON},
		},

		CreateTable{
			ID:  "sdd_reviews_table",
			Def: sddReviewsTable,
		},
		CreateTable{
			ID:    "sdd_enhancements_table",
			Def:   sddEnhancementsTable,
			After: []string{"sdd_reviews_table"},
		},
		CreateTable{
			ID:  "project_unit_tests_table",
			Def: projectUnitTestsTable,
		},

		CreateTable{
			ID:  "virtual_test_executions_table",
			Def: virtualTestExecutionsTable,
		},
		AddColumn{
			ID:     "virtual_test_executions_parent_execution_id_column",
			Table:  "virtual_test_executions",
			Column: ref("parent_execution_id", "virtual_test_executions"),
			After:  []string{"virtual_test_executions_table"},
		},
		AddConstraint{
			ID:         "virtual_test_executions_parent_execution_id_fk",
			Table:      "virtual_test_executions",
			Constraint: constraintName("virtual_test_executions", "parent_execution_id"),
			Definition: "FOREIGN KEY (parent_execution_id) REFERENCES virtual_test_executions(id)",
			After:      []string{"virtual_test_executions_parent_execution_id_column"},
		},
		AddColumn{
			ID:    "virtual_test_executions_version_number_column",
			Table: "virtual_test_executions",
			Column: ColumnDef{
				Name: "version_number", Type: "INTEGER",
				Default: DefaultInt(1),
			},
			After: []string{"virtual_test_executions_table"},
		},
		AddColumn{
			ID:    "virtual_test_executions_is_replay_column",
			Table: "virtual_test_executions",
			Column: ColumnDef{
				Name: "is_replay", Type: "BOOLEAN",
				Default: DefaultBool(false),
			},
			After: []string{"virtual_test_executions_table"},
		},

		CreateTable{
			ID:    "generated_bdd_scenarios_table",
			Def:   generatedBDDScenariosTable,
			After: []string{"virtual_test_executions_table"},
		},
		CreateTable{
			ID:    "generated_manual_tests_table",
			Def:   generatedManualTestsTable,
			After: []string{"virtual_test_executions_table"},
		},
		CreateTable{
			ID:    "generated_automation_tests_table",
			Def:   generatedAutomationTestsTable,
			After: []string{"virtual_test_executions_table"},
		},
		CreateTable{
			ID:    "test_execution_comparisons_table",
			Def:   testExecutionComparisonsTable,
			After: []string{"virtual_test_executions_table"},
		},

		CreateTable{
			ID:  "workflows_table",
			Def: workflowsTable,
		},
		CreateTable{
			ID:    "workflow_executions_table",
			Def:   workflowExecutionsTable,
			After: []string{"workflows_table"},
		},
		CreateTable{
			ID:    "workflow_node_executions_table",
			Def:   workflowNodeExecutionsTable,
			After: []string{"workflow_executions_table"},
		},

		AddConstraint{
			ID:         "test_phases_project_name_unique",
			Table:      "test_phases",
			Constraint: "uq_test_phase_project_name",
			Definition: "UNIQUE (project_id, name)",
		},
		AddConstraint{
			ID:         "test_plans_phase_name_unique",
			Table:      "test_plans",
			Constraint: "uq_test_plan_phase_name",
			Definition: "UNIQUE (test_phase_id, name)",
		},
		AddConstraint{
			ID:         "test_packages_phase_name_unique",
			Table:      "test_packages",
			Constraint: "uq_test_package_phase_name",
			Definition: "UNIQUE (test_phase_id, name)",
		},

		AddColumn{
			ID:     "projects_archived_at_column",
			Table:  "projects",
			Column: ColumnDef{Name: "archived_at", Type: TypeTimestamp},
		},
		AddColumn{
			ID:     "projects_archive_reason_column",
			Table:  "projects",
			Column: ColumnDef{Name: "archive_reason", Type: "VARCHAR(255)"},
		},
		AddColumn{
			ID:     "projects_last_activity_at_column",
			Table:  "projects",
			Column: ColumnDef{Name: "last_activity_at", Type: TypeTimestamp},
		},
	}
	return append(steps, sddReviewRepairSteps()...)
}
