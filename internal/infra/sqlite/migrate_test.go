package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/unhbank/banking-assistant/internal/infra/sqlite"
)

// TestMigrate_RunsAllMigrations verifies that MigrateUp applies all pending migrations.
func TestMigrate_RunsAllMigrations(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v; want nil", err)
	}

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM schema_migrations")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("SELECT COUNT(*) FROM schema_migrations error = %v", err)
	}

	if count == 0 {
		t.Error("schema_migrations has 0 rows after MigrateUp; want > 0")
	}
}

// TestMigrate_Idempotent verifies that running MigrateUp twice does not fail.
func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() first run error = %v; want nil", err)
	}

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() second run error = %v; want nil (idempotent)", err)
	}
}

// TestMigrate_InteractionLogTableCreated verifies the interaction_log table
// exists after migration.
func TestMigrate_InteractionLogTableCreated(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	assertTableExists(t, db, "interaction_log")
}

// TestMigrate_Version verifies MigrationVersion reflects the applied schema.
func TestMigrate_Version(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	version, err := sqlite.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() before migrate error = %v", err)
	}
	if version != 0 {
		t.Errorf("version before migrate = %d; want 0", version)
	}

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	version, err = sqlite.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() after migrate error = %v", err)
	}
	if version < 1 {
		t.Errorf("version after migrate = %d; want >= 1", version)
	}
}

// --- helpers ---

func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()

	var name string
	row := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
	)
	if err := row.Scan(&name); err != nil {
		t.Fatalf("table %q not found: %v", table, err)
	}
}
