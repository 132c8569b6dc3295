package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/medimate/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"002_second.sql": {Data: []byte("SELECT 2;")},
			"001_first.sql":  {Data: []byte("SELECT 1;")},
			"README.md":      {Data: []byte("ignored")},
		}

		runner := NewRunner(nil, fsys, DriverSQLite)
		migrations, err := runner.ReadMigrationFiles()
		if err != nil {
			t.Fatalf("ReadMigrationFiles() returned unexpected error: %v", err)
		}
		if len(migrations) != 2 {
			t.Fatalf("expected 2 migrations, got %d", len(migrations))
		}
		if migrations[0].Version != 1 || migrations[0].Name != "first" {
			t.Errorf("unexpected first migration: %+v", migrations[0])
		}
		if migrations[1].Version != 2 || migrations[1].Name != "second" {
			t.Errorf("unexpected second migration: %+v", migrations[1])
		}
	})

	t.Run("duplicate versions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_a.sql": {Data: []byte("SELECT 1;")},
			"001_b.sql": {Data: []byte("SELECT 1;")},
		}
		if _, err := NewRunner(nil, fsys, DriverSQLite).ReadMigrationFiles(); err == nil {
			t.Error("expected error for duplicate versions")
		}
	})

	t.Run("invalid filename", func(t *testing.T) {
		fsys := fstest.MapFS{
			"init.sql": {Data: []byte("SELECT 1;")},
		}
		if _, err := NewRunner(nil, fsys, DriverSQLite).ReadMigrationFiles(); err == nil {
			t.Error("expected error for filename without version prefix")
		}
	})

	t.Run("version zero", func(t *testing.T) {
		fsys := fstest.MapFS{
			"000_init.sql": {Data: []byte("SELECT 1;")},
		}
		if _, err := NewRunner(nil, fsys, DriverSQLite).ReadMigrationFiles(); err == nil {
			t.Error("expected error for version 0")
		}
	})
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	sqliteFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access embedded migrations: %v", err)
	}

	runner := NewRunner(db, sqliteFS, DriverSQLite)

	var messages []string
	count, err := runner.ApplyMigrations(ctx, func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("ApplyMigrations() returned unexpected error: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one migration to be applied")
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	for _, table := range []string{"meds", "taken_logs"} {
		var n int
		err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&n)
		if err != nil {
			t.Fatalf("failed to inspect schema: %v", err)
		}
		if n != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	complete, err := runner.IsComplete(ctx)
	if err != nil {
		t.Fatalf("IsComplete() returned unexpected error: %v", err)
	}
	if !complete {
		t.Error("expected migrations to be complete")
	}

	// Running again is a no-op
	count, err = runner.ApplyMigrations(ctx, nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() returned unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", count)
	}
}

func TestApplyMigrations_RollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	fsys := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE b (id INTEGER PRIMARY KEY); THIS IS NOT SQL;")},
	}
	runner := NewRunner(db, fsys, DriverSQLite)

	count, err := runner.ApplyMigrations(ctx, nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected error to name the failing migration, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", count)
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion() returned unexpected error: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}
}

func TestValidateVersion_NewerDatabase(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("SELECT 1;")},
	}
	runner := NewRunner(db, fsys, DriverSQLite)

	if err := runner.EnsureSchemaVersionTable(ctx); err != nil {
		t.Fatalf("EnsureSchemaVersionTable() returned unexpected error: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (5)"); err != nil {
		t.Fatalf("failed to seed version: %v", err)
	}

	if err := runner.ValidateVersion(ctx); err == nil {
		t.Error("expected error when database is newer than the application")
	}
}
