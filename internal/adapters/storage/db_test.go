package storage_test

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"meetsignup/internal/adapters/storage"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != storage.LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, storage.LatestSchemaVersion())
	}

	for _, table := range []string{"account", "season", "registration", "athlete"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice produces
// no errors and does not change the version.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		t.Fatalf("failed to count version rows: %v", err)
	}
	if count != 1 {
		t.Errorf("schema_version rows = %d, want 1", count)
	}
}

// TestMigrateDB_TokenIndexUnique verifies duplicate edit tokens are rejected.
func TestMigrateDB_TokenIndexUnique(t *testing.T) {
	db := openTestDB(t)
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	insert := `INSERT INTO registration (id, trainer_name, club, email, phone, edit_token, season_id, created_at)
		VALUES (?, 'Max', NULL, 'max@example.ch', '+41788822650', ?, NULL, '2027-01-01T00:00:00Z')`
	if _, err := db.Exec(insert, "r1", "tok"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(insert, "r2", "tok"); err == nil {
		t.Error("expected unique index violation for duplicate token")
	}
}
