package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// SQLDB is the database interface used by all stores. *sql.DB satisfies it,
// as does any wrapper that forwards these four methods.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// TimeFormat is how timestamps are stored in TEXT columns.
const TimeFormat = time.RFC3339

// DateFormat is how date-only columns (event date, deadlines) are stored.
const DateFormat = "2006-01-02"

// migrations are applied in order; the schema version is the count of
// applied entries. Never edit a released entry, append a new one.
var migrations = []string{
	// 1: initial schema
	`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS season (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL,
		event_date TEXT NOT NULL,
		event_number INTEGER NOT NULL,
		signup_deadline TEXT NOT NULL,
		payment_deadline TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		trainer_name TEXT NOT NULL,
		club TEXT,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		edit_token TEXT,
		season_id TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS athlete (
		id TEXT PRIMARY KEY,
		registration_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		birth_year INTEGER NOT NULL,
		gender TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (registration_id) REFERENCES registration(id) ON DELETE CASCADE
	);
	`,
	// 2: token lookups are the hot path for the edit flow
	`
	CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_edit_token ON registration(edit_token);
	CREATE INDEX IF NOT EXISTS idx_registration_season ON registration(season_id);
	CREATE INDEX IF NOT EXISTS idx_athlete_registration ON athlete(registration_id);
	`,
}

// LatestSchemaVersion returns the version a fully migrated database carries.
func LatestSchemaVersion() int {
	return len(migrations)
}

// MigrateDB brings the database schema up to the latest version.
// PRE: db is a valid connection
// POST: schema_version equals LatestSchemaVersion(); WAL and foreign keys on
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (0)"); err != nil {
			return fmt.Errorf("failed to seed schema_version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin failed: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.Exec("UPDATE schema_version SET version = ?", i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: version bump failed: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit failed: %w", i+1, err)
		}
		slog.Info("schema_migrated", "db", dbPath, "version", i+1)
	}

	return nil
}
