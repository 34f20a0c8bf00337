package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meetsignup/internal/adapters/storage"
	domain "meetsignup/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, failed_logins, locked_until FROM account WHERE email = ?", email)

	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, err
	}
	if entity.CreatedAt, err = time.Parse(storage.TimeFormat, createdAt); err != nil {
		return domain.Account{}, fmt.Errorf("bad created_at for account %s: %w", entity.ID, err)
	}
	if lockedUntil.Valid {
		if entity.LockedUntil, err = time.Parse(storage.TimeFormat, lockedUntil.String); err != nil {
			return domain.Account{}, fmt.Errorf("bad locked_until for account %s: %w", entity.ID, err)
		}
	}
	return entity, nil
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.UTC().Format(storage.TimeFormat)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, email, password_hash, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			password_hash=excluded.password_hash,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.CreatedAt.UTC().Format(storage.TimeFormat),
		entity.FailedLogins,
		lockedUntil,
	)
	return err
}

// Count returns the number of accounts, used to decide whether to seed.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
