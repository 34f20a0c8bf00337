package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meetsignup/internal/adapters/storage"
	domain "meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

const registrationColumns = "id, trainer_name, club, email, phone, edit_token, season_id, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new registration store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanRegistration(row interface{ Scan(...any) error }) (domain.Registration, error) {
	var entity domain.Registration
	var club, editToken, seasonID sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Contact.TrainerName,
		&club,
		&entity.Contact.Email,
		&entity.Contact.Phone,
		&editToken,
		&seasonID,
		&createdAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	entity.Contact.Club = club.String
	entity.EditToken = editToken.String
	entity.SeasonID = seasonID.String
	if entity.CreatedAt, err = time.Parse(storage.TimeFormat, createdAt); err != nil {
		return domain.Registration{}, fmt.Errorf("bad created_at for registration %s: %w", entity.ID, err)
	}
	return entity, nil
}

// Insert creates a registration row and returns its store-assigned ID.
// PRE: contact has been validated; seasonID is non-empty
// POST: Row exists without an edit token yet
func (s *SQLiteStore) Insert(ctx context.Context, contact roster.Contact, seasonID string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registration (id, trainer_name, club, email, phone, edit_token, season_id, created_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		id,
		contact.TrainerName,
		nullable(contact.Club),
		contact.Email,
		contact.Phone,
		seasonID,
		s.now().UTC().Format(storage.TimeFormat),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert registration: %w", err)
	}
	return id, nil
}

// SetEditToken stores the derived token for a freshly created row.
// PRE: id exists; token was derived from id
// POST: Token is persisted; unique index guards against collisions
func (s *SQLiteStore) SetEditToken(ctx context.Context, id, token string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE registration SET edit_token = ? WHERE id = ?", token, id)
	if err != nil {
		return fmt.Errorf("failed to set edit token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID retrieves a Registration by its ID, without athletes.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+" FROM registration WHERE id = ?", id)
	entity, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return domain.Registration{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByToken retrieves a Registration through the indexed token column.
// The token is never decoded; this lookup is the only way back from a
// token to a row.
// PRE: token is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByToken(ctx context.Context, token string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+" FROM registration WHERE edit_token = ?", token)
	entity, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return domain.Registration{}, domain.ErrNotFound
	}
	return entity, err
}

// ListBySeason retrieves a season's registrations, newest first.
func (s *SQLiteStore) ListBySeason(ctx context.Context, seasonID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+registrationColumns+" FROM registration WHERE season_id = ? ORDER BY created_at DESC", seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// UpdateContact replaces the contact block and season assignment.
// PRE: contact has been validated
// POST: Row is updated; the edit token is untouched
func (s *SQLiteStore) UpdateContact(ctx context.Context, id string, contact roster.Contact, seasonID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE registration SET trainer_name = ?, club = ?, email = ?, phone = ?, season_id = ?
		WHERE id = ?`,
		contact.TrainerName,
		nullable(contact.Club),
		contact.Email,
		contact.Phone,
		nullable(seasonID),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a Registration; athlete rows go with it via the foreign
// key cascade.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE id = ?", id)
	return err
}

// Restore re-inserts a deleted registration with its original identity.
// PRE: value carries the pre-delete ID, token and contact
// POST: Row exists again exactly as before the delete
func (s *SQLiteStore) Restore(ctx context.Context, value domain.Registration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registration (id, trainer_name, club, email, phone, edit_token, season_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		value.ID,
		value.Contact.TrainerName,
		nullable(value.Contact.Club),
		value.Contact.Email,
		value.Contact.Phone,
		nullable(value.EditToken),
		nullable(value.SeasonID),
		value.CreatedAt.UTC().Format(storage.TimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to restore registration: %w", err)
	}
	return nil
}
