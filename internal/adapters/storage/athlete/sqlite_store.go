package athlete

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meetsignup/internal/adapters/storage"
	domain "meetsignup/internal/domain/registration"
)

const athleteColumns = "id, registration_id, first_name, last_name, birth_year, gender"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new athlete store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func insertAthleteTx(ctx context.Context, tx *sql.Tx, a domain.Athlete, createdAt string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO athlete (id, registration_id, first_name, last_name, birth_year, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RegistrationID, a.FirstName, a.LastName, a.BirthYear, a.Gender, createdAt,
	)
	return err
}

// InsertMany assigns fresh IDs and inserts all athletes for a registration.
// PRE: athletes have been validated
// POST: All rows exist or none do; returned slice carries the new IDs
func (s *SQLiteStore) InsertMany(ctx context.Context, registrationID string, athletes []domain.Athlete) ([]domain.Athlete, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inserted := make([]domain.Athlete, 0, len(athletes))
	base := s.now().UTC()
	for i, a := range athletes {
		a.ID = uuid.New().String()
		a.RegistrationID = registrationID
		// Millisecond offsets keep the insertion order recoverable from
		// created_at, which is the display order.
		createdAt := base.Add(time.Duration(i) * time.Millisecond).Format(time.RFC3339Nano)
		if err := insertAthleteTx(ctx, tx, a, createdAt); err != nil {
			return nil, fmt.Errorf("failed to insert athlete %d: %w", i+1, err)
		}
		inserted = append(inserted, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

// ReplaceForRegistration swaps the registration's athlete set. Delete and
// reinsert run in one transaction so a reinsert failure cannot leave the
// registration empty.
// PRE: athletes have been validated
// POST: Exactly the given set exists for the registration
func (s *SQLiteStore) ReplaceForRegistration(ctx context.Context, registrationID string, athletes []domain.Athlete) ([]domain.Athlete, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM athlete WHERE registration_id = ?", registrationID); err != nil {
		return nil, fmt.Errorf("failed to delete existing athletes: %w", err)
	}

	inserted := make([]domain.Athlete, 0, len(athletes))
	base := s.now().UTC()
	for i, a := range athletes {
		a.ID = uuid.New().String()
		a.RegistrationID = registrationID
		createdAt := base.Add(time.Duration(i) * time.Millisecond).Format(time.RFC3339Nano)
		if err := insertAthleteTx(ctx, tx, a, createdAt); err != nil {
			return nil, fmt.Errorf("failed to save athlete %d: %w", i+1, err)
		}
		inserted = append(inserted, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

// RestoreMany re-inserts athletes with their original IDs after an undo.
// PRE: athletes carry their pre-delete IDs and registration ID
func (s *SQLiteStore) RestoreMany(ctx context.Context, athletes []domain.Athlete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	base := s.now().UTC()
	for i, a := range athletes {
		createdAt := base.Add(time.Duration(i) * time.Millisecond).Format(time.RFC3339Nano)
		if err := insertAthleteTx(ctx, tx, a, createdAt); err != nil {
			return fmt.Errorf("failed to restore athlete %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// Update overwrites the editable fields of one athlete row.
// PRE: value carries an existing ID
// POST: Row is updated or domain.ErrNotFound is returned
func (s *SQLiteStore) Update(ctx context.Context, value domain.Athlete) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE athlete SET first_name = ?, last_name = ?, birth_year = ?, gender = ?
		WHERE id = ?`,
		value.FirstName, value.LastName, value.BirthYear, value.Gender, value.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update athlete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes one athlete row.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM athlete WHERE id = ?", id)
	return err
}

// ListByRegistration retrieves a registration's athletes in display order.
func (s *SQLiteStore) ListByRegistration(ctx context.Context, registrationID string) ([]domain.Athlete, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+athleteColumns+" FROM athlete WHERE registration_id = ? ORDER BY created_at ASC", registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAthletes(rows)
}

// ListBySeason retrieves every athlete of a season, grouped by
// registration on the read side.
func (s *SQLiteStore) ListBySeason(ctx context.Context, seasonID string) ([]domain.Athlete, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.registration_id, a.first_name, a.last_name, a.birth_year, a.gender
		FROM athlete a
		JOIN registration r ON r.id = a.registration_id
		WHERE r.season_id = ?
		ORDER BY a.created_at ASC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAthletes(rows)
}

func collectAthletes(rows *sql.Rows) ([]domain.Athlete, error) {
	var results []domain.Athlete
	for rows.Next() {
		var entity domain.Athlete
		if err := rows.Scan(
			&entity.ID,
			&entity.RegistrationID,
			&entity.FirstName,
			&entity.LastName,
			&entity.BirthYear,
			&entity.Gender,
		); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
