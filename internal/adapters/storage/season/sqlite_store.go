package season

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meetsignup/internal/adapters/storage"
	domain "meetsignup/internal/domain/season"
)

const seasonColumns = "id, year, event_date, event_number, signup_deadline, payment_deadline, is_active, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new season store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSeason(row interface{ Scan(...any) error }) (domain.Season, error) {
	var entity domain.Season
	var eventDate, signupDeadline, paymentDeadline, createdAt string
	var isActive int
	err := row.Scan(
		&entity.ID,
		&entity.Year,
		&eventDate,
		&entity.EventNumber,
		&signupDeadline,
		&paymentDeadline,
		&isActive,
		&createdAt,
	)
	if err != nil {
		return domain.Season{}, err
	}
	entity.IsActive = isActive != 0
	if entity.EventDate, err = time.Parse(storage.DateFormat, eventDate); err != nil {
		return domain.Season{}, fmt.Errorf("bad event_date for season %s: %w", entity.ID, err)
	}
	if entity.SignupDeadline, err = time.Parse(storage.DateFormat, signupDeadline); err != nil {
		return domain.Season{}, fmt.Errorf("bad signup_deadline for season %s: %w", entity.ID, err)
	}
	if entity.PaymentDeadline, err = time.Parse(storage.DateFormat, paymentDeadline); err != nil {
		return domain.Season{}, fmt.Errorf("bad payment_deadline for season %s: %w", entity.ID, err)
	}
	if entity.CreatedAt, err = time.Parse(storage.TimeFormat, createdAt); err != nil {
		return domain.Season{}, fmt.Errorf("bad created_at for season %s: %w", entity.ID, err)
	}
	return entity, nil
}

// GetByID retrieves a Season by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Season, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+seasonColumns+" FROM season WHERE id = ?", id)
	entity, err := scanSeason(row)
	if err == sql.ErrNoRows {
		return domain.Season{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByYear retrieves a Season by its reference year.
// PRE: year is a four-digit year
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByYear(ctx context.Context, year int) (domain.Season, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+seasonColumns+" FROM season WHERE year = ? ORDER BY event_number DESC LIMIT 1", year)
	entity, err := scanSeason(row)
	if err == sql.ErrNoRows {
		return domain.Season{}, domain.ErrNotFound
	}
	return entity, err
}

// GetActive retrieves the newest active season. Several rows may carry the
// active flag; the highest year wins, matching the public flow.
// POST: Returns the entity or domain.ErrNotFound when no season is active
func (s *SQLiteStore) GetActive(ctx context.Context) (domain.Season, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+seasonColumns+" FROM season WHERE is_active = 1 ORDER BY year DESC LIMIT 1")
	entity, err := scanSeason(row)
	if err == sql.ErrNoRows {
		return domain.Season{}, domain.ErrNotFound
	}
	return entity, err
}

// List retrieves all seasons, newest first (year, then event number).
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Season, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+seasonColumns+" FROM season ORDER BY year DESC, event_number DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Season
	for rows.Next() {
		entity, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Season to the database.
// PRE: entity has been validated and carries an ID
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Season) error {
	isActive := 0
	if entity.IsActive {
		isActive = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO season (id, year, event_date, event_number, signup_deadline, payment_deadline, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			year=excluded.year,
			event_date=excluded.event_date,
			event_number=excluded.event_number,
			signup_deadline=excluded.signup_deadline,
			payment_deadline=excluded.payment_deadline,
			is_active=excluded.is_active`,
		entity.ID,
		entity.Year,
		entity.EventDate.Format(storage.DateFormat),
		entity.EventNumber,
		entity.SignupDeadline.Format(storage.DateFormat),
		entity.PaymentDeadline.Format(storage.DateFormat),
		isActive,
		entity.CreatedAt.Format(storage.TimeFormat),
	)
	return err
}

// Delete removes a Season. Registrations keep their season_id and simply
// point at a gone season afterwards; that is the documented admin behavior.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM season WHERE id = ?", id)
	return err
}
