package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"meetsignup/internal/domain/season"
)

// SeasonStore defines the season persistence needed by the season flows.
type SeasonStore interface {
	GetByID(ctx context.Context, id string) (season.Season, error)
	List(ctx context.Context) ([]season.Season, error)
	Save(ctx context.Context, value season.Season) error
	Delete(ctx context.Context, id string) error
}

// SaveSeasonInput carries input for the save season orchestrator. An empty
// ID creates a new season; a set ID updates the existing one.
type SaveSeasonInput struct {
	ID              string
	Year            int
	EventDate       time.Time
	EventNumber     int
	SignupDeadline  time.Time
	PaymentDeadline time.Time
	IsActive        bool
}

// SaveSeasonDeps holds dependencies for SaveSeason.
type SaveSeasonDeps struct {
	SeasonStore SeasonStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteSaveSeason creates or updates a season.
// PRE: Input passes season.Validate
// POST: Season persisted; CreatedAt is set once on create
func ExecuteSaveSeason(ctx context.Context, input SaveSeasonInput, deps SaveSeasonDeps) (season.Season, error) {
	s := season.Season{
		ID:              input.ID,
		Year:            input.Year,
		EventDate:       input.EventDate,
		EventNumber:     input.EventNumber,
		SignupDeadline:  input.SignupDeadline,
		PaymentDeadline: input.PaymentDeadline,
		IsActive:        input.IsActive,
	}

	if s.ID == "" {
		s.ID = deps.GenerateID()
		s.CreatedAt = deps.Now()
	} else {
		existing, err := deps.SeasonStore.GetByID(ctx, s.ID)
		if err != nil {
			return season.Season{}, err
		}
		s.CreatedAt = existing.CreatedAt
	}

	if err := s.Validate(); err != nil {
		return season.Season{}, err
	}

	if err := deps.SeasonStore.Save(ctx, s); err != nil {
		return season.Season{}, err
	}

	slog.Info("season_event", "event", "season_saved", "season_id", s.ID, "year", s.Year, "active", s.IsActive)
	return s, nil
}

// DeleteSeasonInput carries input for the delete season orchestrator.
type DeleteSeasonInput struct {
	SeasonID string
}

// DeleteSeasonDeps holds dependencies for DeleteSeason.
type DeleteSeasonDeps struct {
	SeasonStore SeasonStore
}

// ExecuteDeleteSeason removes a season. Registrations referencing it keep
// their season_id; reads treat the dangling reference as "season unknown".
// PRE: SeasonID refers to an existing row
func ExecuteDeleteSeason(ctx context.Context, input DeleteSeasonInput, deps DeleteSeasonDeps) error {
	if input.SeasonID == "" {
		return season.ErrNotFound
	}
	if _, err := deps.SeasonStore.GetByID(ctx, input.SeasonID); err != nil {
		return err
	}
	if err := deps.SeasonStore.Delete(ctx, input.SeasonID); err != nil {
		return err
	}
	slog.Info("season_event", "event", "season_deleted", "season_id", input.SeasonID)
	return nil
}
