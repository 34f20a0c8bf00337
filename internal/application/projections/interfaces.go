package projections

import (
	"context"

	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/season"
)

// RegistrationStore interface for registration queries.
type RegistrationStore interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	GetByToken(ctx context.Context, token string) (registration.Registration, error)
	ListBySeason(ctx context.Context, seasonID string) ([]registration.Registration, error)
}

// AthleteStore interface for athlete queries.
type AthleteStore interface {
	ListByRegistration(ctx context.Context, registrationID string) ([]registration.Athlete, error)
	ListBySeason(ctx context.Context, seasonID string) ([]registration.Athlete, error)
}

// SeasonStore interface for season queries.
type SeasonStore interface {
	GetByID(ctx context.Context, id string) (season.Season, error)
	GetActive(ctx context.Context) (season.Season, error)
	List(ctx context.Context) ([]season.Season, error)
}
