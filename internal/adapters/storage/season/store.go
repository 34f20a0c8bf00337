package season

import (
	"context"

	domain "meetsignup/internal/domain/season"
)

// Store persists Season state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Season, error)
	GetByYear(ctx context.Context, year int) (domain.Season, error)
	GetActive(ctx context.Context) (domain.Season, error)
	List(ctx context.Context) ([]domain.Season, error)
	Save(ctx context.Context, value domain.Season) error
	Delete(ctx context.Context, id string) error
}
