package athlete

import (
	"context"

	domain "meetsignup/internal/domain/registration"
)

// Store persists Athlete rows.
type Store interface {
	// InsertMany assigns fresh IDs and inserts all athletes for one
	// registration in a single transaction.
	InsertMany(ctx context.Context, registrationID string, athletes []domain.Athlete) ([]domain.Athlete, error)
	// ReplaceForRegistration deletes the registration's athletes and
	// inserts the new set (the update flow is replace, not patch).
	ReplaceForRegistration(ctx context.Context, registrationID string, athletes []domain.Athlete) ([]domain.Athlete, error)
	// RestoreMany re-inserts athletes with their original IDs, for undo.
	RestoreMany(ctx context.Context, athletes []domain.Athlete) error
	// Update overwrites the editable fields of a single row (admin edit).
	Update(ctx context.Context, value domain.Athlete) error
	Delete(ctx context.Context, id string) error
	ListByRegistration(ctx context.Context, registrationID string) ([]domain.Athlete, error)
	ListBySeason(ctx context.Context, seasonID string) ([]domain.Athlete, error)
}
