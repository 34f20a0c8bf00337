package registration

import (
	"context"

	domain "meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

// Store persists Registration rows. Athlete rows live in their own store;
// read-side stitching happens in the projections.
type Store interface {
	// Insert creates a new row and returns the store-assigned ID. The edit
	// token is set in a separate step so a token failure can roll the
	// create back.
	Insert(ctx context.Context, contact roster.Contact, seasonID string) (string, error)
	SetEditToken(ctx context.Context, id, token string) error
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	GetByToken(ctx context.Context, token string) (domain.Registration, error)
	ListBySeason(ctx context.Context, seasonID string) ([]domain.Registration, error)
	UpdateContact(ctx context.Context, id string, contact roster.Contact, seasonID string) error
	Delete(ctx context.Context, id string) error
	// Restore re-inserts a previously deleted row with its original ID and
	// token, for the admin undo window.
	Restore(ctx context.Context, value domain.Registration) error
}
