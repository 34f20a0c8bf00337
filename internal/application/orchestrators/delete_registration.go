package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"meetsignup/internal/domain/registration"
)

// UndoWindow is how long a deleted registration can be restored.
const UndoWindow = 10 * time.Second

// ErrUndoExpired is returned when the undo window has closed or the
// snapshot was displaced by a later delete.
var ErrUndoExpired = errors.New("nothing to undo")

// UndoBuffer holds the snapshot of the most recently deleted registration.
// It keeps exactly one entry; the next delete displaces the previous one.
type UndoBuffer struct {
	mu        sync.Mutex
	snapshot  registration.Registration
	deletedAt time.Time
	valid     bool
}

// NewUndoBuffer creates an empty buffer.
func NewUndoBuffer() *UndoBuffer {
	return &UndoBuffer{}
}

// Put stores a snapshot, displacing any previous one.
func (b *UndoBuffer) Put(snap registration.Registration, deletedAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snap
	b.deletedAt = deletedAt
	b.valid = true
}

// Take removes and returns the snapshot if it is still within the undo
// window at now. Expired or absent snapshots yield ErrUndoExpired.
func (b *UndoBuffer) Take(now time.Time) (registration.Registration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid || now.After(b.deletedAt.Add(UndoWindow)) {
		b.valid = false
		return registration.Registration{}, ErrUndoExpired
	}
	snap := b.snapshot
	b.valid = false
	return snap, nil
}

// DeleteRegistrationStore defines the registration persistence needed by
// delete and undo.
type DeleteRegistrationStore interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, value registration.Registration) error
}

// DeleteAthleteStore defines the athlete persistence needed by delete and undo.
type DeleteAthleteStore interface {
	ListByRegistration(ctx context.Context, registrationID string) ([]registration.Athlete, error)
	RestoreMany(ctx context.Context, athletes []registration.Athlete) error
}

// DeleteRegistrationInput carries input for the delete orchestrator.
type DeleteRegistrationInput struct {
	RegistrationID string
}

// DeleteRegistrationDeps holds dependencies for DeleteRegistration.
type DeleteRegistrationDeps struct {
	RegistrationStore DeleteRegistrationStore
	AthleteStore      DeleteAthleteStore
	UndoBuffer        *UndoBuffer
	Now               func() time.Time
}

// ExecuteDeleteRegistration removes a registration and parks a full snapshot
// (row, token, athletes) in the undo buffer.
// PRE: RegistrationID refers to an existing row
// POST: Registration and its athletes are gone from storage; the snapshot is
// restorable for UndoWindow
func ExecuteDeleteRegistration(ctx context.Context, input DeleteRegistrationInput, deps DeleteRegistrationDeps) error {
	if input.RegistrationID == "" {
		return registration.ErrNotFound
	}

	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return err
	}
	athletes, err := deps.AthleteStore.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return err
	}
	reg.Athletes = athletes

	// Athlete rows cascade with the registration row.
	if err := deps.RegistrationStore.Delete(ctx, reg.ID); err != nil {
		return err
	}

	deps.UndoBuffer.Put(reg, deps.Now())
	slog.Info("registration_event", "event", "registration_deleted", "registration_id", reg.ID, "athlete_count", len(athletes))
	return nil
}

// UndoDeleteDeps holds dependencies for UndoDelete.
type UndoDeleteDeps struct {
	RegistrationStore DeleteRegistrationStore
	AthleteStore      DeleteAthleteStore
	UndoBuffer        *UndoBuffer
	Now               func() time.Time
}

// ExecuteUndoDelete restores the most recently deleted registration with its
// original ID, edit token and athlete rows, so previously sent edit links
// keep working.
// PRE: A delete happened within UndoWindow
// POST: The identical rows are back in storage; the buffer is empty
func ExecuteUndoDelete(ctx context.Context, deps UndoDeleteDeps) (string, error) {
	snap, err := deps.UndoBuffer.Take(deps.Now())
	if err != nil {
		return "", err
	}

	if err := deps.RegistrationStore.Restore(ctx, snap); err != nil {
		return "", err
	}
	if err := deps.AthleteStore.RestoreMany(ctx, snap.Athletes); err != nil {
		return "", err
	}

	slog.Info("registration_event", "event", "registration_restored", "registration_id", snap.ID, "athlete_count", len(snap.Athletes))
	return snap.ID, nil
}
