package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

// AdminRegistrationStore defines the registration persistence needed by admin saves.
type AdminRegistrationStore interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	UpdateContact(ctx context.Context, id string, contact roster.Contact, seasonID string) error
}

// AdminAthleteStore defines the athlete persistence needed by admin saves.
type AdminAthleteStore interface {
	Update(ctx context.Context, value registration.Athlete) error
}

// PartialSaveError reports an admin save that stopped partway. Writes before
// FailedAthleteID have been applied and stay applied.
type PartialSaveError struct {
	RegistrationID  string
	FailedAthleteID string
	Err             error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("save of registration %s stopped at athlete %s: %v", e.RegistrationID, e.FailedAthleteID, e.Err)
}

func (e *PartialSaveError) Unwrap() error {
	return e.Err
}

// AdminSaveRegistrationInput carries input for the admin save orchestrator.
type AdminSaveRegistrationInput struct {
	RegistrationID string
	Contact        roster.Contact
	Athletes       []registration.Athlete
}

// AdminSaveRegistrationDeps holds dependencies for AdminSaveRegistration.
type AdminSaveRegistrationDeps struct {
	RegistrationStore AdminRegistrationStore
	AthleteStore      AdminAthleteStore
}

// ExecuteAdminSaveRegistration applies an admin's edits: the contact block
// first, then each athlete row in order. Admin edits bypass the deadline gate
// and field validation on purpose; the admin corrects what trainers cannot.
// PRE: RegistrationID refers to an existing row
// POST: Contact and athletes updated; on a mid-sequence failure the writes
// already applied remain and a PartialSaveError names the failing row
func ExecuteAdminSaveRegistration(ctx context.Context, input AdminSaveRegistrationInput, deps AdminSaveRegistrationDeps) error {
	if input.RegistrationID == "" {
		return registration.ErrNotFound
	}

	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return err
	}

	if err := deps.RegistrationStore.UpdateContact(ctx, reg.ID, input.Contact, reg.SeasonID); err != nil {
		return err
	}

	for _, a := range input.Athletes {
		a.RegistrationID = reg.ID
		if err := deps.AthleteStore.Update(ctx, a); err != nil {
			return &PartialSaveError{RegistrationID: reg.ID, FailedAthleteID: a.ID, Err: err}
		}
	}

	slog.Info("registration_event", "event", "registration_admin_saved", "registration_id", reg.ID, "athlete_count", len(input.Athletes))
	return nil
}
