package orchestrators

import (
	"context"
	"log/slog"
	"time"

	emailAdapter "meetsignup/internal/adapters/email"
	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

// UpdateRegistrationInput carries input for the update orchestrator.
type UpdateRegistrationInput struct {
	EditToken string
	Contact   roster.Contact
	Entries   []roster.Entry
}

// UpdateRegistrationResult reports what actually happened. Persisted and
// Notified move independently: a failed re-send leaves Persisted true.
type UpdateRegistrationResult struct {
	RegistrationID string
	Persisted      bool
	Notified       bool
}

// UpdateRegistrationDeps holds dependencies for UpdateRegistration.
type UpdateRegistrationDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	SeasonStore       SeasonLookup
	EmailSender       emailAdapter.Sender
	BaseURL           string
	FromAddress       string
	Now               func() time.Time
}

// ExecuteUpdateRegistration revises a registration located by its edit token.
// The deadline is re-checked against the wall clock on every attempt, before
// any write. The athlete set is replaced wholesale; the token never changes.
// PRE: EditToken resolves; the season's edit window is still open; input
// passes ValidateAll
// POST: Contact updated and athletes replaced; the edit link is re-sent
// best-effort
func ExecuteUpdateRegistration(ctx context.Context, input UpdateRegistrationInput, deps UpdateRegistrationDeps) (UpdateRegistrationResult, error) {
	if input.EditToken == "" {
		return UpdateRegistrationResult{}, registration.ErrNotFound
	}
	if len(input.Entries) == 0 {
		return UpdateRegistrationResult{}, registration.ErrEmptyRoster
	}

	reg, err := deps.RegistrationStore.GetByToken(ctx, input.EditToken)
	if err != nil {
		return UpdateRegistrationResult{}, err
	}
	if reg.SeasonID == "" {
		return UpdateRegistrationResult{}, registration.ErrSeasonRequired
	}

	seas, err := deps.SeasonStore.GetByID(ctx, reg.SeasonID)
	if err != nil {
		return UpdateRegistrationResult{}, err
	}

	now := deps.Now()
	if registration.IsLocked(seas.SignupDeadline, now) {
		return UpdateRegistrationResult{}, registration.ErrDeadlineExpired
	}

	window := roster.WindowFor(seas.Year, now)
	contactErrs, entryErrs, ok := roster.ValidateAll(input.Contact, input.Entries, window)
	if !ok {
		return UpdateRegistrationResult{}, &ValidationError{Contact: contactErrs, Entries: entryErrs}
	}

	if err := deps.RegistrationStore.UpdateContact(ctx, reg.ID, input.Contact, reg.SeasonID); err != nil {
		return UpdateRegistrationResult{}, err
	}
	if _, err := deps.AthleteStore.ReplaceForRegistration(ctx, reg.ID, athletesFromEntries(reg.ID, input.Entries)); err != nil {
		return UpdateRegistrationResult{RegistrationID: reg.ID}, err
	}

	result := UpdateRegistrationResult{RegistrationID: reg.ID, Persisted: true}

	slog.Info("registration_event", "event", "registration_updated", "registration_id", reg.ID, "athlete_count", len(input.Entries))

	editLink := emailAdapter.EditLink(deps.BaseURL, seas.Year, reg.EditToken)
	if err := sendEditLink(ctx, deps.EmailSender, deps.FromAddress, input.Contact.Email, editLink); err != nil {
		return result, &registration.NotificationError{Email: input.Contact.Email, Err: err}
	}
	result.Notified = true
	return result, nil
}
