package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	emailAdapter "meetsignup/internal/adapters/email"
	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
	"meetsignup/internal/domain/season"
)

// RegistrationStore defines the registration persistence needed by the
// public write flows.
type RegistrationStore interface {
	Insert(ctx context.Context, contact roster.Contact, seasonID string) (string, error)
	SetEditToken(ctx context.Context, id, token string) error
	GetByToken(ctx context.Context, token string) (registration.Registration, error)
	UpdateContact(ctx context.Context, id string, contact roster.Contact, seasonID string) error
	Delete(ctx context.Context, id string) error
}

// AthleteStore defines the athlete persistence needed by the public write flows.
type AthleteStore interface {
	InsertMany(ctx context.Context, registrationID string, athletes []registration.Athlete) ([]registration.Athlete, error)
	ReplaceForRegistration(ctx context.Context, registrationID string, athletes []registration.Athlete) ([]registration.Athlete, error)
	ListByRegistration(ctx context.Context, registrationID string) ([]registration.Athlete, error)
}

// SeasonLookup resolves the season a registration belongs to.
type SeasonLookup interface {
	GetByID(ctx context.Context, id string) (season.Season, error)
	GetActive(ctx context.Context) (season.Season, error)
}

// ValidationError carries the aggregated field errors of a rejected roster.
// It is recoverable; the caller renders the maps and lets the user fix them.
type ValidationError struct {
	Contact roster.ContactErrors
	Entries roster.ErrorMap
}

func (e *ValidationError) Error() string {
	return "registration has validation errors"
}

// SubmitRegistrationInput carries input for the submit orchestrator.
type SubmitRegistrationInput struct {
	Contact roster.Contact
	Entries []roster.Entry
}

// SubmitRegistrationResult carries the outcome of a successful submit.
// EditLink is always populated so the caller can show it as a fallback when
// the confirmation email did not go out.
type SubmitRegistrationResult struct {
	RegistrationID string
	EditToken      string
	EditLink       string
	Notified       bool
}

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	SeasonStore       SeasonLookup
	EmailSender       emailAdapter.Sender
	BaseURL           string
	FromAddress       string
	Now               func() time.Time
}

// ExecuteSubmitRegistration creates a registration for the active season.
// PRE: Contact and entries pass ValidateAll; an active season exists and its
// deadline has not passed
// POST: Registration, token and athletes are persisted atomically (token or
// athlete failure rolls the create back); the edit-link email is best-effort
// INVARIANT: The edit token is derived from the store-assigned ID exactly once
func ExecuteSubmitRegistration(ctx context.Context, input SubmitRegistrationInput, deps SubmitRegistrationDeps) (SubmitRegistrationResult, error) {
	if len(input.Entries) == 0 {
		return SubmitRegistrationResult{}, registration.ErrEmptyRoster
	}

	seas, err := deps.SeasonStore.GetActive(ctx)
	if err != nil {
		return SubmitRegistrationResult{}, registration.ErrSeasonRequired
	}

	now := deps.Now()
	if registration.IsLocked(seas.SignupDeadline, now) {
		return SubmitRegistrationResult{}, registration.ErrDeadlineExpired
	}

	window := roster.WindowFor(seas.Year, now)
	contactErrs, entryErrs, ok := roster.ValidateAll(input.Contact, input.Entries, window)
	if !ok {
		return SubmitRegistrationResult{}, &ValidationError{Contact: contactErrs, Entries: entryErrs}
	}

	id, err := deps.RegistrationStore.Insert(ctx, input.Contact, seas.ID)
	if err != nil {
		return SubmitRegistrationResult{}, err
	}

	token := registration.DeriveEditToken(id)
	if err := deps.RegistrationStore.SetEditToken(ctx, id, token); err != nil {
		if delErr := deps.RegistrationStore.Delete(ctx, id); delErr != nil {
			slog.Error("registration_event", "event", "rollback_failed", "registration_id", id, "error", delErr)
		}
		return SubmitRegistrationResult{}, err
	}

	if _, err := deps.AthleteStore.InsertMany(ctx, id, athletesFromEntries(id, input.Entries)); err != nil {
		if delErr := deps.RegistrationStore.Delete(ctx, id); delErr != nil {
			slog.Error("registration_event", "event", "rollback_failed", "registration_id", id, "error", delErr)
		}
		return SubmitRegistrationResult{}, err
	}

	result := SubmitRegistrationResult{
		RegistrationID: id,
		EditToken:      token,
		EditLink:       emailAdapter.EditLink(deps.BaseURL, seas.Year, token),
	}

	slog.Info("registration_event", "event", "registration_created", "registration_id", id, "season_id", seas.ID, "athlete_count", len(input.Entries))

	// The write above is committed; a failed email must not undo it.
	if err := sendEditLink(ctx, deps.EmailSender, deps.FromAddress, input.Contact.Email, result.EditLink); err != nil {
		return result, &registration.NotificationError{Email: input.Contact.Email, Err: err}
	}
	result.Notified = true
	return result, nil
}

// athletesFromEntries converts validated roster entries to athlete rows.
// PRE: entries passed ValidateAll, so BirthYear parses
func athletesFromEntries(registrationID string, entries []roster.Entry) []registration.Athlete {
	athletes := make([]registration.Athlete, 0, len(entries))
	for _, e := range entries {
		year, _ := strconv.Atoi(e.BirthYear)
		athletes = append(athletes, registration.Athlete{
			RegistrationID: registrationID,
			FirstName:      e.FirstName,
			LastName:       e.LastName,
			BirthYear:      year,
			Gender:         e.Gender,
		})
	}
	return athletes
}

func sendEditLink(ctx context.Context, sender emailAdapter.Sender, from, to, editLink string) error {
	_, err := sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{to},
		From:    from,
		Subject: emailAdapter.EditLinkSubject,
		HTML:    emailAdapter.EditLinkHTML(editLink),
	})
	return err
}
