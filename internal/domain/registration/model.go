package registration

import (
	"errors"
	"fmt"
	"time"

	"meetsignup/internal/domain/roster"
)

// Domain errors
var (
	ErrNotFound        = errors.New("registration not found")
	ErrDeadlineExpired = errors.New("signup deadline has passed, changes are no longer possible")
	ErrSeasonRequired  = errors.New("a season is required to save a registration")
	ErrEmptyRoster     = errors.New("a registration needs at least one athlete")
)

// NotificationError wraps a failed edit-link email send. The write it
// followed has already been committed; callers decide how to message the
// user, not whether to roll back.
type NotificationError struct {
	Email string
	Err   error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("edit-link email to %s failed: %v", e.Email, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// Athlete is one persisted participant row of a registration.
type Athlete struct {
	ID             string
	RegistrationID string
	FirstName      string
	LastName       string
	BirthYear      int
	Gender         string
}

// Registration holds one trainer's submission for a season. The ID is
// assigned by the store on creation; the edit token is derived from it
// exactly once and never changes afterwards.
type Registration struct {
	ID        string
	Contact   roster.Contact
	EditToken string
	SeasonID  string
	CreatedAt time.Time
	Athletes  []Athlete
}

// EditDeadline extends a signup deadline to the end of its calendar day.
// Edits are allowed through 23:59:59.999 of the deadline date.
func EditDeadline(signupDeadline time.Time) time.Time {
	y, m, d := signupDeadline.Date()
	return time.Date(y, m, d, 23, 59, 59, 999000000, signupDeadline.Location())
}

// IsLocked reports whether the edit window for the given signup deadline
// has closed. The check reads the wall clock supplied by the caller and is
// re-evaluated on every attempt; there is no stored "locked" state.
func IsLocked(signupDeadline, now time.Time) bool {
	return now.After(EditDeadline(signupDeadline))
}

// EntryFromAthlete converts a persisted athlete back into an editable
// roster entry, keeping the stored row ID so edits map back.
func EntryFromAthlete(a Athlete) roster.Entry {
	return roster.Entry{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthYear: fmt.Sprintf("%d", a.BirthYear),
		Gender:    a.Gender,
	}
}
