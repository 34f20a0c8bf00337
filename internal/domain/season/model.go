package season

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrInvalidYear      = errors.New("season year must be a four-digit year")
	ErrMissingEventDate = errors.New("season event date is required")
	ErrMissingDeadlines = errors.New("season signup and payment deadlines are required")
	ErrNotFound         = errors.New("season not found")
)

// Season is one yearly edition of the meet with its own deadlines. The
// data model allows zero or several active seasons; the public flow picks
// the newest active one and must cope with none at all.
type Season struct {
	ID              string
	Year            int
	EventDate       time.Time
	EventNumber     int
	SignupDeadline  time.Time
	PaymentDeadline time.Time
	IsActive        bool
	CreatedAt       time.Time
}

// Validate checks if the Season has valid data.
// PRE: Season struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Season) Validate() error {
	if s.Year < 1000 || s.Year > 9999 {
		return ErrInvalidYear
	}
	if s.EventDate.IsZero() {
		return ErrMissingEventDate
	}
	if s.SignupDeadline.IsZero() || s.PaymentDeadline.IsZero() {
		return ErrMissingDeadlines
	}
	return nil
}

// NextDefaults pre-fills a follow-up season from this one: every date moves
// one year forward, the event number increments, and the new season starts
// active.
// INVARIANT: the receiver is not mutated
func (s *Season) NextDefaults() Season {
	return Season{
		Year:            s.Year + 1,
		EventDate:       s.EventDate.AddDate(1, 0, 0),
		EventNumber:     s.EventNumber + 1,
		SignupDeadline:  s.SignupDeadline.AddDate(1, 0, 0),
		PaymentDeadline: s.PaymentDeadline.AddDate(1, 0, 0),
		IsActive:        true,
	}
}
