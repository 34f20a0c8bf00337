package roster

import (
	"fmt"
	"strconv"
	"time"
)

// Lookback from the season's reference year to the oldest permitted
// birth year (the oldest age group spans up to 13 years before the season).
const eligibilityLookbackYears = 13

// Window is the inclusive birth-year range permitted for a season.
// Min is the oldest permitted birth year, Max the youngest; nobody born in
// the current calendar year or later may start.
type Window struct {
	Min int
	Max int
}

// WindowFor derives the allowed birth-year range from the season's
// reference year and the current date. A zero season year yields a zero
// Window, meaning no range restriction.
func WindowFor(seasonYear int, now time.Time) Window {
	if seasonYear == 0 {
		return Window{}
	}
	return Window{
		Min: seasonYear - eligibilityLookbackYears,
		Max: now.Year() - 1,
	}
}

// IsZero reports whether the window carries no restriction.
func (w Window) IsZero() bool {
	return w.Min == 0 && w.Max == 0
}

// Allows checks a raw birth-year string against the window. Format is NOT
// checked here; callers run IsValidBirthYear first. A zero window allows
// everything.
func (w Window) Allows(birthYear string) bool {
	if w.IsZero() {
		return true
	}
	year, err := strconv.Atoi(birthYear)
	if err != nil {
		return false
	}
	return year >= w.Min && year <= w.Max
}

// Label renders the window for user display, e.g. "2014 bis 2024".
func (w Window) Label() string {
	if w.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d bis %d", w.Min, w.Max)
}
