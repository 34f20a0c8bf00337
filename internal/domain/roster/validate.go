package roster

import (
	"regexp"
	"strings"
)

var (
	// Coarse shape check, deliberately not RFC 5322. Anything of the form
	// something@something.something passes.
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	// Leading +, first digit, 6-14 digits or spaces, final digit.
	// Gives 8-16 digit characters total with spaces allowed as separators.
	phonePattern = regexp.MustCompile(`^\+\d(?:[\d ]{6,14})\d$`)

	birthYearPattern = regexp.MustCompile(`^\d{4}$`)
)

// IsNonEmptyText returns true if s contains anything besides whitespace.
func IsNonEmptyText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail checks the coarse email shape. Intentionally permissive:
// the edit link mail is the real test of the address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone checks an international phone number such as
// "+41 78 882 26 50". Spaces are allowed between digits.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// IsValidBirthYear checks the format only (exactly four ASCII digits).
// Range checks against a season are done by Window.Allows.
func IsValidBirthYear(s string) bool {
	return birthYearPattern.MatchString(s)
}

// IsValidGender accepts the uppercase canonical codes only.
func IsValidGender(s string) bool {
	return s == GenderMale || s == GenderFemale
}
