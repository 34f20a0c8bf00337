package roster_test

import (
	"testing"

	"meetsignup/internal/domain/roster"
)

// TestIsNonEmptyText tests the non-empty text validator.
func TestIsNonEmptyText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain text", "Anna", true},
		{"inner whitespace", "Anna Muster", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"tab and newline", "\t\n", false},
		{"padded text", "  Anna  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsNonEmptyText(tt.input); got != tt.want {
				t.Errorf("IsNonEmptyText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestIsValidEmail tests the coarse email shape check.
func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple address", "max@scl-athletics.ch", true},
		{"subdomain", "a@b.example.org", true},
		{"missing at", "max.scl-athletics.ch", false},
		{"missing dot after at", "max@localhost", false},
		{"whitespace inside", "max mustermann@example.ch", false},
		{"empty", "", false},
		{"bare at and dot", "a@b.c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsValidEmail(tt.input); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestIsValidPhone tests the international phone number check.
func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"swiss mobile with spaces", "+41 78 882 26 50", true},
		{"compact", "+41788822650", true},
		{"padded input is trimmed", "  +41 78 882 26 50  ", true},
		{"minimum eight digits", "+12345678", true},
		{"seven digits too short", "+1234567", false},
		{"sixteen digits", "+1234567890123456", true},
		{"seventeen digits too long", "+12345678901234567", false},
		{"missing plus", "41 78 882 26 50", false},
		{"letters", "+41 78 call me", false},
		{"space right after plus", "+ 41788822650", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsValidPhone(tt.input); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestIsValidBirthYear tests the four-digit format check.
func TestIsValidBirthYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"four digits", "2016", true},
		{"three digits", "201", false},
		{"five digits", "20166", false},
		{"non-digit", "20a6", false},
		{"empty", "", false},
		{"padded", " 2016", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsValidBirthYear(tt.input); got != tt.want {
				t.Errorf("IsValidBirthYear(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestIsValidGender tests the gender code check.
func TestIsValidGender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"male", "M", true},
		{"female", "W", true},
		{"lowercase m", "m", false},
		{"lowercase w", "w", false},
		{"other", "X", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsValidGender(tt.input); got != tt.want {
				t.Errorf("IsValidGender(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
