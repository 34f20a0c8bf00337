package roster_test

import (
	"testing"

	"meetsignup/internal/domain/roster"
)

// TestIsDuplicate tests name-based duplicate detection across a roster.
func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name    string
		entry   roster.Entry
		entries roster.Roster
		want    bool
	}{
		{
			name:  "exact match on another entry",
			entry: roster.Entry{ID: "a", FirstName: "Anna", LastName: "Muster"},
			entries: roster.Roster{
				{ID: "a", FirstName: "Anna", LastName: "Muster"},
				{ID: "b", FirstName: "Anna", LastName: "Muster"},
			},
			want: true,
		},
		{
			name:  "case and whitespace insensitive",
			entry: roster.Entry{ID: "a", FirstName: "anna ", LastName: " MUSTER"},
			entries: roster.Roster{
				{ID: "a", FirstName: "anna ", LastName: " MUSTER"},
				{ID: "b", FirstName: "Anna", LastName: "Muster"},
			},
			want: true,
		},
		{
			name:  "same name different birth year still counts",
			entry: roster.Entry{ID: "a", FirstName: "Anna", LastName: "Muster", BirthYear: "2016"},
			entries: roster.Roster{
				{ID: "a", FirstName: "Anna", LastName: "Muster", BirthYear: "2016"},
				{ID: "b", FirstName: "Anna", LastName: "Muster", BirthYear: "2014"},
			},
			want: true,
		},
		{
			name:  "different last name",
			entry: roster.Entry{ID: "a", FirstName: "Anna", LastName: "Muster"},
			entries: roster.Roster{
				{ID: "a", FirstName: "Anna", LastName: "Muster"},
				{ID: "b", FirstName: "Anna", LastName: "Müller"},
			},
			want: false,
		},
		{
			name:  "blank first names never match",
			entry: roster.Entry{ID: "a", FirstName: "", LastName: "Muster"},
			entries: roster.Roster{
				{ID: "a", FirstName: "", LastName: "Muster"},
				{ID: "b", FirstName: "", LastName: "Muster"},
			},
			want: false,
		},
		{
			name:  "whitespace-only names never match",
			entry: roster.Entry{ID: "a", FirstName: "  ", LastName: "Muster"},
			entries: roster.Roster{
				{ID: "a", FirstName: "  ", LastName: "Muster"},
				{ID: "b", FirstName: "  ", LastName: "Muster"},
			},
			want: false,
		},
		{
			name:  "entry alone in roster",
			entry: roster.Entry{ID: "a", FirstName: "Anna", LastName: "Muster"},
			entries: roster.Roster{
				{ID: "a", FirstName: "Anna", LastName: "Muster"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.IsDuplicate(tt.entry, tt.entries); got != tt.want {
				t.Errorf("IsDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsDuplicate_Symmetric verifies both members of a pair are flagged.
func TestIsDuplicate_Symmetric(t *testing.T) {
	entries := roster.Roster{
		{ID: "a", FirstName: "Anna", LastName: "Muster"},
		{ID: "b", FirstName: "Anna", LastName: "Muster"},
		{ID: "c", FirstName: "Lena", LastName: "Keller"},
	}
	if !roster.IsDuplicate(entries[0], entries) {
		t.Error("expected first entry of the pair to be a duplicate")
	}
	if !roster.IsDuplicate(entries[1], entries) {
		t.Error("expected second entry of the pair to be a duplicate")
	}
	if roster.IsDuplicate(entries[2], entries) {
		t.Error("expected unrelated entry not to be a duplicate")
	}
}
