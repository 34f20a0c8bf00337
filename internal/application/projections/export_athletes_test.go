package projections

import (
	"context"
	"strings"
	"testing"

	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

func TestQueryExportAthletes(t *testing.T) {
	regStore := &mockRegistrationStore{registrations: []registration.Registration{
		reg("r1", "LC Musterstadt", "Lena Huber", "season-2025"),
		reg("r2", `TV "Sparta" Kleinfeld`, "Jonas Frei", "season-2025"),
	}}
	athStore := &mockAthleteStore{athletes: []registration.Athlete{
		ath("a1", "r1", "Anna", "Keller", 2015, roster.GenderFemale),
		ath("a2", "r1", "Ben", "Meier", 2016, roster.GenderMale),
		ath("a3", "r2", "Clara", "Steiner", 2014, "w"),
	}}

	var buf strings.Builder
	err := QueryExportAthletes(context.Background(), ExportAthletesQuery{SeasonID: "season-2025"}, ExportAthletesDeps{
		RegistrationStore: regStore,
		AthleteStore:      athStore,
	}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Name,Vorname,Jahrgang,Verein,Geschlecht" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Keller,Anna,2015,LC Musterstadt,W" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Club with quotes must be escaped, gender uppercased.
	if !strings.Contains(lines[3], `"TV ""Sparta"" Kleinfeld"`) || !strings.HasSuffix(lines[3], ",W") {
		t.Errorf("row 3 = %q", lines[3])
	}
}

func TestQueryExportAthletes_EmptySeason(t *testing.T) {
	var buf strings.Builder
	err := QueryExportAthletes(context.Background(), ExportAthletesQuery{SeasonID: "season-2025"}, ExportAthletesDeps{
		RegistrationStore: &mockRegistrationStore{},
		AthleteStore:      &mockAthleteStore{},
	}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimRight(buf.String(), "\n") != "Name,Vorname,Jahrgang,Verein,Geschlecht" {
		t.Errorf("expected only the header, got %q", buf.String())
	}
}
