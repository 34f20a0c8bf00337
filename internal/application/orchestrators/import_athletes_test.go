package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func importIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("entry-%03d", n)
	}
}

func TestExecuteImportAthletes_Valid(t *testing.T) {
	csvData := "Vorname,Name,Jahrgang,Geschlecht\n" +
		"Anna,Keller,2015,W\n" +
		"Ben,Meier,2016,m\n"

	result, err := ExecuteImportAthletes(context.Background(), ImportAthletesInput{
		Reader: strings.NewReader(csvData),
	}, ImportAthletesDeps{GenerateID: importIDs()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || len(result.Entries) != 2 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.Entries[1].Gender != "M" {
		t.Error("gender must be canonicalized to uppercase")
	}
	if result.Entries[0].ID == result.Entries[1].ID {
		t.Error("entries must get distinct IDs")
	}
}

func TestExecuteImportAthletes_BlankRowsSkipped(t *testing.T) {
	csvData := "Vorname,Name,Jahrgang,Geschlecht\n" +
		"Anna,Keller,2015,W\n" +
		",,,\n" +
		"Ben,Meier,2016,M\n"

	result, err := ExecuteImportAthletes(context.Background(), ImportAthletesInput{
		Reader: strings.NewReader(csvData),
	}, ImportAthletesDeps{GenerateID: importIDs()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("blank rows must not count, Total = %d", result.Total)
	}
	if len(result.Entries) != 2 || len(result.Errors) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestExecuteImportAthletes_InvalidRowsReported(t *testing.T) {
	csvData := "Vorname,Name,Jahrgang,Geschlecht\n" +
		"Anna,Keller,2015,W\n" +
		"Ben,,2016,M\n" +
		"Clara,Steiner,16,W\n" +
		"Dana,Weber,2014,X\n"

	result, err := ExecuteImportAthletes(context.Background(), ImportAthletesInput{
		Reader: strings.NewReader(csvData),
	}, ImportAthletesDeps{GenerateID: importIDs()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("expected 1 parsed entry, got %d", len(result.Entries))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %+v", len(result.Errors), result.Errors)
	}
	// Row numbers count from the header as row 1.
	if result.Errors[0].Row != 3 || result.Errors[1].Row != 4 || result.Errors[2].Row != 5 {
		t.Errorf("unexpected row numbers: %+v", result.Errors)
	}
}

func TestExecuteImportAthletes_MissingColumn(t *testing.T) {
	csvData := "Vorname,Name,Geschlecht\nAnna,Keller,W\n"

	_, err := ExecuteImportAthletes(context.Background(), ImportAthletesInput{
		Reader: strings.NewReader(csvData),
	}, ImportAthletesDeps{GenerateID: importIDs()})

	var vErr *ImportAthletesValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ImportAthletesValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Message, "JAHRGANG") {
		t.Errorf("error should name the missing column: %q", vErr.Message)
	}
}
