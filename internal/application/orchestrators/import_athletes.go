package orchestrators

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"

	"meetsignup/internal/domain/roster"
)

// ImportAthletesInput carries the CSV stream for a bulk roster import.
// PRE: Reader is a valid CSV stream with a header row.
type ImportAthletesInput struct {
	Reader io.Reader
}

// ImportAthletesResult holds the parsed entries and per-row errors from an
// import run. Nothing is persisted here; the entries feed the normal submit
// or update flow, which validates them again as a whole roster.
type ImportAthletesResult struct {
	Total   int
	Entries []roster.Entry
	Errors  []ImportAthletesRowError
}

// ImportAthletesRowError describes a validation error for a single CSV row.
type ImportAthletesRowError struct {
	Row     int
	Message string
}

// ImportAthletesDeps holds dependencies for the import orchestrator.
type ImportAthletesDeps struct {
	GenerateID func() string
}

// ImportAthletesValidationError is returned when the CSV structure is
// invalid, e.g. a missing required column.
type ImportAthletesValidationError struct {
	Message string
}

func (e *ImportAthletesValidationError) Error() string {
	return e.Message
}

// ExecuteImportAthletes parses a CSV stream into roster entries.
// Expected columns: VORNAME, NAME, JAHRGANG, GESCHLECHT. Gender is accepted
// case-insensitively and canonicalized to uppercase. Completely blank rows
// are skipped silently; partially filled or invalid rows are reported with
// their row number and produce no entry.
// POST: Every returned entry has all four fields set and a fresh ID
func ExecuteImportAthletes(_ context.Context, input ImportAthletesInput, deps ImportAthletesDeps) (ImportAthletesResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return ImportAthletesResult{}, err
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"VORNAME", "NAME", "JAHRGANG", "GESCHLECHT"} {
		if _, ok := colIdx[col]; !ok {
			return ImportAthletesResult{}, &ImportAthletesValidationError{Message: "CSV missing required column: " + col}
		}
	}

	getCol := func(row []string, col string) string {
		i := colIdx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var result ImportAthletesResult
	rowNum := 1

	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		rowNum++

		firstName := getCol(row, "VORNAME")
		lastName := getCol(row, "NAME")
		birthYear := getCol(row, "JAHRGANG")
		gender := strings.ToUpper(getCol(row, "GESCHLECHT"))

		if firstName == "" && lastName == "" && birthYear == "" && gender == "" {
			continue
		}
		result.Total++

		if firstName == "" || lastName == "" {
			result.Errors = append(result.Errors, ImportAthletesRowError{Row: rowNum, Message: "first and last name are required"})
			continue
		}
		if !roster.IsValidBirthYear(birthYear) {
			result.Errors = append(result.Errors, ImportAthletesRowError{Row: rowNum, Message: "invalid birth year: " + birthYear})
			continue
		}
		if !roster.IsValidGender(gender) {
			result.Errors = append(result.Errors, ImportAthletesRowError{Row: rowNum, Message: "invalid gender: " + getCol(row, "GESCHLECHT")})
			continue
		}

		result.Entries = append(result.Entries, roster.Entry{
			ID:        deps.GenerateID(),
			FirstName: firstName,
			LastName:  lastName,
			BirthYear: birthYear,
			Gender:    gender,
		})
	}

	slog.Info("athletes_import", "total", result.Total, "parsed", len(result.Entries), "errors", len(result.Errors))
	return result, nil
}
