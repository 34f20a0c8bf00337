package projections

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ExportAthletesQuery carries query parameters.
type ExportAthletesQuery struct {
	SeasonID string
}

// ExportAthletesDeps holds dependencies for ExportAthletes.
type ExportAthletesDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
}

// QueryExportAthletes streams a season's athletes as CSV, one row per
// athlete with the club taken from the registration. Column order and the
// German headers match the start-list tooling the export feeds.
// POST: Writer receives a header row plus one row per athlete; rows follow
// registration order, athletes within a registration keep their roster order
func QueryExportAthletes(ctx context.Context, query ExportAthletesQuery, deps ExportAthletesDeps, w io.Writer) error {
	regs, err := deps.RegistrationStore.ListBySeason(ctx, query.SeasonID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Vorname", "Jahrgang", "Verein", "Geschlecht"}); err != nil {
		return err
	}

	for _, reg := range regs {
		athletes, err := deps.AthleteStore.ListByRegistration(ctx, reg.ID)
		if err != nil {
			return err
		}
		for _, a := range athletes {
			row := []string{
				a.LastName,
				a.FirstName,
				strconv.Itoa(a.BirthYear),
				reg.Contact.Club,
				strings.ToUpper(a.Gender),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
