package projections

import (
	"context"
	"strconv"
	"strings"

	"meetsignup/internal/domain/registration"
)

// GetRegistrationListQuery carries query parameters. Search is an optional
// case-insensitive substring filter.
type GetRegistrationListQuery struct {
	SeasonID string
	Search   string
}

// GetRegistrationListResult carries the stitched registrations, newest first,
// each with its athletes attached.
type GetRegistrationListResult struct {
	Registrations []registration.Registration
}

// GetRegistrationListDeps holds dependencies for GetRegistrationList.
type GetRegistrationListDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
}

// QueryGetRegistrationList retrieves a season's registrations with athletes.
// The search term matches the contact block (trainer name, club, email,
// phone) and any athlete's first name, last name or birth year.
// PRE: SeasonID is non-empty
// POST: Every returned registration has Athletes populated
func QueryGetRegistrationList(ctx context.Context, query GetRegistrationListQuery, deps GetRegistrationListDeps) (GetRegistrationListResult, error) {
	regs, err := deps.RegistrationStore.ListBySeason(ctx, query.SeasonID)
	if err != nil {
		return GetRegistrationListResult{}, err
	}

	var result []registration.Registration
	for _, reg := range regs {
		athletes, err := deps.AthleteStore.ListByRegistration(ctx, reg.ID)
		if err != nil {
			return GetRegistrationListResult{}, err
		}
		reg.Athletes = athletes

		if query.Search == "" || matchesSearch(reg, query.Search) {
			result = append(result, reg)
		}
	}

	return GetRegistrationListResult{Registrations: result}, nil
}

func matchesSearch(reg registration.Registration, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}

	fields := []string{
		reg.Contact.TrainerName,
		reg.Contact.Club,
		reg.Contact.Email,
		reg.Contact.Phone,
	}
	for _, a := range reg.Athletes {
		fields = append(fields, a.FirstName, a.LastName, strconv.Itoa(a.BirthYear))
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// GetRegistrationByTokenQuery carries the public edit-page lookup.
type GetRegistrationByTokenQuery struct {
	EditToken string
}

// GetRegistrationByTokenDeps holds dependencies for GetRegistrationByToken.
type GetRegistrationByTokenDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
}

// QueryGetRegistrationByToken loads one registration with athletes for the
// public edit page.
// POST: Returns registration.ErrNotFound when the token resolves to nothing
func QueryGetRegistrationByToken(ctx context.Context, query GetRegistrationByTokenQuery, deps GetRegistrationByTokenDeps) (registration.Registration, error) {
	if query.EditToken == "" {
		return registration.Registration{}, registration.ErrNotFound
	}
	reg, err := deps.RegistrationStore.GetByToken(ctx, query.EditToken)
	if err != nil {
		return registration.Registration{}, err
	}
	athletes, err := deps.AthleteStore.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return registration.Registration{}, err
	}
	reg.Athletes = athletes
	return reg, nil
}
