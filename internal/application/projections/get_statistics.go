package projections

import (
	"context"
	"sort"
	"time"

	"meetsignup/internal/domain/roster"
)

// GetStatisticsQuery carries query parameters.
type GetStatisticsQuery struct {
	SeasonID string
}

// GenderSplit holds a per-gender athlete count.
type GenderSplit struct {
	Male   int
	Female int
}

// ClubCount is one club with its registration count.
type ClubCount struct {
	Name  string
	Count int
}

// GetStatisticsResult aggregates one season's registrations for the admin
// view. The three age categories are anchored on the current calendar year,
// not the season year. Birth years older than C-13 count toward the totals
// but toward no category; that gap is carried over on purpose.
type GetStatisticsResult struct {
	TotalRegistrations int
	TotalAthletes      int
	UniqueClubs        int
	AthletesByGender   GenderSplit
	U10                GenderSplit // birth year >= C-9
	U12                GenderSplit // birth year in {C-10, C-11}
	U14                GenderSplit // birth year in {C-12, C-13}
	AthletesByYear     map[int]int
	Clubs              []ClubCount
}

// GetStatisticsDeps holds dependencies for GetStatistics.
type GetStatisticsDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	Now               func() time.Time
}

// QueryGetStatistics reduces a season's registrations into counts by gender,
// age category, birth year and club.
// PRE: SeasonID is non-empty
// POST: Clubs are sorted by registration count descending, ties keep the
// order in which the clubs were first seen; clubs are compared case-sensitively
func QueryGetStatistics(ctx context.Context, query GetStatisticsQuery, deps GetStatisticsDeps) (GetStatisticsResult, error) {
	regs, err := deps.RegistrationStore.ListBySeason(ctx, query.SeasonID)
	if err != nil {
		return GetStatisticsResult{}, err
	}
	athletes, err := deps.AthleteStore.ListBySeason(ctx, query.SeasonID)
	if err != nil {
		return GetStatisticsResult{}, err
	}

	result := GetStatisticsResult{
		TotalRegistrations: len(regs),
		TotalAthletes:      len(athletes),
		AthletesByYear:     make(map[int]int),
	}

	clubCounts := make(map[string]int)
	var clubOrder []string
	for _, reg := range regs {
		if reg.Contact.Club == "" {
			continue
		}
		if _, seen := clubCounts[reg.Contact.Club]; !seen {
			clubOrder = append(clubOrder, reg.Contact.Club)
		}
		clubCounts[reg.Contact.Club]++
	}

	currentYear := deps.Now().Year()
	for _, a := range athletes {
		switch a.Gender {
		case roster.GenderMale:
			result.AthletesByGender.Male++
		case roster.GenderFemale:
			result.AthletesByGender.Female++
		}
		result.AthletesByYear[a.BirthYear]++

		var category *GenderSplit
		switch {
		case a.BirthYear >= currentYear-9:
			category = &result.U10
		case a.BirthYear == currentYear-10 || a.BirthYear == currentYear-11:
			category = &result.U12
		case a.BirthYear == currentYear-12 || a.BirthYear == currentYear-13:
			category = &result.U14
		}
		if category == nil {
			continue
		}
		switch a.Gender {
		case roster.GenderMale:
			category.Male++
		case roster.GenderFemale:
			category.Female++
		}
	}

	result.UniqueClubs = len(clubCounts)
	result.Clubs = make([]ClubCount, 0, len(clubOrder))
	for _, name := range clubOrder {
		result.Clubs = append(result.Clubs, ClubCount{Name: name, Count: clubCounts[name]})
	}
	sort.SliceStable(result.Clubs, func(i, j int) bool {
		return result.Clubs[i].Count > result.Clubs[j].Count
	})

	return result, nil
}
