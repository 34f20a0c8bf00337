package projections

import (
	"context"
	"time"

	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
	"meetsignup/internal/domain/season"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// mockRegistrationStore keeps registrations in insertion order so encounter
// order assertions hold.
type mockRegistrationStore struct {
	registrations []registration.Registration
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	for _, reg := range m.registrations {
		if reg.ID == id {
			return reg, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (m *mockRegistrationStore) GetByToken(_ context.Context, token string) (registration.Registration, error) {
	for _, reg := range m.registrations {
		if reg.EditToken == token {
			return reg, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (m *mockRegistrationStore) ListBySeason(_ context.Context, seasonID string) ([]registration.Registration, error) {
	var out []registration.Registration
	for _, reg := range m.registrations {
		if reg.SeasonID == seasonID {
			out = append(out, reg)
		}
	}
	return out, nil
}

type mockAthleteStore struct {
	athletes []registration.Athlete
}

func (m *mockAthleteStore) ListByRegistration(_ context.Context, registrationID string) ([]registration.Athlete, error) {
	var out []registration.Athlete
	for _, a := range m.athletes {
		if a.RegistrationID == registrationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAthleteStore) ListBySeason(_ context.Context, _ string) ([]registration.Athlete, error) {
	return m.athletes, nil
}

type mockSeasonStore struct {
	seasons map[string]season.Season
}

func (m *mockSeasonStore) GetByID(_ context.Context, id string) (season.Season, error) {
	s, ok := m.seasons[id]
	if !ok {
		return season.Season{}, season.ErrNotFound
	}
	return s, nil
}

func (m *mockSeasonStore) GetActive(_ context.Context) (season.Season, error) {
	for _, s := range m.seasons {
		if s.IsActive {
			return s, nil
		}
	}
	return season.Season{}, season.ErrNotFound
}

func (m *mockSeasonStore) List(_ context.Context) ([]season.Season, error) {
	var out []season.Season
	for _, s := range m.seasons {
		out = append(out, s)
	}
	return out, nil
}

func reg(id, club, trainer, seasonID string) registration.Registration {
	return registration.Registration{
		ID:       id,
		SeasonID: seasonID,
		Contact: roster.Contact{
			TrainerName: trainer,
			Club:        club,
			Email:       "trainer@example.org",
			Phone:       "+41 78 882 26 50",
		},
		CreatedAt: fixedTime,
	}
}

func ath(id, regID, first, last string, birthYear int, gender string) registration.Athlete {
	return registration.Athlete{
		ID:             id,
		RegistrationID: regID,
		FirstName:      first,
		LastName:       last,
		BirthYear:      birthYear,
		Gender:         gender,
	}
}
