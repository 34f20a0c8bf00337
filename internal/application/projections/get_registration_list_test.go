package projections

import (
	"context"
	"errors"
	"testing"

	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
)

func listFixtures() (*mockRegistrationStore, *mockAthleteStore) {
	regStore := &mockRegistrationStore{registrations: []registration.Registration{
		reg("r1", "LC Musterstadt", "Lena Huber", "season-2025"),
		reg("r2", "TV Kleinfeld", "Jonas Frei", "season-2025"),
	}}
	athStore := &mockAthleteStore{athletes: []registration.Athlete{
		ath("a1", "r1", "Anna", "Keller", 2015, roster.GenderFemale),
		ath("a2", "r2", "Ben", "Meier", 2016, roster.GenderMale),
	}}
	return regStore, athStore
}

func TestQueryGetRegistrationList_StitchesAthletes(t *testing.T) {
	regStore, athStore := listFixtures()

	result, err := QueryGetRegistrationList(context.Background(), GetRegistrationListQuery{SeasonID: "season-2025"}, GetRegistrationListDeps{
		RegistrationStore: regStore,
		AthleteStore:      athStore,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Registrations) != 2 {
		t.Fatalf("got %d registrations", len(result.Registrations))
	}
	if len(result.Registrations[0].Athletes) != 1 || result.Registrations[0].Athletes[0].FirstName != "Anna" {
		t.Errorf("athletes not stitched: %+v", result.Registrations[0].Athletes)
	}
}

func TestQueryGetRegistrationList_Search(t *testing.T) {
	regStore, athStore := listFixtures()
	deps := GetRegistrationListDeps{RegistrationStore: regStore, AthleteStore: athStore}

	tests := []struct {
		name   string
		search string
		want   []string // expected registration IDs
	}{
		{"trainer name, case-insensitive", "lena", []string{"r1"}},
		{"club substring", "kleinfeld", []string{"r2"}},
		{"athlete last name", "meier", []string{"r2"}},
		{"athlete birth year", "2015", []string{"r1"}},
		{"email matches all fixtures", "example.org", []string{"r1", "r2"}},
		{"no match", "zebra", nil},
		{"blank returns all", "  ", []string{"r1", "r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := QueryGetRegistrationList(context.Background(), GetRegistrationListQuery{
				SeasonID: "season-2025",
				Search:   tt.search,
			}, deps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, r := range result.Registrations {
				got = append(got, r.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQueryGetRegistrationByToken(t *testing.T) {
	regStore, athStore := listFixtures()
	regStore.registrations[0].EditToken = "tok-r1"

	result, err := QueryGetRegistrationByToken(context.Background(), GetRegistrationByTokenQuery{EditToken: "tok-r1"}, GetRegistrationByTokenDeps{
		RegistrationStore: regStore,
		AthleteStore:      athStore,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "r1" || len(result.Athletes) != 1 {
		t.Errorf("result = %+v", result)
	}

	_, err = QueryGetRegistrationByToken(context.Background(), GetRegistrationByTokenQuery{EditToken: "missing"}, GetRegistrationByTokenDeps{
		RegistrationStore: regStore,
		AthleteStore:      athStore,
	})
	if !errors.Is(err, registration.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
