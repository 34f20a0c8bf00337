package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	emailAdapter "meetsignup/internal/adapters/email"
	"meetsignup/internal/domain/account"
	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
	"meetsignup/internal/domain/season"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockRegistrationStore implements the registration store interfaces for testing.
type mockRegistrationStore struct {
	registrations map[string]registration.Registration
	nextID        int
	failSetToken  bool
	deleted       []string
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{registrations: make(map[string]registration.Registration)}
}

func (m *mockRegistrationStore) Insert(_ context.Context, contact roster.Contact, seasonID string) (string, error) {
	m.nextID++
	id := fmt.Sprintf("reg-%03d", m.nextID)
	m.registrations[id] = registration.Registration{
		ID:        id,
		Contact:   contact,
		SeasonID:  seasonID,
		CreatedAt: fixedTime,
	}
	return id, nil
}

func (m *mockRegistrationStore) SetEditToken(_ context.Context, id, token string) error {
	if m.failSetToken {
		return errors.New("token write failed")
	}
	reg, ok := m.registrations[id]
	if !ok {
		return registration.ErrNotFound
	}
	reg.EditToken = token
	m.registrations[id] = reg
	return nil
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	reg, ok := m.registrations[id]
	if !ok {
		return registration.Registration{}, registration.ErrNotFound
	}
	return reg, nil
}

func (m *mockRegistrationStore) GetByToken(_ context.Context, token string) (registration.Registration, error) {
	for _, reg := range m.registrations {
		if reg.EditToken == token {
			return reg, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (m *mockRegistrationStore) UpdateContact(_ context.Context, id string, contact roster.Contact, seasonID string) error {
	reg, ok := m.registrations[id]
	if !ok {
		return registration.ErrNotFound
	}
	reg.Contact = contact
	reg.SeasonID = seasonID
	m.registrations[id] = reg
	return nil
}

func (m *mockRegistrationStore) Delete(_ context.Context, id string) error {
	if _, ok := m.registrations[id]; !ok {
		return registration.ErrNotFound
	}
	delete(m.registrations, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRegistrationStore) Restore(_ context.Context, value registration.Registration) error {
	m.registrations[value.ID] = value
	return nil
}

// mockAthleteStore implements the athlete store interfaces for testing.
type mockAthleteStore struct {
	athletes   map[string][]registration.Athlete // keyed by registration ID
	nextID     int
	failInsert bool
	failUpdate string // athlete ID that fails Update
}

func newMockAthleteStore() *mockAthleteStore {
	return &mockAthleteStore{athletes: make(map[string][]registration.Athlete)}
}

func (m *mockAthleteStore) InsertMany(_ context.Context, registrationID string, athletes []registration.Athlete) ([]registration.Athlete, error) {
	if m.failInsert {
		return nil, errors.New("athlete insert failed")
	}
	inserted := make([]registration.Athlete, 0, len(athletes))
	for _, a := range athletes {
		m.nextID++
		a.ID = fmt.Sprintf("ath-%03d", m.nextID)
		a.RegistrationID = registrationID
		inserted = append(inserted, a)
	}
	m.athletes[registrationID] = append(m.athletes[registrationID], inserted...)
	return inserted, nil
}

func (m *mockAthleteStore) ReplaceForRegistration(ctx context.Context, registrationID string, athletes []registration.Athlete) ([]registration.Athlete, error) {
	delete(m.athletes, registrationID)
	return m.InsertMany(ctx, registrationID, athletes)
}

func (m *mockAthleteStore) RestoreMany(_ context.Context, athletes []registration.Athlete) error {
	// The real store's athlete rows cascade away with the registration row;
	// model that here so a restore does not duplicate rows.
	for _, a := range athletes {
		delete(m.athletes, a.RegistrationID)
	}
	for _, a := range athletes {
		m.athletes[a.RegistrationID] = append(m.athletes[a.RegistrationID], a)
	}
	return nil
}

func (m *mockAthleteStore) Update(_ context.Context, value registration.Athlete) error {
	if m.failUpdate != "" && value.ID == m.failUpdate {
		return errors.New("athlete update failed")
	}
	rows := m.athletes[value.RegistrationID]
	for i, a := range rows {
		if a.ID == value.ID {
			rows[i] = value
			return nil
		}
	}
	return registration.ErrNotFound
}

func (m *mockAthleteStore) ListByRegistration(_ context.Context, registrationID string) ([]registration.Athlete, error) {
	return m.athletes[registrationID], nil
}

// mockSeasonStore implements the season store interfaces for testing.
type mockSeasonStore struct {
	seasons map[string]season.Season
}

func newMockSeasonStore() *mockSeasonStore {
	return &mockSeasonStore{seasons: make(map[string]season.Season)}
}

func (m *mockSeasonStore) GetByID(_ context.Context, id string) (season.Season, error) {
	s, ok := m.seasons[id]
	if !ok {
		return season.Season{}, season.ErrNotFound
	}
	return s, nil
}

func (m *mockSeasonStore) GetActive(_ context.Context) (season.Season, error) {
	var best season.Season
	found := false
	for _, s := range m.seasons {
		if s.IsActive && (!found || s.Year > best.Year) {
			best = s
			found = true
		}
	}
	if !found {
		return season.Season{}, season.ErrNotFound
	}
	return best, nil
}

func (m *mockSeasonStore) List(_ context.Context) ([]season.Season, error) {
	var out []season.Season
	for _, s := range m.seasons {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSeasonStore) Save(_ context.Context, value season.Season) error {
	m.seasons[value.ID] = value
	return nil
}

func (m *mockSeasonStore) Delete(_ context.Context, id string) error {
	if _, ok := m.seasons[id]; !ok {
		return season.ErrNotFound
	}
	delete(m.seasons, id)
	return nil
}

// mockAccountStore implements the account store interfaces for testing.
type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// mockEmailSender records send requests and can simulate provider failure.
type mockEmailSender struct {
	sent []emailAdapter.SendRequest
	fail bool
}

func (m *mockEmailSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.fail {
		return emailAdapter.SendResult{}, errors.New("provider unavailable")
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-001", SentAt: fixedTime}, nil
}

// activeSeason returns a season whose signup deadline is comfortably after
// fixedTime.
func activeSeason() season.Season {
	return season.Season{
		ID:              "season-2025",
		Year:            2025,
		EventDate:       time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC),
		EventNumber:     38,
		SignupDeadline:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		PaymentDeadline: time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
		CreatedAt:       fixedTime,
	}
}

func validContact() roster.Contact {
	return roster.Contact{
		TrainerName: "Lena Huber",
		Club:        "LC Musterstadt",
		Email:       "lena@example.org",
		Phone:       "+41 78 882 26 50",
	}
}

func validEntries() []roster.Entry {
	return []roster.Entry{
		{ID: "e1", FirstName: "Anna", LastName: "Keller", BirthYear: "2015", Gender: roster.GenderFemale},
		{ID: "e2", FirstName: "Ben", LastName: "Meier", BirthYear: "2016", Gender: roster.GenderMale},
	}
}
