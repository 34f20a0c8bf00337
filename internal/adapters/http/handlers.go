package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetsignup/internal/application/orchestrators"
	"meetsignup/internal/application/projections"
	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/roster"
	"meetsignup/internal/domain/season"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// --- Wire types ---

type contactPayload struct {
	TrainerName string `json:"trainerName"`
	Club        string `json:"club"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (p contactPayload) toDomain() roster.Contact {
	return roster.Contact{
		TrainerName: p.TrainerName,
		Club:        p.Club,
		Email:       p.Email,
		Phone:       p.Phone,
	}
}

type entryPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthYear string `json:"birthYear"`
	Gender    string `json:"gender"`
}

func entriesToDomain(payload []entryPayload) []roster.Entry {
	entries := make([]roster.Entry, 0, len(payload))
	for _, p := range payload {
		id := p.ID
		if id == "" {
			id = generateID()
		}
		entries = append(entries, roster.Entry{
			ID:        id,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			BirthYear: p.BirthYear,
			Gender:    p.Gender,
		})
	}
	return entries
}

type entryErrorsPayload struct {
	FirstName bool `json:"firstName"`
	LastName  bool `json:"lastName"`
	BirthYear bool `json:"birthYear"`
	Gender    bool `json:"gender"`
	Duplicate bool `json:"duplicate"`
}

type contactErrorsPayload struct {
	TrainerName bool `json:"trainerName"`
	Email       bool `json:"email"`
	Phone       bool `json:"phone"`
}

type validationErrorsPayload struct {
	Error   string                        `json:"error"`
	Contact contactErrorsPayload          `json:"contact"`
	Entries map[string]entryErrorsPayload `json:"entries"`
}

func validationPayload(vErr *orchestrators.ValidationError) validationErrorsPayload {
	out := validationErrorsPayload{
		Error: "validation failed",
		Contact: contactErrorsPayload{
			TrainerName: vErr.Contact.TrainerName,
			Email:       vErr.Contact.Email,
			Phone:       vErr.Contact.Phone,
		},
		Entries: make(map[string]entryErrorsPayload, len(vErr.Entries)),
	}
	for id, e := range vErr.Entries {
		if !e.HasError() {
			continue
		}
		out.Entries[id] = entryErrorsPayload{
			FirstName: e.FirstName,
			LastName:  e.LastName,
			BirthYear: e.BirthYear,
			Gender:    e.Gender,
			Duplicate: e.Duplicate,
		}
	}
	return out
}

type athletePayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthYear int    `json:"birthYear"`
	Gender    string `json:"gender"`
}

type registrationPayload struct {
	ID        string           `json:"id"`
	Contact   contactPayload   `json:"contact"`
	SeasonID  string           `json:"seasonId"`
	CreatedAt time.Time        `json:"createdAt"`
	Athletes  []athletePayload `json:"athletes"`
}

func registrationToPayload(reg registration.Registration) registrationPayload {
	out := registrationPayload{
		ID: reg.ID,
		Contact: contactPayload{
			TrainerName: reg.Contact.TrainerName,
			Club:        reg.Contact.Club,
			Email:       reg.Contact.Email,
			Phone:       reg.Contact.Phone,
		},
		SeasonID:  reg.SeasonID,
		CreatedAt: reg.CreatedAt,
		Athletes:  make([]athletePayload, 0, len(reg.Athletes)),
	}
	for _, a := range reg.Athletes {
		out.Athletes = append(out.Athletes, athletePayload{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			BirthYear: a.BirthYear,
			Gender:    a.Gender,
		})
	}
	return out
}

type seasonPayload struct {
	ID              string    `json:"id"`
	Year            int       `json:"year"`
	EventDate       time.Time `json:"eventDate"`
	EventNumber     int       `json:"eventNumber"`
	SignupDeadline  time.Time `json:"signupDeadline"`
	PaymentDeadline time.Time `json:"paymentDeadline"`
	IsActive        bool      `json:"isActive"`
	BirthYearMin    int       `json:"birthYearMin"`
	BirthYearMax    int       `json:"birthYearMax"`
	BirthYearLabel  string    `json:"birthYearLabel"`
}

func seasonToPayload(s season.Season, now time.Time) seasonPayload {
	window := roster.WindowFor(s.Year, now)
	return seasonPayload{
		ID:              s.ID,
		Year:            s.Year,
		EventDate:       s.EventDate,
		EventNumber:     s.EventNumber,
		SignupDeadline:  s.SignupDeadline,
		PaymentDeadline: s.PaymentDeadline,
		IsActive:        s.IsActive,
		BirthYearMin:    window.Min,
		BirthYearMax:    window.Max,
		BirthYearLabel:  window.Label(),
	}
}

// --- Public handlers ---

// handleActiveSeason handles GET /api/season/active.
// Returns the newest active season plus its eligibility window, or 404 when
// no season is active (a valid state the signup page must handle).
func handleActiveSeason(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	seas, err := stores.SeasonStore.GetActive(r.Context())
	if err != nil {
		if errors.Is(err, season.ErrNotFound) {
			http.Error(w, "no active season", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seasonToPayload(seas, timeNow()))
}

type createRegistrationRequest struct {
	Contact  contactPayload `json:"contact"`
	Athletes []entryPayload `json:"athletes"`
}

type createRegistrationResponse struct {
	RegistrationID string `json:"registrationId"`
	EditLink       string `json:"editLink"`
	Notified       bool   `json:"notified"`
}

// handleCreateRegistration handles POST /api/registrations.
// POST: Registration persisted; responds 201 even when only the confirmation
// email failed, with notified=false and the edit link as fallback
func handleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req createRegistrationRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitRegistration(r.Context(), orchestrators.SubmitRegistrationInput{
		Contact: req.Contact.toDomain(),
		Entries: entriesToDomain(req.Athletes),
	}, orchestrators.SubmitRegistrationDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		SeasonStore:       stores.SeasonStore,
		EmailSender:       emailSender,
		BaseURL:           config.BaseURL,
		FromAddress:       config.FromAddress,
		Now:               timeNow,
	})

	var vErr *orchestrators.ValidationError
	var nErr *registration.NotificationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, createRegistrationResponse{
			RegistrationID: result.RegistrationID,
			EditLink:       result.EditLink,
			Notified:       true,
		})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, validationPayload(vErr))
	case errors.As(err, &nErr):
		writeJSON(w, http.StatusCreated, createRegistrationResponse{
			RegistrationID: result.RegistrationID,
			EditLink:       result.EditLink,
			Notified:       false,
		})
	case errors.Is(err, registration.ErrSeasonRequired):
		http.Error(w, "no active season", http.StatusConflict)
	case errors.Is(err, registration.ErrDeadlineExpired):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, registration.ErrEmptyRoster):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

type updateRegistrationRequest struct {
	Contact  contactPayload `json:"contact"`
	Athletes []entryPayload `json:"athletes"`
}

type updateRegistrationResponse struct {
	RegistrationID string `json:"registrationId"`
	Persisted      bool   `json:"persisted"`
	Notified       bool   `json:"notified"`
}

// handleRegistrationByToken handles GET and PUT /api/registrations/edit/{token}.
func handleRegistrationByToken(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.URL.Path, "/api/registrations/edit/")
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		reg, err := projections.QueryGetRegistrationByToken(r.Context(), projections.GetRegistrationByTokenQuery{EditToken: token}, projections.GetRegistrationByTokenDeps{
			RegistrationStore: stores.RegistrationStore,
			AthleteStore:      stores.AthleteStore,
		})
		if err != nil {
			if errors.Is(err, registration.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, registrationToPayload(reg))

	case "PUT":
		var req updateRegistrationRequest
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		result, err := orchestrators.ExecuteUpdateRegistration(r.Context(), orchestrators.UpdateRegistrationInput{
			EditToken: token,
			Contact:   req.Contact.toDomain(),
			Entries:   entriesToDomain(req.Athletes),
		}, orchestrators.UpdateRegistrationDeps{
			RegistrationStore: stores.RegistrationStore,
			AthleteStore:      stores.AthleteStore,
			SeasonStore:       stores.SeasonStore,
			EmailSender:       emailSender,
			BaseURL:           config.BaseURL,
			FromAddress:       config.FromAddress,
			Now:               timeNow,
		})

		var vErr *orchestrators.ValidationError
		var nErr *registration.NotificationError
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, updateRegistrationResponse{
				RegistrationID: result.RegistrationID,
				Persisted:      true,
				Notified:       true,
			})
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, validationPayload(vErr))
		case errors.As(err, &nErr):
			writeJSON(w, http.StatusOK, updateRegistrationResponse{
				RegistrationID: result.RegistrationID,
				Persisted:      true,
				Notified:       false,
			})
		case errors.Is(err, registration.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, registration.ErrDeadlineExpired):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, registration.ErrEmptyRoster):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type importAthletesResponse struct {
	Total   int            `json:"total"`
	Entries []entryPayload `json:"entries"`
	Errors  []importRowErr `json:"errors"`
}

type importRowErr struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// handleImportAthletes handles POST /api/athletes/import.
// The body is raw CSV; the response carries parsed entries for the signup
// form plus per-row errors. Nothing is persisted here.
func handleImportAthletes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := orchestrators.ExecuteImportAthletes(r.Context(), orchestrators.ImportAthletesInput{
		Reader: r.Body,
	}, orchestrators.ImportAthletesDeps{
		GenerateID: generateID,
	})
	if err != nil {
		var vErr *orchestrators.ImportAthletesValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid CSV", http.StatusBadRequest)
		return
	}

	resp := importAthletesResponse{Total: result.Total, Entries: []entryPayload{}, Errors: []importRowErr{}}
	for _, e := range result.Entries {
		resp.Entries = append(resp.Entries, entryPayload{
			ID:        e.ID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			BirthYear: e.BirthYear,
			Gender:    e.Gender,
		})
	}
	for _, rowErr := range result.Errors {
		resp.Errors = append(resp.Errors, importRowErr{Row: rowErr.Row, Message: rowErr.Message})
	}
	writeJSON(w, http.StatusOK, resp)
}
