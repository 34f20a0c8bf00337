package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"meetsignup/internal/adapters/http/middleware"
	"meetsignup/internal/application/orchestrators"
	"meetsignup/internal/application/projections"
	"meetsignup/internal/domain/registration"
	"meetsignup/internal/domain/season"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleAdminLogin handles POST /api/admin/login.
// POST: On success a session cookie is set; credential failures all map to
// the same 401 so the response does not reveal which part was wrong
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Now:          timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"email": result.Email})
}

// handleAdminLogout handles POST /api/admin/logout.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName()); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminRegistrations handles GET /api/admin/registrations?season=...&q=...
func handleAdminRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	seasonID := r.URL.Query().Get("season")
	if seasonID == "" {
		http.Error(w, "season parameter is required", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetRegistrationList(r.Context(), projections.GetRegistrationListQuery{
		SeasonID: seasonID,
		Search:   r.URL.Query().Get("q"),
	}, projections.GetRegistrationListDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	payload := make([]registrationPayload, 0, len(result.Registrations))
	for _, reg := range result.Registrations {
		payload = append(payload, registrationToPayload(reg))
	}
	writeJSON(w, http.StatusOK, payload)
}

type adminSaveRequest struct {
	Contact  contactPayload   `json:"contact"`
	Athletes []athletePayload `json:"athletes"`
}

// handleAdminRegistrationByID handles PUT and DELETE /api/admin/registrations/{id}.
func handleAdminRegistrationByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/registrations/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "PUT":
		var req adminSaveRequest
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		athletes := make([]registration.Athlete, 0, len(req.Athletes))
		for _, a := range req.Athletes {
			athletes = append(athletes, registration.Athlete{
				ID:        a.ID,
				FirstName: a.FirstName,
				LastName:  a.LastName,
				BirthYear: a.BirthYear,
				Gender:    a.Gender,
			})
		}

		err := orchestrators.ExecuteAdminSaveRegistration(r.Context(), orchestrators.AdminSaveRegistrationInput{
			RegistrationID: id,
			Contact:        req.Contact.toDomain(),
			Athletes:       athletes,
		}, orchestrators.AdminSaveRegistrationDeps{
			RegistrationStore: stores.RegistrationStore,
			AthleteStore:      stores.AthleteStore,
		})

		var pErr *orchestrators.PartialSaveError
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.As(err, &pErr):
			// Writes before the failing athlete are applied; tell the admin
			// which row to retry.
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":           "save applied partially",
				"failedAthleteId": pErr.FailedAthleteID,
			})
		case errors.Is(err, registration.ErrNotFound):
			http.NotFound(w, r)
		default:
			internalError(w, err)
		}

	case "DELETE":
		err := orchestrators.ExecuteDeleteRegistration(r.Context(), orchestrators.DeleteRegistrationInput{
			RegistrationID: id,
		}, orchestrators.DeleteRegistrationDeps{
			RegistrationStore: stores.RegistrationStore,
			AthleteStore:      stores.AthleteStore,
			UndoBuffer:        undoBuffer,
			Now:               timeNow,
		})
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]any{
				"deleted":     true,
				"undoSeconds": int(orchestrators.UndoWindow / time.Second),
			})
		case errors.Is(err, registration.ErrNotFound):
			http.NotFound(w, r)
		default:
			internalError(w, err)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminUndoDelete handles POST /api/admin/registrations-undo.
func handleAdminUndoDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	restoredID, err := orchestrators.ExecuteUndoDelete(r.Context(), orchestrators.UndoDeleteDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		UndoBuffer:        undoBuffer,
		Now:               timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrUndoExpired) {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"registrationId": restoredID})
}

type seasonRequest struct {
	Year            int       `json:"year"`
	EventDate       time.Time `json:"eventDate"`
	EventNumber     int       `json:"eventNumber"`
	SignupDeadline  time.Time `json:"signupDeadline"`
	PaymentDeadline time.Time `json:"paymentDeadline"`
	IsActive        bool      `json:"isActive"`
}

// handleAdminSeasons handles GET and POST /api/admin/seasons.
// GET returns all seasons newest first; POST creates one. The nextDefaults
// query flag returns a prefilled follow-up season instead of the list.
func handleAdminSeasons(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		seasons, err := stores.SeasonStore.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}

		if r.URL.Query().Get("nextDefaults") == "true" {
			if len(seasons) == 0 {
				http.Error(w, "no season to derive defaults from", http.StatusNotFound)
				return
			}
			next := seasons[0].NextDefaults()
			writeJSON(w, http.StatusOK, seasonToPayload(next, timeNow()))
			return
		}

		payload := make([]seasonPayload, 0, len(seasons))
		now := timeNow()
		for _, s := range seasons {
			payload = append(payload, seasonToPayload(s, now))
		}
		writeJSON(w, http.StatusOK, payload)

	case "POST":
		saveSeason(w, r, "")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminSeasonByID handles PUT and DELETE /api/admin/seasons/{id}.
func handleAdminSeasonByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/seasons/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "PUT":
		saveSeason(w, r, id)

	case "DELETE":
		err := orchestrators.ExecuteDeleteSeason(r.Context(), orchestrators.DeleteSeasonInput{SeasonID: id}, orchestrators.DeleteSeasonDeps{
			SeasonStore: stores.SeasonStore,
		})
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, season.ErrNotFound):
			http.NotFound(w, r)
		default:
			internalError(w, err)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func saveSeason(w http.ResponseWriter, r *http.Request, id string) {
	var req seasonRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteSaveSeason(r.Context(), orchestrators.SaveSeasonInput{
		ID:              id,
		Year:            req.Year,
		EventDate:       req.EventDate,
		EventNumber:     req.EventNumber,
		SignupDeadline:  req.SignupDeadline,
		PaymentDeadline: req.PaymentDeadline,
		IsActive:        req.IsActive,
	}, orchestrators.SaveSeasonDeps{
		SeasonStore: stores.SeasonStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, season.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, season.ErrInvalidYear),
			errors.Is(err, season.ErrMissingEventDate),
			errors.Is(err, season.ErrMissingDeadlines):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, seasonToPayload(s, timeNow()))
}

// handleAdminStatistics handles GET /api/admin/statistics?season=...
func handleAdminStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	seasonID := r.URL.Query().Get("season")
	if seasonID == "" {
		http.Error(w, "season parameter is required", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetStatistics(r.Context(), projections.GetStatisticsQuery{SeasonID: seasonID}, projections.GetStatisticsDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		Now:               timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statisticsToPayload(result))
}

type genderSplitPayload struct {
	M int `json:"m"`
	W int `json:"w"`
}

type clubCountPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type statisticsPayload struct {
	TotalRegistrations int                `json:"totalRegistrations"`
	TotalAthletes      int                `json:"totalAthletes"`
	UniqueClubs        int                `json:"uniqueClubs"`
	AthletesByGender   genderSplitPayload `json:"athletesByGender"`
	U10                genderSplitPayload `json:"u10"`
	U12                genderSplitPayload `json:"u12"`
	U14                genderSplitPayload `json:"u14"`
	AthletesByYear     map[int]int        `json:"athletesByYear"`
	Clubs              []clubCountPayload `json:"clubs"`
}

func statisticsToPayload(result projections.GetStatisticsResult) statisticsPayload {
	split := func(s projections.GenderSplit) genderSplitPayload {
		return genderSplitPayload{M: s.Male, W: s.Female}
	}
	out := statisticsPayload{
		TotalRegistrations: result.TotalRegistrations,
		TotalAthletes:      result.TotalAthletes,
		UniqueClubs:        result.UniqueClubs,
		AthletesByGender:   split(result.AthletesByGender),
		U10:                split(result.U10),
		U12:                split(result.U12),
		U14:                split(result.U14),
		AthletesByYear:     result.AthletesByYear,
		Clubs:              make([]clubCountPayload, 0, len(result.Clubs)),
	}
	for _, c := range result.Clubs {
		out.Clubs = append(out.Clubs, clubCountPayload{Name: c.Name, Count: c.Count})
	}
	return out
}

// handleAdminExport handles GET /api/admin/export?season=...
// Streams the season's athletes as a CSV download.
func handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	seasonID := r.URL.Query().Get("season")
	if seasonID == "" {
		http.Error(w, "season parameter is required", http.StatusBadRequest)
		return
	}

	filename := "anmeldungen.csv"
	if seas, err := stores.SeasonStore.GetByID(r.Context(), seasonID); err == nil {
		filename = fmt.Sprintf("anmeldungen_%d.csv", seas.Year)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err := projections.QueryExportAthletes(r.Context(), projections.ExportAthletesQuery{SeasonID: seasonID}, projections.ExportAthletesDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
	}, w)
	if err != nil {
		// Headers may already be out; log and stop the stream.
		internalError(w, err)
	}
}

// handleAdminInvoice handles GET /api/admin/invoices/{registrationID}.
func handleAdminInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/admin/invoices/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetInvoice(r.Context(), projections.GetInvoiceQuery{
		RegistrationID: id,
		FeePerStart:    config.FeePerStart,
	}, projections.GetInvoiceDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		SeasonStore:       stores.SeasonStore,
	})
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoicePayload{
		RegistrationID: result.RegistrationID,
		ClubName:       result.ClubName,
		TrainerName:    result.TrainerName,
		AthleteCount:   result.AthleteCount,
		TotalAmount:    result.TotalAmount,
		DueDate:        result.DueDate,
	})
}

type invoicePayload struct {
	RegistrationID string    `json:"registrationId"`
	ClubName       string    `json:"clubName"`
	TrainerName    string    `json:"trainerName"`
	AthleteCount   int       `json:"athleteCount"`
	TotalAmount    int       `json:"totalAmount"`
	DueDate        time.Time `json:"dueDate"`
}
