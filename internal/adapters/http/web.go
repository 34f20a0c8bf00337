package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"meetsignup/internal/adapters/email"
	"meetsignup/internal/adapters/http/middleware"
	accountStore "meetsignup/internal/adapters/storage/account"
	athleteStore "meetsignup/internal/adapters/storage/athlete"
	registrationStore "meetsignup/internal/adapters/storage/registration"
	seasonStore "meetsignup/internal/adapters/storage/season"
	"meetsignup/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	SeasonStore       seasonStore.Store
	RegistrationStore registrationStore.Store
	AthleteStore      athleteStore.Store
}

// Config holds the request-independent handler configuration.
type Config struct {
	BaseURL     string // public origin for edit links, no trailing slash
	FromAddress string // sender for confirmation emails
	FeePerStart int    // CHF per athlete on invoices
}

// loadCSRFKey reads the CSRF secret from MEETSIGNUP_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("MEETSIGNUP_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("MEETSIGNUP_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("MEETSIGNUP_ENV") == "production" {
		log.Fatal("MEETSIGNUP_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set MEETSIGNUP_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global handler configuration (set by NewMux)
var config Config

// Global session store instance
var sessions *middleware.SessionStore

// Undo buffer for admin deletes
var undoBuffer = orchestrators.NewUndoBuffer()

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, cfg Config) http.Handler {
	stores = s
	config = cfg
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("MEETSIGNUP_ENV") == "production"
	if emailSender == nil {
		emailSender = email.NewNoopSender()
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

// registerRoutes attaches all API endpoints to the mux. Admin endpoints are
// wrapped with RequireAdmin individually; the public signup flow needs no
// authentication at all.
func registerRoutes(mux *http.ServeMux) {
	// Public
	mux.HandleFunc("/api/season/active", handleActiveSeason)
	mux.HandleFunc("/api/registrations", handleCreateRegistration)
	mux.HandleFunc("/api/registrations/edit/", handleRegistrationByToken)
	mux.HandleFunc("/api/athletes/import", handleImportAthletes)

	// Admin
	mux.HandleFunc("/api/admin/login", handleAdminLogin)
	mux.HandleFunc("/api/admin/logout", handleAdminLogout)
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }
	mux.Handle("/api/admin/registrations", admin(handleAdminRegistrations))
	mux.Handle("/api/admin/registrations/", admin(handleAdminRegistrationByID))
	mux.Handle("/api/admin/registrations-undo", admin(handleAdminUndoDelete))
	mux.Handle("/api/admin/seasons", admin(handleAdminSeasons))
	mux.Handle("/api/admin/seasons/", admin(handleAdminSeasonByID))
	mux.Handle("/api/admin/statistics", admin(handleAdminStatistics))
	mux.Handle("/api/admin/export", admin(handleAdminExport))
	mux.Handle("/api/admin/invoices/", admin(handleAdminInvoice))
}
