package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "meetsignup/internal/adapters/email"
	web "meetsignup/internal/adapters/http"
	"meetsignup/internal/adapters/storage"
	accountStore "meetsignup/internal/adapters/storage/account"
	athleteStore "meetsignup/internal/adapters/storage/athlete"
	registrationStore "meetsignup/internal/adapters/storage/registration"
	seasonStore "meetsignup/internal/adapters/storage/season"
	"meetsignup/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	// WAL mode, foreign keys, and busy timeout keep concurrent signups safe
	dbPath := envOrDefault("MEETSIGNUP_DB", "meetsignup.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:      acctStore,
		SeasonStore:       seasonStore.NewSQLiteStore(db),
		RegistrationStore: registrationStore.NewSQLiteStore(db),
		AthleteStore:      athleteStore.NewSQLiteStore(db),
	}

	// Seed the admin account on first startup
	adminEmail := os.Getenv("MEETSIGNUP_ADMIN_EMAIL")
	adminPassword := os.Getenv("MEETSIGNUP_ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
			Email:    adminEmail,
			Password: adminPassword,
		}, orchestrators.SeedAdminDeps{
			AccountStore: acctStore,
			GenerateID:   func() string { return uuid.New().String() },
			Now:          time.Now,
		})
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	} else {
		log.Println("MEETSIGNUP_ADMIN_EMAIL / MEETSIGNUP_ADMIN_PASSWORD not set, skipping admin seed")
	}

	// Configure email sender
	baseURL := envOrDefault("MEETSIGNUP_BASE_URL", "http://localhost:8080")
	emailFrom := envOrDefault("MEETSIGNUP_EMAIL_FROM", "SCL Hallenmehrkampf <noreply@scl-anmeldung.ch>")
	resendKey := os.Getenv("MEETSIGNUP_RESEND_API_KEY")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("MEETSIGNUP_ENV") == "production" {
			log.Println("WARNING: MEETSIGNUP_RESEND_API_KEY is not set, edit links will not be delivered")
		} else {
			log.Println("Email sender configured (noop, set MEETSIGNUP_RESEND_API_KEY for real delivery)")
		}
	}

	mux := web.NewMux(envOrDefault("MEETSIGNUP_STATIC_DIR", "static"), stores, web.Config{
		BaseURL:     baseURL,
		FromAddress: emailFrom,
		FeePerStart: envIntOrDefault("MEETSIGNUP_FEE_PER_START", 10),
	})

	addr := envOrDefault("MEETSIGNUP_ADDR", ":8080")
	log.Printf("meetsignup %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("MEETSIGNUP_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}
