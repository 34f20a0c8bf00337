package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"meetsignup/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by admin seeding.
type AccountStoreForSeed interface {
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedAdminInput carries input for the seed orchestrator.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the initial admin account on an empty database.
// It is a no-op when any account already exists, so it is safe to run on
// every startup.
// PRE: Email and Password are non-empty; Password meets the length policy
// POST: Exactly one admin account exists afterwards
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		return errors.New("seed admin requires email and password")
	}

	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", input.Email)
	return nil
}
