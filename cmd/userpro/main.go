// Command userpro grants or revokes the Pro entitlement for a user, looked up
// by ID or email. It writes through the same patch path the API uses, so the
// daily counter survives unless -reset-usage is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/domain"
	"elix-server/internal/infra"
)

func main() {
	var (
		idFlag     string
		emailFlag  string
		revokeFlag bool
		resetFlag  bool
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.BoolVar(&revokeFlag, "revoke", false, "revoke Pro instead of granting it")
	flag.BoolVar(&resetFlag, "reset-usage", false, "also reset today's free counter to 0")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userpro").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	profiles := repo.NewProfileRepository(runner)
	limits := repo.NewLimitsRepository(runner)

	var profile *domain.Profile
	if userID != "" {
		profile, err = profiles.GetByID(ctx, userID)
	} else {
		profile, err = profiles.GetByEmail(ctx, email)
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}

	isPro := !revokeFlag
	patch := domain.UsagePatch{IsPro: &isPro}
	if resetFlag {
		zero := 0
		today := domain.Today(time.Now())
		patch.FreeUsesToday = &zero
		patch.LastResetDate = &today
	}

	rec, err := limits.UpdateUsageRecord(ctx, profile.ID, patch)
	if err != nil {
		exitWithError(fmt.Errorf("failed to update entitlement: %w", err))
	}

	state := "pro"
	if !rec.IsPro {
		state = "free"
	}
	fmt.Printf("User %s (%s) is now %s\n", profile.ID, profile.Email, state)
	fmt.Printf("free_rewrites_today=%d last_reset=%s\n", rec.FreeUsesToday, rec.LastResetDate)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
