package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/domain"
	"elix-server/internal/infra/google"
	"elix-server/internal/middleware"
	"elix-server/internal/providers/rewrite"
	"elix-server/internal/quota"
)

// GoogleVerifier validates Google ID tokens during sign-in.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*google.IDTokenClaims, error)
}

// UsageRecorder appends analytics events. Failures are logged, never surfaced.
type UsageRecorder interface {
	Insert(ctx context.Context, ev repo.UsageEvent) error
}

// BillingConfig is the client-facing checkout configuration.
type BillingConfig struct {
	PublishableKey string
	PriceID        string
}

type App struct {
	Logger         zerolog.Logger
	JWTSecret      string
	GoogleVerifier GoogleVerifier
	Profiles       domain.ProfileRepository
	Quota          *quota.Service
	Rewriter       rewrite.Rewriter
	Usage          UsageRecorder
	Billing        BillingConfig
	WordLimit      int
	MaxTextChars   int
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) recordUsage(ctx context.Context, ev repo.UsageEvent) {
	if a.Usage == nil {
		return
	}
	if err := a.Usage.Insert(ctx, ev); err != nil {
		a.Logger.Error().Err(err).Str("event", ev.EventType).Msg("record usage failed")
	}
}
