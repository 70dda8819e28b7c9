package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"elix-server/internal/domain"
	"elix-server/internal/middleware"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token"`
}

type googleVerifyResponse struct {
	Token string         `json:"token"`
	User  userProfileDTO `json:"user"`
	Usage usageDTO       `json:"usage"`
}

type userProfileDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type usageDTO struct {
	FreeUsesToday int    `json:"free_rewrites_today"`
	LastReset     string `json:"last_reset"`
	IsPro         bool   `json:"is_pro"`
	Remaining     int    `json:"remaining"`
	DailyLimit    int    `json:"daily_limit"`
}

func (a *App) usageDTO(rec *domain.UsageRecord) usageDTO {
	return usageDTO{
		FreeUsesToday: rec.FreeUsesToday,
		LastReset:     string(rec.LastResetDate),
		IsPro:         rec.IsPro,
		Remaining:     a.Quota.Remaining(*rec),
		DailyLimit:    a.Quota.DailyLimit(),
	}
}

func (a *App) AuthGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id_token required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	claims, err := a.GoogleVerifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		a.Logger.Error().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid google token")
		return
	}
	profile, err := a.Profiles.UpsertByGoogleSub(r.Context(), &domain.Profile{
		GoogleSub: claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist user")
		return
	}
	rec, err := a.Quota.LoadOrCreate(r.Context(), profile.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load usage record failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load usage")
		return
	}
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      profile.ID,
		Email:    profile.Email,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "elix-server",
		Audience: "elix-clients",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, googleVerifyResponse{
		Token: token,
		User: userProfileDTO{
			ID:      profile.ID,
			Email:   profile.Email,
			Name:    profile.DisplayName(),
			Picture: profile.Picture,
		},
		Usage: a.usageDTO(rec),
	})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	profile, err := a.Profiles.GetByID(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, userProfileDTO{
		ID:      profile.ID,
		Email:   profile.Email,
		Name:    profile.DisplayName(),
		Picture: profile.Picture,
	})
}

// MeLimits returns today's effective usage record, applying the lazy daily
// reset on read.
func (a *App) MeLimits(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	rec, err := a.Quota.LoadOrCreate(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load usage record failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load usage")
		return
	}
	a.json(w, http.StatusOK, a.usageDTO(rec))
}
