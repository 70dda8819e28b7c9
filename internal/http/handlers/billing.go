package handlers

import (
	"encoding/json"
	"net/http"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/middleware"
)

type billingConfigResponse struct {
	PublishableKey string `json:"publishable_key"`
	PriceID        string `json:"price_id"`
}

type billingConfirmRequest struct {
	Success bool `json:"success"`
}

type billingConfirmResponse struct {
	Status string    `json:"status"`
	Usage  *usageDTO `json:"usage,omitempty"`
}

// BillingConfig exposes the public checkout parameters the client embeds in
// its payment page.
func (a *App) BillingConfig(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, billingConfigResponse{
		PublishableKey: a.Billing.PublishableKey,
		PriceID:        a.Billing.PriceID,
	})
}

// BillingConfirm handles the checkout return callback. A success flips the
// Pro entitlement with one write; a failed write degrades to a pending answer
// so the client retries on the next session instead of showing an error. A
// canceled checkout is a plain no-op.
func (a *App) BillingConfirm(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req billingConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !req.Success {
		a.json(w, http.StatusOK, billingConfirmResponse{Status: "canceled"})
		return
	}
	rec, err := a.Quota.GrantPro(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("grant pro failed")
		a.recordUsage(r.Context(), repo.UsageEvent{
			UserID:    userID,
			RequestID: middleware.RequestIDFromContext(r.Context()),
			EventType: "UPGRADE",
			Success:   false,
			Country:   middleware.CountryFromContext(r.Context()),
		})
		a.json(w, http.StatusOK, billingConfirmResponse{Status: "pending"})
		return
	}
	a.recordUsage(r.Context(), repo.UsageEvent{
		UserID:    userID,
		RequestID: middleware.RequestIDFromContext(r.Context()),
		EventType: "UPGRADE",
		Success:   true,
		Country:   middleware.CountryFromContext(r.Context()),
	})
	usage := a.usageDTO(rec)
	a.json(w, http.StatusOK, billingConfirmResponse{Status: "pro", Usage: &usage})
}
