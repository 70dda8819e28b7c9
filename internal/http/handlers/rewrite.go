package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/domain"
	"elix-server/internal/middleware"
	"elix-server/internal/providers/rewrite"
)

type rewriteRequest struct {
	Text    string         `json:"text"`
	Persona domain.Persona `json:"persona"`
}

type rewriteResponse struct {
	Result   string   `json:"result"`
	Original string   `json:"original"`
	Persona  string   `json:"persona"`
	Provider string   `json:"provider"`
	Usage    usageDTO `json:"usage"`
}

const rewriteTimeout = 30 * time.Second

// Rewrite runs the full gate sequence: validate input, resolve persona, check
// today's quota, call the model, persist the consumed attempt, answer.
func (a *App) Rewrite(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := domain.ValidateRewriteText(req.Text, a.WordLimit, a.MaxTextChars); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyText):
			a.error(w, http.StatusBadRequest, "empty_text", "text is required")
		case errors.Is(err, domain.ErrTextTooLong):
			a.error(w, http.StatusBadRequest, "text_too_long", "text exceeds the length limit")
		default:
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		}
		return
	}
	personaPhrase, err := req.Persona.Resolve()
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_persona", "unknown persona descriptor")
		return
	}

	rec, err := a.Quota.LoadOrCreate(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load usage record failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load usage")
		return
	}
	if !a.Quota.CanAttempt(*rec) {
		a.recordUsage(r.Context(), a.rewriteEvent(r, userID, "REWRITE_DENIED", false, 0, map[string]any{
			"reason": "quota_exceeded",
		}))
		a.error(w, http.StatusForbidden, "quota_exceeded", "daily free limit reached")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rewriteTimeout)
	defer cancel()
	start := time.Now()
	result, err := a.Rewriter.Rewrite(ctx, rewrite.Request{Text: req.Text, Persona: personaPhrase})
	latency := int(time.Since(start).Milliseconds())
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			a.error(w, http.StatusTooManyRequests, "rate_limited", "the model is busy, try again shortly")
			return
		}
		a.Logger.Error().Err(err).Msg("rewrite provider failed")
		a.recordUsage(r.Context(), a.rewriteEvent(r, userID, "REWRITE", false, latency, nil))
		a.error(w, http.StatusBadGateway, "provider_failure", "rewrite failed")
		return
	}

	// The attempt only counts once the model produced output. A failed
	// counter write reports the whole attempt as failed.
	after, err := a.Quota.Consume(r.Context(), *rec)
	if err != nil {
		a.Logger.Error().Err(err).Msg("persist attempt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record usage")
		return
	}

	a.recordUsage(r.Context(), a.rewriteEvent(r, userID, "REWRITE", true, latency, map[string]any{
		"provider": result.Provider,
		"words":    domain.CountWords(req.Text),
	}))
	a.json(w, http.StatusOK, rewriteResponse{
		Result:   result.Text,
		Original: req.Text,
		Persona:  personaPhrase,
		Provider: result.Provider,
		Usage:    a.usageDTO(after),
	})
}

func (a *App) rewriteEvent(r *http.Request, userID, eventType string, success bool, latency int, props map[string]any) repo.UsageEvent {
	return repo.UsageEvent{
		UserID:     userID,
		RequestID:  middleware.RequestIDFromContext(r.Context()),
		EventType:  eventType,
		Success:    success,
		LatencyMS:  latency,
		Country:    middleware.CountryFromContext(r.Context()),
		Properties: props,
	}
}
