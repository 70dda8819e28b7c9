package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/domain"
	"elix-server/internal/infra/google"
	"elix-server/internal/middleware"
	"elix-server/internal/providers/rewrite"
	"elix-server/internal/quota"
)

type fakeProfiles struct {
	profiles  map[string]domain.Profile
	upsertErr error
}

func (f *fakeProfiles) UpsertByGoogleSub(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	stored := *p
	if stored.ID == "" {
		stored.ID = "profile-" + p.GoogleSub
	}
	if f.profiles == nil {
		f.profiles = map[string]domain.Profile{}
	}
	f.profiles[stored.ID] = stored
	return &stored, nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type fakeLimits struct {
	rows      map[string]domain.UsageRecord
	updateErr error
	updates   int
}

func (f *fakeLimits) GetUsageRecord(_ context.Context, userID string) (*domain.UsageRecord, error) {
	rec, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeLimits) CreateUsageRecord(_ context.Context, defaults domain.UsageRecord) (*domain.UsageRecord, error) {
	if f.rows == nil {
		f.rows = map[string]domain.UsageRecord{}
	}
	f.rows[defaults.UserID] = defaults
	rec := defaults
	return &rec, nil
}

func (f *fakeLimits) UpdateUsageRecord(_ context.Context, userID string, patch domain.UsagePatch) (*domain.UsageRecord, error) {
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	rec := f.rows[userID]
	rec.UserID = userID
	if patch.FreeUsesToday != nil {
		rec.FreeUsesToday = *patch.FreeUsesToday
	}
	if patch.LastResetDate != nil {
		rec.LastResetDate = *patch.LastResetDate
	}
	if patch.IsPro != nil {
		rec.IsPro = *patch.IsPro
	}
	f.rows[userID] = rec
	return &rec, nil
}

type fakeRewriter struct {
	result *rewrite.Result
	err    error
	calls  int
}

func (f *fakeRewriter) Rewrite(_ context.Context, req rewrite.Request) (*rewrite.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &rewrite.Result{Text: "rewritten: " + req.Text, Provider: "static"}, nil
}

type fakeUsage struct {
	events []repo.UsageEvent
	err    error
}

func (f *fakeUsage) Insert(_ context.Context, ev repo.UsageEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeVerifier struct {
	claims *google.IDTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*google.IDTokenClaims, error) {
	return f.claims, f.err
}

type appHarness struct {
	app      *App
	profiles *fakeProfiles
	limits   *fakeLimits
	rewriter *fakeRewriter
	usage    *fakeUsage
	verifier *fakeVerifier
}

func newAppHarness(day string) *appHarness {
	h := &appHarness{
		profiles: &fakeProfiles{profiles: map[string]domain.Profile{}},
		limits:   &fakeLimits{rows: map[string]domain.UsageRecord{}},
		rewriter: &fakeRewriter{},
		usage:    &fakeUsage{},
		verifier: &fakeVerifier{},
	}
	clock := func() time.Time {
		t, _ := time.Parse("2006-01-02", day)
		return t
	}
	h.app = &App{
		Logger:         zerolog.Nop(),
		JWTSecret:      "test-secret",
		GoogleVerifier: h.verifier,
		Profiles:       h.profiles,
		Quota:          quota.NewService(h.limits, 5).WithClock(clock),
		Rewriter:       h.rewriter,
		Usage:          h.usage,
		Billing:        BillingConfig{PublishableKey: "pk_test", PriceID: "price_123"},
		WordLimit:      700,
		MaxTextChars:   5000,
	}
	return h
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}
