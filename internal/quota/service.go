// Package quota orchestrates the read-resolve-check-increment-write sequence
// around the pure reconciler in internal/domain. One rewrite attempt issues at
// most one remote write; attempts for a given user are serialized by the
// caller (the triggering control is disabled while a request is in flight),
// not by a lock.
package quota

import (
	"context"
	"fmt"
	"time"

	"elix-server/internal/domain"
)

type Service struct {
	limits     domain.LimitsRepository
	dailyLimit int
	now        func() time.Time
}

func NewService(limits domain.LimitsRepository, dailyLimit int) *Service {
	return &Service{limits: limits, dailyLimit: dailyLimit, now: time.Now}
}

// WithClock overrides the clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) DailyLimit() int { return s.dailyLimit }

func (s *Service) today() domain.Date { return domain.Today(s.now()) }

// LoadOrCreate returns the user's effective usage record for today. Missing
// rows are created with zeroed defaults. A stale non-Pro row is reset lazily:
// the reset is persisted before the effective record is returned, and a failed
// reset write leaves the cached view untouched and surfaces a retryable error.
func (s *Service) LoadOrCreate(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	today := s.today()

	rec, err := s.limits.GetUsageRecord(ctx, userID)
	if err == domain.ErrNotFound {
		created, createErr := s.limits.CreateUsageRecord(ctx, domain.UsageRecord{
			UserID:        userID,
			FreeUsesToday: 0,
			LastResetDate: today,
			IsPro:         false,
		})
		if createErr != nil {
			return nil, fmt.Errorf("create usage record: %w", createErr)
		}
		return created, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load usage record: %w", err)
	}

	eff := domain.ResolveForToday(*rec, today)
	if eff == *rec {
		return rec, nil
	}

	zero := 0
	updated, err := s.limits.UpdateUsageRecord(ctx, userID, domain.UsagePatch{
		FreeUsesToday: &zero,
		LastResetDate: &today,
	})
	if err != nil {
		return nil, fmt.Errorf("persist daily reset: %w", err)
	}
	return updated, nil
}

// CanAttempt reports whether the effective record permits one more rewrite.
func (s *Service) CanAttempt(rec domain.UsageRecord) bool {
	return domain.CanAttempt(rec, s.dailyLimit)
}

// Remaining returns the free attempts left today (zero-clamped).
func (s *Service) Remaining(rec domain.UsageRecord) int {
	return domain.Remaining(rec, s.dailyLimit)
}

// Consume records one successful attempt. Pro users are never metered and
// cause no write at all. For free users the increment is persisted; when the
// write fails the passed-in record stands unchanged and the caller reports the
// attempt as failed.
func (s *Service) Consume(ctx context.Context, rec domain.UsageRecord) (*domain.UsageRecord, error) {
	if rec.IsPro {
		return &rec, nil
	}
	today := s.today()
	next := domain.RecordAttempt(domain.ResolveForToday(rec, today), today)

	updated, err := s.limits.UpdateUsageRecord(ctx, rec.UserID, domain.UsagePatch{
		FreeUsesToday: &next.FreeUsesToday,
		LastResetDate: &next.LastResetDate,
	})
	if err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}
	return updated, nil
}

// GrantPro flips the Pro entitlement with a single patch write, leaving the
// counter fields exactly as stored.
func (s *Service) GrantPro(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	pro := true
	updated, err := s.limits.UpdateUsageRecord(ctx, userID, domain.UsagePatch{IsPro: &pro})
	if err != nil {
		return nil, fmt.Errorf("grant pro: %w", err)
	}
	return updated, nil
}
