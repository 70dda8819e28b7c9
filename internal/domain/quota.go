package domain

import "time"

// Date is a calendar date in YYYY-MM-DD form. Quota freshness is decided by
// string equality on dates, never by elapsed-time arithmetic: a user whose day
// rolls over mid-session is reset on their next attempt, not by a timer.
type Date string

const dateLayout = "2006-01-02"

// Today returns the calendar date for the given instant in its location.
func Today(now time.Time) Date {
	return Date(now.Format(dateLayout))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return Date(t.Format(dateLayout)), nil
}

func (d Date) String() string { return string(d) }

// UsageRecord is one user's daily free-usage row. The authoritative copy lives
// in the remote store; in-process copies are caches with no durability.
//
// FreeUsesToday is meaningful only relative to LastResetDate. When IsPro is
// true the counter fields are inert but must be preserved verbatim on writes,
// so a later downgrade does not misreport usage.
type UsageRecord struct {
	UserID        string `json:"user_id"`
	FreeUsesToday int    `json:"free_rewrites_today"`
	LastResetDate Date   `json:"last_reset"`
	IsPro         bool   `json:"is_pro"`
}

// ResolveForToday maps a stored record to its effective value for today. A
// non-Pro record whose LastResetDate is not today is stale: its counter reads
// as zero and its date as today. Pro records and fresh records pass through
// unchanged. Pure; callers that detect the reset are responsible for
// persisting it.
func ResolveForToday(rec UsageRecord, today Date) UsageRecord {
	if rec.IsPro || rec.LastResetDate == today {
		return rec
	}
	rec.FreeUsesToday = 0
	rec.LastResetDate = today
	return rec
}

// CanAttempt reports whether one more rewrite is permitted. Pro short-circuits
// every limit, including dailyLimit == 0 (Pro-only mode). The record must
// already be effective (see ResolveForToday).
func CanAttempt(rec UsageRecord, dailyLimit int) bool {
	if rec.IsPro {
		return true
	}
	return rec.FreeUsesToday < dailyLimit
}

// RecordAttempt returns the record after consuming one attempt. Pro users are
// never metered and get the record back unchanged. The limit is not re-checked
// here; CanAttempt must have been consulted first.
func RecordAttempt(rec UsageRecord, today Date) UsageRecord {
	if rec.IsPro {
		return rec
	}
	rec.FreeUsesToday++
	rec.LastResetDate = today
	return rec
}

// Remaining returns how many free attempts are left today, clamped at zero.
// Meaningless for Pro records; callers should branch on IsPro first.
func Remaining(rec UsageRecord, dailyLimit int) int {
	if rec.FreeUsesToday >= dailyLimit {
		return 0
	}
	return dailyLimit - rec.FreeUsesToday
}

// UsagePatch is a partial update to a stored usage record. Nil fields are left
// untouched by the store.
type UsagePatch struct {
	FreeUsesToday *int
	LastResetDate *Date
	IsPro         *bool
}
