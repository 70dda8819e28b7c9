package domain

import "testing"

func TestResolveForTodayResetsStaleCounter(t *testing.T) {
	tests := []struct {
		name   string
		stored int
	}{
		{name: "small counter", stored: 1},
		{name: "at limit", stored: 5},
		{name: "large counter", stored: 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := UsageRecord{UserID: "u1", FreeUsesToday: tt.stored, LastResetDate: "2024-01-01"}
			got := ResolveForToday(rec, "2024-01-02")
			if got.FreeUsesToday != 0 {
				t.Fatalf("FreeUsesToday = %d, want 0", got.FreeUsesToday)
			}
			if got.LastResetDate != "2024-01-02" {
				t.Fatalf("LastResetDate = %s, want 2024-01-02", got.LastResetDate)
			}
		})
	}
}

func TestResolveForTodayKeepsFreshRecord(t *testing.T) {
	rec := UsageRecord{UserID: "u1", FreeUsesToday: 3, LastResetDate: "2024-01-01"}
	if got := ResolveForToday(rec, "2024-01-01"); got != rec {
		t.Fatalf("fresh record changed: %+v", got)
	}
}

func TestResolveForTodayIsFixedPoint(t *testing.T) {
	rec := UsageRecord{UserID: "u1", FreeUsesToday: 4, LastResetDate: "2024-01-01"}
	once := ResolveForToday(rec, "2024-01-05")
	twice := ResolveForToday(once, "2024-01-05")
	if once != twice {
		t.Fatalf("not idempotent: %+v != %+v", once, twice)
	}
}

func TestProRecordsAreNeverTouched(t *testing.T) {
	rec := UsageRecord{UserID: "pro", FreeUsesToday: 9999, LastResetDate: "2020-06-01", IsPro: true}

	if got := ResolveForToday(rec, "2024-01-02"); got != rec {
		t.Fatalf("ResolveForToday changed pro record: %+v", got)
	}
	if got := RecordAttempt(rec, "2024-01-02"); got != rec {
		t.Fatalf("RecordAttempt changed pro record: %+v", got)
	}
	for _, limit := range []int{0, 1, 5, 10000} {
		if !CanAttempt(rec, limit) {
			t.Fatalf("CanAttempt(pro, %d) = false", limit)
		}
	}
}

func TestCanAttemptBoundary(t *testing.T) {
	tests := []struct {
		used  int
		limit int
		want  bool
	}{
		{used: 0, limit: 5, want: true},
		{used: 4, limit: 5, want: true},
		{used: 5, limit: 5, want: false},
		{used: 6, limit: 5, want: false},
		{used: 0, limit: 0, want: false},
	}
	for _, tt := range tests {
		rec := UsageRecord{FreeUsesToday: tt.used, LastResetDate: "2024-01-01"}
		if got := CanAttempt(rec, tt.limit); got != tt.want {
			t.Fatalf("CanAttempt(used=%d, limit=%d) = %v, want %v", tt.used, tt.limit, got, tt.want)
		}
	}
}

func TestRecordAttemptIsMonotonic(t *testing.T) {
	rec := UsageRecord{UserID: "u1", LastResetDate: "2024-03-10"}
	for i := 1; i <= 10; i++ {
		rec = RecordAttempt(rec, "2024-03-10")
		if rec.FreeUsesToday != i {
			t.Fatalf("after %d attempts FreeUsesToday = %d", i, rec.FreeUsesToday)
		}
	}
}

// Scenario: a free user on their fifth and final rewrite of the day.
func TestLastFreeAttemptOfTheDay(t *testing.T) {
	rec := UsageRecord{UserID: "u1", FreeUsesToday: 4, LastResetDate: "2024-01-01"}
	today := Date("2024-01-01")

	eff := ResolveForToday(rec, today)
	if !CanAttempt(eff, 5) {
		t.Fatal("fifth attempt should be allowed")
	}
	after := RecordAttempt(eff, today)
	if after.FreeUsesToday != 5 || after.LastResetDate != today {
		t.Fatalf("unexpected record after attempt: %+v", after)
	}
	if CanAttempt(after, 5) {
		t.Fatal("sixth attempt should be denied")
	}
}

// Scenario: the same stored row read after midnight grants a fresh allowance.
func TestDayRolloverGrantsFreshAllowance(t *testing.T) {
	rec := UsageRecord{UserID: "u1", FreeUsesToday: 4, LastResetDate: "2024-01-01"}
	eff := ResolveForToday(rec, "2024-01-02")
	if eff.FreeUsesToday != 0 || eff.LastResetDate != "2024-01-02" {
		t.Fatalf("unexpected effective record: %+v", eff)
	}
	if !CanAttempt(eff, 5) {
		t.Fatal("rollover should allow the attempt")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(UsageRecord{FreeUsesToday: 2}, 5); got != 3 {
		t.Fatalf("Remaining = %d, want 3", got)
	}
	if got := Remaining(UsageRecord{FreeUsesToday: 7}, 5); got != 0 {
		t.Fatalf("Remaining past the limit = %d, want 0", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Fatal("expected error for impossible date")
	}
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d != "2024-02-29" {
		t.Fatalf("ParseDate = %s", d)
	}
}
