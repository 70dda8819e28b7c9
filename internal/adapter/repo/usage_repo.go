package repo

import (
	"context"
	"encoding/json"

	"elix-server/internal/infra"
	"elix-server/internal/sqlinline"
)

// UsageEvent is one append-only analytics row. Recording is best effort and
// never blocks a rewrite from succeeding.
type UsageEvent struct {
	UserID     string
	RequestID  string
	EventType  string
	Success    bool
	LatencyMS  int
	Country    string
	Properties map[string]any
}

type UsageEventRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewUsageEventRepository(sql infra.SQLExecutor) *UsageEventRepositoryPG {
	return &UsageEventRepositoryPG{sql: sql}
}

func (r *UsageEventRepositoryPG) Insert(ctx context.Context, ev UsageEvent) error {
	var props []byte
	if len(ev.Properties) > 0 {
		b, err := json.Marshal(ev.Properties)
		if err != nil {
			return err
		}
		props = b
	}
	var requestID *string
	if ev.RequestID != "" {
		requestID = &ev.RequestID
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUsageEvent,
		ev.UserID,
		requestID,
		ev.EventType,
		ev.Success,
		ev.LatencyMS,
		ev.Country,
		props,
	)
	return err
}
