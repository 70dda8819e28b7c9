package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"elix-server/internal/domain"
	"elix-server/internal/infra"
	"elix-server/internal/sqlinline"
)

// LimitsRepositoryPG implements domain.LimitsRepository backed by PostgreSQL.
// last_reset is stored as a date column and travels as a YYYY-MM-DD string on
// both sides of the wire.
type LimitsRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewLimitsRepository(sql infra.SQLExecutor) *LimitsRepositoryPG {
	return &LimitsRepositoryPG{sql: sql}
}

func (r *LimitsRepositoryPG) GetUsageRecord(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserLimits, userID)
	return scanUsageRecord(row)
}

func (r *LimitsRepositoryPG) CreateUsageRecord(ctx context.Context, defaults domain.UsageRecord) (*domain.UsageRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertUserLimits,
		defaults.UserID,
		defaults.FreeUsesToday,
		string(defaults.LastResetDate),
		defaults.IsPro,
	)
	return scanUsageRecord(row)
}

func (r *LimitsRepositoryPG) UpdateUsageRecord(ctx context.Context, userID string, patch domain.UsagePatch) (*domain.UsageRecord, error) {
	var lastReset *string
	if patch.LastResetDate != nil {
		s := string(*patch.LastResetDate)
		lastReset = &s
	}
	row := r.sql.QueryRow(ctx, sqlinline.QPatchUserLimits,
		userID,
		patch.FreeUsesToday,
		lastReset,
		patch.IsPro,
	)
	return scanUsageRecord(row)
}

func scanUsageRecord(row pgx.Row) (*domain.UsageRecord, error) {
	var (
		rec  domain.UsageRecord
		date string
	)
	err := row.Scan(&rec.UserID, &rec.FreeUsesToday, &date, &rec.IsPro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rec.LastResetDate = domain.Date(date)
	return &rec, nil
}

var _ domain.LimitsRepository = (*LimitsRepositoryPG)(nil)
