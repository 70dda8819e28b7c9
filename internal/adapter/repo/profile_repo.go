package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"elix-server/internal/domain"
	"elix-server/internal/infra"
	"elix-server/internal/sqlinline"
)

// ProfileRepositoryPG implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// UpsertByGoogleSub inserts the profile on first sign-in and refreshes the
// mutable identity fields on every subsequent one.
func (r *ProfileRepositoryPG) UpsertByGoogleSub(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertGoogleProfile,
		p.GoogleSub,
		p.Email,
		p.Name,
		p.Picture,
	)
	return scanProfile(row)
}

// GetByID fetches a profile by UUID.
func (r *ProfileRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByID, id)
	return scanProfile(row)
}

// GetByEmail fetches a profile by email, used by the operator tooling.
func (r *ProfileRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByEmail, email)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.GoogleSub, &p.Email, &p.Name, &p.Picture, &p.StripeCustomerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.ProfileRepository = (*ProfileRepositoryPG)(nil)
