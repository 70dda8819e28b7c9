package domain

import "context"

// ProfileRepository defines access methods for user profiles.
type ProfileRepository interface {
	UpsertByGoogleSub(ctx context.Context, profile *Profile) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
}

// LimitsRepository is the remote quota store boundary. GetUsageRecord returns
// ErrNotFound for users without a row; UpdateUsageRecord applies a partial
// patch and returns the stored row after the write.
type LimitsRepository interface {
	GetUsageRecord(ctx context.Context, userID string) (*UsageRecord, error)
	CreateUsageRecord(ctx context.Context, defaults UsageRecord) (*UsageRecord, error)
	UpdateUsageRecord(ctx context.Context, userID string, patch UsagePatch) (*UsageRecord, error)
}
