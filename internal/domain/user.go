package domain

import "time"

// Profile represents an authenticated account. Quota state lives in the
// separate user_limits row (see UsageRecord); the profile only carries
// identity and billing linkage.
type Profile struct {
	ID               string
	GoogleSub        string
	Email            string
	Name             string
	Picture          string
	StripeCustomerID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName returns a short name for UI surfaces, falling back to the
// mailbox part of the email.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	for i := 0; i < len(p.Email); i++ {
		if p.Email[i] == '@' {
			return p.Email[:i]
		}
	}
	return p.Email
}
