package domain

import "time"

// RefreshToken is the stored side of a long-lived session credential. Only
// the SHA-256 of the raw value is persisted; the raw value exists solely in
// the client's cookie.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
