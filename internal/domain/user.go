package domain

import "time"

// User is the domain model for dashboard accounts. Users are shared across
// tenants; the role lives on the membership, not here.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
