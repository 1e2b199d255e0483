package domain

import "time"

// Tenant is an isolated customer scope. Every resource and every role grant
// belongs to exactly one tenant.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
