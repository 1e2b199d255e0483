package domain

import "time"

// Property is a tenant-owned hotel/venue record managed from the dashboard.
type Property struct {
	ID                  string
	TenantID            string
	Name                string
	IsActive            bool
	ExternalPropertyRef *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
