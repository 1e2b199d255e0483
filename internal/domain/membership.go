package domain

import "time"

// TenantMembership links a user to a tenant with exactly one role.
// At most one membership exists per (UserID, TenantID) pair.
type TenantMembership struct {
	ID        string
	UserID    string
	TenantID  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantMember is the listing projection of a user inside one tenant.
type TenantMember struct {
	UserID      string
	Email       string
	Role        Role
	MemberSince time.Time
}
