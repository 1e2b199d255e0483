package dto

import "time"

// CreateUserRequest payload for provisioning a user into the active tenant.
type CreateUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserListItem is one row of the tenant user listing.
type UserListItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// MembershipInfo describes one tenant membership on the user detail view.
type MembershipInfo struct {
	TenantID    string    `json:"tenantId"`
	Role        string    `json:"role"`
	MemberSince time.Time `json:"memberSince"`
}

// UserDetail is the full user view inside a tenant.
type UserDetail struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Memberships []MembershipInfo `json:"memberships"`
}

// CreateUserResponse returns the provisioned user. TemporaryPassword is only
// set when a new account was created, and is never shown again.
type CreateUserResponse struct {
	User              UserListItem `json:"user"`
	TemporaryPassword string       `json:"temporaryPassword,omitempty"`
}

// ResetPasswordResponse carries the one-time temporary password issued by an
// admin reset.
type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporaryPassword"`
}
