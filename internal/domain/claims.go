package domain

import "fmt"

// Role is a tenant-scoped authorization level.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
)

// ParseRole validates a role string against the known enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleViewer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// AuthClaims is the set of identity facts a verified access token asserts:
// this session acts as this user, in this tenant, with this role. It is never
// persisted; it is rebuilt from the token payload on every request.
type AuthClaims struct {
	UserID   string
	TenantID string
	Email    string
	Role     Role
}
