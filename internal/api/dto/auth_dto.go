package dto

// LoginRequest payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SwitchTenantRequest payload for POST /api/v1/auth/switch-tenant.
type SwitchTenantRequest struct {
	TenantID string `json:"tenantId"`
}

// TenantInfo is one membership entry in the login response.
type TenantInfo struct {
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

// UserInfo is the user summary in the login response.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserInfo     `json:"user"`
	Tenants      []TenantInfo `json:"tenants"`
}

// TokenResponse carries a freshly minted access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse is the principal projection for GET /api/v1/auth/me.
type MeResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
