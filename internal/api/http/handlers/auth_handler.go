package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tenant-admin/internal/api/dto"
	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/ratelimit"
	"github.com/spec-kit/tenant-admin/internal/service"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// AuthHandler exposes the session endpoints under /api/v1/auth.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.CookiePolicy
	limiter *ratelimit.LoginLimiter
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.CookiePolicy, limiter *ratelimit.LoginLimiter) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies, limiter: limiter}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("email and password are required")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}

	if !h.limiter.Allow(c.UserContext(), req.Email, c.IP()) {
		return apperrors.NewRateLimited("too many login attempts")
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.SetAccessToken(c, result.AccessToken)
	h.cookies.SetRefreshToken(c, result.RawRefreshToken)

	tenants := make([]dto.TenantInfo, 0, len(result.Memberships))
	for _, m := range result.Memberships {
		tenants = append(tenants, dto.TenantInfo{TenantID: m.TenantID, Role: string(m.Role)})
	}

	return respondSuccess(c, http.StatusOK, dto.LoginResponse{
		Token:        result.AccessToken,
		RefreshToken: result.RawRefreshToken,
		User:         dto.UserInfo{ID: result.User.ID, Email: result.User.Email},
		Tenants:      tenants,
	})
}

// Refresh handles POST /api/v1/auth/refresh. The refresh token is read from
// its cookie only; it is never accepted from a header or body.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.auth.Refresh(c.UserContext(), c.Cookies(auth.RefreshTokenCookie))
	if err != nil {
		return err
	}

	h.cookies.SetAccessToken(c, result.AccessToken)
	h.cookies.SetRefreshToken(c, result.RawRefreshToken)

	return respondSuccess(c, http.StatusOK, dto.TokenResponse{Token: result.AccessToken})
}

// SwitchTenant handles POST /api/v1/auth/switch-tenant.
func (h *AuthHandler) SwitchTenant(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	var req dto.SwitchTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("tenantId is required")
	}
	if _, err := uuid.Parse(req.TenantID); err != nil {
		return apperrors.NewValidationError("tenantId is required")
	}

	token, err := h.auth.SwitchTenant(c.UserContext(), principal, req.TenantID)
	if err != nil {
		return err
	}

	h.cookies.SetAccessToken(c, token)

	return respondSuccess(c, http.StatusOK, dto.TokenResponse{Token: token})
}

// Me handles GET /api/v1/auth/me. A pure projection of the verified claims;
// no store access.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	return respondSuccess(c, http.StatusOK, dto.MeResponse{
		ID:       principal.UserID,
		Email:    principal.Email,
		TenantID: principal.TenantID,
		Role:     string(principal.Role),
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	h.auth.Logout(c.UserContext(), principal, c.Cookies(auth.RefreshTokenCookie))
	h.cookies.Clear(c)

	return respondSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
