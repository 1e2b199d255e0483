package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tenant-admin/internal/api/dto"
	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/service"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// UsersHandler exposes tenant-scoped user management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/v1/users (ADMIN only).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("email and role are required")
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email and role are required")
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return apperrors.NewValidationError("role must be ADMIN or VIEWER")
	}

	result, err := h.users.ProvisionUser(c.UserContext(), principal.TenantID, req.Email, role)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusCreated, dto.CreateUserResponse{
		User: dto.UserListItem{
			ID:        result.User.ID,
			Email:     result.User.Email,
			Role:      string(result.Membership.Role),
			CreatedAt: result.User.CreatedAt,
		},
		TemporaryPassword: result.TemporaryPassword,
	})
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	members, err := h.users.ListTenantUsers(c.UserContext(), principal.TenantID)
	if err != nil {
		return err
	}

	items := make([]dto.UserListItem, 0, len(members))
	for _, m := range members {
		items = append(items, dto.UserListItem{
			ID:        m.UserID,
			Email:     m.Email,
			Role:      string(m.Role),
			CreatedAt: m.MemberSince,
		})
	}
	return respondSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewValidationError("id must be a valid user id")
	}

	user, memberships, err := h.users.GetTenantUser(c.UserContext(), principal.TenantID, userID)
	if err != nil {
		return err
	}

	infos := make([]dto.MembershipInfo, 0, len(memberships))
	for _, m := range memberships {
		infos = append(infos, dto.MembershipInfo{
			TenantID:    m.TenantID,
			Role:        string(m.Role),
			MemberSince: m.CreatedAt,
		})
	}
	return respondSuccess(c, http.StatusOK, dto.UserDetail{
		ID:          user.ID,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		Memberships: infos,
	})
}

// ResetPassword handles POST /api/v1/users/:id/reset-password (ADMIN only).
// Issues a new temporary password for a member of the active tenant.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewValidationError("id must be a valid user id")
	}

	tempPassword, err := h.users.ResetPassword(c.UserContext(), principal.TenantID, userID)
	if err != nil {
		return err
	}
	return respondSuccess(c, http.StatusOK, dto.ResetPasswordResponse{TemporaryPassword: tempPassword})
}

// Delete handles DELETE /api/v1/users/:id (ADMIN only). Removes the user's
// membership in the active tenant; the account itself is kept.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewValidationError("id must be a valid user id")
	}

	if err := h.users.RemoveFromTenant(c.UserContext(), principal.TenantID, userID); err != nil {
		return err
	}
	return respondSuccess(c, http.StatusOK, dto.MessageResponse{Message: "User removed from tenant"})
}
