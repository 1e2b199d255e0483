package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tenant-admin/internal/api/dto"
	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/service"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// PropertiesHandler exposes tenant-scoped property management.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs the handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: propertyService}
}

// List handles GET /api/v1/properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	properties, err := h.properties.List(c.UserContext(), principal.TenantID)
	if err != nil {
		return err
	}

	items := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		items = append(items, dto.PropertyResponse{
			ID:                  p.ID,
			Name:                p.Name,
			IsActive:            p.IsActive,
			ExternalPropertyRef: p.ExternalPropertyRef,
			CreatedAt:           p.CreatedAt,
		})
	}
	return respondSuccess(c, http.StatusOK, items)
}

// Create handles POST /api/v1/properties (ADMIN only).
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("name is required")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name is required")
	}

	property, err := h.properties.Create(c.UserContext(), principal.TenantID, req.Name, req.IsActive, req.ExternalPropertyRef)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusCreated, dto.PropertyResponse{
		ID:                  property.ID,
		Name:                property.Name,
		IsActive:            property.IsActive,
		ExternalPropertyRef: property.ExternalPropertyRef,
		CreatedAt:           property.CreatedAt,
	})
}

// Delete handles DELETE /api/v1/properties/:id (ADMIN only).
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	propertyID := c.Params("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		return apperrors.NewValidationError("id must be a valid property id")
	}

	if err := h.properties.Delete(c.UserContext(), principal.TenantID, propertyID); err != nil {
		return err
	}
	return respondSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Property deleted"})
}
