package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-admin/internal/observability"
)

// respondSuccess wraps data in the standard response envelope.
func respondSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta":    fiber.Map{"requestId": observability.RequestIDFrom(c)},
	})
}
