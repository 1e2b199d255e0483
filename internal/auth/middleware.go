package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-admin/internal/domain"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

const principalKey = "auth_principal"

// Middleware resolves the request's bearer token or session cookie into an
// authenticated principal. It holds no store access: the claims inside a
// verified token are the principal.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the principal resolver.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Absent, malformed,
// expired and tampered tokens all produce the same 401 so callers learn
// nothing about which check failed.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		token = c.Cookies(AccessTokenCookie)
	}
	if token == "" {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
	}

	c.Locals(principalKey, claims)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated claims set by Handle.
func PrincipalFromContext(c *fiber.Ctx) (*domain.AuthClaims, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*domain.AuthClaims)
	return claims, ok
}

// RequireRole gates a route on the principal's tenant-scoped role.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "missing or invalid token")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
