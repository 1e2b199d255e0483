package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names carrying the session credentials.
const (
	AccessTokenCookie  = "auth_token"
	RefreshTokenCookie = "refresh_token"
)

// CookiePolicy decides how tokens are carried in HTTP cookies. Both cookies
// are http-only, path "/", and secure only in production so local development
// over plain HTTP keeps working.
type CookiePolicy struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SetAccessToken writes the access token cookie.
func (p CookiePolicy) SetAccessToken(c *fiber.Ctx, token string) {
	c.Cookie(p.cookie(AccessTokenCookie, token, p.AccessTTL))
}

// SetRefreshToken writes the refresh token cookie with the raw (unhashed)
// token value.
func (p CookiePolicy) SetRefreshToken(c *fiber.Ctx, rawToken string) {
	c.Cookie(p.cookie(RefreshTokenCookie, rawToken, p.RefreshTTL))
}

// Clear expires both session cookies.
func (p CookiePolicy) Clear(c *fiber.Ctx) {
	c.Cookie(p.expired(AccessTokenCookie))
	c.Cookie(p.expired(RefreshTokenCookie))
}

func (p CookiePolicy) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   p.Secure,
	}
}

func (p CookiePolicy) expired(name string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   p.Secure,
	}
}
