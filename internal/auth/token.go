package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/tenant-admin/internal/domain"
)

// ErrInvalidToken is the only error Verify returns. A bad signature, a wrong
// secret, an expired token and a malformed claim are deliberately not
// distinguishable from the outside.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies tenant-scoped access tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager builds a new manager. Issuer and audience are deployment
// constants; tokens minted for a different deployment fail verification.
func NewTokenManager(secret, issuer, audience string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Claims describes the JWT payload.
type Claims struct {
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Mint builds and signs an access token for the given claims.
func (tm *TokenManager) Mint(claims domain.AuthClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	payload := &Claims{
		TenantID: claims.TenantID,
		Email:    claims.Email,
		Role:     string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer, audience and expiry, then rebuilds the
// auth claims from the payload. Every failure collapses to ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (*domain.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer), jwt.WithAudience(tm.audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.TenantID); err != nil {
		return nil, ErrInvalidToken
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &domain.AuthClaims{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Email:    claims.Email,
		Role:     role,
	}, nil
}

// TTL returns the configured access token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
