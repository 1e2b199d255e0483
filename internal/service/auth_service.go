package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/config"
	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/events"
	"github.com/spec-kit/tenant-admin/internal/repository"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// AuthService orchestrates login, refresh rotation, tenant switch and logout.
// All cross-request state lives in the stores; the service itself holds none.
type AuthService struct {
	users         repository.UserRepository
	memberships   repository.MembershipRepository
	refreshTokens repository.RefreshTokenRepository
	hasher        *auth.PasswordHasher
	tokenMgr      *auth.TokenManager
	dispatcher    events.Dispatcher
	refreshTTL    time.Duration
	now           func() time.Time
}

// AuthDependencies encapsulates store and event requirements for the service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	MembershipRepo   repository.MembershipRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           *auth.PasswordHasher
	Dispatcher       events.Dispatcher
}

// NewAuthService builds the service, including its token manager from config.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		memberships:   deps.MembershipRepo,
		refreshTokens: deps.RefreshTokenRepo,
		hasher:        deps.Hasher,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.AccessTokenTTL()),
		dispatcher:    deps.Dispatcher,
		refreshTTL:    cfg.Auth.RefreshTokenTTL(),
		now:           time.Now,
	}
}

// LoginResult carries everything a fresh session needs.
type LoginResult struct {
	AccessToken     string
	RawRefreshToken string
	User            *domain.User
	Memberships     []domain.TenantMembership
}

// RefreshResult carries the rotated credentials.
type RefreshResult struct {
	AccessToken     string
	RawRefreshToken string
}

// Login authenticates by email and password and opens a session scoped to
// the user's first tenant membership (oldest membership wins, by policy).
// Unknown email and wrong password are indistinguishable in both response
// and latency: the dummy hash comparison runs whenever no user was found.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user == nil || errors.Is(err, repository.ErrNotFound) {
		s.hasher.VerifyDummy(password)
		s.publish(ctx, events.EventLoginFailed, "", "", email)
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "invalid email or password")
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.publish(ctx, events.EventLoginFailed, user.ID, "", email)
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "invalid email or password")
	}

	memberships, err := s.memberships.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidCredentials, "no tenant memberships found")
	}

	active := memberships[0]
	accessToken, _, err := s.tokenMgr.Mint(domain.AuthClaims{
		UserID:   user.ID,
		TenantID: active.TenantID,
		Email:    user.Email,
		Role:     active.Role,
	})
	if err != nil {
		return nil, err
	}

	rawRefresh, refreshHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: refreshHash,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, user.ID, active.TenantID, user.Email)

	return &LoginResult{
		AccessToken:     accessToken,
		RawRefreshToken: rawRefresh,
		User:            user,
		Memberships:     memberships,
	}, nil
}

// Refresh exchanges a raw refresh token for a new access token and a rotated
// refresh token. The old token stops working the moment a refresh consumes
// it; a concurrent refresh losing the delete race fails closed. The active
// tenant resets to the user's first membership (source-of-truth policy, see
// DESIGN.md).
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*RefreshResult, error) {
	if rawToken == "" {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidRefreshToken, "missing refresh token")
	}

	tokenHash := hashRefreshToken(rawToken)
	stored, err := s.refreshTokens.GetByHash(ctx, tokenHash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidRefreshToken, "invalid refresh token")
	}
	if err != nil {
		return nil, err
	}

	if stored.Expired(s.now()) {
		_, _ = s.refreshTokens.DeleteByHash(ctx, tokenHash)
		return nil, apperrors.NewUnauthorized(apperrors.CodeRefreshTokenExpired, "refresh token expired")
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidRefreshToken, "invalid refresh token")
	}
	if err != nil {
		return nil, err
	}

	memberships, err := s.memberships.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidRefreshToken, "no tenant memberships found")
	}

	// Rotation gate: whoever deletes the old row issues the new credentials.
	deleted, err := s.refreshTokens.DeleteByHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidRefreshToken, "invalid refresh token")
	}

	active := memberships[0]
	accessToken, _, err := s.tokenMgr.Mint(domain.AuthClaims{
		UserID:   user.ID,
		TenantID: active.TenantID,
		Email:    user.Email,
		Role:     active.Role,
	})
	if err != nil {
		return nil, err
	}

	newRaw, newHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newHash,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, user.ID, active.TenantID, user.Email)

	return &RefreshResult{AccessToken: accessToken, RawRefreshToken: newRaw}, nil
}

// SwitchTenant re-scopes an authenticated principal to another tenant it is
// a member of and returns the new access token. The refresh token is left
// untouched.
func (s *AuthService) SwitchTenant(ctx context.Context, principal *domain.AuthClaims, tenantID string) (string, error) {
	membership, err := s.memberships.GetByUserAndTenant(ctx, principal.UserID, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperrors.NewForbidden("no membership for requested tenant")
	}
	if err != nil {
		return "", err
	}

	token, _, err := s.tokenMgr.Mint(domain.AuthClaims{
		UserID:   principal.UserID,
		TenantID: membership.TenantID,
		Email:    principal.Email,
		Role:     membership.Role,
	})
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.EventTenantSwitched, principal.UserID, membership.TenantID, principal.Email)
	return token, nil
}

// Logout revokes the presented refresh token, if any, and sweeps the user's
// already-expired tokens. It always succeeds: an absent or already-deleted
// token is not an error on the way out.
func (s *AuthService) Logout(ctx context.Context, principal *domain.AuthClaims, rawToken string) {
	if rawToken != "" {
		_, _ = s.refreshTokens.DeleteByHash(ctx, hashRefreshToken(rawToken))
	}
	if principal != nil {
		_ = s.refreshTokens.DeleteExpiredByUser(ctx, principal.UserID)
		s.publish(ctx, events.EventLoggedOut, principal.UserID, principal.TenantID, principal.Email)
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID, tenantID, email string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		UserID:     userID,
		TenantID:   tenantID,
		Email:      email,
		OccurredAt: s.now(),
	})
}

// generateRefreshToken returns a 256-bit random opaque token and the SHA-256
// hex digest that gets persisted in its place.
func generateRefreshToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashRefreshToken(raw), nil
}

func hashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
