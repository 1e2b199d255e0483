package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/events"
	"github.com/spec-kit/tenant-admin/internal/repository"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// UserService handles tenant-scoped user provisioning and listing. Accounts
// are global; what this service grants and revokes is the membership inside
// the caller's active tenant. Users are never hard-deleted.
type UserService struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	hasher      *auth.PasswordHasher
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, memberships repository.MembershipRepository, hasher *auth.PasswordHasher, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:       users,
		memberships: memberships,
		hasher:      hasher,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

// ProvisionResult is what a successful provisioning returns. The temporary
// password is only present when a brand-new account was created; it is shown
// exactly once and never stored in the clear.
type ProvisionResult struct {
	User              *domain.User
	Membership        *domain.TenantMembership
	TemporaryPassword string
}

// ProvisionUser grants the given role in the tenant, creating the account
// with a generated temporary password when the email is new. A membership
// that already exists is a conflict.
func (s *UserService) ProvisionUser(ctx context.Context, tenantID, email string, role domain.Role) (*ProvisionResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	tempPassword := ""
	if user == nil || errors.Is(err, repository.ErrNotFound) {
		tempPassword, err = generateTemporaryPassword()
		if err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(tempPassword)
		if err != nil {
			return nil, err
		}
		user = &domain.User{Email: email, PasswordHash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.memberships.GetByUserAndTenant(ctx, user.ID, tenantID); err == nil {
			return nil, apperrors.NewConflict("user is already a member of this tenant")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	membership := &domain.TenantMembership{
		UserID:   user.ID,
		TenantID: tenantID,
		Role:     role,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventUserProvisioned,
			UserID:     user.ID,
			TenantID:   tenantID,
			Email:      user.Email,
			OccurredAt: s.now(),
		})
	}

	return &ProvisionResult{User: user, Membership: membership, TemporaryPassword: tempPassword}, nil
}

// ListTenantUsers returns the members of a tenant with their roles.
func (s *UserService) ListTenantUsers(ctx context.Context, tenantID string) ([]domain.TenantMember, error) {
	return s.memberships.ListMembersByTenant(ctx, tenantID)
}

// GetTenantUser returns one user visible from the given tenant, with all of
// the user's memberships. Users outside the tenant are reported as not
// found, not as forbidden, to avoid confirming their existence.
func (s *UserService) GetTenantUser(ctx context.Context, tenantID, userID string) (*domain.User, []domain.TenantMembership, error) {
	if _, err := s.memberships.GetByUserAndTenant(ctx, userID, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewNotFound("user")
		}
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewNotFound("user")
		}
		return nil, nil, err
	}

	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, memberships, nil
}

// ResetPassword replaces the user's password hash with one for a freshly
// generated temporary password, returned exactly once. The target must be a
// member of the caller's tenant; anyone else reads as not found.
func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID string) (string, error) {
	if _, err := s.memberships.GetByUserAndTenant(ctx, userID, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.NewNotFound("user")
		}
		return "", err
	}

	tempPassword, err := generateTemporaryPassword()
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.NewNotFound("user")
		}
		return "", err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventPasswordReset,
			UserID:     userID,
			TenantID:   tenantID,
			OccurredAt: s.now(),
		})
	}
	return tempPassword, nil
}

// RemoveFromTenant revokes the user's membership in the tenant. The account
// itself stays.
func (s *UserService) RemoveFromTenant(ctx context.Context, tenantID, userID string) error {
	deleted, err := s.memberships.DeleteByUserAndTenant(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("user")
	}
	return nil
}

// generateTemporaryPassword returns a 144-bit random password for newly
// provisioned accounts.
func generateTemporaryPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
