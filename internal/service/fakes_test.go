package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/repository"
)

// In-memory store fakes. They mirror the row-level atomicity of the real
// repositories: one create/find/delete per call, guarded by a mutex.

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

type fakeMembershipRepo struct {
	mu    sync.Mutex
	rows  []domain.TenantMembership
	users *fakeUserRepo
}

func newFakeMembershipRepo(users *fakeUserRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{users: users}
}

func (r *fakeMembershipRepo) Create(_ context.Context, membership *domain.TenantMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == membership.UserID && row.TenantID == membership.TenantID {
			return errors.New("duplicate membership")
		}
	}
	membership.ID = uuid.NewString()
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now()
	}
	membership.UpdatedAt = membership.CreatedAt
	r.rows = append(r.rows, *membership)
	return nil
}

func (r *fakeMembershipRepo) ListByUser(_ context.Context, userID string) ([]domain.TenantMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TenantMembership
	for _, row := range r.rows {
		if row.UserID == userID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeMembershipRepo) GetByUserAndTenant(_ context.Context, userID, tenantID string) (*domain.TenantMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && row.TenantID == tenantID {
			clone := row
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMembershipRepo) DeleteByUserAndTenant(_ context.Context, userID, tenantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.UserID == userID && row.TenantID == tenantID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMembershipRepo) ListMembersByTenant(ctx context.Context, tenantID string) ([]domain.TenantMember, error) {
	r.mu.Lock()
	rows := append([]domain.TenantMembership{}, r.rows...)
	r.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })

	var members []domain.TenantMember
	for _, row := range rows {
		if row.TenantID != tenantID {
			continue
		}
		user, err := r.users.GetByID(ctx, row.UserID)
		if err != nil {
			return nil, err
		}
		members = append(members, domain.TenantMember{
			UserID:      row.UserID,
			Email:       user.Email,
			Role:        row.Role,
			MemberSince: row.CreatedAt,
		})
	}
	return members, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	byHash map[string]*domain.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byHash: make(map[string]*domain.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byHash[token.TokenHash]; exists {
		return errors.New("duplicate token hash")
	}
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	clone := *token
	r.byHash[token.TokenHash] = &clone
	return nil
}

func (r *fakeRefreshTokenRepo) GetByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byHash[tokenHash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *token
	return &clone, nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHash[tokenHash]; !ok {
		return false, nil
	}
	delete(r.byHash, tokenHash)
	return true, nil
}

func (r *fakeRefreshTokenRepo) DeleteExpiredByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for hash, token := range r.byHash {
		if token.UserID == userID && token.Expired(now) {
			delete(r.byHash, hash)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byHash)
}
