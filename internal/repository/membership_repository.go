package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-admin/internal/domain"
)

// MembershipRepository defines persistence access for tenant memberships.
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.TenantMembership) error
	// ListByUser returns the user's memberships oldest-first. The ordering is
	// a policy, not an accident: Login and Refresh treat the first row as the
	// active tenant.
	ListByUser(ctx context.Context, userID string) ([]domain.TenantMembership, error)
	GetByUserAndTenant(ctx context.Context, userID, tenantID string) (*domain.TenantMembership, error)
	DeleteByUserAndTenant(ctx context.Context, userID, tenantID string) (bool, error)
	ListMembersByTenant(ctx context.Context, tenantID string) ([]domain.TenantMember, error)
}

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository returns a Postgres-backed implementation.
func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &membershipRepository{pool: pool}
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.TenantMembership) error {
	const query = `
        INSERT INTO tenant_memberships (user_id, tenant_id, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		membership.UserID,
		membership.TenantID,
		membership.Role,
	).Scan(&membership.ID, &membership.CreatedAt, &membership.UpdatedAt)
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	const query = `
        SELECT id, user_id, tenant_id, role, created_at, updated_at
        FROM tenant_memberships
        WHERE user_id=$1
        ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.TenantMembership
	for rows.Next() {
		var m domain.TenantMembership
		if err := rows.Scan(&m.ID, &m.UserID, &m.TenantID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) GetByUserAndTenant(ctx context.Context, userID, tenantID string) (*domain.TenantMembership, error) {
	const query = `
        SELECT id, user_id, tenant_id, role, created_at, updated_at
        FROM tenant_memberships
        WHERE user_id=$1 AND tenant_id=$2`

	var m domain.TenantMembership
	if err := r.pool.QueryRow(ctx, query, userID, tenantID).Scan(
		&m.ID,
		&m.UserID,
		&m.TenantID,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) DeleteByUserAndTenant(ctx context.Context, userID, tenantID string) (bool, error) {
	const query = `
        DELETE FROM tenant_memberships WHERE user_id=$1 AND tenant_id=$2`

	cmd, err := r.pool.Exec(ctx, query, userID, tenantID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *membershipRepository) ListMembersByTenant(ctx context.Context, tenantID string) ([]domain.TenantMember, error) {
	const query = `
        SELECT u.id, u.email, m.role, m.created_at
        FROM tenant_memberships m
        JOIN users u ON u.id = m.user_id
        WHERE m.tenant_id=$1
        ORDER BY m.created_at ASC, m.id ASC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TenantMember
	for rows.Next() {
		var m domain.TenantMember
		if err := rows.Scan(&m.UserID, &m.Email, &m.Role, &m.MemberSince); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
