package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-admin/internal/domain"
)

// AuditRepository appends immutable audit entries.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	const query = `
        INSERT INTO audit_events (id, event_type, user_id, tenant_id, email, occurred_at)
        VALUES ($1, $2, NULLIF($3,'')::uuid, NULLIF($4,'')::uuid, $5, $6)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.Type,
		event.UserID,
		event.TenantID,
		event.Email,
		event.OccurredAt,
	).Scan(&event.CreatedAt)
}
