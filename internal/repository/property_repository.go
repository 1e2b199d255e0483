package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-admin/internal/domain"
)

// PropertyRepository defines persistence access for tenant properties.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Property, error)
	// Delete is tenant-scoped so one tenant can never remove another
	// tenant's property by guessing ids.
	Delete(ctx context.Context, tenantID, id string) (bool, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a Postgres-backed implementation.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (tenant_id, name, is_active, external_property_ref)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.TenantID,
		property.Name,
		property.IsActive,
		property.ExternalPropertyRef,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Property, error) {
	const query = `
        SELECT id, tenant_id, name, is_active, external_property_ref, created_at, updated_at
        FROM properties
        WHERE tenant_id=$1
        ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.IsActive, &p.ExternalPropertyRef, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	const query = `DELETE FROM properties WHERE tenant_id=$1 AND id=$2`

	cmd, err := r.pool.Exec(ctx, query, tenantID, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
