package service

import (
	"context"

	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/repository"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

// PropertyService manages tenant-owned property records.
type PropertyService struct {
	properties repository.PropertyRepository
}

// NewPropertyService builds the service.
func NewPropertyService(properties repository.PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

// Create adds a property to the tenant.
func (s *PropertyService) Create(ctx context.Context, tenantID, name string, isActive bool, externalRef *string) (*domain.Property, error) {
	property := &domain.Property{
		TenantID:            tenantID,
		Name:                name,
		IsActive:            isActive,
		ExternalPropertyRef: externalRef,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// List returns the tenant's properties, oldest first.
func (s *PropertyService) List(ctx context.Context, tenantID string) ([]domain.Property, error) {
	return s.properties.ListByTenant(ctx, tenantID)
}

// Delete removes a property from the tenant.
func (s *PropertyService) Delete(ctx context.Context, tenantID, id string) error {
	deleted, err := s.properties.Delete(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("property")
	}
	return nil
}
