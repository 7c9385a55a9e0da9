package persistence

import (
	"context"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindActiveByParty finds the active assignments of a business party,
// primary assignments first, then most recently created
func (r *GormAssignmentRepository) FindActiveByParty(ctx context.Context, tenantID, businessPartyID uuid.UUID) ([]pricing.PriceListBusinessParty, error) {
	var assignments []pricing.PriceListBusinessParty
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND business_party_id = ? AND status = ?", tenantID, businessPartyID, pricing.AssignmentStatusActive).
		Order("is_primary DESC, created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindByList finds the active assignments of a price list
func (r *GormAssignmentRepository) FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]pricing.PriceListBusinessParty, error) {
	var assignments []pricing.PriceListBusinessParty
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND price_list_id = ? AND status = ?", tenantID, priceListID, pricing.AssignmentStatusActive).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *pricing.PriceListBusinessParty) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Ensure GormAssignmentRepository implements AssignmentRepository
var _ pricing.AssignmentRepository = (*GormAssignmentRepository)(nil)
