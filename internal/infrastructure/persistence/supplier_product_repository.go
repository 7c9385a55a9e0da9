package persistence

import (
	"context"
	"errors"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierProductRepository implements SupplierProductRepository using GORM
type GormSupplierProductRepository struct {
	db *gorm.DB
}

// NewGormSupplierProductRepository creates a new GormSupplierProductRepository
func NewGormSupplierProductRepository(db *gorm.DB) *GormSupplierProductRepository {
	return &GormSupplierProductRepository{db: db}
}

// FindByProduct finds all offers for a product across suppliers
func (r *GormSupplierProductRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]partner.SupplierProduct, error) {
	var offers []partner.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindBySupplierAndProduct finds one supplier's offer for a product
func (r *GormSupplierProductRepository) FindBySupplierAndProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID) (*partner.SupplierProduct, error) {
	var offer partner.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_id = ? AND product_id = ?", tenantID, supplierID, productID).
		First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// ClearPreferredForProduct unsets the preferred flag on every offer for the
// product. Callers run this inside the same transaction as the subsequent
// save so the one-preferred-per-product invariant holds.
func (r *GormSupplierProductRepository) ClearPreferredForProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&partner.SupplierProduct{}).
		Where("tenant_id = ? AND product_id = ? AND is_preferred = ?", tenantID, productID, true).
		Update("is_preferred", false).Error
}

// Save creates or updates an offer
func (r *GormSupplierProductRepository) Save(ctx context.Context, offer *partner.SupplierProduct) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

// SaveBatch creates or updates multiple offers
func (r *GormSupplierProductRepository) SaveBatch(ctx context.Context, offers []*partner.SupplierProduct) error {
	if len(offers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(offers).Error
}

// Ensure GormSupplierProductRepository implements SupplierProductRepository
var _ partner.SupplierProductRepository = (*GormSupplierProductRepository)(nil)
