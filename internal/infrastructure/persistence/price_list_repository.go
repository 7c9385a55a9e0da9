package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceListRepository implements PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByIDForTenant finds a price list by ID within a tenant
func (r *GormPriceListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pricing.PriceList, error) {
	var list pricing.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindByCode finds a price list by its code within a tenant
func (r *GormPriceListRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*pricing.PriceList, error) {
	var list pricing.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// ExistsByCode checks if a list with the given code exists in the tenant
func (r *GormPriceListRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pricing.PriceList{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindApplicable finds active lists matching the direction whose validity
// window contains asOf. Ordered by priority descending then ID ascending so
// ties break deterministically.
func (r *GormPriceListRepository) FindApplicable(ctx context.Context, tenantID uuid.UUID, direction pricing.PriceListDirection, asOf time.Time) ([]pricing.PriceList, error) {
	var lists []pricing.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND direction = ? AND status = ?", tenantID, direction, pricing.PriceListStatusActive).
		Where("(valid_from IS NULL OR valid_from <= ?)", asOf).
		Where("(valid_to IS NULL OR valid_to >= ?)", asOf).
		Order("priority DESC, id ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindAllForTenant finds all lists for a tenant
func (r *GormPriceListRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]pricing.PriceList, error) {
	var lists []pricing.PriceList
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority DESC, code ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// ClearDefault unsets the default flag on every list of the given type.
// Callers run this inside the same transaction as the subsequent save so the
// one-default-per-type invariant holds.
func (r *GormPriceListRepository) ClearDefault(ctx context.Context, tenantID uuid.UUID, listType pricing.PriceListType) error {
	return r.db.WithContext(ctx).
		Model(&pricing.PriceList{}).
		Where("tenant_id = ? AND type = ? AND is_default = ?", tenantID, listType, true).
		Update("is_default", false).Error
}

// Save creates or updates a price list
func (r *GormPriceListRepository) Save(ctx context.Context, list *pricing.PriceList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete soft-deletes a price list within a tenant
func (r *GormPriceListRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.PriceList{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPriceListRepository implements PriceListRepository
var _ pricing.PriceListRepository = (*GormPriceListRepository)(nil)
