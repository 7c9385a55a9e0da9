package persistence

import (
	"context"
	"errors"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceListEntryRepository implements PriceListEntryRepository using GORM
type GormPriceListEntryRepository struct {
	db *gorm.DB
}

// NewGormPriceListEntryRepository creates a new GormPriceListEntryRepository
func NewGormPriceListEntryRepository(db *gorm.DB) *GormPriceListEntryRepository {
	return &GormPriceListEntryRepository{db: db}
}

// FindByListAndProduct finds the entry for a product within a list
func (r *GormPriceListEntryRepository) FindByListAndProduct(ctx context.Context, tenantID, priceListID, productID uuid.UUID) (*pricing.PriceListEntry, error) {
	var entry pricing.PriceListEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND price_list_id = ? AND product_id = ?", tenantID, priceListID, productID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByList finds all entries of a price list
func (r *GormPriceListEntryRepository) FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]pricing.PriceListEntry, error) {
	var entries []pricing.PriceListEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND price_list_id = ?", tenantID, priceListID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByListFiltered finds the entries of a list matching the filter.
// Category and brand criteria join through the product catalog.
func (r *GormPriceListEntryRepository) FindByListFiltered(ctx context.Context, tenantID, priceListID uuid.UUID, filter pricing.EntryFilter) ([]pricing.PriceListEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&pricing.PriceListEntry{}).
		Where("price_list_entries.tenant_id = ? AND price_list_entries.price_list_id = ?", tenantID, priceListID)

	if len(filter.CategoryIDs) > 0 || len(filter.BrandIDs) > 0 {
		query = query.Joins("JOIN products ON products.id = price_list_entries.product_id AND products.tenant_id = price_list_entries.tenant_id AND products.deleted_at IS NULL")
		if len(filter.CategoryIDs) > 0 {
			query = query.Where("products.category_id IN ?", filter.CategoryIDs)
		}
		if len(filter.BrandIDs) > 0 {
			query = query.Where("products.brand_id IN ?", filter.BrandIDs)
		}
	}
	if len(filter.ProductIDs) > 0 {
		query = query.Where("price_list_entries.product_id IN ?", filter.ProductIDs)
	}
	if filter.MinPrice != nil {
		query = query.Where("price_list_entries.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_list_entries.price <= ?", *filter.MaxPrice)
	}

	var entries []pricing.PriceListEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByProductInLists finds the entries for a product across the given lists
func (r *GormPriceListEntryRepository) FindByProductInLists(ctx context.Context, tenantID, productID uuid.UUID, priceListIDs []uuid.UUID) ([]pricing.PriceListEntry, error) {
	if len(priceListIDs) == 0 {
		return []pricing.PriceListEntry{}, nil
	}

	var entries []pricing.PriceListEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND price_list_id IN ?", tenantID, productID, priceListIDs).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByList counts the non-deleted entries of a list
func (r *GormPriceListEntryRepository) CountByList(ctx context.Context, tenantID, priceListID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pricing.PriceListEntry{}).
		Where("tenant_id = ? AND price_list_id = ?", tenantID, priceListID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entry
func (r *GormPriceListEntryRepository) Save(ctx context.Context, entry *pricing.PriceListEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// SaveBatch creates or updates multiple entries
func (r *GormPriceListEntryRepository) SaveBatch(ctx context.Context, entries []*pricing.PriceListEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(entries).Error
}

// Delete soft-deletes an entry within a tenant
func (r *GormPriceListEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.PriceListEntry{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPriceListEntryRepository implements PriceListEntryRepository
var _ pricing.PriceListEntryRepository = (*GormPriceListEntryRepository)(nil)
