package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGoodsReceiptRepository implements GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByIDForTenant finds a document header by ID within a tenant
func (r *GormGoodsReceiptRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.GoodsReceipt, error) {
	var receipt trade.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindPurchaseLines finds all confirmed purchase lines for a supplier within
// the date range, ordered by document date ascending
func (r *GormGoodsReceiptRepository) FindPurchaseLines(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) ([]trade.PurchaseLine, error) {
	var lines []trade.PurchaseLine
	if err := r.purchaseLineQuery(ctx, tenantID, supplierID, from, to).
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindPurchaseLinesForProduct finds one supplier's confirmed purchase lines
// for a product within the date range, ordered by document date ascending
func (r *GormGoodsReceiptRepository) FindPurchaseLinesForProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID, from, to time.Time) ([]trade.PurchaseLine, error) {
	var lines []trade.PurchaseLine
	if err := r.purchaseLineQuery(ctx, tenantID, supplierID, from, to).
		Where("goods_receipt_lines.product_id = ?", productID).
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// purchaseLineQuery builds the flattened line/header join used by the
// purchase history reads. Table-level queries bypass the soft-delete hook,
// so deleted_at is filtered explicitly on both sides.
func (r *GormGoodsReceiptRepository) purchaseLineQuery(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("goods_receipt_lines").
		Select("goods_receipt_lines.product_id, goods_receipts.supplier_id, goods_receipts.document_date, goods_receipt_lines.quantity, goods_receipt_lines.unit_price").
		Joins("JOIN goods_receipts ON goods_receipts.id = goods_receipt_lines.goods_receipt_id").
		Where("goods_receipts.tenant_id = ? AND goods_receipts.supplier_id = ?", tenantID, supplierID).
		Where("goods_receipts.status = ?", trade.GoodsReceiptStatusConfirmed).
		Where("goods_receipts.document_date >= ? AND goods_receipts.document_date <= ?", from, to).
		Where("goods_receipts.deleted_at IS NULL AND goods_receipt_lines.deleted_at IS NULL").
		Order("goods_receipts.document_date ASC")
}

// Save creates or updates a document with its lines
func (r *GormGoodsReceiptRepository) Save(ctx context.Context, receipt *trade.GoodsReceipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

// Ensure GormGoodsReceiptRepository implements GoodsReceiptRepository
var _ trade.GoodsReceiptRepository = (*GormGoodsReceiptRepository)(nil)
