package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLine is a flattened view of one confirmed goods-receipt line,
// joined with its header date for aggregation
type PurchaseLine struct {
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	DocumentDate time.Time
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}

// GoodsReceiptRepository defines the read access the engine needs on
// stock-increase documents
type GoodsReceiptRepository interface {
	// FindByIDForTenant finds a document header by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*GoodsReceipt, error)

	// FindPurchaseLines finds all confirmed purchase lines for a supplier
	// within the date range, ordered by document date ascending
	FindPurchaseLines(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) ([]PurchaseLine, error)

	// FindPurchaseLinesForProduct finds one supplier's confirmed purchase
	// lines for a product within the date range, ordered by document date
	// ascending; feeds the price-trend sub-score
	FindPurchaseLinesForProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID, from, to time.Time) ([]PurchaseLine, error)

	// Save creates or updates a document with its lines
	Save(ctx context.Context, receipt *GoodsReceipt) error
}
