package partner

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierProduct is one supplier's offer for a product. The scoring engine
// compares all offers for a product; at most one offer per product carries
// the preferred flag.
type SupplierProduct struct {
	shared.TenantAggregateRoot
	SupplierID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_offer_supplier_product,priority:1"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_offer_supplier_product,priority:2"`
	UnitCost             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LeadTimeDays         *int
	MinimumOrderQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`
	IsPreferred          bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SupplierProduct) TableName() string {
	return "supplier_products"
}

// NewSupplierProduct creates a new supplier offer for a product
func NewSupplierProduct(tenantID, supplierID, productID uuid.UUID, unitCost decimal.Decimal) (*SupplierProduct, error) {
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit cost cannot be negative")
	}

	return &SupplierProduct{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		ProductID:           productID,
		UnitCost:            unitCost,
	}, nil
}

// UpdateUnitCost replaces the offer's unit cost
func (o *SupplierProduct) UpdateUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit cost cannot be negative")
	}
	o.UnitCost = cost
	o.touch()
	return nil
}

// SetLeadTime sets the offer lead time in days
func (o *SupplierProduct) SetLeadTime(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	o.LeadTimeDays = &days
	o.touch()
	return nil
}

// MarkPreferred flags this offer as the preferred source for the product.
// Callers must clear the flag on all sibling offers within the same unit of
// work; see SupplierProductRepository.ClearPreferredForProduct.
func (o *SupplierProduct) MarkPreferred() {
	o.IsPreferred = true
	o.touch()
}

// UnmarkPreferred clears the preferred flag
func (o *SupplierProduct) UnmarkPreferred() {
	o.IsPreferred = false
	o.touch()
}

func (o *SupplierProduct) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
