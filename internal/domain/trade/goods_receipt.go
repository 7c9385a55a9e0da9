package trade

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceiptStatus represents the status of a stock-increase document
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusDraft     GoodsReceiptStatus = "draft"
	GoodsReceiptStatusConfirmed GoodsReceiptStatus = "confirmed"
	GoodsReceiptStatusCancelled GoodsReceiptStatus = "cancelled"
)

// GoodsReceipt is a stock-increase document header consumed by the engine.
// Document CRUD lives elsewhere; the generation engine reads confirmed
// receipts as purchase history, and the resolution cascade reads the
// attached price list for the DocumentList tier.
type GoodsReceipt struct {
	shared.TenantAggregateRoot
	DocumentNumber string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_receipt_tenant_number,priority:2"`
	SupplierID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	DocumentDate   time.Time          `gorm:"not null;index"`
	Status         GoodsReceiptStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	PriceListID    *uuid.UUID         `gorm:"type:uuid"`
	Lines          []GoodsReceiptLine `gorm:"foreignKey:GoodsReceiptID"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// GoodsReceiptLine is one product row of a stock-increase document
type GoodsReceiptLine struct {
	shared.BaseEntity
	GoodsReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}

// NewGoodsReceipt creates a new stock-increase document
func NewGoodsReceipt(tenantID, supplierID uuid.UUID, documentNumber string, documentDate time.Time) (*GoodsReceipt, error) {
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}

	return &GoodsReceipt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentNumber:      documentNumber,
		SupplierID:          supplierID,
		DocumentDate:        documentDate,
		Status:              GoodsReceiptStatusDraft,
	}, nil
}

// AddLine appends a product row to the document
func (r *GoodsReceipt) AddLine(productID uuid.UUID, quantity, unitPrice decimal.Decimal) error {
	if quantity.IsNegative() || quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Line unit price cannot be negative")
	}

	r.Lines = append(r.Lines, GoodsReceiptLine{
		BaseEntity:     shared.NewBaseEntity(),
		GoodsReceiptID: r.ID,
		ProductID:      productID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
	})
	return nil
}

// AttachPriceList attaches a price list to the document; the resolution
// cascade reads it for the DocumentList tier
func (r *GoodsReceipt) AttachPriceList(priceListID *uuid.UUID) {
	r.PriceListID = priceListID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Confirm marks the document as confirmed purchase history
func (r *GoodsReceipt) Confirm() error {
	if r.Status != GoodsReceiptStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be confirmed")
	}
	r.Status = GoodsReceiptStatusConfirmed
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
