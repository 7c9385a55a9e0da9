package pricing

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxEntryPrice caps entry prices; anything above it is treated as a data
// entry mistake. Deployments can lower the cap through configuration but the
// domain enforces this hard ceiling.
var MaxEntryPrice = decimal.NewFromInt(1_000_000)

// PriceListEntry is one product's price within a price list.
// At most one non-deleted entry exists per (price list, product) pair.
type PriceListEntry struct {
	shared.TenantAggregateRoot
	PriceListID          uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_entry_list_product,priority:1"`
	ProductID            uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_entry_list_product,priority:2"`
	Price                decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency             valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	LeadTimeDays         *int
	MinimumOrderQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (PriceListEntry) TableName() string {
	return "price_list_entries"
}

// NewPriceListEntry creates a new entry for a product in a price list
func NewPriceListEntry(tenantID, priceListID, productID uuid.UUID, price decimal.Decimal, currency valueobject.Currency) (*PriceListEntry, error) {
	if err := validateEntryPrice(price); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	return &PriceListEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PriceListID:         priceListID,
		ProductID:           productID,
		Price:               price,
		Currency:            currency,
	}, nil
}

// UpdatePrice replaces the entry price
func (e *PriceListEntry) UpdatePrice(price decimal.Decimal) error {
	if err := validateEntryPrice(price); err != nil {
		return err
	}
	old := e.Price
	e.Price = price
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewEntryPriceChangedEvent(e, old))
	return nil
}

// SetLeadTime sets the supplier lead time in days
func (e *PriceListEntry) SetLeadTime(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	e.LeadTimeDays = &days
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// SetMinimumOrderQuantity sets the minimum quantity per order
func (e *PriceListEntry) SetMinimumOrderQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum order quantity cannot be negative")
	}
	e.MinimumOrderQuantity = &quantity
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// PriceMoney returns the entry price as a Money value object
func (e *PriceListEntry) PriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(e.Price, e.Currency)
	return m
}

func validateEntryPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Entry price cannot be negative")
	}
	if price.GreaterThan(MaxEntryPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Entry price exceeds the maximum allowed value")
	}
	return nil
}
