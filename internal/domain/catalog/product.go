package catalog

import (
	"strings"
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product is the catalog entity consumed by the pricing engine. Catalog CRUD
// lives elsewhere; the engine reads products for default prices, category and
// brand membership, and active-only filtering.
type Product struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID      *uuid.UUID      `gorm:"type:uuid;index"`
	ModelID      *uuid.UUID      `gorm:"type:uuid;index"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name string) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Unit:                "pcs",
		DefaultPrice:        decimal.Zero,
		Status:              ProductStatusActive,
	}, nil
}

// SetDefaultPrice sets the terminal fallback price used when no price list applies
func (p *Product) SetDefaultPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
	}
	p.DefaultPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
