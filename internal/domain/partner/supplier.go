package partner

import (
	"strings"
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
	SupplierStatusBlocked  SupplierStatus = "blocked"
)

// Supplier is the vendor entity consumed by the generation and scoring
// engines. Supplier CRUD lives elsewhere.
type Supplier struct {
	shared.TenantAggregateRoot
	Code   string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_tenant_code,priority:2"`
	Name   string         `gorm:"type:varchar(200);not null"`
	Status SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Rating int            `gorm:"not null;default:0;check:rating >= 0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              SupplierStatusActive,
	}, nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// AgeInDays returns how long the supplier has been on record
func (s *Supplier) AgeInDays(now time.Time) int {
	return int(now.Sub(s.CreatedAt).Hours() / 24)
}
