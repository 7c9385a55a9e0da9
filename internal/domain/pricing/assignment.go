package pricing

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentStatus represents the status of a price list assignment
type AssignmentStatus string

const (
	AssignmentStatusActive  AssignmentStatus = "active"
	AssignmentStatusDeleted AssignmentStatus = "deleted"
)

// PriceListBusinessParty assigns a price list to a business party, optionally
// with a global discount applied on top of list prices. Assignments are only
// ever soft-deleted.
type PriceListBusinessParty struct {
	shared.TenantAggregateRoot
	PriceListID              uuid.UUID        `gorm:"type:uuid;not null;index"`
	BusinessPartyID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	GlobalDiscountPercentage decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	IsPrimary                bool             `gorm:"not null;default:false"`
	Status                   AssignmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (PriceListBusinessParty) TableName() string {
	return "price_list_business_parties"
}

// NewPriceListAssignment assigns a price list to a business party
func NewPriceListAssignment(tenantID, priceListID, businessPartyID uuid.UUID) *PriceListBusinessParty {
	return &PriceListBusinessParty{
		TenantAggregateRoot:      shared.NewTenantAggregateRoot(tenantID),
		PriceListID:              priceListID,
		BusinessPartyID:          businessPartyID,
		GlobalDiscountPercentage: decimal.Zero,
		Status:                   AssignmentStatusActive,
	}
}

// SetGlobalDiscount sets the discount applied to all list prices for the party
func (a *PriceListBusinessParty) SetGlobalDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}
	a.GlobalDiscountPercentage = percent
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// MarkPrimary flags this assignment as the party's primary list
func (a *PriceListBusinessParty) MarkPrimary() {
	a.IsPrimary = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// UnsetPrimary clears the primary flag
func (a *PriceListBusinessParty) UnsetPrimary() {
	a.IsPrimary = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Remove soft-deletes the assignment. The row is kept for audit history.
func (a *PriceListBusinessParty) Remove() error {
	if a.Status == AssignmentStatusDeleted {
		return shared.NewDomainError("ALREADY_DELETED", "Assignment is already deleted")
	}
	a.Status = AssignmentStatusDeleted
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsActiveAssignment returns true if the assignment has not been removed
func (a *PriceListBusinessParty) IsActiveAssignment() bool {
	return a.Status == AssignmentStatusActive
}
