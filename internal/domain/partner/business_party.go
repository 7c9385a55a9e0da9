package partner

import (
	"strings"
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessPartyType represents which side of trade the party sits on
type BusinessPartyType string

const (
	BusinessPartyTypeCustomer BusinessPartyType = "customer"
	BusinessPartyTypeSupplier BusinessPartyType = "supplier"
	BusinessPartyTypeBoth     BusinessPartyType = "both"
)

// BusinessPartyStatus represents the status of a business party
type BusinessPartyStatus string

const (
	BusinessPartyStatusActive   BusinessPartyStatus = "active"
	BusinessPartyStatusInactive BusinessPartyStatus = "inactive"
)

// BusinessParty is the customer/supplier entity consumed by the pricing
// engine. Party CRUD lives elsewhere; the engine reads the default list
// references and the default application mode to seed price resolution.
type BusinessParty struct {
	shared.TenantAggregateRoot
	Code                        string                       `gorm:"type:varchar(50);not null;uniqueIndex:idx_party_tenant_code,priority:2"`
	Name                        string                       `gorm:"type:varchar(200);not null"`
	Type                        BusinessPartyType            `gorm:"type:varchar(20);not null;default:'customer'"`
	Status                      BusinessPartyStatus          `gorm:"type:varchar(20);not null;default:'active'"`
	DefaultSalesPriceListID     *uuid.UUID                   `gorm:"type:uuid"`
	DefaultPurchasePriceListID  *uuid.UUID                   `gorm:"type:uuid"`
	DefaultPriceApplicationMode pricing.PriceApplicationMode `gorm:"type:varchar(40)"`
	ForcedPriceListID           *uuid.UUID                   `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BusinessParty) TableName() string {
	return "business_parties"
}

// NewBusinessParty creates a new business party
func NewBusinessParty(tenantID uuid.UUID, code, name string, partyType BusinessPartyType) (*BusinessParty, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Business party code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business party name cannot be empty")
	}
	switch partyType {
	case BusinessPartyTypeCustomer, BusinessPartyTypeSupplier, BusinessPartyTypeBoth:
	default:
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown business party type")
	}

	return &BusinessParty{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Type:                partyType,
		Status:              BusinessPartyStatusActive,
	}, nil
}

// DefaultListForDirection returns the party's default list for the direction,
// or nil when none is configured
func (p *BusinessParty) DefaultListForDirection(direction pricing.PriceListDirection) *uuid.UUID {
	if direction == pricing.DirectionInput {
		return p.DefaultPurchasePriceListID
	}
	return p.DefaultSalesPriceListID
}

// SetDefaultSalesPriceList sets the default customer-facing list
func (p *BusinessParty) SetDefaultSalesPriceList(listID *uuid.UUID) {
	p.DefaultSalesPriceListID = listID
	p.touch()
}

// SetDefaultPurchasePriceList sets the default supplier-facing list
func (p *BusinessParty) SetDefaultPurchasePriceList(listID *uuid.UUID) {
	p.DefaultPurchasePriceListID = listID
	p.touch()
}

// SetDefaultPriceApplicationMode sets the party's default lookup mode
func (p *BusinessParty) SetDefaultPriceApplicationMode(mode pricing.PriceApplicationMode) error {
	if mode != "" && !mode.IsValid() {
		return shared.NewDomainError("INVALID_MODE", "Unknown price application mode")
	}
	p.DefaultPriceApplicationMode = mode
	p.touch()
	return nil
}

// SetForcedPriceList pins the party to a single list
func (p *BusinessParty) SetForcedPriceList(listID *uuid.UUID) {
	p.ForcedPriceListID = listID
	p.touch()
}

func (p *BusinessParty) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
