package pricing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceListType distinguishes sales lists from purchase lists
type PriceListType string

const (
	PriceListTypeSales    PriceListType = "sales"
	PriceListTypePurchase PriceListType = "purchase"
)

// PriceListDirection identifies which side of a trade the list serves.
// Output lists face customers, input lists face suppliers.
type PriceListDirection string

const (
	DirectionOutput PriceListDirection = "output"
	DirectionInput  PriceListDirection = "input"
)

// PriceListStatus represents the lifecycle status of a price list
type PriceListStatus string

const (
	PriceListStatusActive    PriceListStatus = "active"
	PriceListStatusSuspended PriceListStatus = "suspended"
	PriceListStatusArchived  PriceListStatus = "archived"
)

// GenerationMetadata records how a document-generated price list was produced
type GenerationMetadata struct {
	Strategy      string          `json:"strategy"`
	Rounding      string          `json:"rounding"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	FromDate      time.Time       `json:"from_date"`
	ToDate        time.Time       `json:"to_date"`
	Actor         *uuid.UUID      `json:"actor,omitempty"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// PriceList is the aggregate root for a set of product prices.
// Lists are never hard-deleted; removal is a soft delete.
type PriceList struct {
	shared.TenantAggregateRoot
	Code                     string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_price_list_tenant_code,priority:2"`
	Name                     string               `gorm:"type:varchar(200);not null"`
	Type                     PriceListType        `gorm:"type:varchar(20);not null"`
	Direction                PriceListDirection   `gorm:"type:varchar(10);not null;index"`
	Status                   PriceListStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	Priority                 int                  `gorm:"not null;default:0"`
	Currency                 valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	ValidFrom                *time.Time
	ValidTo                  *time.Time
	IsDefault                bool       `gorm:"not null;default:false"`
	IsGeneratedFromDocuments bool       `gorm:"not null;default:false"`
	GenerationMetadata       string     `gorm:"type:jsonb"`
	LastSyncedBy             *uuid.UUID `gorm:"type:uuid"`
	LastSyncedAt             *time.Time
}

// TableName returns the table name for GORM
func (PriceList) TableName() string {
	return "price_lists"
}

// NewPriceList creates a new price list
func NewPriceList(tenantID uuid.UUID, code, name string, listType PriceListType, direction PriceListDirection) (*PriceList, error) {
	if err := validatePriceListCode(code); err != nil {
		return nil, err
	}
	if err := validatePriceListName(name); err != nil {
		return nil, err
	}
	if err := validateTypeAndDirection(listType, direction); err != nil {
		return nil, err
	}

	list := &PriceList{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Type:                listType,
		Direction:           direction,
		Status:              PriceListStatusActive,
		Currency:            valueobject.DefaultCurrency,
	}

	list.AddDomainEvent(NewPriceListCreatedEvent(list))

	return list, nil
}

// NewSalesPriceList creates a new customer-facing price list
func NewSalesPriceList(tenantID uuid.UUID, code, name string) (*PriceList, error) {
	return NewPriceList(tenantID, code, name, PriceListTypeSales, DirectionOutput)
}

// NewPurchasePriceList creates a new supplier-facing price list
func NewPurchasePriceList(tenantID uuid.UUID, code, name string) (*PriceList, error) {
	return NewPriceList(tenantID, code, name, PriceListTypePurchase, DirectionInput)
}

// Rename updates the list name
func (l *PriceList) Rename(name string) error {
	if err := validatePriceListName(name); err != nil {
		return err
	}
	l.Name = name
	l.touch()
	return nil
}

// SetPriority sets the precedence of this list among general candidates.
// Higher priority wins.
func (l *PriceList) SetPriority(priority int) {
	l.Priority = priority
	l.touch()
}

// SetValidityWindow sets the optional validity window.
// Either bound may be nil for an open-ended window.
func (l *PriceList) SetValidityWindow(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Validity window end must not precede its start")
	}
	l.ValidFrom = from
	l.ValidTo = to
	l.touch()
	return nil
}

// MarkDefault flags this list as the tenant default for its type
func (l *PriceList) MarkDefault() {
	l.IsDefault = true
	l.touch()
}

// UnsetDefault clears the default flag
func (l *PriceList) UnsetDefault() {
	l.IsDefault = false
	l.touch()
}

// Suspend suspends the list; suspended lists are skipped by resolution
func (l *PriceList) Suspend() error {
	if l.Status == PriceListStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Price list is already suspended")
	}
	if l.Status == PriceListStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Cannot suspend an archived price list")
	}
	l.Status = PriceListStatusSuspended
	l.touch()
	return nil
}

// Activate reactivates a suspended list
func (l *PriceList) Activate() error {
	if l.Status == PriceListStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Price list is already active")
	}
	if l.Status == PriceListStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate an archived price list")
	}
	l.Status = PriceListStatusActive
	l.touch()
	return nil
}

// Archive permanently retires the list
func (l *PriceList) Archive() error {
	if l.Status == PriceListStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Price list is already archived")
	}
	l.Status = PriceListStatusArchived
	l.touch()
	return nil
}

// IsActive returns true if the list status is active
func (l *PriceList) IsActive() bool {
	return l.Status == PriceListStatusActive
}

// IsValidAt returns true if the validity window contains the given instant.
// Open bounds always match.
func (l *PriceList) IsValidAt(at time.Time) bool {
	if l.ValidFrom != nil && at.Before(*l.ValidFrom) {
		return false
	}
	if l.ValidTo != nil && at.After(*l.ValidTo) {
		return false
	}
	return true
}

// IsApplicableAt returns true if the list is active and valid at the instant
func (l *PriceList) IsApplicableAt(at time.Time) bool {
	return l.IsActive() && l.IsValidAt(at)
}

// MarkGenerated records that this list was produced from documents
func (l *PriceList) MarkGenerated(meta GenerationMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	l.IsGeneratedFromDocuments = true
	l.GenerationMetadata = string(data)
	l.touch()
	l.AddDomainEvent(NewPriceListGeneratedEvent(l, meta))
	return nil
}

// GetGenerationMetadata parses the stored generation metadata.
// Returns nil when the list was not generated from documents.
func (l *PriceList) GetGenerationMetadata() (*GenerationMetadata, error) {
	if !l.IsGeneratedFromDocuments || l.GenerationMetadata == "" {
		return nil, nil
	}
	var meta GenerationMetadata
	if err := json.Unmarshal([]byte(l.GenerationMetadata), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// RecordSync records the actor and time of the last document sync
func (l *PriceList) RecordSync(actor *uuid.UUID, at time.Time) {
	l.LastSyncedBy = actor
	l.LastSyncedAt = &at
	l.touch()
}

func (l *PriceList) touch() {
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

func validatePriceListCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Price list code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Price list code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Price list code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validatePriceListName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Price list name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Price list name cannot exceed 200 characters")
	}
	return nil
}

func validateTypeAndDirection(listType PriceListType, direction PriceListDirection) error {
	switch listType {
	case PriceListTypeSales, PriceListTypePurchase:
	default:
		return shared.NewDomainError("INVALID_TYPE", "Unknown price list type")
	}
	switch direction {
	case DirectionOutput, DirectionInput:
	default:
		return shared.NewDomainError("INVALID_DIRECTION", "Unknown price list direction")
	}
	return nil
}
