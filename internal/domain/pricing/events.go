package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/pricing/internal/domain/shared"
)

// Event types for the pricing context
const (
	EventTypePriceListCreated    = "pricing.price_list.created"
	EventTypePriceListDuplicated = "pricing.price_list.duplicated"
	EventTypePriceListGenerated  = "pricing.price_list.generated"
	EventTypeEntryPriceChanged   = "pricing.price_list_entry.price_changed"
)

const aggregateTypePriceList = "PriceList"
const aggregateTypePriceListEntry = "PriceListEntry"

// PriceListCreatedEvent is raised when a new price list is created
type PriceListCreatedEvent struct {
	shared.BaseDomainEvent
	PriceListID uuid.UUID          `json:"price_list_id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Type        PriceListType      `json:"type"`
	Direction   PriceListDirection `json:"direction"`
}

// NewPriceListCreatedEvent creates a new PriceListCreatedEvent
func NewPriceListCreatedEvent(list *PriceList) *PriceListCreatedEvent {
	return &PriceListCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePriceListCreated, aggregateTypePriceList, list.ID, list.TenantID),
		PriceListID:     list.ID,
		Code:            list.Code,
		Name:            list.Name,
		Type:            list.Type,
		Direction:       list.Direction,
	}
}

// PriceListDuplicatedEvent is raised when a price list is cloned
type PriceListDuplicatedEvent struct {
	shared.BaseDomainEvent
	SourcePriceListID uuid.UUID `json:"source_price_list_id"`
	NewPriceListID    uuid.UUID `json:"new_price_list_id"`
	CopiedEntries     int       `json:"copied_entries"`
}

// NewPriceListDuplicatedEvent creates a new PriceListDuplicatedEvent
func NewPriceListDuplicatedEvent(newList *PriceList, sourceID uuid.UUID, copiedEntries int) *PriceListDuplicatedEvent {
	return &PriceListDuplicatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypePriceListDuplicated, aggregateTypePriceList, newList.ID, newList.TenantID),
		SourcePriceListID: sourceID,
		NewPriceListID:    newList.ID,
		CopiedEntries:     copiedEntries,
	}
}

// PriceListGeneratedEvent is raised when a list is built or refreshed from documents
type PriceListGeneratedEvent struct {
	shared.BaseDomainEvent
	PriceListID uuid.UUID `json:"price_list_id"`
	Strategy    string    `json:"strategy"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPriceListGeneratedEvent creates a new PriceListGeneratedEvent
func NewPriceListGeneratedEvent(list *PriceList, meta GenerationMetadata) *PriceListGeneratedEvent {
	return &PriceListGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePriceListGenerated, aggregateTypePriceList, list.ID, list.TenantID),
		PriceListID:     list.ID,
		Strategy:        meta.Strategy,
		SupplierID:      meta.SupplierID,
	}
}

// EntryPriceChangedEvent is raised when an entry price is mutated
type EntryPriceChangedEvent struct {
	shared.BaseDomainEvent
	PriceListID uuid.UUID       `json:"price_list_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	OldPrice    decimal.Decimal `json:"old_price"`
	NewPrice    decimal.Decimal `json:"new_price"`
}

// NewEntryPriceChangedEvent creates a new EntryPriceChangedEvent
func NewEntryPriceChangedEvent(entry *PriceListEntry, oldPrice decimal.Decimal) *EntryPriceChangedEvent {
	return &EntryPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEntryPriceChanged, aggregateTypePriceListEntry, entry.ID, entry.TenantID),
		PriceListID:     entry.PriceListID,
		ProductID:       entry.ProductID,
		OldPrice:        oldPrice,
		NewPrice:        entry.Price,
	}
}
