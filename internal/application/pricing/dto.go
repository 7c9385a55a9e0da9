package pricing

import (
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Price List DTOs
// =============================================================================

// CreatePriceListRequest represents a request to create a new price list
type CreatePriceListRequest struct {
	Code      string     `json:"code" validate:"required,min=1,max=50"`
	Name      string     `json:"name" validate:"required,min=1,max=200"`
	Type      string     `json:"type" validate:"required,oneof=sales purchase"`
	Priority  int        `json:"priority"`
	Currency  string     `json:"currency" validate:"omitempty,len=3"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
	IsDefault bool       `json:"is_default"`
}

// UpdatePriceListRequest represents a request to update a price list
type UpdatePriceListRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Priority  *int       `json:"priority"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}

// PriceListResponse represents a price list in responses
type PriceListResponse struct {
	ID                       uuid.UUID  `json:"id"`
	TenantID                 uuid.UUID  `json:"tenant_id"`
	Code                     string     `json:"code"`
	Name                     string     `json:"name"`
	Type                     string     `json:"type"`
	Direction                string     `json:"direction"`
	Status                   string     `json:"status"`
	Priority                 int        `json:"priority"`
	Currency                 string     `json:"currency"`
	ValidFrom                *time.Time `json:"valid_from"`
	ValidTo                  *time.Time `json:"valid_to"`
	IsDefault                bool       `json:"is_default"`
	IsGeneratedFromDocuments bool       `json:"is_generated_from_documents"`
	EntryCount               int64      `json:"entry_count"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// SetEntryPriceRequest upserts a product price within a list
type SetEntryPriceRequest struct {
	ProductID            uuid.UUID        `json:"product_id" validate:"required"`
	Price                decimal.Decimal  `json:"price" validate:"required"`
	LeadTimeDays         *int             `json:"lead_time_days"`
	MinimumOrderQuantity *decimal.Decimal `json:"minimum_order_quantity"`
}

// AssignBusinessPartyRequest assigns a list to a business party
type AssignBusinessPartyRequest struct {
	BusinessPartyID          uuid.UUID        `json:"business_party_id" validate:"required"`
	GlobalDiscountPercentage *decimal.Decimal `json:"global_discount_percentage"`
	IsPrimary                bool             `json:"is_primary"`
}

// =============================================================================
// Resolution DTOs
// =============================================================================

// ResolvePriceRequest asks the cascade for a product price
type ResolvePriceRequest struct {
	ProductID         uuid.UUID  `json:"product_id" validate:"required"`
	BusinessPartyID   *uuid.UUID `json:"business_party_id"`
	ForcedPriceListID *uuid.UUID `json:"forced_price_list_id"`
	DocumentHeaderID  *uuid.UUID `json:"document_header_id"`
	Direction         string     `json:"direction" validate:"omitempty,oneof=output input"`
	AsOfDate          *time.Time `json:"as_of_date"`
}

// PriceSource identifies the precedence tier that produced a resolved price
type PriceSource string

const (
	SourceParameterList PriceSource = "parameter_list"
	SourceDocumentList  PriceSource = "document_list"
	SourcePartyList     PriceSource = "party_list"
	SourceGeneralList   PriceSource = "general_list"
	SourceDefaultPrice  PriceSource = "default_price"
)

// ResolvedPriceResponse is the cascade result with full provenance
type ResolvedPriceResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Source        PriceSource     `json:"source"`
	PriceListID   *uuid.UUID      `json:"price_list_id,omitempty"`
	PriceListName *string         `json:"price_list_name,omitempty"`
}

// =============================================================================
// Application Mode DTOs
// =============================================================================

// GetProductPriceRequest asks the mode engine for a final product price
type GetProductPriceRequest struct {
	ProductID         uuid.UUID        `json:"product_id" validate:"required"`
	BusinessPartyID   *uuid.UUID       `json:"business_party_id"`
	Mode              string           `json:"mode" validate:"omitempty,oneof=automatic forced_price_list manual hybrid_forced_with_overrides"`
	ForcedPriceListID *uuid.UUID       `json:"forced_price_list_id"`
	ManualPrice       *decimal.Decimal `json:"manual_price"`
	AsOfDate          *time.Time       `json:"as_of_date"`
}

// AvailablePriceList is one candidate list's price, reported for transparency
type AvailablePriceList struct {
	PriceListID   uuid.UUID        `json:"price_list_id"`
	PriceListName string           `json:"price_list_name"`
	Priority      int              `json:"priority"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	IsAssigned    bool             `json:"is_assigned"`
}

// ProductPriceResponse is the mode engine result
type ProductPriceResponse struct {
	ProductID              uuid.UUID                   `json:"product_id"`
	FinalPrice             decimal.Decimal             `json:"final_price"`
	BasePriceFromList      *decimal.Decimal            `json:"base_price_from_list,omitempty"`
	AppliedDiscountPercent *decimal.Decimal            `json:"applied_discount_percent,omitempty"`
	AppliedPriceListID     *uuid.UUID                  `json:"applied_price_list_id,omitempty"`
	AppliedMode            pricing.PriceApplicationMode `json:"applied_mode"`
	IsManual               bool                        `json:"is_manual"`
	IsPriceListForced      bool                        `json:"is_price_list_forced"`
	AvailablePriceLists    []AvailablePriceList        `json:"available_price_lists,omitempty"`
	SearchPath             []string                    `json:"search_path"`
}

// =============================================================================
// Bulk Mutation DTOs
// =============================================================================

// BulkOperation identifies how the bulk engine transforms each entry price
type BulkOperation string

const (
	BulkOperationSet                  BulkOperation = "set"
	BulkOperationIncreaseByAmount     BulkOperation = "increase_by_amount"
	BulkOperationDecreaseByAmount     BulkOperation = "decrease_by_amount"
	BulkOperationIncreaseByPercentage BulkOperation = "increase_by_percentage"
	BulkOperationDecreaseByPercentage BulkOperation = "decrease_by_percentage"
	BulkOperationMultiplyBy           BulkOperation = "multiply_by"
)

// BulkUpdateRequest applies one operation over a list's filtered entries
type BulkUpdateRequest struct {
	PriceListID      uuid.UUID       `json:"price_list_id" validate:"required"`
	Operation        BulkOperation   `json:"operation" validate:"required"`
	Value            decimal.Decimal `json:"value" validate:"required"`
	CategoryIDs      []uuid.UUID     `json:"category_ids"`
	BrandIDs         []uuid.UUID     `json:"brand_ids"`
	ProductIDs       []uuid.UUID     `json:"product_ids"`
	MinPrice         *decimal.Decimal `json:"min_price"`
	MaxPrice         *decimal.Decimal `json:"max_price"`
	RoundingStrategy string          `json:"rounding_strategy"`
}

// BulkUpdateError describes one skipped entry
type BulkUpdateError struct {
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}

// BulkUpdateResponse reports the partial-success outcome of a bulk update
type BulkUpdateResponse struct {
	UpdatedCount int               `json:"updated_count"`
	FailedCount  int               `json:"failed_count"`
	Errors       []BulkUpdateError `json:"errors,omitempty"`
}

// BulkPreviewLine is one entry's projected change
type BulkPreviewLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	NewPrice     decimal.Decimal `json:"new_price"`
	Delta        decimal.Decimal `json:"delta"`
	Skipped      bool            `json:"skipped"`
	SkipReason   string          `json:"skip_reason,omitempty"`
}

// BulkPreviewResponse is the dry-run result of a bulk update
type BulkPreviewResponse struct {
	Lines                     []BulkPreviewLine `json:"lines"`
	TotalCurrentValue         decimal.Decimal   `json:"total_current_value"`
	TotalNewValue             decimal.Decimal   `json:"total_new_value"`
	AverageIncreasePercentage decimal.Decimal   `json:"average_increase_percentage"`
}

// SupplierCostUpdate is one row of a supplier cost batch
type SupplierCostUpdate struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"required"`
}

// BulkUpdateSupplierCostsRequest updates a supplier's offer costs atomically
type BulkUpdateSupplierCostsRequest struct {
	SupplierID uuid.UUID            `json:"supplier_id" validate:"required"`
	Updates    []SupplierCostUpdate `json:"updates" validate:"required,min=1,dive"`
}

// =============================================================================
// Duplication DTOs
// =============================================================================

// DuplicatePriceListRequest copies a price list with optional re-pricing
type DuplicatePriceListRequest struct {
	SourcePriceListID   uuid.UUID        `json:"source_price_list_id" validate:"required"`
	NewName             string           `json:"new_name" validate:"required,min=1,max=200"`
	NewCode             string           `json:"new_code" validate:"omitempty,max=50"`
	NewType             string           `json:"new_type" validate:"omitempty,oneof=sales purchase"`
	NewDirection        string           `json:"new_direction" validate:"omitempty,oneof=output input"`
	ValidFrom           *time.Time       `json:"valid_from"`
	ValidTo             *time.Time       `json:"valid_to"`
	CopyPrices          bool             `json:"copy_prices"`
	CopyBusinessParties bool             `json:"copy_business_parties"`
	OnlyActiveProducts  bool             `json:"only_active_products"`
	CategoryIDs         []uuid.UUID      `json:"category_ids"`
	ProductIDs          []uuid.UUID      `json:"product_ids"`
	MarkupPercentage    *decimal.Decimal `json:"markup_percentage"`
	RoundingStrategy    string           `json:"rounding_strategy"`
}

// DuplicatePriceListResponse reports the copy outcome
type DuplicatePriceListResponse struct {
	NewPriceList             PriceListResponse `json:"new_price_list"`
	SourcePriceCount         int               `json:"source_price_count"`
	CopiedPriceCount         int               `json:"copied_price_count"`
	SkippedPriceCount        int               `json:"skipped_price_count"`
	CopiedBusinessPartyCount int               `json:"copied_business_party_count"`
	AppliedMarkupPercentage  *decimal.Decimal  `json:"applied_markup_percentage,omitempty"`
	AppliedRoundingStrategy  string            `json:"applied_rounding_strategy,omitempty"`
}

// =============================================================================
// Generation DTOs
// =============================================================================

// GenerateFromPurchasesRequest builds a purchase price list from documents
type GenerateFromPurchasesRequest struct {
	SupplierID           uuid.UUID        `json:"supplier_id" validate:"required"`
	FromDate             time.Time        `json:"from_date" validate:"required"`
	ToDate               time.Time        `json:"to_date" validate:"required"`
	Strategy             string           `json:"strategy" validate:"required"`
	Name                 string           `json:"name" validate:"required,min=1,max=200"`
	Code                 string           `json:"code" validate:"omitempty,max=50"`
	MarkupPercentage     *decimal.Decimal `json:"markup_percentage"`
	RoundingStrategy     string           `json:"rounding_strategy"`
	CategoryIDs          []uuid.UUID      `json:"category_ids"`
	MinimumQuantity      *decimal.Decimal `json:"minimum_quantity"`
	OnlyActiveProducts   bool             `json:"only_active_products"`
	Actor                *uuid.UUID       `json:"actor"`
}

// UpdateFromPurchasesRequest reconciles an existing generated list
type UpdateFromPurchasesRequest struct {
	PriceListID            uuid.UUID        `json:"price_list_id" validate:"required"`
	SupplierID             uuid.UUID        `json:"supplier_id" validate:"required"`
	FromDate               time.Time        `json:"from_date" validate:"required"`
	ToDate                 time.Time        `json:"to_date" validate:"required"`
	Strategy               string           `json:"strategy" validate:"required"`
	MarkupPercentage       *decimal.Decimal `json:"markup_percentage"`
	RoundingStrategy       string           `json:"rounding_strategy"`
	AddNewProducts         bool             `json:"add_new_products"`
	RemoveObsoleteProducts bool             `json:"remove_obsolete_products"`
	Actor                  *uuid.UUID       `json:"actor"`
}

// UpdateFromPurchasesResponse reports the reconciliation outcome
type UpdateFromPurchasesResponse struct {
	PricesUpdated int `json:"prices_updated"`
	PricesAdded   int `json:"prices_added"`
	PricesRemoved int `json:"prices_removed"`
}

// ToPriceListResponse maps a price list aggregate to its response shape
func ToPriceListResponse(list *pricing.PriceList, entryCount int64) PriceListResponse {
	return PriceListResponse{
		ID:                       list.ID,
		TenantID:                 list.TenantID,
		Code:                     list.Code,
		Name:                     list.Name,
		Type:                     string(list.Type),
		Direction:                string(list.Direction),
		Status:                   string(list.Status),
		Priority:                 list.Priority,
		Currency:                 string(list.Currency),
		ValidFrom:                list.ValidFrom,
		ValidTo:                  list.ValidTo,
		IsDefault:                list.IsDefault,
		IsGeneratedFromDocuments: list.IsGeneratedFromDocuments,
		EntryCount:               entryCount,
		CreatedAt:                list.CreatedAt,
		UpdatedAt:                list.UpdatedAt,
	}
}
