package sourcing

import (
	"time"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierSuggestionsResponse wraps a scoring run with the top
// recommendation and the savings it would unlock
type SupplierSuggestionsResponse struct {
	ProductID         uuid.UUID                     `json:"product_id"`
	Suggestions       []sourcing.SupplierSuggestion `json:"suggestions"`
	TopRecommendation *sourcing.SupplierSuggestion  `json:"top_recommendation,omitempty"`
	PotentialSavings  *decimal.Decimal              `json:"potential_savings,omitempty"`
	CalculatedAt      time.Time                     `json:"calculated_at"`
}

// PriceComparisonRow is one supplier's offer in the purchase price
// comparison, ordered ascending by unit cost
type PriceComparisonRow struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LeadTimeDays *int            `json:"lead_time_days,omitempty"`
	IsPreferred  bool            `json:"is_preferred"`
}

// ApplySuggestedSupplierRequest switches a product's preferred supplier
type ApplySuggestedSupplierRequest struct {
	ProductID  uuid.UUID  `json:"product_id" validate:"required"`
	SupplierID uuid.UUID  `json:"supplier_id" validate:"required"`
	Reason     string     `json:"reason"`
	Actor      *uuid.UUID `json:"-"`
}
