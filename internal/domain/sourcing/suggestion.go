package sourcing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfidenceBand classifies a suggestion's total score against the
// configured thresholds
type ConfidenceBand string

const (
	ConfidenceLow    ConfidenceBand = "low"
	ConfidenceMedium ConfidenceBand = "medium"
	ConfidenceHigh   ConfidenceBand = "high"
)

// ScoreBreakdown holds the four sub-scores behind a suggestion, each
// normalized to [0,100], with human-readable explanations
type ScoreBreakdown struct {
	PriceScore       decimal.Decimal `json:"priceScore"`
	LeadTimeScore    decimal.Decimal `json:"leadTimeScore"`
	ReliabilityScore decimal.Decimal `json:"reliabilityScore"`
	TrendScore       decimal.Decimal `json:"trendScore"`
	Explanations     []string        `json:"explanations"`
}

// ReliabilityMetrics are proxy metrics feeding the reliability sub-score.
// Derived heuristically from supplier age and catalog breadth until real
// fulfillment data is tracked.
type ReliabilityMetrics struct {
	OrderCount        int64           `json:"orderCount"`
	OnTimeRate        decimal.Decimal `json:"onTimeRate"`
	OrderAccuracyRate decimal.Decimal `json:"orderAccuracyRate"`
	DefectRate        decimal.Decimal `json:"defectRate"`
	ResponseTimeScore decimal.Decimal `json:"responseTimeScore"`
}

// SupplierSuggestion is one supplier's ranked recommendation for a product.
// Computed per scoring run, never persisted.
type SupplierSuggestion struct {
	SupplierID   uuid.UUID       `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	ProductID    uuid.UUID       `json:"productId"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	LeadTimeDays *int            `json:"leadTimeDays,omitempty"`
	IsPreferred  bool            `json:"isPreferred"`
	TotalScore   decimal.Decimal `json:"totalScore"`
	Confidence   ConfidenceBand  `json:"confidence"`
	Breakdown    ScoreBreakdown  `json:"breakdown"`
	CalculatedAt time.Time       `json:"calculatedAt"`
}
