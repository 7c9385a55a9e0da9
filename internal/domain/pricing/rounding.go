package pricing

import (
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoundingStrategy determines how a computed price is snapped to a grid
type RoundingStrategy string

const (
	RoundingNone           RoundingStrategy = "none"
	RoundingNearest5Cents  RoundingStrategy = "nearest_5_cents"
	RoundingNearest10Cents RoundingStrategy = "nearest_10_cents"
	RoundingNearest50Cents RoundingStrategy = "nearest_50_cents"
	RoundingNearestEuro    RoundingStrategy = "nearest_euro"
	RoundingNearest99Cents RoundingStrategy = "nearest_99_cents"
)

// IsValid returns true if the rounding strategy is recognized
func (s RoundingStrategy) IsValid() bool {
	switch s {
	case RoundingNone, RoundingNearest5Cents, RoundingNearest10Cents,
		RoundingNearest50Cents, RoundingNearestEuro, RoundingNearest99Cents:
		return true
	default:
		return false
	}
}

// String returns the string representation of the strategy
func (s RoundingStrategy) String() string {
	return string(s)
}

// ParseRoundingStrategy validates and returns a rounding strategy.
// An empty string maps to RoundingNone.
func ParseRoundingStrategy(value string) (RoundingStrategy, error) {
	if value == "" {
		return RoundingNone, nil
	}
	strategy := RoundingStrategy(value)
	if !strategy.IsValid() {
		return "", shared.NewDomainError("INVALID_ROUNDING_STRATEGY", "Unknown rounding strategy: "+value)
	}
	return strategy, nil
}

var (
	step5Cents  = decimal.NewFromFloat(0.05)
	step10Cents = decimal.NewFromFloat(0.10)
	step50Cents = decimal.NewFromFloat(0.50)
	stepEuro    = decimal.NewFromInt(1)
	cents99     = decimal.NewFromFloat(0.99)
)

// ApplyMarkup applies a percentage markup to a price. The markup may be
// negative to express a markdown. The result is not rounded; rounding is a
// separate, later step.
func ApplyMarkup(price, markupPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(100).Add(markupPercent).Div(decimal.NewFromInt(100))
	return price.Mul(factor)
}

// Round snaps a price to the grid defined by the strategy. Markup must
// already be applied; the order markup-then-rounding is part of the contract.
func Round(price decimal.Decimal, strategy RoundingStrategy) decimal.Decimal {
	switch strategy {
	case RoundingNearest5Cents:
		return snapToStep(price, step5Cents)
	case RoundingNearest10Cents:
		return snapToStep(price, step10Cents)
	case RoundingNearest50Cents:
		return snapToStep(price, step50Cents)
	case RoundingNearestEuro:
		return snapToStep(price, stepEuro)
	case RoundingNearest99Cents:
		// Snaps to floor(price) + 0.99, so 10.00 becomes 10.99 and
		// 10.37 becomes 10.99.
		return price.Floor().Add(cents99)
	default:
		return price.Round(2)
	}
}

// ApplyMarkupAndRound runs the full transform: markup first, then rounding.
// A nil markup leaves the price untouched before rounding.
func ApplyMarkupAndRound(price decimal.Decimal, markupPercent *decimal.Decimal, strategy RoundingStrategy) decimal.Decimal {
	result := price
	if markupPercent != nil {
		result = ApplyMarkup(result, *markupPercent)
	}
	return Round(result, strategy)
}

// snapToStep rounds the price to the nearest multiple of step,
// half away from zero.
func snapToStep(price, step decimal.Decimal) decimal.Decimal {
	return price.Div(step).Round(0).Mul(step)
}
