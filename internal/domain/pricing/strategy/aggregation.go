package strategy

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/pricing/internal/domain/shared"
)

// AggregationMethod identifies how historical purchase rows for a product
// collapse into a single price
type AggregationMethod string

const (
	MethodLastPurchasePrice AggregationMethod = "last_purchase_price"
	MethodSimpleAverage     AggregationMethod = "simple_average"
	MethodWeightedAverage   AggregationMethod = "weighted_average"
	MethodLowestPrice       AggregationMethod = "lowest_price"
	MethodHighestPrice      AggregationMethod = "highest_price"
	MethodMedianPrice       AggregationMethod = "median_price"
)

// String returns the string representation of the method
func (m AggregationMethod) String() string {
	return string(m)
}

// IsValid returns true if the method is recognized
func (m AggregationMethod) IsValid() bool {
	switch m {
	case MethodLastPurchasePrice, MethodSimpleAverage, MethodWeightedAverage,
		MethodLowestPrice, MethodHighestPrice, MethodMedianPrice:
		return true
	default:
		return false
	}
}

// PurchaseSample is one historical purchase observation for a product,
// taken from a stock-increase document row
type PurchaseSample struct {
	ProductID    uuid.UUID
	DocumentDate time.Time
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}

// AggregationStrategy collapses purchase samples into one price
type AggregationStrategy interface {
	// Method returns the unique method identifier of the strategy
	Method() AggregationMethod
	// Description returns a human-readable description
	Description() string
	// Aggregate computes the price from the samples.
	// The caller guarantees at least one sample.
	Aggregate(samples []PurchaseSample) decimal.Decimal
}

// ForMethod returns the strategy implementing the given method
func ForMethod(method AggregationMethod) (AggregationStrategy, error) {
	switch method {
	case MethodLastPurchasePrice:
		return lastPurchasePrice{}, nil
	case MethodSimpleAverage:
		return simpleAverage{}, nil
	case MethodWeightedAverage:
		return weightedAverage{}, nil
	case MethodLowestPrice:
		return lowestPrice{}, nil
	case MethodHighestPrice:
		return highestPrice{}, nil
	case MethodMedianPrice:
		return medianPrice{}, nil
	default:
		return nil, shared.NewDomainError("INVALID_AGGREGATION_STRATEGY", "Unknown aggregation strategy: "+string(method))
	}
}

type lastPurchasePrice struct{}

func (lastPurchasePrice) Method() AggregationMethod { return MethodLastPurchasePrice }
func (lastPurchasePrice) Description() string {
	return "Price of the most recent purchase row by document date"
}

func (lastPurchasePrice) Aggregate(samples []PurchaseSample) decimal.Decimal {
	latest := samples[0]
	for _, s := range samples[1:] {
		if !s.DocumentDate.Before(latest.DocumentDate) {
			latest = s
		}
	}
	return latest.UnitPrice
}

type simpleAverage struct{}

func (simpleAverage) Method() AggregationMethod { return MethodSimpleAverage }
func (simpleAverage) Description() string {
	return "Arithmetic mean of all purchase prices in the window"
}

func (simpleAverage) Aggregate(samples []PurchaseSample) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range samples {
		sum = sum.Add(s.UnitPrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(samples))))
}

type weightedAverage struct{}

func (weightedAverage) Method() AggregationMethod { return MethodWeightedAverage }
func (weightedAverage) Description() string {
	return "Quantity-weighted mean of all purchase prices in the window"
}

func (weightedAverage) Aggregate(samples []PurchaseSample) decimal.Decimal {
	totalValue := decimal.Zero
	totalQuantity := decimal.Zero
	for _, s := range samples {
		totalValue = totalValue.Add(s.UnitPrice.Mul(s.Quantity))
		totalQuantity = totalQuantity.Add(s.Quantity)
	}
	if totalQuantity.IsZero() {
		// Rows without quantities carry no weight; fall back to the mean.
		return simpleAverage{}.Aggregate(samples)
	}
	return totalValue.Div(totalQuantity)
}

type lowestPrice struct{}

func (lowestPrice) Method() AggregationMethod { return MethodLowestPrice }
func (lowestPrice) Description() string {
	return "Lowest purchase price seen in the window"
}

func (lowestPrice) Aggregate(samples []PurchaseSample) decimal.Decimal {
	min := samples[0].UnitPrice
	for _, s := range samples[1:] {
		if s.UnitPrice.LessThan(min) {
			min = s.UnitPrice
		}
	}
	return min
}

type highestPrice struct{}

func (highestPrice) Method() AggregationMethod { return MethodHighestPrice }
func (highestPrice) Description() string {
	return "Highest purchase price seen in the window"
}

func (highestPrice) Aggregate(samples []PurchaseSample) decimal.Decimal {
	max := samples[0].UnitPrice
	for _, s := range samples[1:] {
		if s.UnitPrice.GreaterThan(max) {
			max = s.UnitPrice
		}
	}
	return max
}

type medianPrice struct{}

func (medianPrice) Method() AggregationMethod { return MethodMedianPrice }
func (medianPrice) Description() string {
	return "Middle purchase price, or the mean of the two middle prices for even counts"
}

func (medianPrice) Aggregate(samples []PurchaseSample) decimal.Decimal {
	prices := make([]decimal.Decimal, len(samples))
	for i, s := range samples {
		prices[i] = s.UnitPrice
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].LessThan(prices[j])
	})

	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid]
	}
	return prices[mid-1].Add(prices[mid]).Div(decimal.NewFromInt(2))
}
