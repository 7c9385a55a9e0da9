package sourcing

import (
	"github.com/shopspring/decimal"
)

var (
	neutralScore = decimal.NewFromInt(50)
	fullScore    = decimal.NewFromInt(100)
	hundred      = decimal.NewFromInt(100)
)

// NormalizePriceScore scores a unit cost against all competing costs on a
// [0,100] scale where the cheapest offer scores 100. Returns 100 when all
// prices are equal and neutral 50 when fewer than two offers carry a price.
func NormalizePriceScore(current decimal.Decimal, all []decimal.Decimal) decimal.Decimal {
	if len(all) < 2 {
		return neutralScore
	}

	min, max := all[0], all[0]
	for _, p := range all[1:] {
		if p.LessThan(min) {
			min = p
		}
		if p.GreaterThan(max) {
			max = p
		}
	}
	if max.Equal(min) {
		return fullScore
	}
	return max.Sub(current).Div(max.Sub(min)).Mul(hundred)
}

// NormalizeLeadTimeScore scores a lead time against all competing lead
// times, shorter being better. Offers without a lead time are excluded from
// the comparison; a supplier missing one scores neutral 50.
func NormalizeLeadTimeScore(current *int, all []*int) decimal.Decimal {
	if current == nil {
		return neutralScore
	}

	known := make([]decimal.Decimal, 0, len(all))
	for _, d := range all {
		if d != nil {
			known = append(known, decimal.NewFromInt(int64(*d)))
		}
	}
	return NormalizePriceScore(decimal.NewFromInt(int64(*current)), known)
}

// ReliabilityScore combines the proxy metrics into one [0,100] score.
// Weights follow the fixed mix: on-time 0.4, accuracy 0.3, low defects 0.2,
// response time 0.1.
func ReliabilityScore(m ReliabilityMetrics) decimal.Decimal {
	score := m.OnTimeRate.Mul(decimal.NewFromFloat(0.4)).
		Add(m.OrderAccuracyRate.Mul(decimal.NewFromFloat(0.3))).
		Add(hundred.Sub(m.DefectRate).Mul(decimal.NewFromFloat(0.2))).
		Add(m.ResponseTimeScore.Mul(decimal.NewFromFloat(0.1)))
	return clampScore(score)
}

// TrendScore scores the price movement between the first and last purchase
// price in the analysis window. Falling or flat prices score high, rising
// prices taper toward 0. Fewer than minDataPoints samples scores neutral 50.
func TrendScore(prices []decimal.Decimal, minDataPoints int) decimal.Decimal {
	if len(prices) < minDataPoints {
		return neutralScore
	}

	first, last := prices[0], prices[len(prices)-1]
	if first.IsZero() {
		return neutralScore
	}
	changePct, _ := last.Sub(first).Div(first).Mul(hundred).Float64()

	switch {
	case changePct <= -5:
		return fullScore
	case changePct <= 0:
		// -5%..0% maps linearly onto 85..100
		return decimal.NewFromFloat(85 - changePct*3)
	case changePct <= 5:
		// 0%..+5% maps linearly onto 70..55
		return decimal.NewFromFloat(70 - changePct*3)
	default:
		// beyond +5% taper from 55 toward 0
		return clampScore(decimal.NewFromFloat(55 - (changePct-5)*2.75))
	}
}

// WeightedTotal combines the four sub-scores using the configured weights
func WeightedTotal(b ScoreBreakdown, cfg ScoringConfig) decimal.Decimal {
	total := b.PriceScore.Mul(decimal.NewFromFloat(cfg.PriceWeight)).
		Add(b.LeadTimeScore.Mul(decimal.NewFromFloat(cfg.LeadTimeWeight))).
		Add(b.ReliabilityScore.Mul(decimal.NewFromFloat(cfg.ReliabilityWeight))).
		Add(b.TrendScore.Mul(decimal.NewFromFloat(cfg.TrendWeight)))
	return total.Round(2)
}

// DeriveReliabilityMetrics builds proxy metrics from supplier age and
// catalog breadth. A stand-in until fulfillment outcomes are tracked.
func DeriveReliabilityMetrics(ageInDays int, offeredProducts int64) ReliabilityMetrics {
	// Age caps out after two years, breadth after fifty products
	ageFactor := decimal.NewFromInt(int64(min(ageInDays, 730))).Div(decimal.NewFromInt(730))
	breadthFactor := decimal.NewFromInt(min(offeredProducts, 50)).Div(decimal.NewFromInt(50))

	base := decimal.NewFromInt(70)
	bonus := decimal.NewFromInt(30)

	onTime := base.Add(bonus.Mul(ageFactor)).Round(2)
	accuracy := base.Add(bonus.Mul(breadthFactor)).Round(2)
	defect := decimal.NewFromInt(10).Sub(decimal.NewFromInt(8).Mul(ageFactor)).Round(2)
	response := base.Add(bonus.Mul(ageFactor.Add(breadthFactor).Div(decimal.NewFromInt(2)))).Round(2)

	return ReliabilityMetrics{
		OrderCount:        offeredProducts,
		OnTimeRate:        onTime,
		OrderAccuracyRate: accuracy,
		DefectRate:        defect,
		ResponseTimeScore: response,
	}
}

func clampScore(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(fullScore) {
		return fullScore
	}
	return v
}
