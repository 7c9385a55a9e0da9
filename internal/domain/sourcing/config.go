package sourcing

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ScoringConfig carries the weights and thresholds of the suggestion engine.
// Injected at construction so the engine stays pure and testable.
type ScoringConfig struct {
	PriceWeight       float64 `mapstructure:"price_weight" validate:"gte=0,lte=1"`
	LeadTimeWeight    float64 `mapstructure:"lead_time_weight" validate:"gte=0,lte=1"`
	ReliabilityWeight float64 `mapstructure:"reliability_weight" validate:"gte=0,lte=1"`
	TrendWeight       float64 `mapstructure:"trend_weight" validate:"gte=0,lte=1"`

	// Total score boundaries separating the confidence bands
	MediumConfidenceThreshold float64 `mapstructure:"medium_confidence_threshold" validate:"gte=0,lte=100"`
	HighConfidenceThreshold   float64 `mapstructure:"high_confidence_threshold" validate:"gte=0,lte=100,gtefield=MediumConfidenceThreshold"`

	TrendWindowDays    int `mapstructure:"trend_window_days" validate:"gt=0"`
	TrendMinDataPoints int `mapstructure:"trend_min_data_points" validate:"gte=2"`

	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`

	// Minimum score delta over the current preferred supplier before the
	// alert sink is notified
	AlertScoreDelta float64 `mapstructure:"alert_score_delta" validate:"gte=0"`
}

// DefaultScoringConfig returns the stock weights and thresholds
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PriceWeight:               0.40,
		LeadTimeWeight:            0.25,
		ReliabilityWeight:         0.20,
		TrendWeight:               0.15,
		MediumConfidenceThreshold: 50,
		HighConfidenceThreshold:   75,
		TrendWindowDays:           180,
		TrendMinDataPoints:        3,
		CacheTTL:                  5 * time.Minute,
		AlertScoreDelta:           10,
	}
}

// Validate checks the configuration for consistency
func (c ScoringConfig) Validate() error {
	return validator.New().Struct(c)
}

// ConfidenceFor classifies a total score into a band
func (c ScoringConfig) ConfidenceFor(totalScore decimal.Decimal) ConfidenceBand {
	switch {
	case totalScore.GreaterThanOrEqual(decimal.NewFromFloat(c.HighConfidenceThreshold)):
		return ConfidenceHigh
	case totalScore.GreaterThanOrEqual(decimal.NewFromFloat(c.MediumConfidenceThreshold)):
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
