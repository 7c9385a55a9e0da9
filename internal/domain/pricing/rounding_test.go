package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMarkup(t *testing.T) {
	t.Run("applies positive markup", func(t *testing.T) {
		result := ApplyMarkup(decimal.NewFromInt(100), decimal.NewFromInt(10))
		assert.True(t, result.Equal(decimal.NewFromInt(110)), "got %s", result)
	})

	t.Run("applies negative markup", func(t *testing.T) {
		result := ApplyMarkup(decimal.NewFromInt(10), decimal.NewFromInt(-15))
		assert.True(t, result.Equal(decimal.NewFromFloat(8.50)), "got %s", result)
	})

	t.Run("zero markup leaves price unchanged", func(t *testing.T) {
		result := ApplyMarkup(decimal.NewFromFloat(12.34), decimal.Zero)
		assert.True(t, result.Equal(decimal.NewFromFloat(12.34)), "got %s", result)
	})
}

func TestRound(t *testing.T) {
	price := decimal.NewFromFloat(10.37)

	tests := []struct {
		name     string
		strategy RoundingStrategy
		input    decimal.Decimal
		want     decimal.Decimal
	}{
		{"nearest 5 cents", RoundingNearest5Cents, price, decimal.NewFromFloat(10.35)},
		{"nearest 10 cents", RoundingNearest10Cents, price, decimal.NewFromFloat(10.40)},
		{"nearest 50 cents", RoundingNearest50Cents, price, decimal.NewFromFloat(10.50)},
		{"nearest euro", RoundingNearestEuro, price, decimal.NewFromInt(10)},
		{"nearest 99 cents", RoundingNearest99Cents, price, decimal.NewFromFloat(10.99)},
		{"99 cents on whole price", RoundingNearest99Cents, decimal.NewFromInt(10), decimal.NewFromFloat(10.99)},
		{"none keeps cent precision", RoundingNone, decimal.NewFromFloat(10.375), decimal.NewFromFloat(10.38)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.input, tt.strategy)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestApplyMarkupAndRound(t *testing.T) {
	t.Run("markup then rounding lands on the grid without artifact", func(t *testing.T) {
		markup := decimal.NewFromInt(10)
		got := ApplyMarkupAndRound(decimal.NewFromInt(10), &markup, RoundingNearest10Cents)
		assert.True(t, got.Equal(decimal.NewFromInt(11)), "want 11.00, got %s", got)
	})

	t.Run("nil markup only rounds", func(t *testing.T) {
		got := ApplyMarkupAndRound(decimal.NewFromFloat(10.37), nil, RoundingNearest50Cents)
		assert.True(t, got.Equal(decimal.NewFromFloat(10.50)), "got %s", got)
	})

	t.Run("markdown then rounding", func(t *testing.T) {
		markup := decimal.NewFromInt(-15)
		got := ApplyMarkupAndRound(decimal.NewFromInt(10), &markup, RoundingNone)
		assert.True(t, got.Equal(decimal.NewFromFloat(8.50)), "got %s", got)
	})
}

func TestParseRoundingStrategy(t *testing.T) {
	t.Run("parses known strategies", func(t *testing.T) {
		for _, s := range []string{"none", "nearest_5_cents", "nearest_10_cents", "nearest_50_cents", "nearest_euro", "nearest_99_cents"} {
			strategy, err := ParseRoundingStrategy(s)
			require.NoError(t, err)
			assert.True(t, strategy.IsValid())
		}
	})

	t.Run("empty string maps to none", func(t *testing.T) {
		strategy, err := ParseRoundingStrategy("")
		require.NoError(t, err)
		assert.Equal(t, RoundingNone, strategy)
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		_, err := ParseRoundingStrategy("nearest_42_cents")
		require.Error(t, err)
	})
}
