package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceList(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates price list with valid inputs", func(t *testing.T) {
		list, err := NewPriceList(tenantID, "retail-2026", "Retail 2026", PriceListTypeSales, DirectionOutput)
		require.NoError(t, err)
		require.NotNil(t, list)

		assert.Equal(t, tenantID, list.TenantID)
		assert.Equal(t, "RETAIL-2026", list.Code)
		assert.Equal(t, PriceListStatusActive, list.Status)
		assert.False(t, list.IsDefault)
		assert.False(t, list.IsGeneratedFromDocuments)
		assert.Equal(t, 1, list.GetVersion())
	})

	t.Run("publishes created event", func(t *testing.T) {
		list, err := NewSalesPriceList(tenantID, "PL-1", "List")
		require.NoError(t, err)

		events := list.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePriceListCreated, events[0].EventType())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewPriceList(tenantID, "", "List", PriceListTypeSales, DirectionOutput)
		require.Error(t, err)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewPriceList(tenantID, "PL-1", "List", "rental", DirectionOutput)
		require.Error(t, err)
	})

	t.Run("fails with invalid direction", func(t *testing.T) {
		_, err := NewPriceList(tenantID, "PL-1", "List", PriceListTypeSales, "sideways")
		require.Error(t, err)
	})
}

func TestPriceListValidityWindow(t *testing.T) {
	tenantID := uuid.New()
	list, err := NewSalesPriceList(tenantID, "PL-1", "List")
	require.NoError(t, err)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("rejects inverted window", func(t *testing.T) {
		err := list.SetValidityWindow(&to, &from)
		require.Error(t, err)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		require.NoError(t, list.SetValidityWindow(&from, &to))
		assert.True(t, list.IsValidAt(from))
		assert.True(t, list.IsValidAt(to))
		assert.True(t, list.IsValidAt(from.AddDate(0, 6, 0)))
		assert.False(t, list.IsValidAt(from.AddDate(0, 0, -1)))
		assert.False(t, list.IsValidAt(to.AddDate(0, 0, 1)))
	})

	t.Run("open bounds always match", func(t *testing.T) {
		require.NoError(t, list.SetValidityWindow(nil, nil))
		assert.True(t, list.IsValidAt(time.Now().AddDate(-10, 0, 0)))
		assert.True(t, list.IsValidAt(time.Now().AddDate(10, 0, 0)))
	})
}

func TestPriceListStatusTransitions(t *testing.T) {
	tenantID := uuid.New()

	t.Run("suspend and reactivate", func(t *testing.T) {
		list, _ := NewSalesPriceList(tenantID, "PL-1", "List")
		require.NoError(t, list.Suspend())
		assert.False(t, list.IsActive())
		assert.False(t, list.IsApplicableAt(time.Now()))

		require.NoError(t, list.Activate())
		assert.True(t, list.IsActive())
	})

	t.Run("archived list cannot be reactivated", func(t *testing.T) {
		list, _ := NewSalesPriceList(tenantID, "PL-2", "List")
		require.NoError(t, list.Archive())
		require.Error(t, list.Activate())
		require.Error(t, list.Suspend())
	})

	t.Run("double suspend fails", func(t *testing.T) {
		list, _ := NewSalesPriceList(tenantID, "PL-3", "List")
		require.NoError(t, list.Suspend())
		require.Error(t, list.Suspend())
	})
}

func TestPriceListGenerationMetadata(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("round trips metadata", func(t *testing.T) {
		list, _ := NewPurchasePriceList(tenantID, "PL-GEN", "Generated")
		meta := GenerationMetadata{
			Strategy:      "weighted_average",
			Rounding:      "nearest_10_cents",
			MarkupPercent: decimal.NewFromInt(5),
			SupplierID:    supplierID,
			FromDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ToDate:        time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			GeneratedAt:   time.Now().UTC(),
		}
		require.NoError(t, list.MarkGenerated(meta))
		assert.True(t, list.IsGeneratedFromDocuments)

		parsed, err := list.GetGenerationMetadata()
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, "weighted_average", parsed.Strategy)
		assert.Equal(t, supplierID, parsed.SupplierID)
		assert.True(t, parsed.MarkupPercent.Equal(decimal.NewFromInt(5)))
	})

	t.Run("returns nil for non-generated list", func(t *testing.T) {
		list, _ := NewSalesPriceList(tenantID, "PL-PLAIN", "Plain")
		meta, err := list.GetGenerationMetadata()
		require.NoError(t, err)
		assert.Nil(t, meta)
	})
}

func TestPriceListEntry(t *testing.T) {
	tenantID := uuid.New()
	listID := uuid.New()
	productID := uuid.New()

	t.Run("creates entry with valid price", func(t *testing.T) {
		entry, err := NewPriceListEntry(tenantID, listID, productID, decimal.NewFromFloat(19.99), "")
		require.NoError(t, err)
		assert.Equal(t, listID, entry.PriceListID)
		assert.Equal(t, productID, entry.ProductID)
		assert.Equal(t, "EUR", string(entry.Currency))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewPriceListEntry(tenantID, listID, productID, decimal.NewFromInt(-1), "")
		require.Error(t, err)
	})

	t.Run("rejects price above cap", func(t *testing.T) {
		_, err := NewPriceListEntry(tenantID, listID, productID, MaxEntryPrice.Add(decimal.NewFromInt(1)), "")
		require.Error(t, err)
	})

	t.Run("price update raises event", func(t *testing.T) {
		entry, _ := NewPriceListEntry(tenantID, listID, productID, decimal.NewFromInt(10), "")
		require.NoError(t, entry.UpdatePrice(decimal.NewFromInt(12)))

		events := entry.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*EntryPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, changed.OldPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, changed.NewPrice.Equal(decimal.NewFromInt(12)))
	})

	t.Run("rejects negative lead time", func(t *testing.T) {
		entry, _ := NewPriceListEntry(tenantID, listID, productID, decimal.NewFromInt(10), "")
		require.Error(t, entry.SetLeadTime(-1))
	})
}

func TestPriceListAssignment(t *testing.T) {
	tenantID := uuid.New()

	t.Run("discount bounds are enforced", func(t *testing.T) {
		a := NewPriceListAssignment(tenantID, uuid.New(), uuid.New())
		require.NoError(t, a.SetGlobalDiscount(decimal.NewFromInt(100)))
		require.NoError(t, a.SetGlobalDiscount(decimal.Zero))
		require.Error(t, a.SetGlobalDiscount(decimal.NewFromInt(101)))
		require.Error(t, a.SetGlobalDiscount(decimal.NewFromInt(-1)))
	})

	t.Run("removal is idempotent only once", func(t *testing.T) {
		a := NewPriceListAssignment(tenantID, uuid.New(), uuid.New())
		require.True(t, a.IsActiveAssignment())
		require.NoError(t, a.Remove())
		assert.False(t, a.IsActiveAssignment())
		require.Error(t, a.Remove())
	})
}
