package sourcing

import (
	"context"
	"time"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOfferRepository is a mock implementation of partner.SupplierProductRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]partner.SupplierProduct, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.SupplierProduct), args.Error(1)
}

func (m *MockOfferRepository) FindBySupplierAndProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID) (*partner.SupplierProduct, error) {
	args := m.Called(ctx, tenantID, supplierID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.SupplierProduct), args.Error(1)
}

func (m *MockOfferRepository) ClearPreferredForProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID)
	return args.Error(0)
}

func (m *MockOfferRepository) Save(ctx context.Context, offer *partner.SupplierProduct) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) SaveBatch(ctx context.Context, offers []*partner.SupplierProduct) error {
	args := m.Called(ctx, offers)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountOfferedProducts(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReceiptRepository is a mock implementation of trade.GoodsReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.GoodsReceipt, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.GoodsReceipt), args.Error(1)
}

func (m *MockReceiptRepository) FindPurchaseLines(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) ([]trade.PurchaseLine, error) {
	args := m.Called(ctx, tenantID, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseLine), args.Error(1)
}

func (m *MockReceiptRepository) FindPurchaseLinesForProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID, from, to time.Time) ([]trade.PurchaseLine, error) {
	args := m.Called(ctx, tenantID, supplierID, productID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseLine), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *trade.GoodsReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

// fakeSuggestionCache is an in-memory sourcing.SuggestionCache that records
// every set and invalidation
type fakeSuggestionCache struct {
	entries       map[string][]sourcing.SupplierSuggestion
	sets          int
	invalidations int
}

func newFakeSuggestionCache() *fakeSuggestionCache {
	return &fakeSuggestionCache{entries: make(map[string][]sourcing.SupplierSuggestion)}
}

func cacheKey(tenantID, productID uuid.UUID) string {
	return tenantID.String() + ":" + productID.String()
}

func (c *fakeSuggestionCache) Get(_ context.Context, tenantID, productID uuid.UUID) ([]sourcing.SupplierSuggestion, bool) {
	entry, ok := c.entries[cacheKey(tenantID, productID)]
	return entry, ok
}

func (c *fakeSuggestionCache) Set(_ context.Context, tenantID, productID uuid.UUID, suggestions []sourcing.SupplierSuggestion) {
	c.entries[cacheKey(tenantID, productID)] = suggestions
	c.sets++
}

func (c *fakeSuggestionCache) Invalidate(_ context.Context, tenantID, productID uuid.UUID) {
	delete(c.entries, cacheKey(tenantID, productID))
	c.invalidations++
}

// fakeAlertSink records alerts and optionally fails every delivery
type fakeAlertSink struct {
	alerts []sourcing.BetterSupplierAlert
	err    error
}

func (s *fakeAlertSink) NotifyBetterSupplier(_ context.Context, alert sourcing.BetterSupplierAlert) error {
	s.alerts = append(s.alerts, alert)
	return s.err
}

func tenantContext() (context.Context, uuid.UUID) {
	tenantID := uuid.New()
	return shared.WithTenant(context.Background(), tenantID), tenantID
}
