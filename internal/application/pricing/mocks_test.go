package pricing

import (
	"context"
	"time"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPriceListRepository is a mock implementation of PriceListRepository
type MockPriceListRepository struct {
	mock.Mock
}

func (m *MockPriceListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pricing.PriceList, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceList), args.Error(1)
}

func (m *MockPriceListRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*pricing.PriceList, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceList), args.Error(1)
}

func (m *MockPriceListRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPriceListRepository) FindApplicable(ctx context.Context, tenantID uuid.UUID, direction pricing.PriceListDirection, asOf time.Time) ([]pricing.PriceList, error) {
	args := m.Called(ctx, tenantID, direction, asOf)
	return args.Get(0).([]pricing.PriceList), args.Error(1)
}

func (m *MockPriceListRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]pricing.PriceList, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]pricing.PriceList), args.Error(1)
}

func (m *MockPriceListRepository) ClearDefault(ctx context.Context, tenantID uuid.UUID, listType pricing.PriceListType) error {
	args := m.Called(ctx, tenantID, listType)
	return args.Error(0)
}

func (m *MockPriceListRepository) Save(ctx context.Context, list *pricing.PriceList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockPriceListRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockEntryRepository is a mock implementation of PriceListEntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByListAndProduct(ctx context.Context, tenantID, priceListID, productID uuid.UUID) (*pricing.PriceListEntry, error) {
	args := m.Called(ctx, tenantID, priceListID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceListEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]pricing.PriceListEntry, error) {
	args := m.Called(ctx, tenantID, priceListID)
	return args.Get(0).([]pricing.PriceListEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByListFiltered(ctx context.Context, tenantID, priceListID uuid.UUID, filter pricing.EntryFilter) ([]pricing.PriceListEntry, error) {
	args := m.Called(ctx, tenantID, priceListID, filter)
	return args.Get(0).([]pricing.PriceListEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByProductInLists(ctx context.Context, tenantID, productID uuid.UUID, priceListIDs []uuid.UUID) ([]pricing.PriceListEntry, error) {
	args := m.Called(ctx, tenantID, productID, priceListIDs)
	return args.Get(0).([]pricing.PriceListEntry), args.Error(1)
}

func (m *MockEntryRepository) CountByList(ctx context.Context, tenantID, priceListID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, priceListID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *pricing.PriceListEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveBatch(ctx context.Context, entries []*pricing.PriceListEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindActiveByParty(ctx context.Context, tenantID, businessPartyID uuid.UUID) ([]pricing.PriceListBusinessParty, error) {
	args := m.Called(ctx, tenantID, businessPartyID)
	return args.Get(0).([]pricing.PriceListBusinessParty), args.Error(1)
}

func (m *MockAssignmentRepository) FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]pricing.PriceListBusinessParty, error) {
	args := m.Called(ctx, tenantID, priceListID)
	return args.Get(0).([]pricing.PriceListBusinessParty), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *pricing.PriceListBusinessParty) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockPartyRepository is a mock implementation of BusinessPartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.BusinessParty, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.BusinessParty), args.Error(1)
}

func (m *MockPartyRepository) Save(ctx context.Context, party *partner.BusinessParty) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
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
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountOfferedProducts(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOfferRepository is a mock implementation of SupplierProductRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]partner.SupplierProduct, error) {
	args := m.Called(ctx, tenantID, productID)
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

// MockReceiptRepository is a mock implementation of GoodsReceiptRepository
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
	return args.Get(0).([]trade.PurchaseLine), args.Error(1)
}

func (m *MockReceiptRepository) FindPurchaseLinesForProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID, from, to time.Time) ([]trade.PurchaseLine, error) {
	args := m.Called(ctx, tenantID, supplierID, productID, from, to)
	return args.Get(0).([]trade.PurchaseLine), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *trade.GoodsReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

// tenantContext returns a context carrying a fresh tenant ID
func tenantContext() (context.Context, uuid.UUID) {
	tenantID := uuid.New()
	return shared.WithTenant(context.Background(), tenantID), tenantID
}

func notFoundErr() error {
	return shared.ErrNotFound
}
