package pricing

import (
	"testing"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDuplicationFixture() (*DuplicationService, *MockPriceListRepository, *MockEntryRepository, *MockAssignmentRepository, *MockProductRepository) {
	listRepo := new(MockPriceListRepository)
	entryRepo := new(MockEntryRepository)
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	offerRepo := new(MockOfferRepository)
	txScope := NewNoOpTransactionScope(listRepo, entryRepo, assignmentRepo, offerRepo)
	svc := NewDuplicationService(listRepo, productRepo, txScope, shared.NopAuditLogger{})
	return svc, listRepo, entryRepo, assignmentRepo, productRepo
}

func TestSlugifyCode(t *testing.T) {
	t.Run("should derive codes from display names", func(t *testing.T) {
		assert.Equal(t, "SUMMER_SALE_2026", slugifyCode("Summer Sale 2026"))
		assert.Equal(t, "LISTINO_GENERALE", slugifyCode("Listino Générale!"))
		assert.Equal(t, "PRICE_LIST", slugifyCode("***"))
	})
}

func TestDuplicationService_Duplicate(t *testing.T) {
	setupSource := func(t *testing.T, tenantID uuid.UUID) *pricing.PriceList {
		source := testList(t, tenantID, "SOURCE")
		source.MarkDefault()
		return source
	}

	t.Run("should re-price entries with markup then rounding", func(t *testing.T) {
		svc, listRepo, entryRepo, _, productRepo := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)
		productID := uuid.New()
		entries := []pricing.PriceListEntry{*testEntry(t, tenantID, source.ID, productID, 10.00)}

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).Return(nil)
		entryRepo.On("FindByList", ctx, tenantID, source.ID).Return(entries, nil)
		productRepo.On("FindByIDs", ctx, tenantID, mock.AnythingOfType("[]uuid.UUID")).
			Return([]catalog.Product{}, nil)

		var copied []*pricing.PriceListEntry
		entryRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*pricing.PriceListEntry")).
			Run(func(args mock.Arguments) {
				copied = args.Get(1).([]*pricing.PriceListEntry)
			}).Return(nil)

		markup := decimal.NewFromInt(10)
		result, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Copied List",
			CopyPrices:        true,
			MarkupPercentage:  &markup,
			RoundingStrategy:  "nearest_10_cents",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SourcePriceCount)
		assert.Equal(t, 1, result.CopiedPriceCount)
		assert.Equal(t, 0, result.SkippedPriceCount)
		require.Len(t, copied, 1)
		// 10.00 at +10% lands exactly on the 10-cent grid
		assert.True(t, copied[0].Price.Equal(decimal.NewFromInt(11)), "got %s", copied[0].Price)
	})

	t.Run("should apply a markdown", func(t *testing.T) {
		svc, listRepo, entryRepo, _, productRepo := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)
		productID := uuid.New()
		entries := []pricing.PriceListEntry{*testEntry(t, tenantID, source.ID, productID, 10.00)}

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).Return(nil)
		entryRepo.On("FindByList", ctx, tenantID, source.ID).Return(entries, nil)
		productRepo.On("FindByIDs", ctx, tenantID, mock.AnythingOfType("[]uuid.UUID")).
			Return([]catalog.Product{}, nil)

		var copied []*pricing.PriceListEntry
		entryRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*pricing.PriceListEntry")).
			Run(func(args mock.Arguments) {
				copied = args.Get(1).([]*pricing.PriceListEntry)
			}).Return(nil)

		markdown := decimal.NewFromInt(-15)
		_, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Discounted",
			CopyPrices:        true,
			MarkupPercentage:  &markdown,
		})

		require.NoError(t, err)
		require.Len(t, copied, 1)
		assert.True(t, copied[0].Price.Equal(decimal.NewFromFloat(8.50)), "got %s", copied[0].Price)
	})

	t.Run("should never carry the default flag onto the copy", func(t *testing.T) {
		svc, listRepo, _, _, _ := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)
		require.True(t, source.IsDefault)

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)

		var savedList *pricing.PriceList
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).
			Run(func(args mock.Arguments) {
				savedList = args.Get(1).(*pricing.PriceList)
			}).Return(nil)

		result, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Plain Copy",
		})

		require.NoError(t, err)
		require.NotNil(t, savedList)
		assert.False(t, savedList.IsDefault)
		assert.False(t, result.NewPriceList.IsDefault)
	})

	t.Run("should disambiguate colliding codes with a suffix", func(t *testing.T) {
		svc, listRepo, _, _, _ := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, "COPY").Return(true, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, "COPY_2").Return(true, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, "COPY_3").Return(false, nil)
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).Return(nil)

		result, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Copy",
		})

		require.NoError(t, err)
		assert.Equal(t, "COPY_3", result.NewPriceList.Code)
	})

	t.Run("should persist the copy before its entries", func(t *testing.T) {
		// Entry rows reference the list by foreign key, so the list insert
		// has to land first within the transaction
		svc, listRepo, entryRepo, _, productRepo := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)
		entries := []pricing.PriceListEntry{*testEntry(t, tenantID, source.ID, uuid.New(), 10.00)}

		var calls []string
		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).
			Run(func(mock.Arguments) {
				calls = append(calls, "list_save")
			}).Return(nil)
		entryRepo.On("FindByList", ctx, tenantID, source.ID).Return(entries, nil)
		productRepo.On("FindByIDs", ctx, tenantID, mock.AnythingOfType("[]uuid.UUID")).
			Return([]catalog.Product{}, nil)
		entryRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*pricing.PriceListEntry")).
			Run(func(mock.Arguments) {
				calls = append(calls, "entry_batch")
			}).Return(nil)

		_, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Ordered Copy",
			CopyPrices:        true,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"list_save", "entry_batch"}, calls)
	})

	t.Run("should honor a direction override independent of the type", func(t *testing.T) {
		svc, listRepo, _, _, _ := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)
		require.Equal(t, pricing.PriceListTypeSales, source.Type)

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)

		var savedList *pricing.PriceList
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).
			Run(func(args mock.Arguments) {
				savedList = args.Get(1).(*pricing.PriceList)
			}).Return(nil)

		_, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID: source.ID,
			NewName:           "Internal Cost View",
			NewDirection:      "input",
		})

		require.NoError(t, err)
		require.NotNil(t, savedList)
		assert.Equal(t, pricing.PriceListTypeSales, savedList.Type)
		assert.Equal(t, pricing.DirectionInput, savedList.Direction)
	})

	t.Run("should copy business party assignments on request", func(t *testing.T) {
		svc, listRepo, _, assignmentRepo, _ := newDuplicationFixture()
		ctx, tenantID := tenantContext()
		source := setupSource(t, tenantID)

		assignment := pricing.NewPriceListAssignment(tenantID, source.ID, uuid.New())
		require.NoError(t, assignment.SetGlobalDiscount(decimal.NewFromInt(5)))
		assignment.MarkPrimary()

		listRepo.On("FindByIDForTenant", ctx, tenantID, source.ID).Return(source, nil)
		listRepo.On("ExistsByCode", ctx, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		listRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceList")).Return(nil)
		assignmentRepo.On("FindByList", ctx, tenantID, source.ID).
			Return([]pricing.PriceListBusinessParty{*assignment}, nil)

		var savedAssignment *pricing.PriceListBusinessParty
		assignmentRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceListBusinessParty")).
			Run(func(args mock.Arguments) {
				savedAssignment = args.Get(1).(*pricing.PriceListBusinessParty)
			}).Return(nil)

		result, err := svc.Duplicate(ctx, DuplicatePriceListRequest{
			SourcePriceListID:   source.ID,
			NewName:             "With Parties",
			CopyBusinessParties: true,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.CopiedBusinessPartyCount)
		require.NotNil(t, savedAssignment)
		assert.True(t, savedAssignment.GlobalDiscountPercentage.Equal(decimal.NewFromInt(5)))
		assert.True(t, savedAssignment.IsPrimary)
		assert.NotEqual(t, source.ID, savedAssignment.PriceListID)
	})
}
