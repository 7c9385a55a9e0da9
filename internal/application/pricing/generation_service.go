package pricing

import (
	"context"
	"time"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/pricing/strategy"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerationService builds purchase price lists from confirmed goods-receipt
// history and reconciles previously generated lists against a fresh window
type GenerationService struct {
	listRepo     pricing.PriceListRepository
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	receiptRepo  trade.GoodsReceiptRepository
	txScope      TransactionScope
	audit        shared.AuditLogger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	listRepo pricing.PriceListRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	receiptRepo trade.GoodsReceiptRepository,
	txScope TransactionScope,
	audit shared.AuditLogger,
) *GenerationService {
	return &GenerationService{
		listRepo:     listRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		receiptRepo:  receiptRepo,
		txScope:      txScope,
		audit:        audit,
	}
}

// aggregatedPrice is one product's aggregated purchase price with the total
// quantity seen in the window
type aggregatedPrice struct {
	price         decimal.Decimal
	totalQuantity decimal.Decimal
}

// GenerateFromPurchases builds a new purchase price list from the supplier's
// document rows in the date range
func (s *GenerationService) GenerateFromPurchases(ctx context.Context, req GenerateFromPurchasesRequest) (*PriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	strat, rounding, err := parseGenerationParams(req.Strategy, req.RoundingStrategy, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	aggregated, err := s.aggregate(ctx, tenantID, supplier.ID, req.FromDate, req.ToDate, strat, req.MarkupPercentage, rounding)
	if err != nil {
		return nil, err
	}

	aggregated, err = s.applyPostFilters(ctx, tenantID, aggregated, req.CategoryIDs, req.MinimumQuantity, req.OnlyActiveProducts)
	if err != nil {
		return nil, err
	}

	code := req.Code
	if code == "" {
		code = slugifyCode(req.Name)
	}
	exists, err := s.listRepo.ExistsByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Price list with this code already exists")
	}

	list, err := pricing.NewPurchasePriceList(tenantID, code, req.Name)
	if err != nil {
		return nil, err
	}

	markup := decimal.Zero
	if req.MarkupPercentage != nil {
		markup = *req.MarkupPercentage
	}
	meta := pricing.GenerationMetadata{
		Strategy:      strat.Method().String(),
		Rounding:      rounding.String(),
		MarkupPercent: markup,
		SupplierID:    supplier.ID,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		Actor:         req.Actor,
		GeneratedAt:   time.Now(),
	}
	if err := list.MarkGenerated(meta); err != nil {
		return nil, err
	}

	var entryCount int
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PriceListRepo().Save(ctx, list); err != nil {
			return err
		}

		entries := make([]*pricing.PriceListEntry, 0, len(aggregated))
		for productID, agg := range aggregated {
			entry, err := pricing.NewPriceListEntry(tenantID, list.ID, productID, agg.price, list.Currency)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		if len(entries) > 0 {
			if err := repos.EntryRepo().SaveBatch(ctx, entries); err != nil {
				return err
			}
		}
		entryCount = len(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionCreate,
		Actor:      req.Actor,
		After:      list,
	})

	resp := ToPriceListResponse(list, int64(entryCount))
	return &resp, nil
}

// UpdateFromPurchases reconciles an existing generated list against the
// supplier's purchase history in the window. Matching products always get
// their price refreshed; adding new and removing obsolete products are
// opt-in.
func (s *GenerationService) UpdateFromPurchases(ctx context.Context, req UpdateFromPurchasesRequest) (*UpdateFromPurchasesResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, req.PriceListID)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	strat, rounding, err := parseGenerationParams(req.Strategy, req.RoundingStrategy, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	aggregated, err := s.aggregate(ctx, tenantID, supplier.ID, req.FromDate, req.ToDate, strat, req.MarkupPercentage, rounding)
	if err != nil {
		return nil, err
	}

	resp := &UpdateFromPurchasesResponse{}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.EntryRepo().FindByList(ctx, tenantID, list.ID)
		if err != nil {
			return err
		}
		existingByProduct := make(map[uuid.UUID]*pricing.PriceListEntry, len(existing))
		for i := range existing {
			existingByProduct[existing[i].ProductID] = &existing[i]
		}

		var toSave []*pricing.PriceListEntry
		for productID, agg := range aggregated {
			if entry, ok := existingByProduct[productID]; ok {
				if entry.Price.Equal(agg.price) {
					continue
				}
				if err := entry.UpdatePrice(agg.price); err != nil {
					return err
				}
				toSave = append(toSave, entry)
				resp.PricesUpdated++
				continue
			}
			if !req.AddNewProducts {
				continue
			}
			entry, err := pricing.NewPriceListEntry(tenantID, list.ID, productID, agg.price, list.Currency)
			if err != nil {
				return err
			}
			toSave = append(toSave, entry)
			resp.PricesAdded++
		}
		if len(toSave) > 0 {
			if err := repos.EntryRepo().SaveBatch(ctx, toSave); err != nil {
				return err
			}
		}

		if req.RemoveObsoleteProducts {
			for productID, entry := range existingByProduct {
				if _, stillSeen := aggregated[productID]; stillSeen {
					continue
				}
				if err := repos.EntryRepo().Delete(ctx, tenantID, entry.ID); err != nil {
					return err
				}
				resp.PricesRemoved++
			}
		}

		markup := decimal.Zero
		if req.MarkupPercentage != nil {
			markup = *req.MarkupPercentage
		}
		meta := pricing.GenerationMetadata{
			Strategy:      strat.Method().String(),
			Rounding:      rounding.String(),
			MarkupPercent: markup,
			SupplierID:    supplier.ID,
			FromDate:      req.FromDate,
			ToDate:        req.ToDate,
			Actor:         req.Actor,
			GeneratedAt:   time.Now(),
		}
		if err := list.MarkGenerated(meta); err != nil {
			return err
		}
		list.RecordSync(req.Actor, time.Now())
		return repos.PriceListRepo().Save(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionUpdate,
		Actor:      req.Actor,
		After:      list,
	})
	return resp, nil
}

// aggregate groups the supplier's purchase lines by product and applies the
// strategy, markup, and rounding to each group
func (s *GenerationService) aggregate(
	ctx context.Context,
	tenantID, supplierID uuid.UUID,
	from, to time.Time,
	strat strategy.AggregationStrategy,
	markup *decimal.Decimal,
	rounding pricing.RoundingStrategy,
) (map[uuid.UUID]aggregatedPrice, error) {
	lines, err := s.receiptRepo.FindPurchaseLines(ctx, tenantID, supplierID, from, to)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]strategy.PurchaseSample)
	for _, line := range lines {
		grouped[line.ProductID] = append(grouped[line.ProductID], strategy.PurchaseSample{
			ProductID:    line.ProductID,
			DocumentDate: line.DocumentDate,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
		})
	}

	result := make(map[uuid.UUID]aggregatedPrice, len(grouped))
	for productID, samples := range grouped {
		raw := strat.Aggregate(samples)
		totalQuantity := decimal.Zero
		for _, sample := range samples {
			totalQuantity = totalQuantity.Add(sample.Quantity)
		}
		result[productID] = aggregatedPrice{
			price:         pricing.ApplyMarkupAndRound(raw, markup, rounding),
			totalQuantity: totalQuantity,
		}
	}
	return result, nil
}

// applyPostFilters drops aggregated products that fail the category,
// minimum-quantity, or active-only criteria
func (s *GenerationService) applyPostFilters(
	ctx context.Context,
	tenantID uuid.UUID,
	aggregated map[uuid.UUID]aggregatedPrice,
	categoryIDs []uuid.UUID,
	minimumQuantity *decimal.Decimal,
	onlyActive bool,
) (map[uuid.UUID]aggregatedPrice, error) {
	if len(categoryIDs) == 0 && minimumQuantity == nil && !onlyActive {
		return aggregated, nil
	}

	var products map[uuid.UUID]*catalog.Product
	if len(categoryIDs) > 0 || onlyActive {
		ids := make([]uuid.UUID, 0, len(aggregated))
		for id := range aggregated {
			ids = append(ids, id)
		}
		found, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		products = make(map[uuid.UUID]*catalog.Product, len(found))
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	allowedCategories := toSet(categoryIDs)
	filtered := make(map[uuid.UUID]aggregatedPrice, len(aggregated))
	for productID, agg := range aggregated {
		if minimumQuantity != nil && agg.totalQuantity.LessThan(*minimumQuantity) {
			continue
		}
		if products != nil {
			product := products[productID]
			if product == nil {
				continue
			}
			if onlyActive && !product.IsActive() {
				continue
			}
			if len(allowedCategories) > 0 {
				if product.CategoryID == nil {
					continue
				}
				if _, ok := allowedCategories[*product.CategoryID]; !ok {
					continue
				}
			}
		}
		filtered[productID] = agg
	}
	return filtered, nil
}

func parseGenerationParams(strategyCode, roundingCode string, from, to time.Time) (strategy.AggregationStrategy, pricing.RoundingStrategy, error) {
	if to.Before(from) {
		return nil, "", shared.NewDomainError("INVALID_DATE_RANGE", "End date must not precede start date")
	}
	strat, err := strategy.ForMethod(strategy.AggregationMethod(strategyCode))
	if err != nil {
		return nil, "", err
	}
	rounding, err := pricing.ParseRoundingStrategy(roundingCode)
	if err != nil {
		return nil, "", err
	}
	return strat, rounding, nil
}
