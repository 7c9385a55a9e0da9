package sourcing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SuggestionService ranks the suppliers offering a product by a weighted
// multi-factor score and manages the preferred-supplier switch
type SuggestionService struct {
	offerRepo    partner.SupplierProductRepository
	supplierRepo partner.SupplierRepository
	receiptRepo  trade.GoodsReceiptRepository
	cache        sourcing.SuggestionCache
	alerts       sourcing.AlertSink
	txScope      TransactionScope
	audit        shared.AuditLogger
	cfg          sourcing.ScoringConfig
	logger       *zap.Logger
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(
	offerRepo partner.SupplierProductRepository,
	supplierRepo partner.SupplierRepository,
	receiptRepo trade.GoodsReceiptRepository,
	cache sourcing.SuggestionCache,
	alerts sourcing.AlertSink,
	txScope TransactionScope,
	audit shared.AuditLogger,
	cfg sourcing.ScoringConfig,
	logger *zap.Logger,
) (*SuggestionService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = sourcing.NopAlertSink{}
	}
	return &SuggestionService{
		offerRepo:    offerRepo,
		supplierRepo: supplierRepo,
		receiptRepo:  receiptRepo,
		cache:        cache,
		alerts:       alerts,
		txScope:      txScope,
		audit:        audit,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// CalculateSuggestions scores every supplier offering the product. Returns
// an empty slice when fewer than two suppliers offer it; a single offer
// gives no basis for comparison.
func (s *SuggestionService) CalculateSuggestions(ctx context.Context, productID uuid.UUID) ([]sourcing.SupplierSuggestion, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, tenantID, productID); ok {
		return cached, nil
	}

	offers, err := s.offerRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if len(offers) < 2 {
		return []sourcing.SupplierSuggestion{}, nil
	}

	supplierIDs := make([]uuid.UUID, 0, len(offers))
	allCosts := make([]decimal.Decimal, 0, len(offers))
	allLeadTimes := make([]*int, 0, len(offers))
	for i := range offers {
		supplierIDs = append(supplierIDs, offers[i].SupplierID)
		allCosts = append(allCosts, offers[i].UnitCost)
		allLeadTimes = append(allLeadTimes, offers[i].LeadTimeDays)
	}

	suppliers, err := s.supplierRepo.FindByIDs(ctx, tenantID, supplierIDs)
	if err != nil {
		return nil, err
	}
	suppliersByID := make(map[uuid.UUID]*partner.Supplier, len(suppliers))
	for i := range suppliers {
		suppliersByID[suppliers[i].ID] = &suppliers[i]
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -s.cfg.TrendWindowDays)
	suggestions := make([]sourcing.SupplierSuggestion, 0, len(offers))
	for i := range offers {
		offer := &offers[i]
		supplier := suppliersByID[offer.SupplierID]
		if supplier == nil {
			continue
		}

		breakdown, err := s.score(ctx, tenantID, offer, supplier, allCosts, allLeadTimes, windowStart, now)
		if err != nil {
			return nil, err
		}
		total := sourcing.WeightedTotal(breakdown, s.cfg)

		suggestions = append(suggestions, sourcing.SupplierSuggestion{
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			ProductID:    productID,
			UnitCost:     offer.UnitCost,
			LeadTimeDays: offer.LeadTimeDays,
			IsPreferred:  offer.IsPreferred,
			TotalScore:   total,
			Confidence:   s.cfg.ConfidenceFor(total),
			Breakdown:    breakdown,
			CalculatedAt: now,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].TotalScore.GreaterThan(suggestions[j].TotalScore)
	})

	s.cache.Set(ctx, tenantID, productID, suggestions)
	s.maybeAlert(ctx, tenantID, productID, suggestions)
	return suggestions, nil
}

// GetSupplierSuggestions returns the scoring run with the top recommendation
// and the savings against the current preferred supplier
func (s *SuggestionService) GetSupplierSuggestions(ctx context.Context, productID uuid.UUID) (*SupplierSuggestionsResponse, error) {
	suggestions, err := s.CalculateSuggestions(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &SupplierSuggestionsResponse{
		ProductID:    productID,
		Suggestions:  suggestions,
		CalculatedAt: time.Now(),
	}
	if len(suggestions) == 0 {
		return resp, nil
	}

	top := suggestions[0]
	resp.TopRecommendation = &top

	for i := range suggestions {
		if !suggestions[i].IsPreferred || suggestions[i].SupplierID == top.SupplierID {
			continue
		}
		savings := suggestions[i].UnitCost.Sub(top.UnitCost)
		if savings.IsPositive() {
			resp.PotentialSavings = &savings
		}
		break
	}
	return resp, nil
}

// GetPurchasePriceComparison lists every supplier's offer for the product,
// cheapest first
func (s *SuggestionService) GetPurchasePriceComparison(ctx context.Context, productID uuid.UUID) ([]PriceComparisonRow, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	offers, err := s.offerRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []PriceComparisonRow{}, nil
	}

	supplierIDs := make([]uuid.UUID, 0, len(offers))
	for i := range offers {
		supplierIDs = append(supplierIDs, offers[i].SupplierID)
	}
	suppliers, err := s.supplierRepo.FindByIDs(ctx, tenantID, supplierIDs)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[uuid.UUID]string, len(suppliers))
	for i := range suppliers {
		namesByID[suppliers[i].ID] = suppliers[i].Name
	}

	rows := make([]PriceComparisonRow, 0, len(offers))
	for i := range offers {
		rows = append(rows, PriceComparisonRow{
			SupplierID:   offers[i].SupplierID,
			SupplierName: namesByID[offers[i].SupplierID],
			UnitCost:     offers[i].UnitCost,
			LeadTimeDays: offers[i].LeadTimeDays,
			IsPreferred:  offers[i].IsPreferred,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].UnitCost.LessThan(rows[j].UnitCost)
	})
	return rows, nil
}

// ApplySuggestedSupplier switches the product's preferred supplier. The
// previous flag is cleared and the new one set in a single transaction, and
// the suggestion cache entry is dropped before returning.
func (s *SuggestionService) ApplySuggestedSupplier(ctx context.Context, req ApplySuggestedSupplierRequest) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		offer, err := repos.OfferRepo().FindBySupplierAndProduct(ctx, tenantID, req.SupplierID, req.ProductID)
		if err != nil {
			return err
		}
		if err := repos.OfferRepo().ClearPreferredForProduct(ctx, tenantID, req.ProductID); err != nil {
			return err
		}
		offer.MarkPreferred()
		return repos.OfferRepo().Save(ctx, offer)
	})
	if err != nil {
		return err
	}

	// Invalidate synchronously before returning so no caller can read a
	// recommendation computed against the old preferred flag
	s.cache.Invalidate(ctx, tenantID, req.ProductID)

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "supplier_product",
		EntityID:   req.ProductID,
		Action:     shared.AuditActionUpdate,
		Actor:      req.Actor,
		After: map[string]any{
			"product_id":  req.ProductID,
			"supplier_id": req.SupplierID,
			"reason":      req.Reason,
		},
	})
	return nil
}

func (s *SuggestionService) score(
	ctx context.Context,
	tenantID uuid.UUID,
	offer *partner.SupplierProduct,
	supplier *partner.Supplier,
	allCosts []decimal.Decimal,
	allLeadTimes []*int,
	windowStart, now time.Time,
) (sourcing.ScoreBreakdown, error) {
	priceScore := sourcing.NormalizePriceScore(offer.UnitCost, allCosts)
	leadScore := sourcing.NormalizeLeadTimeScore(offer.LeadTimeDays, allLeadTimes)

	offeredCount, err := s.supplierRepo.CountOfferedProducts(ctx, tenantID, supplier.ID)
	if err != nil {
		return sourcing.ScoreBreakdown{}, err
	}
	metrics := sourcing.DeriveReliabilityMetrics(supplier.AgeInDays(now), offeredCount)
	reliabilityScore := sourcing.ReliabilityScore(metrics)

	lines, err := s.receiptRepo.FindPurchaseLinesForProduct(ctx, tenantID, supplier.ID, offer.ProductID, windowStart, now)
	if err != nil {
		return sourcing.ScoreBreakdown{}, err
	}
	trendPrices := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		trendPrices = append(trendPrices, line.UnitPrice)
	}
	trendScore := sourcing.TrendScore(trendPrices, s.cfg.TrendMinDataPoints)

	return sourcing.ScoreBreakdown{
		PriceScore:       priceScore,
		LeadTimeScore:    leadScore,
		ReliabilityScore: reliabilityScore,
		TrendScore:       trendScore,
		Explanations: []string{
			fmt.Sprintf("price score %s against %d competing offers", priceScore.StringFixed(0), len(allCosts)),
			fmt.Sprintf("lead time score %s", leadScore.StringFixed(0)),
			fmt.Sprintf("reliability score %s from %d offered products", reliabilityScore.StringFixed(0), offeredCount),
			fmt.Sprintf("trend score %s over %d purchase rows", trendScore.StringFixed(0), len(lines)),
		},
	}, nil
}

// maybeAlert raises a best-effort notification when the top suggestion beats
// the current preferred supplier by more than the configured delta. Failures
// are logged and swallowed.
func (s *SuggestionService) maybeAlert(ctx context.Context, tenantID, productID uuid.UUID, suggestions []sourcing.SupplierSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	top := suggestions[0]
	if top.IsPreferred {
		return
	}

	for i := range suggestions {
		if !suggestions[i].IsPreferred {
			continue
		}
		delta, _ := top.TotalScore.Sub(suggestions[i].TotalScore).Float64()
		if delta <= s.cfg.AlertScoreDelta {
			return
		}
		alert := sourcing.BetterSupplierAlert{
			TenantID:            tenantID,
			ProductID:           productID,
			CurrentSupplierID:   suggestions[i].SupplierID,
			SuggestedSupplierID: top.SupplierID,
			ScoreDelta:          delta,
		}
		if err := s.alerts.NotifyBetterSupplier(ctx, alert); err != nil {
			s.logger.Warn("better supplier alert failed",
				zap.String("product_id", productID.String()),
				zap.String("supplier_id", top.SupplierID.String()),
				zap.Error(err))
		}
		return
	}
}
