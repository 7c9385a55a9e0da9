package pricing

import (
	"context"
	"time"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/erp/pricing/internal/domain/trade"
	"github.com/google/uuid"
)

// ResolutionService walks the price resolution cascade.
//
// Precedence: ParameterList, then DocumentList, then PartyList, then
// GeneralList, then the product default price. The first tier whose selected
// list exists wins outright. A selected list lacking an entry for the product
// resolves to the terminal default price; it never falls through to the next
// tier. This one-shot override is deliberate.
type ResolutionService struct {
	listRepo    pricing.PriceListRepository
	entryRepo   pricing.PriceListEntryRepository
	productRepo catalog.ProductRepository
	partyRepo   partner.BusinessPartyRepository
	receiptRepo trade.GoodsReceiptRepository
}

// NewResolutionService creates a new ResolutionService
func NewResolutionService(
	listRepo pricing.PriceListRepository,
	entryRepo pricing.PriceListEntryRepository,
	productRepo catalog.ProductRepository,
	partyRepo partner.BusinessPartyRepository,
	receiptRepo trade.GoodsReceiptRepository,
) *ResolutionService {
	return &ResolutionService{
		listRepo:    listRepo,
		entryRepo:   entryRepo,
		productRepo: productRepo,
		partyRepo:   partyRepo,
		receiptRepo: receiptRepo,
	}
}

// ResolvePrice resolves a product price through the cascade
func (s *ResolutionService) ResolvePrice(ctx context.Context, req ResolvePriceRequest) (*ResolvedPriceResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	direction := pricing.DirectionOutput
	if req.Direction != "" {
		direction = pricing.PriceListDirection(req.Direction)
	}
	asOf := time.Now()
	if req.AsOfDate != nil {
		asOf = *req.AsOfDate
	}

	list, source, err := s.selectList(ctx, tenantID, req, direction, asOf)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return s.defaultPrice(product), nil
	}

	entry, err := s.entryRepo.FindByListAndProduct(ctx, tenantID, list.ID, req.ProductID)
	if err != nil {
		if isNotFound(err) {
			// Chosen list overrides even on a miss; resolve to the terminal
			// fallback instead of trying lower tiers
			return s.defaultPrice(product), nil
		}
		return nil, err
	}

	return &ResolvedPriceResponse{
		ProductID:     product.ID,
		Price:         entry.Price,
		Currency:      string(entry.Currency),
		Source:        source,
		PriceListID:   &list.ID,
		PriceListName: &list.Name,
	}, nil
}

// selectList picks the winning list for the request, or nil when no tier
// above the terminal fallback applies
func (s *ResolutionService) selectList(ctx context.Context, tenantID uuid.UUID, req ResolvePriceRequest, direction pricing.PriceListDirection, asOf time.Time) (*pricing.PriceList, PriceSource, error) {
	// Tier 1: explicit parameter
	if req.ForcedPriceListID != nil {
		list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, *req.ForcedPriceListID)
		if err == nil {
			return list, SourceParameterList, nil
		}
		if !isNotFound(err) {
			return nil, "", err
		}
	}

	// Tier 2: list attached to the referenced document
	if req.DocumentHeaderID != nil {
		receipt, err := s.receiptRepo.FindByIDForTenant(ctx, tenantID, *req.DocumentHeaderID)
		if err != nil && !isNotFound(err) {
			return nil, "", err
		}
		if receipt != nil && receipt.PriceListID != nil {
			list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, *receipt.PriceListID)
			if err == nil {
				return list, SourceDocumentList, nil
			}
			if !isNotFound(err) {
				return nil, "", err
			}
		}
	}

	// Tier 3: the party's default list for the direction
	if req.BusinessPartyID != nil {
		party, err := s.partyRepo.FindByIDForTenant(ctx, tenantID, *req.BusinessPartyID)
		if err != nil && !isNotFound(err) {
			return nil, "", err
		}
		if party != nil {
			if listID := party.DefaultListForDirection(direction); listID != nil {
				list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, *listID)
				if err == nil {
					return list, SourcePartyList, nil
				}
				if !isNotFound(err) {
					return nil, "", err
				}
			}
		}
	}

	// Tier 4: highest-priority applicable general list
	lists, err := s.listRepo.FindApplicable(ctx, tenantID, direction, asOf)
	if err != nil {
		return nil, "", err
	}
	if len(lists) > 0 {
		return &lists[0], SourceGeneralList, nil
	}

	return nil, "", nil
}

func (s *ResolutionService) defaultPrice(product *catalog.Product) *ResolvedPriceResponse {
	return &ResolvedPriceResponse{
		ProductID: product.ID,
		Price:     product.DefaultPrice,
		Currency:  string(valueobject.DefaultCurrency),
		Source:    SourceDefaultPrice,
	}
}

func isNotFound(err error) bool {
	if err == shared.ErrNotFound {
		return true
	}
	if derr, ok := err.(*shared.DomainError); ok {
		return derr.Code == "NOT_FOUND"
	}
	return false
}
