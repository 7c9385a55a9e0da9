package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceApplicationService computes a final product price under an explicit
// application mode. Unlike the passive cascade, forced modes treat a missing
// product entry as a hard failure.
type PriceApplicationService struct {
	listRepo       pricing.PriceListRepository
	entryRepo      pricing.PriceListEntryRepository
	assignmentRepo pricing.AssignmentRepository
	productRepo    catalog.ProductRepository
	partyRepo      partner.BusinessPartyRepository
}

// NewPriceApplicationService creates a new PriceApplicationService
func NewPriceApplicationService(
	listRepo pricing.PriceListRepository,
	entryRepo pricing.PriceListEntryRepository,
	assignmentRepo pricing.AssignmentRepository,
	productRepo catalog.ProductRepository,
	partyRepo partner.BusinessPartyRepository,
) *PriceApplicationService {
	return &PriceApplicationService{
		listRepo:       listRepo,
		entryRepo:      entryRepo,
		assignmentRepo: assignmentRepo,
		productRepo:    productRepo,
		partyRepo:      partyRepo,
	}
}

// GetProductPrice computes the final price for a product under the resolved
// application mode
func (s *PriceApplicationService) GetProductPrice(ctx context.Context, req GetProductPriceRequest) (*ProductPriceResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	var party *partner.BusinessParty
	if req.BusinessPartyID != nil {
		party, err = s.partyRepo.FindByIDForTenant(ctx, tenantID, *req.BusinessPartyID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	mode := s.resolveMode(req, party)
	asOf := time.Now()
	if req.AsOfDate != nil {
		asOf = *req.AsOfDate
	}

	switch mode {
	case pricing.ModeManual:
		return s.manualPrice(req, mode)
	case pricing.ModeForcedPriceList:
		return s.forcedPrice(ctx, tenantID, req, mode)
	case pricing.ModeHybrid:
		if req.ManualPrice != nil {
			return s.manualPrice(req, mode)
		}
		return s.forcedPrice(ctx, tenantID, req, mode)
	default:
		return s.automaticPrice(ctx, tenantID, product, party, req, asOf)
	}
}

// resolveMode picks the request mode, then the party default, then automatic
func (s *PriceApplicationService) resolveMode(req GetProductPriceRequest, party *partner.BusinessParty) pricing.PriceApplicationMode {
	if req.Mode != "" {
		return pricing.PriceApplicationMode(req.Mode)
	}
	if party != nil && party.DefaultPriceApplicationMode.IsValid() {
		return party.DefaultPriceApplicationMode
	}
	return pricing.ModeAutomatic
}

func (s *PriceApplicationService) manualPrice(req GetProductPriceRequest, mode pricing.PriceApplicationMode) (*ProductPriceResponse, error) {
	if req.ManualPrice == nil {
		return nil, shared.NewDomainError("MANUAL_PRICE_REQUIRED", "Manual mode requires an explicit price")
	}
	if req.ManualPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Manual price cannot be negative")
	}
	return &ProductPriceResponse{
		ProductID:   req.ProductID,
		FinalPrice:  *req.ManualPrice,
		AppliedMode: mode,
		IsManual:    true,
		SearchPath:  []string{"manual price supplied"},
	}, nil
}

func (s *PriceApplicationService) forcedPrice(ctx context.Context, tenantID uuid.UUID, req GetProductPriceRequest, mode pricing.PriceApplicationMode) (*ProductPriceResponse, error) {
	if req.ForcedPriceListID == nil {
		return nil, shared.NewDomainError("FORCED_PRICE_LIST_REQUIRED", "Forced mode requires a price list")
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, *req.ForcedPriceListID)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindByListAndProduct(ctx, tenantID, list.ID, req.ProductID)
	if err != nil {
		if isNotFound(err) {
			// Explicit forcing is strict; a missing product is an error, not
			// a fallback
			return nil, shared.NewDomainError("PRICE_LIST_PRODUCT_NOT_FOUND", "Product is not present in the forced price list")
		}
		return nil, err
	}

	return &ProductPriceResponse{
		ProductID:          req.ProductID,
		FinalPrice:         entry.Price,
		BasePriceFromList:  &entry.Price,
		AppliedPriceListID: &list.ID,
		AppliedMode:        mode,
		IsPriceListForced:  true,
		SearchPath:         []string{fmt.Sprintf("forced price list %s", list.Code)},
	}, nil
}

func (s *PriceApplicationService) automaticPrice(ctx context.Context, tenantID uuid.UUID, product *catalog.Product, party *partner.BusinessParty, req GetProductPriceRequest, asOf time.Time) (*ProductPriceResponse, error) {
	resp := &ProductPriceResponse{
		ProductID:   product.ID,
		AppliedMode: pricing.ModeAutomatic,
	}

	// Prefer a list specifically assigned to the party
	if party != nil {
		assignments, err := s.assignmentRepo.FindActiveByParty(ctx, tenantID, party.ID)
		if err != nil {
			return nil, err
		}
		for i := range assignments {
			a := &assignments[i]
			list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, a.PriceListID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, err
			}
			entry, err := s.findEntry(ctx, tenantID, list.ID, product.ID)
			if err != nil {
				return nil, err
			}
			s.addCandidate(resp, list, entry, true)
			if entry == nil || resp.AppliedPriceListID != nil {
				if entry == nil {
					resp.SearchPath = append(resp.SearchPath, fmt.Sprintf("assigned list %s has no entry", list.Code))
				}
				continue
			}

			discount := a.GlobalDiscountPercentage
			final := entry.Price
			if !discount.IsZero() {
				final = entry.Price.Mul(decimal.NewFromInt(100).Sub(discount)).Div(decimal.NewFromInt(100)).Round(2)
			}
			resp.FinalPrice = final
			resp.BasePriceFromList = &entry.Price
			resp.AppliedDiscountPercent = &a.GlobalDiscountPercentage
			resp.AppliedPriceListID = &a.PriceListID
			resp.SearchPath = append(resp.SearchPath, fmt.Sprintf("assigned list %s matched", list.Code))
		}
		if resp.AppliedPriceListID != nil {
			return resp, nil
		}
		if len(assignments) == 0 {
			resp.SearchPath = append(resp.SearchPath, "no active party assignments")
		}
	}

	// Fall back to the highest-priority general list containing the product
	lists, err := s.listRepo.FindApplicable(ctx, tenantID, pricing.DirectionOutput, asOf)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		list := &lists[i]
		entry, err := s.findEntry(ctx, tenantID, list.ID, product.ID)
		if err != nil {
			return nil, err
		}
		s.addCandidate(resp, list, entry, false)
		if entry == nil || resp.AppliedPriceListID != nil {
			continue
		}
		resp.FinalPrice = entry.Price
		resp.BasePriceFromList = &entry.Price
		resp.AppliedPriceListID = &list.ID
		resp.SearchPath = append(resp.SearchPath, fmt.Sprintf("general list %s matched", list.Code))
	}
	if resp.AppliedPriceListID != nil {
		return resp, nil
	}

	// Terminal fallback
	resp.FinalPrice = product.DefaultPrice
	resp.SearchPath = append(resp.SearchPath, "product default price")
	return resp, nil
}

func (s *PriceApplicationService) findEntry(ctx context.Context, tenantID, listID, productID uuid.UUID) (*pricing.PriceListEntry, error) {
	entry, err := s.entryRepo.FindByListAndProduct(ctx, tenantID, listID, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *PriceApplicationService) addCandidate(resp *ProductPriceResponse, list *pricing.PriceList, entry *pricing.PriceListEntry, assigned bool) {
	candidate := AvailablePriceList{
		PriceListID:   list.ID,
		PriceListName: list.Name,
		Priority:      list.Priority,
		IsAssigned:    assigned,
	}
	if entry != nil {
		candidate.Price = &entry.Price
	}
	resp.AvailablePriceLists = append(resp.AvailablePriceLists, candidate)
}
