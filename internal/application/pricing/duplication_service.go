package pricing

import (
	"context"
	"fmt"

	"github.com/erp/pricing/internal/domain/catalog"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
)

// DuplicationService clones a price list, optionally re-pricing its entries
// and copying its business-party assignments
type DuplicationService struct {
	listRepo    pricing.PriceListRepository
	productRepo catalog.ProductRepository
	txScope     TransactionScope
	audit       shared.AuditLogger
}

// NewDuplicationService creates a new DuplicationService
func NewDuplicationService(
	listRepo pricing.PriceListRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	audit shared.AuditLogger,
) *DuplicationService {
	return &DuplicationService{
		listRepo:    listRepo,
		productRepo: productRepo,
		txScope:     txScope,
		audit:       audit,
	}
}

// Duplicate copies a price list. The copy is never the default list, whatever
// the source was.
func (s *DuplicationService) Duplicate(ctx context.Context, req DuplicatePriceListRequest) (*DuplicatePriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	source, err := s.listRepo.FindByIDForTenant(ctx, tenantID, req.SourcePriceListID)
	if err != nil {
		return nil, err
	}

	strategy, err := pricing.ParseRoundingStrategy(req.RoundingStrategy)
	if err != nil {
		return nil, err
	}

	listType := source.Type
	if req.NewType != "" {
		listType = pricing.PriceListType(req.NewType)
	}
	direction := pricing.DirectionOutput
	if listType == pricing.PriceListTypePurchase {
		direction = pricing.DirectionInput
	}
	if req.NewDirection != "" {
		direction = pricing.PriceListDirection(req.NewDirection)
	}

	code, err := s.uniqueCode(ctx, tenantID, req.NewCode, req.NewName)
	if err != nil {
		return nil, err
	}

	newList, err := pricing.NewPriceList(tenantID, code, req.NewName, listType, direction)
	if err != nil {
		return nil, err
	}
	newList.SetPriority(source.Priority)
	newList.Currency = source.Currency

	validFrom, validTo := source.ValidFrom, source.ValidTo
	if req.ValidFrom != nil || req.ValidTo != nil {
		validFrom, validTo = req.ValidFrom, req.ValidTo
	}
	if err := newList.SetValidityWindow(validFrom, validTo); err != nil {
		return nil, err
	}

	resp := &DuplicatePriceListResponse{
		AppliedMarkupPercentage: req.MarkupPercentage,
	}
	if strategy != pricing.RoundingNone {
		resp.AppliedRoundingStrategy = strategy.String()
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// The list row must exist before its entries; both the entry and
		// assignment tables reference price_lists by foreign key
		if err := repos.PriceListRepo().Save(ctx, newList); err != nil {
			return err
		}

		if req.CopyPrices {
			copied, sourceCount, err := s.copyEntries(ctx, repos, tenantID, source.ID, newList, req, strategy)
			if err != nil {
				return err
			}
			resp.SourcePriceCount = sourceCount
			resp.CopiedPriceCount = copied
			resp.SkippedPriceCount = sourceCount - copied
		}

		newList.AddDomainEvent(pricing.NewPriceListDuplicatedEvent(newList, source.ID, resp.CopiedPriceCount))

		if req.CopyBusinessParties {
			count, err := s.copyAssignments(ctx, repos, tenantID, source.ID, newList.ID)
			if err != nil {
				return err
			}
			resp.CopiedBusinessPartyCount = count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   newList.ID,
		Action:     shared.AuditActionCreate,
		After:      newList,
	})

	resp.NewPriceList = ToPriceListResponse(newList, int64(resp.CopiedPriceCount))
	return resp, nil
}

// uniqueCode derives a code from the explicit value or the new name, then
// appends a numeric suffix until it no longer collides
func (s *DuplicationService) uniqueCode(ctx context.Context, tenantID uuid.UUID, explicit, name string) (string, error) {
	base := explicit
	if base == "" {
		base = slugifyCode(name)
	}

	code := base
	for suffix := 2; ; suffix++ {
		exists, err := s.listRepo.ExistsByCode(ctx, tenantID, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		code = fmt.Sprintf("%s_%d", base, suffix)
	}
}

func (s *DuplicationService) copyEntries(
	ctx context.Context,
	repos TransactionalRepositories,
	tenantID, sourceID uuid.UUID,
	newList *pricing.PriceList,
	req DuplicatePriceListRequest,
	strategy pricing.RoundingStrategy,
) (copied, sourceCount int, err error) {
	sourceEntries, err := repos.EntryRepo().FindByList(ctx, tenantID, sourceID)
	if err != nil {
		return 0, 0, err
	}
	sourceCount = len(sourceEntries)

	allowedCategories := toSet(req.CategoryIDs)
	allowedProducts := toSet(req.ProductIDs)

	products, err := s.loadProducts(ctx, tenantID, sourceEntries)
	if err != nil {
		return 0, 0, err
	}

	newEntries := make([]*pricing.PriceListEntry, 0, len(sourceEntries))
	for i := range sourceEntries {
		src := &sourceEntries[i]
		product := products[src.ProductID]

		if len(allowedProducts) > 0 {
			if _, ok := allowedProducts[src.ProductID]; !ok {
				continue
			}
		}
		if len(allowedCategories) > 0 {
			if product == nil || product.CategoryID == nil {
				continue
			}
			if _, ok := allowedCategories[*product.CategoryID]; !ok {
				continue
			}
		}
		if req.OnlyActiveProducts && (product == nil || !product.IsActive()) {
			continue
		}

		newPrice := pricing.ApplyMarkupAndRound(src.Price, req.MarkupPercentage, strategy)
		entry, err := pricing.NewPriceListEntry(tenantID, newList.ID, src.ProductID, newPrice, newList.Currency)
		if err != nil {
			// Entries whose re-priced value fails validation are skipped,
			// not fatal
			continue
		}
		if src.LeadTimeDays != nil {
			_ = entry.SetLeadTime(*src.LeadTimeDays)
		}
		if src.MinimumOrderQuantity != nil {
			_ = entry.SetMinimumOrderQuantity(*src.MinimumOrderQuantity)
		}
		newEntries = append(newEntries, entry)
	}

	if len(newEntries) > 0 {
		if err := repos.EntryRepo().SaveBatch(ctx, newEntries); err != nil {
			return 0, 0, err
		}
	}
	return len(newEntries), sourceCount, nil
}

func (s *DuplicationService) copyAssignments(ctx context.Context, repos TransactionalRepositories, tenantID, sourceID, newListID uuid.UUID) (int, error) {
	assignments, err := repos.AssignmentRepo().FindByList(ctx, tenantID, sourceID)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range assignments {
		src := &assignments[i]
		clone := pricing.NewPriceListAssignment(tenantID, newListID, src.BusinessPartyID)
		if err := clone.SetGlobalDiscount(src.GlobalDiscountPercentage); err != nil {
			return 0, err
		}
		if src.IsPrimary {
			clone.MarkPrimary()
		}
		if err := repos.AssignmentRepo().Save(ctx, clone); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (s *DuplicationService) loadProducts(ctx context.Context, tenantID uuid.UUID, entries []pricing.PriceListEntry) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].ProductID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
