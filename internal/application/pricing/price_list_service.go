package pricing

import (
	"context"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceListService handles price list lifecycle and entry management
type PriceListService struct {
	listRepo       pricing.PriceListRepository
	entryRepo      pricing.PriceListEntryRepository
	assignmentRepo pricing.AssignmentRepository
	txScope        TransactionScope
	audit          shared.AuditLogger
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(
	listRepo pricing.PriceListRepository,
	entryRepo pricing.PriceListEntryRepository,
	assignmentRepo pricing.AssignmentRepository,
	txScope TransactionScope,
	audit shared.AuditLogger,
) *PriceListService {
	return &PriceListService{
		listRepo:       listRepo,
		entryRepo:      entryRepo,
		assignmentRepo: assignmentRepo,
		txScope:        txScope,
		audit:          audit,
	}
}

// Create creates a new price list
func (s *PriceListService) Create(ctx context.Context, req CreatePriceListRequest) (*PriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := s.listRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Price list with this code already exists")
	}

	listType := pricing.PriceListType(req.Type)
	direction := pricing.DirectionOutput
	if listType == pricing.PriceListTypePurchase {
		direction = pricing.DirectionInput
	}

	list, err := pricing.NewPriceList(tenantID, req.Code, req.Name, listType, direction)
	if err != nil {
		return nil, err
	}
	list.SetPriority(req.Priority)

	if req.Currency != "" {
		currency, err := valueobject.ParseCurrency(req.Currency)
		if err != nil {
			return nil, err
		}
		list.Currency = currency
	}

	if req.ValidFrom != nil || req.ValidTo != nil {
		if err := list.SetValidityWindow(req.ValidFrom, req.ValidTo); err != nil {
			return nil, err
		}
	}

	if req.IsDefault {
		// Reset-then-set within one transaction keeps a single default per type
		err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			if err := repos.PriceListRepo().ClearDefault(ctx, tenantID, listType); err != nil {
				return err
			}
			list.MarkDefault()
			return repos.PriceListRepo().Save(ctx, list)
		})
	} else {
		err = s.listRepo.Save(ctx, list)
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionCreate,
		After:      list,
	})

	resp := ToPriceListResponse(list, 0)
	return &resp, nil
}

// Get returns a price list with its entry count
func (s *PriceListService) Get(ctx context.Context, id uuid.UUID) (*PriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	count, err := s.entryRepo.CountByList(ctx, tenantID, list.ID)
	if err != nil {
		return nil, err
	}

	resp := ToPriceListResponse(list, count)
	return &resp, nil
}

// List returns all price lists of the tenant
func (s *PriceListService) List(ctx context.Context) ([]PriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := s.listRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]PriceListResponse, 0, len(lists))
	for i := range lists {
		count, err := s.entryRepo.CountByList(ctx, tenantID, lists[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, ToPriceListResponse(&lists[i], count))
	}
	return responses, nil
}

// Update updates price list metadata
func (s *PriceListService) Update(ctx context.Context, id uuid.UUID, req UpdatePriceListRequest) (*PriceListResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	before := *list

	if req.Name != nil {
		if err := list.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		list.SetPriority(*req.Priority)
	}
	if req.ValidFrom != nil || req.ValidTo != nil {
		from, to := list.ValidFrom, list.ValidTo
		if req.ValidFrom != nil {
			from = req.ValidFrom
		}
		if req.ValidTo != nil {
			to = req.ValidTo
		}
		if err := list.SetValidityWindow(from, to); err != nil {
			return nil, err
		}
	}

	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionUpdate,
		Before:     before,
		After:      list,
	})

	count, err := s.entryRepo.CountByList(ctx, tenantID, list.ID)
	if err != nil {
		return nil, err
	}
	resp := ToPriceListResponse(list, count)
	return &resp, nil
}

// SetDefault marks a list as the tenant default for its type, clearing the
// flag on every other list of the same type in the same transaction
func (s *PriceListService) SetDefault(ctx context.Context, id uuid.UUID) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.PriceListRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := repos.PriceListRepo().ClearDefault(ctx, tenantID, list.Type); err != nil {
			return err
		}
		list.MarkDefault()
		return repos.PriceListRepo().Save(ctx, list)
	})
}

// Suspend suspends a price list
func (s *PriceListService) Suspend(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*pricing.PriceList).Suspend)
}

// Activate reactivates a suspended price list
func (s *PriceListService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*pricing.PriceList).Activate)
}

// Archive retires a price list
func (s *PriceListService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*pricing.PriceList).Archive)
}

func (s *PriceListService) transition(ctx context.Context, id uuid.UUID, fn func(*pricing.PriceList) error) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	before := *list

	if err := fn(list); err != nil {
		return err
	}
	if err := s.listRepo.Save(ctx, list); err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionUpdate,
		Before:     before,
		After:      list,
	})
	return nil
}

// Delete soft-deletes a price list
func (s *PriceListService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.listRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list",
		EntityID:   list.ID,
		Action:     shared.AuditActionDelete,
		Before:     list,
	})
	return nil
}

// SetEntryPrice creates or updates a product's price within a list
func (s *PriceListService) SetEntryPrice(ctx context.Context, priceListID uuid.UUID, req SetEntryPriceRequest) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	list, err := s.listRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return err
	}

	entry, err := s.entryRepo.FindByListAndProduct(ctx, tenantID, priceListID, req.ProductID)
	if err != nil && err != shared.ErrNotFound {
		return err
	}

	action := shared.AuditActionUpdate
	var before *pricing.PriceListEntry
	if entry == nil {
		action = shared.AuditActionCreate
		entry, err = pricing.NewPriceListEntry(tenantID, priceListID, req.ProductID, req.Price, list.Currency)
		if err != nil {
			return err
		}
	} else {
		snapshot := *entry
		before = &snapshot
		if err := entry.UpdatePrice(req.Price); err != nil {
			return err
		}
	}

	if req.LeadTimeDays != nil {
		if err := entry.SetLeadTime(*req.LeadTimeDays); err != nil {
			return err
		}
	}
	if req.MinimumOrderQuantity != nil {
		if err := entry.SetMinimumOrderQuantity(*req.MinimumOrderQuantity); err != nil {
			return err
		}
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return err
	}

	record := shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list_entry",
		EntityID:   entry.ID,
		Action:     action,
		After:      entry,
	}
	if before != nil {
		record.Before = before
	}
	s.audit.Record(ctx, record)
	return nil
}

// RemoveEntry soft-deletes a product's price from a list
func (s *PriceListService) RemoveEntry(ctx context.Context, priceListID, productID uuid.UUID) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	entry, err := s.entryRepo.FindByListAndProduct(ctx, tenantID, priceListID, productID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, tenantID, entry.ID); err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list_entry",
		EntityID:   entry.ID,
		Action:     shared.AuditActionDelete,
		Before:     entry,
	})
	return nil
}

// AssignBusinessParty assigns a price list to a business party
func (s *PriceListService) AssignBusinessParty(ctx context.Context, priceListID uuid.UUID, req AssignBusinessPartyRequest) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.listRepo.FindByIDForTenant(ctx, tenantID, priceListID); err != nil {
		return err
	}

	assignment := pricing.NewPriceListAssignment(tenantID, priceListID, req.BusinessPartyID)
	if req.GlobalDiscountPercentage != nil {
		if err := assignment.SetGlobalDiscount(*req.GlobalDiscountPercentage); err != nil {
			return err
		}
	}
	if req.IsPrimary {
		assignment.MarkPrimary()
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		TenantID:   tenantID,
		EntityType: "price_list_assignment",
		EntityID:   assignment.ID,
		Action:     shared.AuditActionCreate,
		After:      assignment,
	})
	return nil
}

// SetAssignmentDiscount updates the global discount of an existing assignment
func (s *PriceListService) SetAssignmentDiscount(ctx context.Context, priceListID, businessPartyID uuid.UUID, discount decimal.Decimal) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	assignments, err := s.assignmentRepo.FindActiveByParty(ctx, tenantID, businessPartyID)
	if err != nil {
		return err
	}
	for i := range assignments {
		if assignments[i].PriceListID == priceListID {
			before := assignments[i]
			if err := assignments[i].SetGlobalDiscount(discount); err != nil {
				return err
			}
			if err := s.assignmentRepo.Save(ctx, &assignments[i]); err != nil {
				return err
			}
			s.audit.Record(ctx, shared.AuditRecord{
				TenantID:   tenantID,
				EntityType: "price_list_assignment",
				EntityID:   assignments[i].ID,
				Action:     shared.AuditActionUpdate,
				Before:     before,
				After:      assignments[i],
			})
			return nil
		}
	}
	return shared.ErrNotFound
}
