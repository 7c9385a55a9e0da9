package pricing

import (
	"context"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BulkUpdateService applies one price operation over a list's filtered
// entries.
//
// Two distinct mutation policies coexist here on purpose. Entry updates skip
// entries whose new price would be negative and commit the rest, reporting
// partial success. Supplier cost updates run in a single transaction and roll
// back entirely on any failure. Do not unify them without product sign-off.
type BulkUpdateService struct {
	listRepo  pricing.PriceListRepository
	entryRepo pricing.PriceListEntryRepository
	txScope   TransactionScope
	audit     shared.AuditLogger
}

// NewBulkUpdateService creates a new BulkUpdateService
func NewBulkUpdateService(
	listRepo pricing.PriceListRepository,
	entryRepo pricing.PriceListEntryRepository,
	txScope TransactionScope,
	audit shared.AuditLogger,
) *BulkUpdateService {
	return &BulkUpdateService{
		listRepo:  listRepo,
		entryRepo: entryRepo,
		txScope:   txScope,
		audit:     audit,
	}
}

// BulkUpdate applies the operation to every matching entry of the list.
// Entries that would end up negative are skipped and reported; the rest
// commit.
func (s *BulkUpdateService) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (*BulkUpdateResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, strategy, err := s.loadEntries(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	resp := &BulkUpdateResponse{}
	updated := make([]*pricing.PriceListEntry, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		newPrice, err := computeNewPrice(entry.Price, req.Operation, req.Value, strategy)
		if err != nil {
			resp.FailedCount++
			resp.Errors = append(resp.Errors, toBulkError(entry, err))
			continue
		}
		if err := entry.UpdatePrice(newPrice); err != nil {
			resp.FailedCount++
			resp.Errors = append(resp.Errors, toBulkError(entry, err))
			continue
		}
		updated = append(updated, entry)
	}

	if len(updated) > 0 {
		if err := s.entryRepo.SaveBatch(ctx, updated); err != nil {
			return nil, err
		}
	}
	resp.UpdatedCount = len(updated)

	for _, entry := range updated {
		s.audit.Record(ctx, shared.AuditRecord{
			TenantID:   tenantID,
			EntityType: "price_list_entry",
			EntityID:   entry.ID,
			Action:     shared.AuditActionUpdate,
			After:      entry,
		})
	}
	return resp, nil
}

// Preview computes the same changes as BulkUpdate without persisting,
// including per-entry deltas and aggregate totals
func (s *BulkUpdateService) Preview(ctx context.Context, req BulkUpdateRequest) (*BulkPreviewResponse, error) {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, strategy, err := s.loadEntries(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	resp := &BulkPreviewResponse{
		TotalCurrentValue: decimal.Zero,
		TotalNewValue:     decimal.Zero,
	}
	for i := range entries {
		entry := &entries[i]
		line := BulkPreviewLine{
			ProductID:    entry.ProductID,
			CurrentPrice: entry.Price,
		}
		newPrice, err := computeNewPrice(entry.Price, req.Operation, req.Value, strategy)
		if err != nil {
			line.NewPrice = entry.Price
			line.Skipped = true
			if derr, ok := err.(*shared.DomainError); ok {
				line.SkipReason = derr.Message
			} else {
				line.SkipReason = err.Error()
			}
		} else {
			line.NewPrice = newPrice
			line.Delta = newPrice.Sub(entry.Price)
		}
		resp.Lines = append(resp.Lines, line)
		resp.TotalCurrentValue = resp.TotalCurrentValue.Add(entry.Price)
		resp.TotalNewValue = resp.TotalNewValue.Add(line.NewPrice)
	}

	if !resp.TotalCurrentValue.IsZero() {
		resp.AverageIncreasePercentage = resp.TotalNewValue.Sub(resp.TotalCurrentValue).
			Div(resp.TotalCurrentValue).Mul(hundred).Round(2)
	}
	return resp, nil
}

// BulkUpdateSupplierCosts updates a supplier's offer costs as one atomic
// batch; any invalid row rolls back the whole call
func (s *BulkUpdateService) BulkUpdateSupplierCosts(ctx context.Context, req BulkUpdateSupplierCostsRequest) error {
	tenantID, err := shared.TenantFromContext(ctx)
	if err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, update := range req.Updates {
			offer, err := repos.OfferRepo().FindBySupplierAndProduct(ctx, tenantID, req.SupplierID, update.ProductID)
			if err != nil {
				return err
			}
			if err := offer.UpdateUnitCost(update.UnitCost); err != nil {
				return err
			}
			if err := repos.OfferRepo().Save(ctx, offer); err != nil {
				return err
			}
			s.audit.Record(ctx, shared.AuditRecord{
				TenantID:   tenantID,
				EntityType: "supplier_product",
				EntityID:   offer.ID,
				Action:     shared.AuditActionUpdate,
				After:      offer,
			})
		}
		return nil
	})
}

func (s *BulkUpdateService) loadEntries(ctx context.Context, tenantID uuid.UUID, req BulkUpdateRequest) ([]pricing.PriceListEntry, pricing.RoundingStrategy, error) {
	strategy, err := pricing.ParseRoundingStrategy(req.RoundingStrategy)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.listRepo.FindByIDForTenant(ctx, tenantID, req.PriceListID); err != nil {
		return nil, "", err
	}

	filter := pricing.EntryFilter{
		CategoryIDs: req.CategoryIDs,
		BrandIDs:    req.BrandIDs,
		ProductIDs:  req.ProductIDs,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}
	entries, err := s.entryRepo.FindByListFiltered(ctx, tenantID, req.PriceListID, filter)
	if err != nil {
		return nil, "", err
	}
	return entries, strategy, nil
}

// computeNewPrice applies the operation and rounding, guarding against
// negative results
func computeNewPrice(current decimal.Decimal, op BulkOperation, value decimal.Decimal, strategy pricing.RoundingStrategy) (decimal.Decimal, error) {
	var newPrice decimal.Decimal
	switch op {
	case BulkOperationSet:
		newPrice = value
	case BulkOperationIncreaseByAmount:
		newPrice = current.Add(value)
	case BulkOperationDecreaseByAmount:
		newPrice = current.Sub(value)
	case BulkOperationIncreaseByPercentage:
		newPrice = current.Mul(hundred.Add(value)).Div(hundred)
	case BulkOperationDecreaseByPercentage:
		newPrice = current.Mul(hundred.Sub(value)).Div(hundred)
	case BulkOperationMultiplyBy:
		newPrice = current.Mul(value)
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_OPERATION", "Unknown bulk operation")
	}

	if newPrice.IsNegative() {
		return decimal.Zero, shared.NewDomainError("NEGATIVE_PRICE_RESULT", "Operation would produce a negative price")
	}
	return pricing.Round(newPrice, strategy), nil
}

func toBulkError(entry *pricing.PriceListEntry, err error) BulkUpdateError {
	bulkErr := BulkUpdateError{ProductID: entry.ProductID, Code: "UPDATE_FAILED", Message: err.Error()}
	if derr, ok := err.(*shared.DomainError); ok {
		bulkErr.Code = derr.Code
		bulkErr.Message = derr.Message
	}
	return bulkErr
}
