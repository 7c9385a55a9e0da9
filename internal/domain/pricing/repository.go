package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryFilter narrows a price list's entries for bulk operations and
// duplication. All populated criteria combine with AND semantics.
type EntryFilter struct {
	CategoryIDs []uuid.UUID
	BrandIDs    []uuid.UUID
	ProductIDs  []uuid.UUID
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// IsEmpty returns true when no criterion is set
func (f EntryFilter) IsEmpty() bool {
	return len(f.CategoryIDs) == 0 && len(f.BrandIDs) == 0 && len(f.ProductIDs) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// PriceListRepository defines persistence for price lists
type PriceListRepository interface {
	// FindByIDForTenant finds a price list by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PriceList, error)

	// FindByCode finds a price list by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*PriceList, error)

	// ExistsByCode checks if a list with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// FindApplicable finds active lists matching the direction whose validity
	// window contains asOf, ordered by priority descending then ID ascending
	// so that ties break deterministically
	FindApplicable(ctx context.Context, tenantID uuid.UUID, direction PriceListDirection, asOf time.Time) ([]PriceList, error)

	// FindAllForTenant finds all lists for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]PriceList, error)

	// ClearDefault unsets the default flag on every list of the given type.
	// Must run inside the same unit of work as the subsequent MarkDefault
	// save so the one-default-per-type invariant holds.
	ClearDefault(ctx context.Context, tenantID uuid.UUID, listType PriceListType) error

	// Save creates or updates a price list
	Save(ctx context.Context, list *PriceList) error

	// Delete soft-deletes a price list within a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PriceListEntryRepository defines persistence for price list entries
type PriceListEntryRepository interface {
	// FindByListAndProduct finds the entry for a product within a list
	FindByListAndProduct(ctx context.Context, tenantID, priceListID, productID uuid.UUID) (*PriceListEntry, error)

	// FindByList finds all entries of a price list
	FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]PriceListEntry, error)

	// FindByListFiltered finds the entries of a list matching the filter.
	// Category and brand criteria join through the product catalog.
	FindByListFiltered(ctx context.Context, tenantID, priceListID uuid.UUID, filter EntryFilter) ([]PriceListEntry, error)

	// FindByProductInLists finds the entries for a product across the given lists
	FindByProductInLists(ctx context.Context, tenantID, productID uuid.UUID, priceListIDs []uuid.UUID) ([]PriceListEntry, error)

	// CountByList counts the non-deleted entries of a list
	CountByList(ctx context.Context, tenantID, priceListID uuid.UUID) (int64, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *PriceListEntry) error

	// SaveBatch creates or updates multiple entries
	SaveBatch(ctx context.Context, entries []*PriceListEntry) error

	// Delete soft-deletes an entry within a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// AssignmentRepository defines persistence for price list assignments
type AssignmentRepository interface {
	// FindActiveByParty finds the active assignments of a business party,
	// primary assignments first, then most recently created
	FindActiveByParty(ctx context.Context, tenantID, businessPartyID uuid.UUID) ([]PriceListBusinessParty, error)

	// FindByList finds the active assignments of a price list
	FindByList(ctx context.Context, tenantID, priceListID uuid.UUID) ([]PriceListBusinessParty, error)

	// Save creates or updates an assignment
	Save(ctx context.Context, assignment *PriceListBusinessParty) error
}
