package partner

import (
	"context"

	"github.com/google/uuid"
)

// BusinessPartyRepository defines the read access the engine needs on parties
type BusinessPartyRepository interface {
	// FindByIDForTenant finds a business party by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BusinessParty, error)

	// Save creates or updates a business party
	Save(ctx context.Context, party *BusinessParty) error
}

// SupplierRepository defines the read access the engine needs on suppliers
type SupplierRepository interface {
	// FindByIDForTenant finds a supplier by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)

	// FindByIDs finds multiple suppliers by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Supplier, error)

	// CountOfferedProducts counts how many products the supplier offers,
	// used as the catalog-breadth reliability proxy
	CountOfferedProducts(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error)
}

// SupplierProductRepository defines persistence for supplier offers
type SupplierProductRepository interface {
	// FindByProduct finds all offers for a product across suppliers
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]SupplierProduct, error)

	// FindBySupplierAndProduct finds one supplier's offer for a product
	FindBySupplierAndProduct(ctx context.Context, tenantID, supplierID, productID uuid.UUID) (*SupplierProduct, error)

	// ClearPreferredForProduct unsets the preferred flag on every offer for
	// the product. Must run inside the same unit of work as the subsequent
	// MarkPreferred save so the one-preferred-per-product invariant holds.
	ClearPreferredForProduct(ctx context.Context, tenantID, productID uuid.UUID) error

	// Save creates or updates an offer
	Save(ctx context.Context, offer *SupplierProduct) error

	// SaveBatch creates or updates multiple offers
	SaveBatch(ctx context.Context, offers []*SupplierProduct) error
}
