package pricing

import (
	"context"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
)

// TransactionScope provides transactional access to pricing repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the pricing repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// PriceListRepo returns the price list repository scoped to the current transaction
	PriceListRepo() pricing.PriceListRepository
	// EntryRepo returns the entry repository scoped to the current transaction
	EntryRepo() pricing.PriceListEntryRepository
	// AssignmentRepo returns the assignment repository scoped to the current transaction
	AssignmentRepo() pricing.AssignmentRepository
	// OfferRepo returns the supplier offer repository scoped to the current transaction
	OfferRepo() partner.SupplierProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	listRepo       pricing.PriceListRepository
	entryRepo      pricing.PriceListEntryRepository
	assignmentRepo pricing.AssignmentRepository
	offerRepo      partner.SupplierProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	listRepo pricing.PriceListRepository,
	entryRepo pricing.PriceListEntryRepository,
	assignmentRepo pricing.AssignmentRepository,
	offerRepo partner.SupplierProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		listRepo:       listRepo,
		entryRepo:      entryRepo,
		assignmentRepo: assignmentRepo,
		offerRepo:      offerRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PriceListRepo returns the price list repository.
func (s *NoOpTransactionScope) PriceListRepo() pricing.PriceListRepository {
	return s.listRepo
}

// EntryRepo returns the entry repository.
func (s *NoOpTransactionScope) EntryRepo() pricing.PriceListEntryRepository {
	return s.entryRepo
}

// AssignmentRepo returns the assignment repository.
func (s *NoOpTransactionScope) AssignmentRepo() pricing.AssignmentRepository {
	return s.assignmentRepo
}

// OfferRepo returns the supplier offer repository.
func (s *NoOpTransactionScope) OfferRepo() partner.SupplierProductRepository {
	return s.offerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
