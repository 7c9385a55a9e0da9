package sourcing

import (
	"context"

	"github.com/erp/pricing/internal/domain/partner"
)

// TransactionScope provides transactional access to the supplier offer
// repository. The preferred-flag switch must reset and set within one
// transaction or concurrent writers can leave two preferred offers.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the sourcing repositories
// within a transaction
type TransactionalRepositories interface {
	// OfferRepo returns the supplier offer repository scoped to the current transaction
	OfferRepo() partner.SupplierProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	offerRepo partner.SupplierProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository.
func NewNoOpTransactionScope(offerRepo partner.SupplierProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{offerRepo: offerRepo}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OfferRepo returns the supplier offer repository.
func (s *NoOpTransactionScope) OfferRepo() partner.SupplierProductRepository {
	return s.offerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
