package persistence

import (
	"context"

	apppricing "github.com/erp/pricing/internal/application/pricing"
	appsourcing "github.com/erp/pricing/internal/application/sourcing"
	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"gorm.io/gorm"
)

// GormPricingTransactionScope implements the pricing TransactionScope using
// GORM transactions. It provides atomic execution of multiple repository
// operations.
type GormPricingTransactionScope struct {
	db *gorm.DB
}

// NewGormPricingTransactionScope creates a new GormPricingTransactionScope.
func NewGormPricingTransactionScope(db *gorm.DB) *GormPricingTransactionScope {
	return &GormPricingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormPricingTransactionScope) Execute(ctx context.Context, fn func(repos apppricing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormPricingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormPricingRepositories provides access to the pricing repositories within
// a transaction.
type gormPricingRepositories struct {
	tx *gorm.DB
}

// PriceListRepo returns the price list repository scoped to the current transaction.
func (r *gormPricingRepositories) PriceListRepo() pricing.PriceListRepository {
	return NewGormPriceListRepository(r.tx)
}

// EntryRepo returns the entry repository scoped to the current transaction.
func (r *gormPricingRepositories) EntryRepo() pricing.PriceListEntryRepository {
	return NewGormPriceListEntryRepository(r.tx)
}

// AssignmentRepo returns the assignment repository scoped to the current transaction.
func (r *gormPricingRepositories) AssignmentRepo() pricing.AssignmentRepository {
	return NewGormAssignmentRepository(r.tx)
}

// OfferRepo returns the supplier offer repository scoped to the current transaction.
func (r *gormPricingRepositories) OfferRepo() partner.SupplierProductRepository {
	return NewGormSupplierProductRepository(r.tx)
}

// GormSourcingTransactionScope implements the sourcing TransactionScope
// using GORM transactions. The pricing and sourcing scopes are separate
// types because their Execute callbacks carry different repository sets.
type GormSourcingTransactionScope struct {
	db *gorm.DB
}

// NewGormSourcingTransactionScope creates a new GormSourcingTransactionScope.
func NewGormSourcingTransactionScope(db *gorm.DB) *GormSourcingTransactionScope {
	return &GormSourcingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormSourcingTransactionScope) Execute(ctx context.Context, fn func(repos appsourcing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormSourcingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormSourcingRepositories provides access to the sourcing repositories
// within a transaction.
type gormSourcingRepositories struct {
	tx *gorm.DB
}

// OfferRepo returns the supplier offer repository scoped to the current transaction.
func (r *gormSourcingRepositories) OfferRepo() partner.SupplierProductRepository {
	return NewGormSupplierProductRepository(r.tx)
}

// Ensure the scopes implement their TransactionScope interfaces
var _ apppricing.TransactionScope = (*GormPricingTransactionScope)(nil)
var _ apppricing.TransactionalRepositories = (*gormPricingRepositories)(nil)
var _ appsourcing.TransactionScope = (*GormSourcingTransactionScope)(nil)
var _ appsourcing.TransactionalRepositories = (*gormSourcingRepositories)(nil)
