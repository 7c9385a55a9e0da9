package persistence

import (
	"context"
	"errors"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessPartyRepository implements BusinessPartyRepository using GORM
type GormBusinessPartyRepository struct {
	db *gorm.DB
}

// NewGormBusinessPartyRepository creates a new GormBusinessPartyRepository
func NewGormBusinessPartyRepository(db *gorm.DB) *GormBusinessPartyRepository {
	return &GormBusinessPartyRepository{db: db}
}

// FindByIDForTenant finds a business party by ID within a tenant
func (r *GormBusinessPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.BusinessParty, error) {
	var party partner.BusinessParty
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// Save creates or updates a business party
func (r *GormBusinessPartyRepository) Save(ctx context.Context, party *partner.BusinessParty) error {
	return r.db.WithContext(ctx).Save(party).Error
}

// Ensure GormBusinessPartyRepository implements BusinessPartyRepository
var _ partner.BusinessPartyRepository = (*GormBusinessPartyRepository)(nil)
