package sourcing

import (
	"context"

	"github.com/google/uuid"
)

// SuggestionCache stores scoring runs per (tenant, product) with expiry.
// Invalidate must complete before a supplier switch returns so stale
// recommendations never survive a mutation.
type SuggestionCache interface {
	// Get returns the cached suggestions for a product, or false when
	// absent or expired
	Get(ctx context.Context, tenantID, productID uuid.UUID) ([]SupplierSuggestion, bool)

	// Set stores suggestions for a product
	Set(ctx context.Context, tenantID, productID uuid.UUID, suggestions []SupplierSuggestion)

	// Invalidate drops the cache entry for a product
	Invalidate(ctx context.Context, tenantID, productID uuid.UUID)
}

// BetterSupplierAlert describes a supplier that outscores the current
// preferred one by more than the configured delta
type BetterSupplierAlert struct {
	TenantID            uuid.UUID
	ProductID           uuid.UUID
	CurrentSupplierID   uuid.UUID
	SuggestedSupplierID uuid.UUID
	ScoreDelta          float64
}

// AlertSink receives better-supplier notifications. Best effort; callers
// log and swallow any error.
type AlertSink interface {
	NotifyBetterSupplier(ctx context.Context, alert BetterSupplierAlert) error
}

// NopAlertSink discards all alerts
type NopAlertSink struct{}

// NotifyBetterSupplier implements AlertSink
func (NopAlertSink) NotifyBetterSupplier(ctx context.Context, alert BetterSupplierAlert) error {
	return nil
}

var _ AlertSink = (*NopAlertSink)(nil)
