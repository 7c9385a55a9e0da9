package shared

import (
	"context"

	"github.com/google/uuid"
)

type tenantContextKey struct{}

// WithTenant returns a context carrying the tenant identifier
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenantID)
}

// TenantFromContext extracts the tenant identifier from the context.
// Returns ErrTenantContextMissing when absent so callers fail fast before
// touching the store.
func TenantFromContext(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(tenantContextKey{}).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, ErrTenantContextMissing
	}
	return tenantID, nil
}
