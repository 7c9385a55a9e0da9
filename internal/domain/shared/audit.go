package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuditAction identifies the kind of mutation being recorded
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditRecord captures a single persisted mutation with before/after snapshots.
// Snapshots are opaque to the engine; the sink serializes them.
type AuditRecord struct {
	TenantID   uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     AuditAction
	Actor      *uuid.UUID
	Before     any
	After      any
}

// AuditLogger is the port to the audit log sink. Implementations must not
// fail the surrounding operation; errors are logged and swallowed.
type AuditLogger interface {
	Record(ctx context.Context, record AuditRecord)
}

// NopAuditLogger discards all audit records
type NopAuditLogger struct{}

// Record implements AuditLogger
func (NopAuditLogger) Record(ctx context.Context, record AuditRecord) {}
