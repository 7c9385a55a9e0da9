package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLogEntry is the persisted form of an audit record. Entries are
// append-only and never soft-deleted, so it does not embed BaseEntity.
type AuditLogEntry struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:1"`
	EntityType string             `gorm:"type:varchar(50);not null;index:idx_audit_tenant_entity,priority:2"`
	EntityID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:3"`
	Action     shared.AuditAction `gorm:"type:varchar(20);not null"`
	Actor      *uuid.UUID         `gorm:"type:uuid"`
	Before     *string            `gorm:"type:jsonb"`
	After      *string            `gorm:"type:jsonb"`
	CreatedAt  time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}

// GormAuditLogger implements shared.AuditLogger by appending rows to the
// audit log table. Failures are logged and swallowed so an unavailable audit
// sink never fails the mutation it describes.
type GormAuditLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAuditLogger creates a new GormAuditLogger
func NewGormAuditLogger(db *gorm.DB, logger *zap.Logger) *GormAuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAuditLogger{db: db, logger: logger}
}

// Record implements shared.AuditLogger
func (l *GormAuditLogger) Record(ctx context.Context, record shared.AuditRecord) {
	entry := AuditLogEntry{
		ID:         uuid.New(),
		TenantID:   record.TenantID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		Action:     record.Action,
		Actor:      record.Actor,
		Before:     l.snapshot(record.Before),
		After:      l.snapshot(record.After),
		CreatedAt:  time.Now().UTC(),
	}

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		l.logger.Warn("failed to write audit log entry",
			zap.String("entity_type", record.EntityType),
			zap.String("entity_id", record.EntityID.String()),
			zap.String("action", string(record.Action)),
			zap.Error(err))
	}
}

func (l *GormAuditLogger) snapshot(value any) *string {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn("failed to serialize audit snapshot", zap.Error(err))
		return nil
	}
	s := string(payload)
	return &s
}

// Ensure GormAuditLogger implements AuditLogger
var _ shared.AuditLogger = (*GormAuditLogger)(nil)
