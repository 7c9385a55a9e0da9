// Package alerting provides alert sink implementations for the sourcing engine.
package alerting

import (
	"context"

	"github.com/erp/pricing/internal/domain/sourcing"
	"go.uber.org/zap"
)

// LoggingAlertSink emits better-supplier alerts as structured log entries.
// Deployments that route warnings to an alerting pipeline get notified
// without this module depending on any messaging system.
type LoggingAlertSink struct {
	logger *zap.Logger
}

// NewLoggingAlertSink creates a LoggingAlertSink writing to the given logger
func NewLoggingAlertSink(logger *zap.Logger) *LoggingAlertSink {
	return &LoggingAlertSink{logger: logger}
}

// NotifyBetterSupplier implements sourcing.AlertSink
func (s *LoggingAlertSink) NotifyBetterSupplier(_ context.Context, alert sourcing.BetterSupplierAlert) error {
	s.logger.Warn("better supplier available",
		zap.String("tenant_id", alert.TenantID.String()),
		zap.String("product_id", alert.ProductID.String()),
		zap.String("current_supplier_id", alert.CurrentSupplierID.String()),
		zap.String("suggested_supplier_id", alert.SuggestedSupplierID.String()),
		zap.Float64("score_delta", alert.ScoreDelta),
	)
	return nil
}

var _ sourcing.AlertSink = (*LoggingAlertSink)(nil)
