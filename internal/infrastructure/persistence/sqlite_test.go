package persistence

import (
	"testing"

	"github.com/erp/pricing/internal/domain/partner"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSqliteDB opens an in-memory database for tests that need real SQL
// behavior such as ordering and bulk updates, without a running Postgres
func newSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&pricing.PriceList{},
		&pricing.PriceListEntry{},
		&pricing.PriceListBusinessParty{},
		&partner.SupplierProduct{},
		&AuditLogEntry{},
	))

	return db
}
