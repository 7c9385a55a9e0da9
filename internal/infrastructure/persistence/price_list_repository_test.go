package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockPriceListRepository(t *testing.T) (*GormPriceListRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormPriceListRepository(gormDB), mock, mockDB
}

func priceListRows(listID, tenantID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "type", "direction", "status", "priority", "currency", "is_default"}).
		AddRow(listID, tenantID, "RETAIL", "Retail Prices", "sales", "output", "active", 10, "EUR", false)
}

func TestGormPriceListRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds price list within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		listID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "price_lists" WHERE \(tenant_id = \$1 AND id = \$2\).* LIMIT .*`).
			WithArgs(tenantID, listID, 1).
			WillReturnRows(priceListRows(listID, tenantID))

		list, err := repo.FindByIDForTenant(context.Background(), tenantID, listID)

		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Equal(t, listID, list.ID)
		assert.Equal(t, "RETAIL", list.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent price list", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		listID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "price_lists" WHERE \(tenant_id = \$1 AND id = \$2\).* LIMIT .*`).
			WithArgs(tenantID, listID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		list, err := repo.FindByIDForTenant(context.Background(), tenantID, listID)

		assert.Error(t, err)
		assert.Nil(t, list)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceListRepository_FindByCode(t *testing.T) {
	t.Run("normalizes the code to upper case", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		listID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "price_lists" WHERE \(tenant_id = \$1 AND code = \$2\).* LIMIT .*`).
			WithArgs(tenantID, "RETAIL", 1).
			WillReturnRows(priceListRows(listID, tenantID))

		list, err := repo.FindByCode(context.Background(), tenantID, "retail")

		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Equal(t, listID, list.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceListRepository_ExistsByCode(t *testing.T) {
	t.Run("reports an existing code", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "price_lists" WHERE \(tenant_id = \$1 AND code = \$2\).*`).
			WithArgs(tenantID, "RETAIL").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "RETAIL")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceListRepository_FindApplicable(t *testing.T) {
	t.Run("filters on direction, status and validity window", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		listID := uuid.New()
		tenantID := uuid.New()
		asOf := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "price_lists" WHERE .*direction = \$2.*ORDER BY priority DESC, id ASC`).
			WillReturnRows(priceListRows(listID, tenantID))

		lists, err := repo.FindApplicable(context.Background(), tenantID, pricing.DirectionOutput, asOf)

		assert.NoError(t, err)
		assert.Len(t, lists, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceListRepository_ClearDefault(t *testing.T) {
	t.Run("unsets every default flag of the type", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "price_lists" SET .*is_default.*`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.ClearDefault(context.Background(), tenantID, pricing.PriceListTypeSales)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceListRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceListRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "price_lists" SET "deleted_at"=.*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
