// Package integration provides integration testing utilities for the pricing
// engine. It uses testcontainers to spin up real PostgreSQL databases.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/erp/pricing/internal/infrastructure/config"
	"github.com/erp/pricing/internal/infrastructure/logger"
	"github.com/erp/pricing/internal/infrastructure/persistence"
	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB creates a new PostgreSQL container for testing.
// This creates a fresh container for each test, providing complete isolation.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pricing_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, ctx, container)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates all tables in the database
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error
		if err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

// connectToDatabase opens the production Database wrapper against the
// container, exercising the same pool and logger wiring deployments use
func connectToDatabase(t *testing.T, ctx context.Context, container testcontainers.Container) (*gorm.DB, *sql.DB) {
	t.Helper()

	host, err := container.Host(ctx)
	require.NoError(t, err, "Failed to get container host")
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err, "Failed to get mapped port")

	cfg := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "postgres",
		Password:        "admin123",
		DBName:          "pricing_test",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 5,
	}

	level := "silent"
	zapLogger := zap.NewNop()
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = "info"
		zapLogger, err = zap.NewDevelopment()
		require.NoError(t, err)
	}
	gormLogger := logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(level))

	database, err := persistence.NewDatabaseWithLogger(cfg, gormLogger)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := database.DB.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	return database.DB, sqlDB
}

// runMigrations applies all database migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath locates the migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}

	if wd, err := os.Getwd(); err == nil {
		paths := []string{
			filepath.Join(wd, "migrations"),
			filepath.Join(wd, "..", "migrations"),
			filepath.Join(wd, "..", "..", "migrations"),
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}

// CreateTestProduct inserts a product row for tests that need catalog rows
func (tdb *TestDB) CreateTestProduct(tenantID, productID uuid.UUID) {
	tdb.t.Helper()

	code := fmt.Sprintf("PROD_%s", productID.String()[:8])
	name := fmt.Sprintf("Test Product %s", productID.String()[:8])

	err := tdb.DB.Exec(`
		INSERT INTO products (id, tenant_id, code, name, unit, default_price, status, version)
		VALUES (?, ?, ?, ?, 'pcs', 0, 'active', 1)
		ON CONFLICT (id) DO NOTHING
	`, productID, tenantID, code, name).Error
	require.NoError(tdb.t, err, "Failed to create test product")
}

// CreateTestSupplier inserts a supplier row
func (tdb *TestDB) CreateTestSupplier(tenantID, supplierID uuid.UUID) {
	tdb.t.Helper()

	code := fmt.Sprintf("SUP_%s", supplierID.String()[:8])
	name := fmt.Sprintf("Test Supplier %s", supplierID.String()[:8])

	err := tdb.DB.Exec(`
		INSERT INTO suppliers (id, tenant_id, code, name, status, rating, version)
		VALUES (?, ?, ?, ?, 'active', 0, 1)
		ON CONFLICT (id) DO NOTHING
	`, supplierID, tenantID, code, name).Error
	require.NoError(tdb.t, err, "Failed to create test supplier")
}

// CreateConfirmedReceipt inserts a confirmed goods receipt with one line
func (tdb *TestDB) CreateConfirmedReceipt(tenantID, supplierID, productID uuid.UUID, docDate time.Time, quantity, unitPrice decimal.Decimal) {
	tdb.t.Helper()

	receiptID := uuid.New()
	number := fmt.Sprintf("GR_%s", receiptID.String()[:8])

	err := tdb.DB.Exec(`
		INSERT INTO goods_receipts (id, tenant_id, document_number, supplier_id, document_date, status, version)
		VALUES (?, ?, ?, ?, ?, 'confirmed', 1)
	`, receiptID, tenantID, number, supplierID, docDate).Error
	require.NoError(tdb.t, err, "Failed to create test goods receipt")

	err = tdb.DB.Exec(`
		INSERT INTO goods_receipt_lines (id, goods_receipt_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New(), receiptID, productID, quantity, unitPrice).Error
	require.NoError(tdb.t, err, "Failed to create test goods receipt line")
}
