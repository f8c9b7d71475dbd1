package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupCatalogTestDB opens an in-memory SQLite database with the catalog
// tables. A single connection keeps every query on the same in-memory file.
func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.UnitModel{}, &models.ProductModel{}, &models.ProductUnitModel{}))
	return db
}

// newMockGormDB returns a PostgreSQL-dialect GORM handle backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

type bakeryFixture struct {
	product *catalog.Product
	piece   *catalog.Unit
	dozen   *catalog.Unit
	box     *catalog.Unit
	kilo    *catalog.Unit
}

func seedBakery(t *testing.T, db *gorm.DB) bakeryFixture {
	t.Helper()
	ctx := context.Background()
	units := NewGormUnitRepository(db)
	products := NewGormProductRepository(db)

	mkUnit := func(name, abbr string, cat catalog.UnitCategory, factor *decimal.Decimal) *catalog.Unit {
		u, err := catalog.NewUnit(name, abbr, cat, false, factor)
		require.NoError(t, err)
		require.NoError(t, units.Save(ctx, u))
		return u
	}
	thousand := decimal.NewFromInt(1000)

	product, err := catalog.NewProduct("BOL-01", "Bolillo", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, product))

	return bakeryFixture{
		product: product,
		piece:   mkUnit("Pieza", "pz", catalog.UnitCategoryCount, nil),
		dozen:   mkUnit("Docena", "doc", catalog.UnitCategoryPackage, nil),
		box:     mkUnit("Caja", "cja", catalog.UnitCategoryPackage, nil),
		kilo:    mkUnit("Kilogramo", "kg", catalog.UnitCategoryWeight, &thousand),
	}
}

// configure stores pieces (base), dozens (12) and boxes (24) for the fixture product
func (f bakeryFixture) configure(t *testing.T, db *gorm.DB) []*catalog.ProductUnit {
	t.Helper()
	rows, err := catalog.BuildConfiguration(f.product.ID, []catalog.ConfigurationEntry{
		{UnitID: f.dozen.ID, Ratio: decimal.NewFromInt(12), IsSalesUnit: true},
		{UnitID: f.piece.ID, Ratio: decimal.NewFromInt(1), IsBaseUnit: true, IsSalesUnit: true},
		{UnitID: f.box.ID, Ratio: decimal.NewFromInt(24), IsPurchaseUnit: true},
	})
	require.NoError(t, err)
	require.NoError(t, NewGormProductUnitRepository(db).SaveBatch(context.Background(), rows))
	return rows
}

func ptr[T any](v T) *T { return &v }
