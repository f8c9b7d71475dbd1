package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductUnitRepository_FindByProductID(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	f.configure(t, db)
	repo := NewGormProductUnitRepository(db)
	ctx := context.Background()

	configured, err := repo.FindByProductID(ctx, f.product.ID)
	require.NoError(t, err)
	require.Len(t, configured, 3)

	assert.Equal(t, f.piece.ID, configured[0].UnitID, "base unit comes first")
	assert.True(t, configured[0].IsBaseUnit)
	assert.Equal(t, "pz", configured[0].Unit.Abbreviation)
	assert.Equal(t, f.dozen.ID, configured[1].UnitID)
	assert.Equal(t, f.box.ID, configured[2].UnitID)
	assert.True(t, configured[2].IsPurchaseUnit)
	assert.True(t, configured[1].Ratio.Equal(decimal.NewFromInt(12)))

	empty, err := repo.FindByProductID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProductUnitRepository_Lookups(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	rows := f.configure(t, db)
	repo := NewGormProductUnitRepository(db)
	ctx := context.Background()

	t.Run("base unit", func(t *testing.T) {
		base, err := repo.FindBaseUnit(ctx, f.product.ID)
		require.NoError(t, err)
		assert.Equal(t, f.piece.ID, base.UnitID)
		assert.Equal(t, "Pieza", base.Unit.Name)

		_, err = repo.FindBaseUnit(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("by product and unit", func(t *testing.T) {
		cu, err := repo.FindByProductAndUnit(ctx, f.product.ID, f.box.ID)
		require.NoError(t, err)
		assert.Equal(t, "cja", cu.Unit.Abbreviation)

		_, err = repo.FindByProductAndUnit(ctx, f.product.ID, f.kilo.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		exists, err := repo.ExistsByProductAndUnit(ctx, f.product.ID, f.kilo.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("by id", func(t *testing.T) {
		pu, err := repo.FindByID(ctx, rows[0].ID)
		require.NoError(t, err)
		assert.Equal(t, rows[0].UnitID, pu.UnitID)

		cu, err := repo.FindConfiguredByID(ctx, rows[0].ID)
		require.NoError(t, err)
		assert.Equal(t, rows[0].UnitID, cu.Unit.ID)
	})

	t.Run("sort order", func(t *testing.T) {
		next, err := repo.NextSortOrder(ctx, f.product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, next)

		next, err = repo.NextSortOrder(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, next)
	})
}

func TestGormProductUnitRepository_SaveAndDelete(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	rows := f.configure(t, db)
	repo := NewGormProductUnitRepository(db)
	ctx := context.Background()

	t.Run("duplicate unit for product", func(t *testing.T) {
		dup, err := catalog.NewProductUnit(f.product.ID, f.dozen.ID, decimal.NewFromInt(6))
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrDuplicateKey))
	})

	t.Run("update keeps row identity", func(t *testing.T) {
		dozen := rows[0]
		price := decimal.RequireFromString("38.00")
		require.NoError(t, dozen.Apply(catalog.ProductUnitUpdate{PriceOverride: &price}))
		require.NoError(t, repo.Save(ctx, dozen))

		cu, err := repo.FindByProductAndUnit(ctx, f.product.ID, f.dozen.ID)
		require.NoError(t, err)
		assert.Equal(t, dozen.ID, cu.ID)
		require.NotNil(t, cu.PriceOverride)
		assert.True(t, cu.PriceOverride.Equal(price))
	})

	t.Run("delete single and missing", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, rows[2].ID))
		err := repo.Delete(ctx, rows[2].ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("delete by product", func(t *testing.T) {
		require.NoError(t, repo.DeleteByProductID(ctx, f.product.ID))
		configured, err := repo.FindByProductID(ctx, f.product.ID)
		require.NoError(t, err)
		assert.Empty(t, configured)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.SaveBatch(ctx, nil))
	})
}
