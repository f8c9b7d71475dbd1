package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUnitRepository_FindByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	repo := NewGormUnitRepository(db)
	ctx := context.Background()

	t.Run("finds existing unit", func(t *testing.T) {
		u, err := repo.FindByID(ctx, f.kilo.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kilogramo", u.Name)
		require.NotNil(t, u.ConversionFactor)
		assert.Equal(t, "1000", u.ConversionFactor.String())
		assert.True(t, u.Active)
	})

	t.Run("missing unit is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("find by ids skips unknown", func(t *testing.T) {
		units, err := repo.FindByIDs(ctx, []uuid.UUID{f.piece.ID, uuid.New(), f.box.ID})
		require.NoError(t, err)
		assert.Len(t, units, 2)
	})
}

func TestGormUnitRepository_FindAll(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedBakery(t, db)
	repo := NewGormUnitRepository(db)
	ctx := context.Background()

	t.Run("orders by category then name", func(t *testing.T) {
		units, total, err := repo.FindAll(ctx, catalog.UnitFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		names := make([]string, len(units))
		for i, u := range units {
			names[i] = u.Name
		}
		assert.Equal(t, []string{"Pieza", "Caja", "Docena", "Kilogramo"}, names)
	})

	t.Run("search is case insensitive on name or abbreviation", func(t *testing.T) {
		units, total, err := repo.FindAll(ctx, catalog.UnitFilter{Filter: shared.Filter{Search: "DOC"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Docena", units[0].Name)

		_, total, err = repo.FindAll(ctx, catalog.UnitFilter{Filter: shared.Filter{Search: "kg"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filters by category and active", func(t *testing.T) {
		cat := catalog.UnitCategoryPackage
		units, total, err := repo.FindAll(ctx, catalog.UnitFilter{Category: &cat, Active: ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, units, 2)

		_, total, err = repo.FindAll(ctx, catalog.UnitFilter{Active: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("pages keep the full total", func(t *testing.T) {
		units, total, err := repo.FindAll(ctx, catalog.UnitFilter{Filter: shared.Filter{Page: 2, PageSize: 3}})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, units, 1)
		assert.Equal(t, "Kilogramo", units[0].Name)
	})
}

func TestGormUnitRepository_FindAll_LiteralWildcards(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedBakery(t, db)
	repo := NewGormUnitRepository(db)
	ctx := context.Background()

	for _, u := range []struct{ name, abbr string }{
		{"Bolsa_chica", "bch"},
		{"Bolsa 50%", "b50"},
		{`Charola\grande`, "chg"},
	} {
		unit, err := catalog.NewUnit(u.name, u.abbr, catalog.UnitCategoryPackage, false, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, unit))
	}

	tests := []struct {
		search string
		want   string
	}{
		{"_", "Bolsa_chica"},
		{"%", "Bolsa 50%"},
		{`\`, `Charola\grande`},
		{"a_c", "Bolsa_chica"},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			units, total, err := repo.FindAll(ctx, catalog.UnitFilter{Filter: shared.Filter{Search: tt.search}})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			require.Len(t, units, 1)
			assert.Equal(t, tt.want, units[0].Name)
		})
	}
}

func TestGormUnitRepository_Uniqueness(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	repo := NewGormUnitRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsByName(ctx, "Docena", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "Docena", &f.dozen.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByAbbreviation(ctx, "cja", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	dup, err := catalog.NewUnit("Otra docena", "doc", catalog.UnitCategoryPackage, false, nil)
	require.NoError(t, err)
	err = repo.Save(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))
}

func TestGormUnitRepository_DeleteAndUsages(t *testing.T) {
	db := setupCatalogTestDB(t)
	f := seedBakery(t, db)
	f.configure(t, db)
	repo := NewGormUnitRepository(db)
	ctx := context.Background()

	usages, err := repo.FindUsages(ctx, f.dozen.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, f.product.ID, usages[0].ProductID)
	assert.Equal(t, "BOL-01", usages[0].ProductCode)
	assert.Equal(t, "Bolillo", usages[0].ProductName)

	usages, err = repo.FindUsages(ctx, f.kilo.ID)
	require.NoError(t, err)
	assert.Empty(t, usages)

	require.NoError(t, repo.Delete(ctx, f.kilo.ID))
	_, err = repo.FindByID(ctx, f.kilo.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	err = repo.Delete(ctx, f.kilo.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
