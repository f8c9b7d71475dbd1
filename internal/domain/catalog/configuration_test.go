package catalog

import (
	"errors"
	"testing"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(unitID uuid.UUID, ratio int64, base bool) ConfigurationEntry {
	return ConfigurationEntry{UnitID: unitID, Ratio: decimal.NewFromInt(ratio), IsBaseUnit: base, IsSalesUnit: true}
}

func TestBuildConfiguration(t *testing.T) {
	productID := uuid.New()
	pz, doc, box := uuid.New(), uuid.New(), uuid.New()

	t.Run("keeps request order", func(t *testing.T) {
		rows, err := BuildConfiguration(productID, []ConfigurationEntry{
			entry(doc, 12, false), entry(pz, 1, true), entry(box, 24, false),
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, doc, rows[0].UnitID)
		assert.Equal(t, 1, rows[1].SortOrder)
		assert.True(t, rows[1].IsBaseUnit)
		assert.Equal(t, productID, rows[2].ProductID)
	})

	t.Run("empty set unconfigures", func(t *testing.T) {
		rows, err := BuildConfiguration(productID, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	tests := []struct {
		name    string
		entries []ConfigurationEntry
		wantMsg string
	}{
		{"no base", []ConfigurationEntry{entry(pz, 1, false), entry(doc, 12, false)}, "Exactly one base unit is required, got 0"},
		{"two bases", []ConfigurationEntry{entry(pz, 1, true), entry(doc, 1, true)}, "got 2"},
		{"duplicate unit", []ConfigurationEntry{entry(pz, 1, true), entry(pz, 12, false)}, "more than once"},
		{"zero ratio", []ConfigurationEntry{entry(pz, 1, true), entry(doc, 0, false)}, "greater than zero"},
		{"base ratio not one", []ConfigurationEntry{entry(pz, 2, true)}, "Base unit ratio must be 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildConfiguration(productID, tt.entries)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBaseRules(t *testing.T) {
	base, err := NewProductUnit(uuid.New(), uuid.New(), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, base.SetRoles(true, true, true))

	other, err := NewProductUnit(base.ProductID, uuid.New(), decimal.NewFromInt(12))
	require.NoError(t, err)

	assert.NoError(t, CheckBaseOnCreate(0, base))
	assert.Error(t, CheckBaseOnCreate(0, other))
	assert.NoError(t, CheckBaseOnCreate(1, other))
	assert.Error(t, CheckBaseOnCreate(1, base))

	demoted := *base
	demoted.IsBaseUnit = false
	assert.Error(t, CheckBaseOnUpdate(base, &demoted))
	promoted := *other
	promoted.IsBaseUnit = true
	assert.Error(t, CheckBaseOnUpdate(other, &promoted))
	assert.NoError(t, CheckBaseOnUpdate(other, other))

	assert.Error(t, CheckBaseOnDelete(base, 2))
	assert.NoError(t, CheckBaseOnDelete(base, 1))
	assert.NoError(t, CheckBaseOnDelete(other, 2))
}

func TestProductUnit_Apply(t *testing.T) {
	pu, err := NewProductUnit(uuid.New(), uuid.New(), decimal.NewFromInt(12))
	require.NoError(t, err)

	ratio := decimal.NewFromInt(6)
	require.NoError(t, pu.Apply(ProductUnitUpdate{Ratio: &ratio, PriceOverride: decPtr("40")}))
	assert.Equal(t, "6", pu.Ratio.String())
	require.NotNil(t, pu.PriceOverride)

	require.NoError(t, pu.Apply(ProductUnitUpdate{ClearPriceOverride: true}))
	assert.Nil(t, pu.PriceOverride)

	zero := decimal.Zero
	err = pu.Apply(ProductUnitUpdate{Ratio: &zero})
	assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
	assert.Equal(t, "6", pu.Ratio.String())
}
