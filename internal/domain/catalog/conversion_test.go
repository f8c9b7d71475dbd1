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

// bakerySet returns pieces (base), dozen (12) and box (24) for one product
func bakerySet(t *testing.T) []ConfiguredUnit {
	t.Helper()
	return bakerySetWithBox(t, 24)
}

func bakerySetWithBox(t *testing.T, boxRatio int64) []ConfiguredUnit {
	t.Helper()
	productID := uuid.New()
	mk := func(name, abbr string, ratio int64, base bool) ConfiguredUnit {
		u, err := NewUnit(name, abbr, UnitCategoryCount, base, nil)
		require.NoError(t, err)
		pu, err := NewProductUnit(productID, u.ID, decimal.NewFromInt(ratio))
		require.NoError(t, err)
		require.NoError(t, pu.SetRoles(base, true, !base))
		return ConfiguredUnit{ProductUnit: *pu, Unit: *u}
	}
	return []ConfiguredUnit{
		mk("Pieza", "pz", 1, true),
		mk("Docena", "doc", 12, false),
		mk("Caja", "cja", boxRatio, false),
	}
}

func TestConvertBetween(t *testing.T) {
	set := bakerySet(t)
	pz, doc, box := &set[0].ProductUnit, &set[1].ProductUnit, &set[2].ProductUnit
	flat := bakerySetWithBox(t, 12)
	flatPz, flatDoc, flatBox := &flat[0].ProductUnit, &flat[1].ProductUnit, &flat[2].ProductUnit

	tests := []struct {
		name string
		q    string
		from *ProductUnit
		to   *ProductUnit
		want string
	}{
		{"dozens to pieces", "3", doc, pz, "36"},
		{"boxes to dozens", "2", box, doc, "4"},
		{"pieces to dozens", "30", pz, doc, "2.5"},
		{"identity", "7.125", doc, doc, "7.125"},
		{"dozen to box of twelve", "1", flatDoc, flatBox, "1"},
		{"box of twelve to pieces", "1", flatBox, flatPz, "12"},
		{"pieces to box of twelve", "6", flatPz, flatBox, "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertBetween(decimal.RequireFromString(tt.q), tt.from, tt.to)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}

	t.Run("round trip within precision", func(t *testing.T) {
		q := decimal.NewFromInt(5)
		back := ConvertBetween(ConvertBetween(q, pz, doc), doc, pz)
		assert.True(t, back.Sub(q).Abs().LessThan(decimal.New(1, -9)), "got %s", back)
	})
}

func TestBuildConversionTable(t *testing.T) {
	set := bakerySet(t)

	t.Run("three units produce six pairs", func(t *testing.T) {
		table := BuildConversionTable(set)
		require.Len(t, table, 6)

		assert.Equal(t, "1 pz = 0.083333 doc", table[0].Label)
		assert.Equal(t, "1 pz = 0.041667 cja", table[1].Label)
		assert.Equal(t, "1 doc = 12 pz", table[2].Label)
		assert.Equal(t, "1 doc = 0.5 cja", table[3].Label)
		assert.Equal(t, "1 cja = 24 pz", table[4].Label)
		assert.Equal(t, "1 cja = 2 doc", table[5].Label)
		assert.True(t, table[5].Factor.Equal(decimal.NewFromInt(2)))
	})

	t.Run("single unit has no pairs", func(t *testing.T) {
		assert.Empty(t, BuildConversionTable(set[:1]))
	})
}

func TestConvertGlobal(t *testing.T) {
	kg, err := NewUnit("Kilogramo", "kg", UnitCategoryWeight, true, decPtr("1000"))
	require.NoError(t, err)
	g, err := NewUnit("Gramo", "g", UnitCategoryWeight, false, decPtr("1"))
	require.NoError(t, err)
	l, err := NewUnit("Litro", "l", UnitCategoryVolume, true, decPtr("1000"))
	require.NoError(t, err)
	bag, err := NewUnit("Bolsa", "bol", UnitCategoryPackage, false, nil)
	require.NoError(t, err)

	got, err := ConvertGlobal(decimal.RequireFromString("1.5"), kg, g)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1500)))

	got, err = ConvertGlobal(decimal.NewFromInt(250), g, kg)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.25")))

	_, err = ConvertGlobal(decimal.NewFromInt(1), kg, l)
	assert.True(t, errors.Is(err, shared.ErrIncompatibleUnits))

	_, err = ConvertGlobal(decimal.NewFromInt(1), bag, g)
	assert.True(t, errors.Is(err, shared.ErrIncompatibleUnits))

	got, err = ConvertGlobal(decimal.NewFromInt(3), bag, bag)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(3)))
}
