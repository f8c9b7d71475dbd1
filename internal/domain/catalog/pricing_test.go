package catalog

import (
	"errors"
	"testing"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	base := decimal.RequireFromString("3.50")

	assert.Equal(t, "42", EffectivePrice(base, decimal.NewFromInt(12), nil).String())
	assert.Equal(t, "38.5", EffectivePrice(base, decimal.NewFromInt(12), decPtr("38.50")).String())
	assert.Equal(t, "0.29", EffectivePrice(base, decimal.RequireFromString("0.083333"), nil).String())
}

func TestQuoteSale(t *testing.T) {
	set := bakerySet(t)
	product, err := NewProduct("BOL-01", "Bolillo", decimal.RequireFromString("3.50"))
	require.NoError(t, err)

	t.Run("prices dozens from base price", func(t *testing.T) {
		q, err := QuoteSale(product, &set[1].ProductUnit, decimal.NewFromInt(2))
		require.NoError(t, err)
		assert.Equal(t, "24", q.BaseQuantity.String())
		assert.Equal(t, "42", q.UnitPrice.String())
		assert.Equal(t, "84", q.Subtotal.String())
	})

	t.Run("override wins", func(t *testing.T) {
		box := set[2].ProductUnit
		require.NoError(t, box.SetPriceOverride(decPtr("75")))
		q, err := QuoteSale(product, &box, decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.Equal(t, "225", q.Subtotal.String())
	})

	t.Run("rejects non sales unit", func(t *testing.T) {
		pz := set[0].ProductUnit
		pz.IsSalesUnit = false
		_, err := QuoteSale(product, &pz, decimal.NewFromInt(1))
		assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		_, err := QuoteSale(product, &set[0].ProductUnit, decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidConfiguration))
	})
}
