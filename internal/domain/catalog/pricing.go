package catalog

import (
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	currencyPrecision     = 2
	baseQuantityPrecision = 6
)

// EffectivePrice is the price of one unit: the override when set, otherwise
// the base price scaled by the ratio. Rounded to currency precision.
func EffectivePrice(basePrice, ratio decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return override.Round(currencyPrecision)
	}
	return basePrice.Mul(ratio).Round(currencyPrecision)
}

// SalesQuote prices a sale of quantity in a configured sales unit
type SalesQuote struct {
	Quantity     decimal.Decimal
	BaseQuantity decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// QuoteSale prices quantity of the configured unit for product
func QuoteSale(product *Product, unit *ProductUnit, quantity decimal.Decimal) (*SalesQuote, error) {
	if !quantity.IsPositive() {
		return nil, shared.InvalidConfigurationError("Quantity must be greater than zero")
	}
	if !unit.IsSalesUnit {
		return nil, shared.InvalidConfigurationError("Unit is not offered for sale for this product")
	}
	price := EffectivePrice(product.BasePrice, unit.Ratio, unit.PriceOverride)
	return &SalesQuote{
		Quantity:     quantity,
		BaseQuantity: unit.ToBase(quantity).Round(baseQuantityPrecision),
		UnitPrice:    price,
		Subtotal:     price.Mul(quantity).Round(currencyPrecision),
	}, nil
}
