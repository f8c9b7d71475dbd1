package catalog

import (
	"fmt"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConvertBetween converts quantity from one configured unit to another by
// pivoting through the base unit. No rounding is applied.
func ConvertBetween(quantity decimal.Decimal, from, to *ProductUnit) decimal.Decimal {
	if from.UnitID == to.UnitID {
		return quantity
	}
	return to.FromBase(from.ToBase(quantity))
}

// ConvertGlobal converts between two registry units using their intrinsic
// factors. Both units need a factor and must share a category.
func ConvertGlobal(quantity decimal.Decimal, from, to *Unit) (decimal.Decimal, error) {
	if from.ID == to.ID {
		return quantity, nil
	}
	if !from.HasConversionFactor() || !to.HasConversionFactor() {
		return decimal.Zero, shared.IncompatibleUnitsError(
			fmt.Sprintf("Units %s and %s cannot be converted without a conversion factor", from.Abbreviation, to.Abbreviation))
	}
	if from.Category != to.Category {
		return decimal.Zero, shared.IncompatibleUnitsError(
			fmt.Sprintf("Cannot convert %s (%s) to %s (%s)", from.Abbreviation, from.Category, to.Abbreviation, to.Category))
	}
	return quantity.Mul(*from.ConversionFactor).Div(*to.ConversionFactor), nil
}

// ConversionEntry is one ordered pair of a product's conversion table
type ConversionEntry struct {
	FromUnitID       uuid.UUID
	FromAbbreviation string
	FromName         string
	ToUnitID         uuid.UUID
	ToAbbreviation   string
	ToName           string
	Factor           decimal.Decimal
	Label            string
}

// labelPrecision bounds the decimals shown in a table label
const labelPrecision = 6

// BuildConversionTable returns an entry for every ordered pair of distinct
// configured units, in configuration order.
func BuildConversionTable(units []ConfiguredUnit) []ConversionEntry {
	if len(units) < 2 {
		return []ConversionEntry{}
	}
	one := decimal.NewFromInt(1)
	table := make([]ConversionEntry, 0, len(units)*(len(units)-1))
	for i := range units {
		for j := range units {
			if i == j {
				continue
			}
			from, to := &units[i], &units[j]
			factor := ConvertBetween(one, &from.ProductUnit, &to.ProductUnit)
			table = append(table, ConversionEntry{
				FromUnitID:       from.UnitID,
				FromAbbreviation: from.Unit.Abbreviation,
				FromName:         from.Unit.Name,
				ToUnitID:         to.UnitID,
				ToAbbreviation:   to.Unit.Abbreviation,
				ToName:           to.Unit.Name,
				Factor:           factor,
				Label: fmt.Sprintf("1 %s = %s %s",
					from.Unit.Abbreviation, factor.Round(labelPrecision).String(), to.Unit.Abbreviation),
			})
		}
	}
	return table
}
