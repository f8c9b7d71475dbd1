package catalog

import (
	"fmt"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUnit configures one unit for a product. Ratio is the number of
// base units contained in one of this unit (1 dozen = 12 pieces).
type ProductUnit struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	UnitID         uuid.UUID
	Ratio          decimal.Decimal
	IsBaseUnit     bool
	IsSalesUnit    bool
	IsPurchaseUnit bool
	PriceOverride  *decimal.Decimal
	SortOrder      int
}

// ConfiguredUnit is a product unit joined with its registry unit
type ConfiguredUnit struct {
	ProductUnit
	Unit Unit
}

// NewProductUnit creates a product unit with the given ratio
func NewProductUnit(productID, unitID uuid.UUID, ratio decimal.Decimal) (*ProductUnit, error) {
	if err := validateRatio(ratio); err != nil {
		return nil, err
	}
	return &ProductUnit{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UnitID:     unitID,
		Ratio:      ratio,
	}, nil
}

// SetRoles sets the base, sales and purchase flags
func (pu *ProductUnit) SetRoles(isBase, isSales, isPurchase bool) error {
	if isBase && !pu.Ratio.Equal(decimal.NewFromInt(1)) {
		return shared.InvalidConfigurationError("Base unit ratio must be 1")
	}
	pu.IsBaseUnit = isBase
	pu.IsSalesUnit = isSales
	pu.IsPurchaseUnit = isPurchase
	pu.Touch()
	return nil
}

// SetPriceOverride sets or clears (nil) the per-unit price
func (pu *ProductUnit) SetPriceOverride(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Price override cannot be negative")
	}
	pu.PriceOverride = price
	pu.Touch()
	return nil
}

// ProductUnitUpdate carries a partial update; nil fields are left untouched.
type ProductUnitUpdate struct {
	Ratio              *decimal.Decimal
	IsBaseUnit         *bool
	IsSalesUnit        *bool
	IsPurchaseUnit     *bool
	PriceOverride      *decimal.Decimal
	ClearPriceOverride bool
}

// Apply validates and applies a partial update
func (pu *ProductUnit) Apply(upd ProductUnitUpdate) error {
	next := *pu
	if upd.Ratio != nil {
		if err := validateRatio(*upd.Ratio); err != nil {
			return err
		}
		next.Ratio = *upd.Ratio
	}
	if upd.IsBaseUnit != nil {
		next.IsBaseUnit = *upd.IsBaseUnit
	}
	if upd.IsSalesUnit != nil {
		next.IsSalesUnit = *upd.IsSalesUnit
	}
	if upd.IsPurchaseUnit != nil {
		next.IsPurchaseUnit = *upd.IsPurchaseUnit
	}
	if upd.ClearPriceOverride {
		next.PriceOverride = nil
	} else if upd.PriceOverride != nil {
		if upd.PriceOverride.IsNegative() {
			return shared.NewDomainError(shared.CodeInvalidInput, "Price override cannot be negative")
		}
		next.PriceOverride = upd.PriceOverride
	}
	if next.IsBaseUnit && !next.Ratio.Equal(decimal.NewFromInt(1)) {
		return shared.InvalidConfigurationError("Base unit ratio must be 1")
	}
	next.Touch()
	*pu = next
	return nil
}

// ToBase converts a quantity in this unit to base units
func (pu *ProductUnit) ToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pu.Ratio)
}

// FromBase converts a quantity in base units to this unit
func (pu *ProductUnit) FromBase(baseQuantity decimal.Decimal) decimal.Decimal {
	return baseQuantity.Div(pu.Ratio)
}

func validateRatio(ratio decimal.Decimal) error {
	if !ratio.IsPositive() {
		return shared.InvalidConfigurationError(fmt.Sprintf("Ratio must be greater than zero, got %s", ratio))
	}
	return nil
}
