package catalog

import (
	"fmt"
	"strings"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitCategory groups units that measure the same kind of quantity
type UnitCategory string

const (
	UnitCategoryCount   UnitCategory = "count"
	UnitCategoryPackage UnitCategory = "package"
	UnitCategoryWeight  UnitCategory = "weight"
	UnitCategoryVolume  UnitCategory = "volume"
	UnitCategoryLength  UnitCategory = "length"
)

// UnitCategories lists every accepted category in display order
var UnitCategories = []UnitCategory{
	UnitCategoryCount,
	UnitCategoryPackage,
	UnitCategoryWeight,
	UnitCategoryVolume,
	UnitCategoryLength,
}

// IsValid reports whether the category is one of the known categories
func (c UnitCategory) IsValid() bool {
	for _, known := range UnitCategories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	maxUnitNameLength         = 50
	maxUnitAbbreviationLength = 10
)

// Unit is a measurement unit in the global registry (e.g. "Docena"/"doc").
// ConversionFactor, when set, relates the unit to its category's base unit
// and enables product-independent conversions.
type Unit struct {
	shared.BaseEntity
	Name             string
	Abbreviation     string
	Category         UnitCategory
	IsBaseUnit       bool
	ConversionFactor *decimal.Decimal
	Active           bool
}

// NewUnit creates a new active unit
func NewUnit(name, abbreviation string, category UnitCategory, isBaseUnit bool, conversionFactor *decimal.Decimal) (*Unit, error) {
	name = strings.TrimSpace(name)
	abbreviation = strings.TrimSpace(abbreviation)

	if err := validateUnitName(name); err != nil {
		return nil, err
	}
	if err := validateUnitAbbreviation(abbreviation); err != nil {
		return nil, err
	}
	if err := validateUnitCategory(category); err != nil {
		return nil, err
	}
	if err := validateConversionFactor(conversionFactor); err != nil {
		return nil, err
	}

	return &Unit{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		Abbreviation:     abbreviation,
		Category:         category,
		IsBaseUnit:       isBaseUnit,
		ConversionFactor: conversionFactor,
		Active:           true,
	}, nil
}

// UnitUpdate carries a partial update; nil fields are left untouched.
// ClearConversionFactor removes the factor even when ConversionFactor is nil.
type UnitUpdate struct {
	Name                  *string
	Abbreviation          *string
	Category              *UnitCategory
	IsBaseUnit            *bool
	ConversionFactor      *decimal.Decimal
	ClearConversionFactor bool
	Active                *bool
}

// Apply validates and applies a partial update
func (u *Unit) Apply(upd UnitUpdate) error {
	next := *u

	if upd.Name != nil {
		next.Name = strings.TrimSpace(*upd.Name)
		if err := validateUnitName(next.Name); err != nil {
			return err
		}
	}
	if upd.Abbreviation != nil {
		next.Abbreviation = strings.TrimSpace(*upd.Abbreviation)
		if err := validateUnitAbbreviation(next.Abbreviation); err != nil {
			return err
		}
	}
	if upd.Category != nil {
		if err := validateUnitCategory(*upd.Category); err != nil {
			return err
		}
		next.Category = *upd.Category
	}
	if upd.IsBaseUnit != nil {
		next.IsBaseUnit = *upd.IsBaseUnit
	}
	if upd.ClearConversionFactor {
		next.ConversionFactor = nil
	} else if upd.ConversionFactor != nil {
		if err := validateConversionFactor(upd.ConversionFactor); err != nil {
			return err
		}
		next.ConversionFactor = upd.ConversionFactor
	}
	if upd.Active != nil {
		next.Active = *upd.Active
	}

	next.Touch()
	*u = next
	return nil
}

// HasConversionFactor reports whether the unit can take part in global conversions
func (u *Unit) HasConversionFactor() bool {
	return u.ConversionFactor != nil && u.ConversionFactor.IsPositive()
}

// String renders the unit as "Name (abbr)"
func (u *Unit) String() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Abbreviation)
}

func validateUnitName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit name cannot be empty")
	}
	if len(name) > maxUnitNameLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit name cannot exceed 50 characters")
	}
	return nil
}

func validateUnitAbbreviation(abbreviation string) error {
	if abbreviation == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit abbreviation cannot be empty")
	}
	if len(abbreviation) > maxUnitAbbreviationLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit abbreviation cannot exceed 10 characters")
	}
	return nil
}

func validateUnitCategory(category UnitCategory) error {
	if !category.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown unit category '%s'", category))
	}
	return nil
}

func validateConversionFactor(factor *decimal.Decimal) error {
	if factor == nil {
		return nil
	}
	if !factor.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Conversion factor must be greater than zero")
	}
	return nil
}
