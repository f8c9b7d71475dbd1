package catalog

import (
	"fmt"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfigurationEntry is one requested row of a bulk configuration
type ConfigurationEntry struct {
	UnitID         uuid.UUID
	Ratio          decimal.Decimal
	IsBaseUnit     bool
	IsSalesUnit    bool
	IsPurchaseUnit bool
	PriceOverride  *decimal.Decimal
}

// BuildConfiguration validates a full configuration set and returns the rows
// to persist in request order. An empty set is valid and unconfigures the product.
func BuildConfiguration(productID uuid.UUID, entries []ConfigurationEntry) ([]*ProductUnit, error) {
	if len(entries) == 0 {
		return []*ProductUnit{}, nil
	}

	bases := 0
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if e.IsBaseUnit {
			bases++
		}
		if _, dup := seen[e.UnitID]; dup {
			return nil, shared.InvalidConfigurationError(fmt.Sprintf("Unit %s appears more than once", e.UnitID))
		}
		seen[e.UnitID] = struct{}{}
	}
	if bases != 1 {
		return nil, shared.InvalidConfigurationError(fmt.Sprintf("Exactly one base unit is required, got %d", bases))
	}

	rows := make([]*ProductUnit, 0, len(entries))
	for i, e := range entries {
		pu, err := NewProductUnit(productID, e.UnitID, e.Ratio)
		if err != nil {
			return nil, err
		}
		if err := pu.SetRoles(e.IsBaseUnit, e.IsSalesUnit, e.IsPurchaseUnit); err != nil {
			return nil, err
		}
		if err := pu.SetPriceOverride(e.PriceOverride); err != nil {
			return nil, err
		}
		pu.SortOrder = i
		rows = append(rows, pu)
	}
	return rows, nil
}

// CheckBaseOnCreate enforces the single-base rule when one row is added to an
// existing set of size configured.
func CheckBaseOnCreate(configured int, candidate *ProductUnit) error {
	if configured == 0 && !candidate.IsBaseUnit {
		return shared.InvalidConfigurationError("The first unit configured for a product must be its base unit")
	}
	if configured > 0 && candidate.IsBaseUnit {
		return shared.InvalidConfigurationError("Product already has a base unit; reconfigure the product to change it")
	}
	return nil
}

// CheckBaseOnUpdate rejects updates that would leave zero or two base rows
func CheckBaseOnUpdate(before, after *ProductUnit) error {
	switch {
	case before.IsBaseUnit && !after.IsBaseUnit:
		return shared.InvalidConfigurationError("The base unit cannot be demoted; reconfigure the product to change it")
	case !before.IsBaseUnit && after.IsBaseUnit:
		return shared.InvalidConfigurationError("Product already has a base unit; reconfigure the product to change it")
	}
	return nil
}

// CheckBaseOnDelete rejects removing the base row while other rows depend on it
func CheckBaseOnDelete(target *ProductUnit, configured int) error {
	if target.IsBaseUnit && configured > 1 {
		return shared.InvalidConfigurationError("The base unit cannot be removed while other units are configured")
	}
	return nil
}
