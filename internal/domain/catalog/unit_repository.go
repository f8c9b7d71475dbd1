package catalog

import (
	"context"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UnitFilter narrows a unit listing
type UnitFilter struct {
	shared.Filter
	Category *UnitCategory
	Active   *bool
}

// UnitUsage is a product that has the unit configured
type UnitUsage struct {
	ProductID   uuid.UUID
	ProductCode string
	ProductName string
}

// UnitRepository defines persistence operations for the unit registry
type UnitRepository interface {
	// FindByID returns shared.ErrNotFound when the unit does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByIDs returns the units that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Unit, error)

	// FindAll lists units ordered by category then name
	FindAll(ctx context.Context, filter UnitFilter) ([]Unit, int64, error)

	// ExistsByName checks name uniqueness, ignoring excludeID when not nil
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// ExistsByAbbreviation checks abbreviation uniqueness, ignoring excludeID when not nil
	ExistsByAbbreviation(ctx context.Context, abbreviation string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// Delete removes a unit
	Delete(ctx context.Context, id uuid.UUID) error

	// FindUsages lists the products configured with the unit
	FindUsages(ctx context.Context, id uuid.UUID) ([]UnitUsage, error)
}
