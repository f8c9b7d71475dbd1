package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductUnitRepository defines persistence operations for product unit configurations
type ProductUnitRepository interface {
	// FindByID returns shared.ErrNotFound when the configuration does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*ProductUnit, error)

	// FindConfiguredByID returns the configuration joined with its unit
	FindConfiguredByID(ctx context.Context, id uuid.UUID) (*ConfiguredUnit, error)

	// FindByProductID lists a product's configuration, base unit first then insertion order
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]ConfiguredUnit, error)

	// FindByProductAndUnit returns shared.ErrNotFound when the unit is not configured for the product
	FindByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (*ConfiguredUnit, error)

	// FindBaseUnit returns shared.ErrNotFound for unconfigured products
	FindBaseUnit(ctx context.Context, productID uuid.UUID) (*ConfiguredUnit, error)

	// ExistsByProductAndUnit reports whether the pair is already configured
	ExistsByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (bool, error)

	// NextSortOrder returns the sort order for a row appended to the product's set
	NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error)

	// Save creates or updates a configuration
	Save(ctx context.Context, pu *ProductUnit) error

	// SaveBatch inserts a full configuration set
	SaveBatch(ctx context.Context, units []*ProductUnit) error

	// Delete removes a configuration
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProductID removes every configuration of a product
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}
