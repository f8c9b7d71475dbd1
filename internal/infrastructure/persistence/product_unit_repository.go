package persistence

import (
	"context"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/bizcocho/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateProductUnitMessage = "This unit is already configured for the product"

// configurationOrder lists the base unit first, then rows in insertion order
const configurationOrder = "product_units.is_base_unit DESC, product_units.sort_order ASC, product_units.created_at ASC"

// GormProductUnitRepository implements ProductUnitRepository using GORM
type GormProductUnitRepository struct {
	db *gorm.DB
}

// NewGormProductUnitRepository creates a new GormProductUnitRepository
func NewGormProductUnitRepository(db *gorm.DB) *GormProductUnitRepository {
	return &GormProductUnitRepository{db: db}
}

// FindByID finds a product unit by its ID
func (r *GormProductUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductUnit, error) {
	var model models.ProductUnitModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// FindConfiguredByID finds a product unit by ID with its unit loaded
func (r *GormProductUnitRepository) FindConfiguredByID(ctx context.Context, id uuid.UUID) (*catalog.ConfiguredUnit, error) {
	var model models.ProductUnitModel
	if err := r.db.WithContext(ctx).Preload("Unit").Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	cu := model.ToConfigured()
	return &cu, nil
}

// FindByProductID lists a product's configuration with units loaded
func (r *GormProductUnitRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ConfiguredUnit, error) {
	var unitModels []models.ProductUnitModel
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("product_id = ?", productID).
		Order(configurationOrder).
		Find(&unitModels).Error; err != nil {
		return nil, err
	}

	configured := make([]catalog.ConfiguredUnit, len(unitModels))
	for i := range unitModels {
		configured[i] = unitModels[i].ToConfigured()
	}
	return configured, nil
}

// FindByProductAndUnit finds the configuration of one unit for a product
func (r *GormProductUnitRepository) FindByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (*catalog.ConfiguredUnit, error) {
	var model models.ProductUnitModel
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("product_id = ? AND unit_id = ?", productID, unitID).
		First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	cu := model.ToConfigured()
	return &cu, nil
}

// FindBaseUnit finds the base unit row of a product
func (r *GormProductUnitRepository) FindBaseUnit(ctx context.Context, productID uuid.UUID) (*catalog.ConfiguredUnit, error) {
	var model models.ProductUnitModel
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("product_id = ? AND is_base_unit = ?", productID, true).
		First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	cu := model.ToConfigured()
	return &cu, nil
}

// ExistsByProductAndUnit checks if the unit is configured for the product
func (r *GormProductUnitRepository) ExistsByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductUnitModel{}).
		Where("product_id = ? AND unit_id = ?", productID, unitID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSortOrder returns one past the highest sort order of the product
func (r *GormProductUnitRepository) NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	var maxOrder int
	if err := r.db.WithContext(ctx).
		Model(&models.ProductUnitModel{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// Save creates or updates a product unit
func (r *GormProductUnitRepository) Save(ctx context.Context, pu *catalog.ProductUnit) error {
	model := models.ProductUnitModelFromDomain(pu)
	return translateError(r.db.WithContext(ctx).Omit("Unit", "Product").Save(model).Error, duplicateProductUnitMessage)
}

// SaveBatch inserts a full configuration set
func (r *GormProductUnitRepository) SaveBatch(ctx context.Context, units []*catalog.ProductUnit) error {
	if len(units) == 0 {
		return nil
	}
	unitModels := make([]*models.ProductUnitModel, len(units))
	for i, pu := range units {
		unitModels[i] = models.ProductUnitModelFromDomain(pu)
	}
	return translateError(r.db.WithContext(ctx).Omit("Unit", "Product").Create(&unitModels).Error, duplicateProductUnitMessage)
}

// Delete deletes a product unit
func (r *GormProductUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductUnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProductID deletes every configuration of a product
func (r *GormProductUnitRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductUnitModel{}).Error
}

var _ catalog.ProductUnitRepository = (*GormProductUnitRepository)(nil)
