package persistence

import (
	"context"
	"strings"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// FindByIDs loads every unit among ids that exists
func (r *GormUnitRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Unit, error) {
	if len(ids) == 0 {
		return []catalog.Unit{}, nil
	}
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]catalog.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = *unitModels[i].ToDomain()
	}
	return units, nil
}

// FindAll lists units matching the filter ordered by category then name,
// returning the page and the total match count.
func (r *GormUnitRepository) FindAll(ctx context.Context, filter catalog.UnitFilter) ([]catalog.Unit, int64, error) {
	f := filter.Filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.UnitModel{})
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(abbreviation) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var unitModels []models.UnitModel
	if err := query.
		Order("category ASC, name ASC").
		Offset(f.Offset()).
		Limit(f.PageSize).
		Find(&unitModels).Error; err != nil {
		return nil, 0, err
	}

	units := make([]catalog.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = *unitModels[i].ToDomain()
	}
	return units, total, nil
}

// ExistsByName checks whether another unit already uses name
func (r *GormUnitRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "name = ?", name, excludeID)
}

// ExistsByAbbreviation checks whether another unit already uses abbreviation
func (r *GormUnitRepository) ExistsByAbbreviation(ctx context.Context, abbreviation string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "abbreviation = ?", abbreviation, excludeID)
}

func (r *GormUnitRepository) exists(ctx context.Context, cond string, value string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{}).Where(cond, value)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "A unit with this name or abbreviation already exists")
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "")
	}
	return nil
}

// FindUsages lists the products configured with the unit, by product name
func (r *GormUnitRepository) FindUsages(ctx context.Context, id uuid.UUID) ([]catalog.UnitUsage, error) {
	var rows []struct {
		ProductID   uuid.UUID
		ProductCode string
		ProductName string
	}
	if err := r.db.WithContext(ctx).
		Table("product_units").
		Select("products.id AS product_id, products.code AS product_code, products.name AS product_name").
		Joins("JOIN products ON products.id = product_units.product_id").
		Where("product_units.unit_id = ?", id).
		Order("products.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	usages := make([]catalog.UnitUsage, len(rows))
	for i, row := range rows {
		usages[i] = catalog.UnitUsage{ProductID: row.ProductID, ProductCode: row.ProductCode, ProductName: row.ProductName}
	}
	return usages, nil
}

var _ catalog.UnitRepository = (*GormUnitRepository)(nil)
