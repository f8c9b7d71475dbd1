package models

import (
	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitModel is the persistence model for the Unit entity.
type UnitModel struct {
	BaseModel
	Name             string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_name"`
	Abbreviation     string              `gorm:"type:varchar(10);not null;uniqueIndex:idx_units_abbreviation"`
	Category         string              `gorm:"type:varchar(20);not null;index"`
	IsBaseUnit       bool                `gorm:"not null;default:false"`
	ConversionFactor decimal.NullDecimal `gorm:"type:decimal(18,6)"`
	Active           bool                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *catalog.Unit {
	u := &catalog.Unit{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Abbreviation: m.Abbreviation,
		Category:     catalog.UnitCategory(m.Category),
		IsBaseUnit:   m.IsBaseUnit,
		Active:       m.Active,
	}
	if m.ConversionFactor.Valid {
		f := m.ConversionFactor.Decimal
		u.ConversionFactor = &f
	}
	return u
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Abbreviation = u.Abbreviation
	m.Category = string(u.Category)
	m.IsBaseUnit = u.IsBaseUnit
	m.ConversionFactor = toNullDecimal(u.ConversionFactor)
	m.Active = u.Active
}

// UnitModelFromDomain creates a new persistence model from a domain Unit entity.
func UnitModelFromDomain(u *catalog.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_code"`
	Name      string          `gorm:"type:varchar(200);not null"`
	BasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Active    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		BasePrice:  m.BasePrice,
		Active:     m.Active,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Code:      p.Code,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Active:    p.Active,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductUnitModel is the persistence model for the ProductUnit entity.
// Unit is only populated when preloaded.
type ProductUnitModel struct {
	BaseModel
	ProductID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_product_units_product_unit,priority:1;index:idx_product_units_product_base,priority:1"`
	UnitID         uuid.UUID           `gorm:"type:uuid;uniqueIndex:idx_product_units_product_unit,priority:2;index"`
	Ratio          decimal.Decimal     `gorm:"type:decimal(18,6);not null"`
	IsBaseUnit     bool                `gorm:"not null;default:false;index:idx_product_units_product_base,priority:2"`
	IsSalesUnit    bool                `gorm:"not null;default:false"`
	IsPurchaseUnit bool                `gorm:"not null;default:false"`
	PriceOverride  decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	SortOrder      int                 `gorm:"not null;default:0"`
	Unit           *UnitModel          `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL"`
	Product        *ProductModel       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductUnitModel) TableName() string {
	return "product_units"
}

// ToDomain converts the persistence model to a domain ProductUnit entity.
func (m *ProductUnitModel) ToDomain() *catalog.ProductUnit {
	pu := &catalog.ProductUnit{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		UnitID:         m.UnitID,
		Ratio:          m.Ratio,
		IsBaseUnit:     m.IsBaseUnit,
		IsSalesUnit:    m.IsSalesUnit,
		IsPurchaseUnit: m.IsPurchaseUnit,
		SortOrder:      m.SortOrder,
	}
	if m.PriceOverride.Valid {
		p := m.PriceOverride.Decimal
		pu.PriceOverride = &p
	}
	return pu
}

// ToConfigured converts a model with a preloaded Unit to a ConfiguredUnit.
func (m *ProductUnitModel) ToConfigured() catalog.ConfiguredUnit {
	cu := catalog.ConfiguredUnit{ProductUnit: *m.ToDomain()}
	if m.Unit != nil {
		cu.Unit = *m.Unit.ToDomain()
	}
	return cu
}

// FromDomain populates the persistence model from a domain ProductUnit entity.
func (m *ProductUnitModel) FromDomain(pu *catalog.ProductUnit) {
	m.FromDomainBaseEntity(pu.BaseEntity)
	m.ProductID = pu.ProductID
	m.UnitID = pu.UnitID
	m.Ratio = pu.Ratio
	m.IsBaseUnit = pu.IsBaseUnit
	m.IsSalesUnit = pu.IsSalesUnit
	m.IsPurchaseUnit = pu.IsPurchaseUnit
	m.PriceOverride = toNullDecimal(pu.PriceOverride)
	m.SortOrder = pu.SortOrder
}

// ProductUnitModelFromDomain creates a new persistence model from a domain ProductUnit entity.
func ProductUnitModelFromDomain(pu *catalog.ProductUnit) *ProductUnitModel {
	m := &ProductUnitModel{}
	m.FromDomain(pu)
	return m
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
