package catalog

import (
	"time"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateUnitRequest represents a request to register a unit
type CreateUnitRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=50"`
	Abbreviation     string           `json:"abbreviation" binding:"required,min=1,max=10"`
	Category         string           `json:"category" binding:"required,unit_category"`
	IsBaseUnit       bool             `json:"is_base_unit"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	Active           *bool            `json:"active"`
}

// UpdateUnitRequest represents a partial unit update. Omitted fields keep
// their value; ClearConversionFactor removes the factor.
type UpdateUnitRequest struct {
	Name                  *string          `json:"name" binding:"omitempty,min=1,max=50"`
	Abbreviation          *string          `json:"abbreviation" binding:"omitempty,min=1,max=10"`
	Category              *string          `json:"category" binding:"omitempty,unit_category"`
	IsBaseUnit            *bool            `json:"is_base_unit"`
	ConversionFactor      *decimal.Decimal `json:"conversion_factor"`
	ClearConversionFactor bool             `json:"clear_conversion_factor"`
	Active                *bool            `json:"active"`
}

// UnitListFilter represents filter options for the unit list
type UnitListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,unit_category"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Abbreviation     string           `json:"abbreviation"`
	Category         string           `json:"category"`
	IsBaseUnit       bool             `json:"is_base_unit"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	Active           bool             `json:"active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// UnitUsageResponse is a product configured with a unit
type UnitUsageResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
}

// UnitDetailResponse is a unit with the products that use it
type UnitDetailResponse struct {
	UnitResponse
	UsageCount int                 `json:"usage_count"`
	Products   []UnitUsageResponse `json:"products"`
}

// ConvertUnitsRequest converts a quantity between two units
type ConvertUnitsRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	FromUnitID uuid.UUID       `json:"from_unit_id" binding:"required"`
	ToUnitID   uuid.UUID       `json:"to_unit_id" binding:"required"`
}

// QuantityInUnit is a quantity labelled with its unit
type QuantityInUnit struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Abbreviation string          `json:"abbreviation"`
}

// ConversionResponse reports a conversion result next to its input
type ConversionResponse struct {
	Original  QuantityInUnit `json:"original"`
	Converted QuantityInUnit `json:"converted"`
}

// ProductUnitEntry is one row of a bulk configuration request. A missing
// ratio defaults to 1.
type ProductUnitEntry struct {
	UnitID         uuid.UUID        `json:"unit_id" binding:"required"`
	Ratio          *decimal.Decimal `json:"ratio"`
	IsBaseUnit     bool             `json:"is_base_unit"`
	IsSalesUnit    bool             `json:"is_sales_unit"`
	IsPurchaseUnit bool             `json:"is_purchase_unit"`
	PriceOverride  *decimal.Decimal `json:"price_override"`
}

// ConfigureProductUnitsRequest replaces a product's whole unit configuration
type ConfigureProductUnitsRequest struct {
	Units []ProductUnitEntry `json:"units" binding:"required,dive"`
}

// CreateProductUnitRequest adds one unit to a product's configuration
type CreateProductUnitRequest struct {
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	UnitID         uuid.UUID        `json:"unit_id" binding:"required"`
	Ratio          *decimal.Decimal `json:"ratio"`
	IsBaseUnit     bool             `json:"is_base_unit"`
	IsSalesUnit    bool             `json:"is_sales_unit"`
	IsPurchaseUnit bool             `json:"is_purchase_unit"`
	PriceOverride  *decimal.Decimal `json:"price_override"`
}

// UpdateProductUnitRequest is a partial update of one configuration row
type UpdateProductUnitRequest struct {
	Ratio              *decimal.Decimal `json:"ratio"`
	IsBaseUnit         *bool            `json:"is_base_unit"`
	IsSalesUnit        *bool            `json:"is_sales_unit"`
	IsPurchaseUnit     *bool            `json:"is_purchase_unit"`
	PriceOverride      *decimal.Decimal `json:"price_override"`
	ClearPriceOverride bool             `json:"clear_price_override"`
}

// ProductUnitResponse represents a configured unit joined with its registry unit
type ProductUnitResponse struct {
	ID               uuid.UUID        `json:"id"`
	ProductID        uuid.UUID        `json:"product_id"`
	UnitID           uuid.UUID        `json:"unit_id"`
	UnitName         string           `json:"unit_name"`
	UnitAbbreviation string           `json:"unit_abbreviation"`
	UnitCategory     string           `json:"unit_category"`
	Ratio            decimal.Decimal  `json:"ratio"`
	IsBaseUnit       bool             `json:"is_base_unit"`
	IsSalesUnit      bool             `json:"is_sales_unit"`
	IsPurchaseUnit   bool             `json:"is_purchase_unit"`
	PriceOverride    *decimal.Decimal `json:"price_override"`
	EffectivePrice   decimal.Decimal  `json:"effective_price"`
	SortOrder        int              `json:"sort_order"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ConvertProductUnitsRequest converts a quantity between two units configured for a product
type ConvertProductUnitsRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	FromUnitID uuid.UUID       `json:"from_unit_id" binding:"required"`
	ToUnitID   uuid.UUID       `json:"to_unit_id" binding:"required"`
}

// ConversionTableEntryResponse is one ordered pair of a product's conversion table
type ConversionTableEntryResponse struct {
	FromUnitID       uuid.UUID       `json:"from_unit_id"`
	FromUnit         string          `json:"from_unit"`
	FromAbbreviation string          `json:"from_abbreviation"`
	ToUnitID         uuid.UUID       `json:"to_unit_id"`
	ToUnit           string          `json:"to_unit"`
	ToAbbreviation   string          `json:"to_abbreviation"`
	Factor           decimal.Decimal `json:"factor"`
	Label            string          `json:"label"`
}

// QuoteSalesLineRequest prices a quantity sold in one of the product's sales units
type QuoteSalesLineRequest struct {
	UnitID   uuid.UUID       `json:"unit_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SalesQuoteResponse is the priced sales line
type SalesQuoteResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	UnitID           uuid.UUID       `json:"unit_id"`
	UnitAbbreviation string          `json:"unit_abbreviation"`
	Quantity         decimal.Decimal `json:"quantity"`
	BaseQuantity     decimal.Decimal `json:"base_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code      string           `json:"code" binding:"required,min=1,max=50"`
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	BasePrice *decimal.Decimal `json:"base_price"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:               u.ID,
		Name:             u.Name,
		Abbreviation:     u.Abbreviation,
		Category:         string(u.Category),
		IsBaseUnit:       u.IsBaseUnit,
		ConversionFactor: u.ConversionFactor,
		Active:           u.Active,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// ToUnitResponses converts a slice of domain Units to UnitResponses
func ToUnitResponses(units []catalog.Unit) []UnitResponse {
	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}
	return responses
}

// ToProductUnitResponse converts a configured unit, pricing it from basePrice
func ToProductUnitResponse(cu *catalog.ConfiguredUnit, basePrice decimal.Decimal) ProductUnitResponse {
	return ProductUnitResponse{
		ID:               cu.ID,
		ProductID:        cu.ProductID,
		UnitID:           cu.UnitID,
		UnitName:         cu.Unit.Name,
		UnitAbbreviation: cu.Unit.Abbreviation,
		UnitCategory:     string(cu.Unit.Category),
		Ratio:            cu.Ratio,
		IsBaseUnit:       cu.IsBaseUnit,
		IsSalesUnit:      cu.IsSalesUnit,
		IsPurchaseUnit:   cu.IsPurchaseUnit,
		PriceOverride:    cu.PriceOverride,
		EffectivePrice:   catalog.EffectivePrice(basePrice, cu.Ratio, cu.PriceOverride),
		SortOrder:        cu.SortOrder,
		CreatedAt:        cu.CreatedAt,
		UpdatedAt:        cu.UpdatedAt,
	}
}

// ToProductUnitResponses converts a configuration set
func ToProductUnitResponses(configured []catalog.ConfiguredUnit, basePrice decimal.Decimal) []ProductUnitResponse {
	responses := make([]ProductUnitResponse, len(configured))
	for i := range configured {
		responses[i] = ToProductUnitResponse(&configured[i], basePrice)
	}
	return responses
}

// ToConversionTableResponse converts a conversion table
func ToConversionTableResponse(table []catalog.ConversionEntry) []ConversionTableEntryResponse {
	responses := make([]ConversionTableEntryResponse, len(table))
	for i, e := range table {
		responses[i] = ConversionTableEntryResponse{
			FromUnitID:       e.FromUnitID,
			FromUnit:         e.FromName,
			FromAbbreviation: e.FromAbbreviation,
			ToUnitID:         e.ToUnitID,
			ToUnit:           e.ToName,
			ToAbbreviation:   e.ToAbbreviation,
			Factor:           e.Factor,
			Label:            e.Label,
		}
	}
	return responses
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
