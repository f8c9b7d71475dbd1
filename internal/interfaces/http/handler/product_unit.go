package handler

import (
	"context"

	catalogapp "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductUnitService is the product unit configuration as seen by the HTTP layer
type ProductUnitService interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]catalogapp.ProductUnitResponse, error)
	GetBaseUnit(ctx context.Context, productID uuid.UUID) (*catalogapp.ProductUnitResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductUnitResponse, error)
	Configure(ctx context.Context, productID uuid.UUID, req catalogapp.ConfigureProductUnitsRequest) ([]catalogapp.ProductUnitResponse, error)
	Create(ctx context.Context, req catalogapp.CreateProductUnitRequest) (*catalogapp.ProductUnitResponse, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductUnitRequest) (*catalogapp.ProductUnitResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Convert(ctx context.Context, productID uuid.UUID, req catalogapp.ConvertProductUnitsRequest) (*catalogapp.ConversionResponse, error)
	ConversionTable(ctx context.Context, productID uuid.UUID) ([]catalogapp.ConversionTableEntryResponse, error)
	QuoteSalesLine(ctx context.Context, productID uuid.UUID, req catalogapp.QuoteSalesLineRequest) (*catalogapp.SalesQuoteResponse, error)
}

// ProductUnitHandler handles per-product unit configuration endpoints
type ProductUnitHandler struct {
	BaseHandler
	productUnitService ProductUnitService
}

// NewProductUnitHandler creates a new ProductUnitHandler
func NewProductUnitHandler(productUnitService ProductUnitService) *ProductUnitHandler {
	return &ProductUnitHandler{productUnitService: productUnitService}
}

// ListForProduct godoc
// @Summary      List a product's units
// @Description  Configured units joined with the registry, base unit first
// @Tags         product-units
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id} [get]
func (h *ProductUnitHandler) ListForProduct(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	units, err := h.productUnitService.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// GetBaseUnit godoc
// @Summary      Get a product's base unit
// @Tags         product-units
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id}/base [get]
func (h *ProductUnitHandler) GetBaseUnit(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	unit, err := h.productUnitService.GetBaseUnit(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Configure godoc
// @Summary      Replace a product's unit configuration
// @Description  Validates the whole set (one base unit with ratio 1, no duplicates, positive ratios) and swaps it atomically
// @Tags         product-units
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ConfigureProductUnitsRequest true "New configuration"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id}/configure [post]
func (h *ProductUnitHandler) Configure(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	var req catalogapp.ConfigureProductUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	units, err := h.productUnitService.Configure(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// ConversionTable godoc
// @Summary      Build a product's conversion table
// @Description  One entry per ordered pair of distinct configured units
// @Tags         product-units
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ConversionTableEntryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id}/conversions [get]
func (h *ProductUnitHandler) ConversionTable(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	table, err := h.productUnitService.ConversionTable(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// Convert godoc
// @Summary      Convert a quantity between a product's units
// @Tags         product-units
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ConvertProductUnitsRequest true "Conversion"
// @Success      200 {object} dto.Response{data=catalogapp.ConversionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id}/convert [post]
func (h *ProductUnitHandler) Convert(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	var req catalogapp.ConvertProductUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.productUnitService.Convert(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Quote godoc
// @Summary      Price a sales line
// @Description  Quantity in a sales unit, priced with the unit's effective price
// @Tags         product-units
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.QuoteSalesLineRequest true "Sales line"
// @Success      200 {object} dto.Response{data=catalogapp.SalesQuoteResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/product/{product_id}/quote [post]
func (h *ProductUnitHandler) Quote(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id", "product")
	if !ok {
		return
	}

	var req catalogapp.QuoteSalesLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.productUnitService.QuoteSalesLine(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// GetByID godoc
// @Summary      Get one configuration row
// @Tags         product-units
// @Produce      json
// @Param        id path string true "Product unit ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /product-units/{id} [get]
func (h *ProductUnitHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product unit")
	if !ok {
		return
	}

	unit, err := h.productUnitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Create godoc
// @Summary      Add a unit to a product
// @Description  The first unit of an unconfigured product must be its base unit
// @Tags         product-units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductUnitRequest true "Configuration row"
// @Success      201 {object} dto.Response{data=catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /product-units [post]
func (h *ProductUnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.productUnitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// Update godoc
// @Summary      Update one configuration row
// @Tags         product-units
// @Accept       json
// @Produce      json
// @Param        id path string true "Product unit ID" format(uuid)
// @Param        request body catalogapp.UpdateProductUnitRequest true "Changes"
// @Success      200 {object} dto.Response{data=catalogapp.ProductUnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /product-units/{id} [put]
func (h *ProductUnitHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product unit")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.productUnitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Delete godoc
// @Summary      Remove a unit from a product
// @Description  The base unit can only be removed when it is the product's last unit
// @Tags         product-units
// @Param        id path string true "Product unit ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /product-units/{id} [delete]
func (h *ProductUnitHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product unit")
	if !ok {
		return
	}

	if err := h.productUnitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
