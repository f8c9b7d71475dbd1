package handler

import (
	"context"
	"net/http"

	catalogapp "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/bizcocho/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UnitService is the unit registry as seen by the HTTP layer
type UnitService interface {
	List(ctx context.Context, filter catalogapp.UnitListFilter) (shared.Paginated[catalogapp.UnitResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.UnitDetailResponse, error)
	Create(ctx context.Context, req catalogapp.CreateUnitRequest) (*catalogapp.UnitResponse, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateUnitRequest) (*catalogapp.UnitResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Convert(ctx context.Context, req catalogapp.ConvertUnitsRequest) (*catalogapp.ConversionResponse, error)
}

// UnitHandler handles the unit registry endpoints
type UnitHandler struct {
	BaseHandler
	unitService UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// List godoc
// @Summary      List units
// @Description  Search units by name or abbreviation, filter by category and active flag
// @Tags         units
// @Produce      json
// @Param        search query string false "Name or abbreviation fragment"
// @Param        category query string false "count, package, weight, volume or length"
// @Param        active query bool false "Active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.UnitResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units [get]
func (h *UnitHandler) List(c *gin.Context) {
	var filter catalogapp.UnitListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.unitService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// GetByID godoc
// @Summary      Get a unit
// @Description  Get a unit with the products configured to use it
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.UnitDetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "unit")
	if !ok {
		return
	}

	unit, err := h.unitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Create godoc
// @Summary      Create a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateUnitRequest true "Unit"
// @Success      201 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// Update godoc
// @Summary      Update a unit
// @Description  Partial update; omitted fields keep their value
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Param        request body catalogapp.UpdateUnitRequest true "Changes"
// @Success      200 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "unit")
	if !ok {
		return
	}

	var req catalogapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Delete godoc
// @Summary      Delete a unit
// @Description  Fails with 409 while any product is configured with the unit
// @Tags         units
// @Param        id path string true "Unit ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "unit")
	if !ok {
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Convert godoc
// @Summary      Convert between registry units
// @Description  Product-independent conversion through the units' conversion factors
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ConvertUnitsRequest true "Conversion"
// @Success      200 {object} dto.Response{data=catalogapp.ConversionResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/convert [post]
func (h *UnitHandler) Convert(c *gin.Context) {
	var req catalogapp.ConvertUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.unitService.Convert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
