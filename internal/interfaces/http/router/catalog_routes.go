package router

import (
	"github.com/bizcocho/backend/internal/interfaces/http/handler"
	"github.com/bizcocho/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PermissionGuard builds the middleware enforcing one permission
type PermissionGuard func(permission string) gin.HandlerFunc

// AllowAll is the guard used when authentication is disabled
func AllowAll(string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

// CatalogHandlers groups the handlers served under the catalog routes
type CatalogHandlers struct {
	Units        *handler.UnitHandler
	ProductUnits *handler.ProductUnitHandler
	Products     *handler.ProductHandler
}

// NewCatalogGroups builds the unit registry, product unit and product
// route groups. A nil guard behaves like AllowAll.
func NewCatalogGroups(h CatalogHandlers, guard PermissionGuard) []*DomainGroup {
	if guard == nil {
		guard = AllowAll
	}

	units := NewDomainGroup("units", "/units")
	units.GET("", guard(middleware.PermUnitsView), h.Units.List)
	units.POST("", guard(middleware.PermUnitsCreate), h.Units.Create)
	units.POST("/convert", guard(middleware.PermUnitsView), h.Units.Convert)
	units.GET("/:id", guard(middleware.PermUnitsView), h.Units.GetByID)
	units.PUT("/:id", guard(middleware.PermUnitsEdit), h.Units.Update)
	units.DELETE("/:id", guard(middleware.PermUnitsDelete), h.Units.Delete)

	perProduct := units.Group("product-units", "/product/:product_id")
	perProduct.GET("", guard(middleware.PermProductsView), h.ProductUnits.ListForProduct)
	perProduct.GET("/base", guard(middleware.PermProductsView), h.ProductUnits.GetBaseUnit)
	perProduct.POST("/configure", guard(middleware.PermProductsEdit), h.ProductUnits.Configure)
	perProduct.GET("/conversions", guard(middleware.PermProductsView), h.ProductUnits.ConversionTable)
	perProduct.POST("/convert", guard(middleware.PermProductsView), h.ProductUnits.Convert)
	perProduct.POST("/quote", guard(middleware.PermProductsView), h.ProductUnits.Quote)

	rows := NewDomainGroup("product-unit-rows", "/product-units")
	rows.POST("", guard(middleware.PermProductsEdit), h.ProductUnits.Create)
	rows.GET("/:id", guard(middleware.PermProductsView), h.ProductUnits.GetByID)
	rows.PUT("/:id", guard(middleware.PermProductsEdit), h.ProductUnits.Update)
	rows.DELETE("/:id", guard(middleware.PermProductsEdit), h.ProductUnits.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", guard(middleware.PermProductsView), h.Products.List)
	products.POST("", guard(middleware.PermProductsCreate), h.Products.Create)
	products.GET("/:id", guard(middleware.PermProductsView), h.Products.GetByID)
	products.DELETE("/:id", guard(middleware.PermProductsDelete), h.Products.Delete)

	return []*DomainGroup{units, rows, products}
}

// RegisterSystemRoutes mounts the health checks at the root and under the API prefix
func RegisterSystemRoutes(engine *gin.Engine, h *handler.SystemHandler) {
	engine.GET("/health", h.Health)
	engine.GET("/health/ready", h.Ready)
	engine.GET("/api/v1/health", h.Health)
}
