package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizcocho/backend/internal/interfaces/http/handler"
	"github.com/bizcocho/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_SetupUsesVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestRouter_UseScopesMiddlewareToAPIGroup(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(group).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("/a", ok).POST("/b", ok).PUT("/c/:id", ok).DELETE("/d/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/test/a").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/test/b").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/test/c/1").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodDelete, "/api/v1/test/d/1").Code)
	})

	t.Run("applies middleware to subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("units", "/units")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.Group("per-product", "/product/:product_id").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("product_id"))
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/units/product/42")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("exposes name and prefix", func(t *testing.T) {
		g := NewDomainGroup("products", "/products")
		assert.Equal(t, "products", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})
}

// recordingGuard stops every request at the guard and reports the permission it enforces
func recordingGuard(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusTeapot, permission)
		c.Abort()
	}
}

func newCatalogEngine(guard PermissionGuard) *gin.Engine {
	engine := gin.New()
	r := NewRouter(engine)
	for _, g := range NewCatalogGroups(CatalogHandlers{
		Units:        handler.NewUnitHandler(nil),
		ProductUnits: handler.NewProductUnitHandler(nil),
		Products:     handler.NewProductHandler(nil),
	}, guard) {
		r.Register(g)
	}
	r.Setup()
	return engine
}

func TestCatalogGroups_Permissions(t *testing.T) {
	engine := newCatalogEngine(recordingGuard)
	id := uuid.NewString()

	tests := []struct {
		method     string
		path       string
		permission string
	}{
		{http.MethodGet, "/api/v1/units", middleware.PermUnitsView},
		{http.MethodGet, "/api/v1/units/" + id, middleware.PermUnitsView},
		{http.MethodPost, "/api/v1/units", middleware.PermUnitsCreate},
		{http.MethodPut, "/api/v1/units/" + id, middleware.PermUnitsEdit},
		{http.MethodDelete, "/api/v1/units/" + id, middleware.PermUnitsDelete},
		{http.MethodPost, "/api/v1/units/convert", middleware.PermUnitsView},
		{http.MethodGet, "/api/v1/units/product/" + id, middleware.PermProductsView},
		{http.MethodGet, "/api/v1/units/product/" + id + "/base", middleware.PermProductsView},
		{http.MethodPost, "/api/v1/units/product/" + id + "/configure", middleware.PermProductsEdit},
		{http.MethodGet, "/api/v1/units/product/" + id + "/conversions", middleware.PermProductsView},
		{http.MethodPost, "/api/v1/units/product/" + id + "/convert", middleware.PermProductsView},
		{http.MethodPost, "/api/v1/units/product/" + id + "/quote", middleware.PermProductsView},
		{http.MethodGet, "/api/v1/product-units/" + id, middleware.PermProductsView},
		{http.MethodPost, "/api/v1/product-units", middleware.PermProductsEdit},
		{http.MethodPut, "/api/v1/product-units/" + id, middleware.PermProductsEdit},
		{http.MethodDelete, "/api/v1/product-units/" + id, middleware.PermProductsEdit},
		{http.MethodGet, "/api/v1/products", middleware.PermProductsView},
		{http.MethodPost, "/api/v1/products", middleware.PermProductsCreate},
		{http.MethodGet, "/api/v1/products/" + id, middleware.PermProductsView},
		{http.MethodDelete, "/api/v1/products/" + id, middleware.PermProductsDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			require.Equal(t, http.StatusTeapot, w.Code)
			assert.Equal(t, tt.permission, w.Body.String())
		})
	}
}

func TestCatalogGroups_NilGuardAllowsAll(t *testing.T) {
	engine := newCatalogEngine(nil)

	// The handler runs and rejects the malformed id itself
	w := serve(engine, http.MethodGet, "/api/v1/units/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterSystemRoutes(t *testing.T) {
	engine := gin.New()
	RegisterSystemRoutes(engine, handler.NewSystemHandler("bizcocho", "test", nil))

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/health").Code)
}
