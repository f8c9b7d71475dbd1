package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizcocho/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequirePermission(t *testing.T) {
	svc := newTestJWTService()

	tests := []struct {
		name        string
		permissions []string
		required    string
		status      int
	}{
		{"granted", []string{PermUnitsView, PermUnitsCreate}, PermUnitsView, http.StatusOK},
		{"missing", []string{PermUnitsView}, PermUnitsDelete, http.StatusForbidden},
		{"no permissions", nil, PermProductsEdit, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _ := newTestToken(t, svc, tt.permissions...)

			router := gin.New()
			router.Use(JWTAuthMiddleware(svc))
			router.GET("/units", RequirePermission(tt.required), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/units", nil)
			req.Header.Set(AuthHeaderKey, BearerPrefix+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, rec).Code)
			}
		})
	}
}

func TestRequireAnyPermission(t *testing.T) {
	svc := newTestJWTService()
	token, _ := newTestToken(t, svc, PermProductsEdit)

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/products", RequireAnyPermission(PermProductsView, PermProductsEdit), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermission_WithoutAuthentication(t *testing.T) {
	router := gin.New()
	router.GET("/units", RequirePermission(PermUnitsView), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/units", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
