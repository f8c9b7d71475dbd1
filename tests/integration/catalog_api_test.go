//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizcocho/backend/internal/interfaces/http/dto"
	"github.com/bizcocho/backend/internal/interfaces/http/handler"
	"github.com/bizcocho/backend/internal/interfaces/http/middleware"
	"github.com/bizcocho/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPIEngine mounts the catalog routes the way cmd/server does, with
// authentication disabled
func newAPIEngine(t *testing.T, testDB *TestDB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	stack := newCatalogStack(t, testDB)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.BodyLimit(1 << 20))

	router.RegisterSystemRoutes(engine, handler.NewSystemHandler("bizcocho-test", "test",
		map[string]handler.ReadinessCheck{
			"database": func(ctx context.Context) error { return testDB.SqlDB.PingContext(ctx) },
		}))

	r := router.NewRouter(engine)
	for _, group := range router.NewCatalogGroups(router.CatalogHandlers{
		Units:        handler.NewUnitHandler(stack.units),
		ProductUnits: handler.NewProductUnitHandler(stack.productUnits),
		Products:     handler.NewProductHandler(stack.products),
	}, router.AllowAll) {
		r.Register(group)
	}
	r.Setup()
	return engine
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func call(t *testing.T, engine *gin.Engine, method, path string, body any) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func TestCatalogAPI_Integration(t *testing.T) {
	testDB := NewTestDB(t)
	engine := newAPIEngine(t, testDB)

	t.Run("readiness reports the database", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, resp.Success)
	})

	status, resp := call(t, engine, http.MethodPost, "/api/v1/products", map[string]any{
		"code":       "pan-muerto",
		"name":       "Pan de muerto",
		"base_price": "45.00",
	})
	require.Equal(t, http.StatusCreated, status)
	var product struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &product))
	assert.Equal(t, "PAN-MUERTO", product.Code)

	productUnits := "/api/v1/units/product/" + product.ID

	t.Run("configure", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, productUnits+"/configure", map[string]any{
			"units": []map[string]any{
				{"unit_id": seedPieceID, "is_base_unit": true, "is_sales_unit": true},
				{"unit_id": seedBoxID, "ratio": "6", "is_sales_unit": true, "is_purchase_unit": true},
			},
		})
		require.Equal(t, http.StatusOK, status, string(resp.Data))

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &rows))
		assert.Len(t, rows, 2)
	})

	t.Run("configure without a base unit is unprocessable", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, productUnits+"/configure", map[string]any{
			"units": []map[string]any{
				{"unit_id": seedBoxID, "ratio": "6"},
			},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidConfiguration, resp.Error.Code)
	})

	t.Run("conversion table", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodGet, productUnits+"/conversions", nil)
		require.Equal(t, http.StatusOK, status)

		var table []struct {
			Label string `json:"label"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &table))
		labels := make([]string, len(table))
		for i, e := range table {
			labels[i] = e.Label
		}
		assert.ElementsMatch(t, []string{"1 pz = 0.166667 cja", "1 cja = 6 pz"}, labels)
	})

	t.Run("quote a box", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, productUnits+"/quote", map[string]any{
			"unit_id":  seedBoxID,
			"quantity": "2",
		})
		require.Equal(t, http.StatusOK, status)

		var quote struct {
			UnitPrice string `json:"unit_price"`
			Subtotal  string `json:"subtotal"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &quote))
		assert.Equal(t, "270", quote.UnitPrice)
		assert.Equal(t, "540", quote.Subtotal)
	})

	t.Run("registry conversion between weights", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, "/api/v1/units/convert", map[string]any{
			"quantity":     "2.5",
			"from_unit_id": seedKilogramID,
			"to_unit_id":   seedGramID,
		})
		require.Equal(t, http.StatusOK, status)

		var conv struct {
			Converted struct {
				Quantity string `json:"quantity"`
			} `json:"converted"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &conv))
		assert.Equal(t, "2500", conv.Converted.Quantity)
	})

	t.Run("registry conversion across categories", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, "/api/v1/units/convert", map[string]any{
			"quantity":     "1",
			"from_unit_id": seedKilogramID,
			"to_unit_id":   seedLitreID,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeIncompatibleUnits, resp.Error.Code)
	})

	t.Run("deleting a configured unit conflicts", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodDelete, "/api/v1/units/"+seedBoxID.String(), nil)
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("duplicate unit abbreviation", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodPost, "/api/v1/units", map[string]any{
			"name":         "Kilo",
			"abbreviation": "kg",
			"category":     "weight",
		})
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeDuplicateKey, resp.Error.Code)
	})

	t.Run("list units filtered by category", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodGet, "/api/v1/units?category=volume", nil)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
	})

	t.Run("unknown product", func(t *testing.T) {
		status, resp := call(t, engine, http.MethodGet, "/api/v1/units/product/"+seedPieceID.String()+"/base", nil)
		assert.Equal(t, http.StatusNotFound, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}
