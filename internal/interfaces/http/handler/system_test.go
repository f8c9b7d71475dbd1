package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizcocho/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSystem(h *SystemHandler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/health/ready", h.Ready)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler("bizcocho", "1.2.3", nil)

	rec := serveSystem(h, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "bizcocho", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
}

func TestSystemHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all dependencies up", func(t *testing.T) {
		rec := serveSystem(NewSystemHandler("bizcocho", "dev", map[string]ReadinessCheck{
			"database": ok,
			"redis":    ok,
		}), "/health/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"status":"ready","checks":{"database":"ok","redis":"ok"}}}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		rec := serveSystem(NewSystemHandler("bizcocho", "dev", map[string]ReadinessCheck{
			"database": down,
			"redis":    ok,
		}), "/health/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"success":false,"data":{"status":"unavailable","checks":{"database":"connection refused","redis":"ok"}}}`, rec.Body.String())
	})

	t.Run("checks see a deadline", func(t *testing.T) {
		rec := serveSystem(NewSystemHandler("bizcocho", "dev", map[string]ReadinessCheck{
			"database": func(ctx context.Context) error {
				if _, has := ctx.Deadline(); !has {
					return errors.New("no deadline")
				}
				return nil
			},
		}), "/health/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
