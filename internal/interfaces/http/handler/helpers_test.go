package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rxreturns/backend/internal/interfaces/http/middleware"
)

var validatorOnce sync.Once

func setupTestRouter(t *testing.T, pharmacyID uuid.UUID, register func(*gin.RouterGroup)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validatorOnce.Do(func() {
		if err := middleware.SetupValidator(); err != nil {
			t.Fatalf("validator setup: %v", err)
		}
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if pharmacyID != uuid.Nil {
			c.Set(middleware.JWTPharmacyIDKey, pharmacyID.String())
		}
	})
	register(r.Group("/api/v1"))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func requireJSONSuccess(t *testing.T, w *httptest.ResponseRecorder, wantStatus int) {
	t.Helper()
	require.Equal(t, wantStatus, w.Code, "body: %s", w.Body.String())
	require.Contains(t, w.Body.String(), `"success":true`)
}
