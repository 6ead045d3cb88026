package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter()

	w := performRequest(router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestDashboardEndpointBuildsReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter()

	body := `{
		"filtros": {"fechaInicio": "2024-03-04", "fechaFin": "2024-03-15"},
		"datos": {
			"ventas": [{"fecha": "2024-03-05", "total": 100, "detalles": [{"cantidad": 1, "costo": 40, "total": 100, "producto": {"nombre": "Refresco 600ml"}}]}],
			"gastos": [{"monto": 30, "fecha": "2024-03-12"}]
		}
	}`

	w := performRequest(router, http.MethodPost, "/gerente/dashboard", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "weekBuckets") {
		t.Fatalf("response missing week buckets: %s", w.Body.String())
	}
	if w.Header().Get("X-Correlation-Id") == "" {
		t.Fatalf("correlation id header missing")
	}
}

func TestDashboardEndpointRejectsInvertedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter()

	body := `{"filtros": {"fechaInicio": "2024-03-10", "fechaFin": "2024-03-01"}, "datos": {}}`

	w := performRequest(router, http.MethodPost, "/gerente/dashboard", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDashboardEndpointRejectsMissingFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter()

	w := performRequest(router, http.MethodPost, "/gerente/dashboard", `{"filtros": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
