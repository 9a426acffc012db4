package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"wealth-backend/internal/networth"
	"wealth-backend/internal/services/health"
	"wealth-backend/internal/shared/config"
)

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouterMountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{
		Config:          config.Config{Env: "dev"},
		NetWorthHandler: networth.NewHandler(networth.NewService(networth.NewMemoryRepo())),
		Health:          health.NewService(nil),
	})

	tests := []struct {
		path string
		code int
	}{
		{"/api/v1/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/net-worth/history", http.StatusOK},
		{"/api/v1/net-worth/latest", http.StatusNotFound},
		{"/api/v1/documents", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if resp.Code != tt.code {
			t.Fatalf("GET %s: expected %d, got %d", tt.path, tt.code, resp.Code)
		}
		if resp.Header().Get("X-Request-ID") == "" {
			t.Fatalf("GET %s: missing request id header", tt.path)
		}
	}
}

func TestMetricsEndpointRendersPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(resp.Body.String(), "documents_uploaded_total") {
		t.Fatalf("unexpected metrics body:\n%s", resp.Body.String())
	}
}
