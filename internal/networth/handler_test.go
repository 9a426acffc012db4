package networth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateHistoryLatest(t *testing.T) {
	r := newTestRouter()

	for _, body := range []string{
		`{"value": 100000, "date": "2024-01-01T00:00:00"}`,
		`{"value": "110000", "date": "2024-02-01"}`,
		`{"value": 120000, "date": "2024-03-01T00:00:00Z"}`,
	} {
		rec := do(r, http.MethodPost, "/api/v1/net-worth", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := do(r, http.MethodGet, "/api/v1/net-worth/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var history []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 3 || history[0]["value"] != float64(120000) || history[2]["value"] != float64(100000) {
		t.Fatalf("unexpected history %s", rec.Body.String())
	}
	for _, key := range []string{"id", "date", "created_at", "updated_at"} {
		if _, ok := history[0][key]; !ok {
			t.Fatalf("missing %s in %v", key, history[0])
		}
	}

	rec = do(r, http.MethodGet, "/api/v1/net-worth/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var latest map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode latest: %v", err)
	}
	if latest["id"] != history[0]["id"] || latest["value"] != float64(120000) {
		t.Fatalf("latest %v does not match history[0] %v", latest, history[0])
	}
}

func TestHandlerLatestEmpty(t *testing.T) {
	rec := do(newTestRouter(), http.MethodGet, "/api/v1/net-worth/latest", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No net worth entries found") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestHandlerCreateValidation(t *testing.T) {
	r := newTestRouter()
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"value":`},
		{"missing value", `{"date": "2024-01-01"}`},
		{"non numeric value", `{"value": "lots", "date": "2024-01-01"}`},
		{"missing date", `{"value": 10}`},
		{"bad date", `{"value": 10, "date": "yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/v1/net-worth", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "validation_error") {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}
}

func TestHandlerExport(t *testing.T) {
	r := newTestRouter()
	if rec := do(r, http.MethodPost, "/api/v1/net-worth", `{"value": 5, "date": "2024-01-01"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rec.Code)
	}

	rec := do(r, http.MethodGet, "/api/v1/net-worth/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	if err != nil || len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d (%v)", len(rows), err)
	}
}
