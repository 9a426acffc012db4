package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"wealth-backend/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:               "dev",
		ObjectStoreType:   "local",
		LocalStoreDir:     t.TempDir(),
		DocumentURLMode:   "proxy",
		QueueType:         "local",
		WorkerConcurrency: 1,
		WorkerQueueSize:   4,
		InlineContentMax:  1 << 10,
		LLMProvider:       "none",
		ShutdownTimeout:   time.Second,
	}
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestBuildDevUsesMemoryAndLocalQueue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Close(context.Background())

	if app.DB != nil {
		t.Fatal("expected in-memory repositories without DATABASE_URL")
	}
	if app.LocalQueue == nil || app.Queue == nil {
		t.Fatal("expected in-process queue")
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := devConfig(t)
	cfg.LLMProvider = "mystery"
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestUploadIsAnalyzedInProcess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Close(context.Background())

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "test.txt", "test file content"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID             string `json:"id"`
		AnalysisStatus string `json:"analysis_status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Without a configured model the analysis ends failed.
	deadline := time.Now().Add(3 * time.Second)
	for {
		doc, err := app.DocumentsService.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if doc.Status.IsTerminal() {
			if doc.Status != "failed" {
				t.Fatalf("expected failed, got %s", doc.Status)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("analysis did not finish")
		}
		time.Sleep(10 * time.Millisecond)
	}

	snaps, err := app.NetWorthService.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snaps))
	}
}

func TestBuildForWorkerSkipsProducerQueue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t), ForWorker())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Close(context.Background())

	if app.Queue != nil || app.LocalQueue != nil {
		t.Fatal("worker build should not start a producer queue")
	}
	if app.AnalysisService == nil {
		t.Fatal("expected analysis service")
	}
}
