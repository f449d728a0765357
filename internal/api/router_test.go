package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/api/handlers"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

type stubIngestor struct{}

func (stubIngestor) Upload(_ context.Context, _ string, file io.Reader) (*models.IngestResponse, error) {
	io.Copy(io.Discard, file)
	return &models.IngestResponse{VideoID: "v", Segments: []models.Segment{}}, nil
}

func (stubIngestor) FromURL(context.Context, string) (*models.IngestResponse, error) {
	return &models.IngestResponse{VideoID: "v", Segments: []models.Segment{}}, nil
}

type stubCutter struct{}

func (stubCutter) CutVideo(_ context.Context, _ string, _, _ float64, out string) error {
	return os.WriteFile(out, []byte("clip"), 0o644)
}

func (stubCutter) CutAudio(_ context.Context, _ string, _, _ float64, out string) error {
	return os.WriteFile(out, []byte("audio"), 0o644)
}

func newTestRouter(t *testing.T) (http.Handler, *storage.Store) {
	t.Helper()
	store := storage.New(t.TempDir())
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	router := NewRouter(Handlers{
		Ingest:  handlers.NewIngestHandler(stubIngestor{}),
		Clips:   handlers.NewClipsHandler(store, stubCutter{}, nil),
		Catalog: handlers.NewCatalogHandler(nil, nil, nil),
	})
	return router, store
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouterRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		method, path, body string
		wantStatus         int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/search", `{"segments": [], "keyword": "x"}`, http.StatusOK},
		{http.MethodPost, "/search/semantic", `{"query": "x"}`, http.StatusServiceUnavailable},
		{http.MethodGet, "/videos", "", http.StatusServiceUnavailable},
		{http.MethodGet, "/videos/abc", "", http.StatusServiceUnavailable},
		{http.MethodPost, "/generate-clip", `{"video_id": "missing", "start_time": 0, "end_time": 1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := do(router, tt.method, tt.path, tt.body)
		if rr.Code != tt.wantStatus {
			t.Errorf("%s %s = %d, want %d (body %s)", tt.method, tt.path, rr.Code, tt.wantStatus, rr.Body.String())
		}
	}
}

func TestRouterUnknownRouteIsJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body is not JSON: %s", rr.Body.String())
	}
	if body.Error != "not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestRouterMethodNotAllowedIsJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/upload", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Errorf("405 body is not the JSON error shape: %s", rr.Body.String())
	}
}

func TestRouterCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	// Preflight requests are answered without reaching a handler.
	rr := do(router, http.MethodOptions, "/upload", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rr.Code)
	}
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", origin)
	}

	// Normal responses carry the headers too, including unmatched routes.
	rr = do(router, http.MethodGet, "/nope", "")
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin on 404 = %q", origin)
	}
}

func TestRouterClipPathPattern(t *testing.T) {
	router, store := newTestRouter(t)

	clipID := store.NewID()
	if err := os.WriteFile(store.ClipVideoPath(clipID), []byte("clip"), 0o644); err != nil {
		t.Fatalf("writing clip: %v", err)
	}

	if rr := do(router, http.MethodGet, "/clips/"+clipID+".mp4", ""); rr.Code != http.StatusOK {
		t.Errorf("existing clip = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	// Ids outside the UUID alphabet never match the route.
	if rr := do(router, http.MethodGet, "/clips/zz!.mp4", ""); rr.Code != http.StatusNotFound {
		t.Errorf("malformed clip id = %d, want 404", rr.Code)
	}

	missing := store.NewID()
	rr := do(router, http.MethodGet, "/clips/"+missing+".mp4", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing clip = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Clip not found") {
		t.Errorf("missing clip body = %s", rr.Body.String())
	}
}

func TestRouterYouTubeForm(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/youtube", strings.NewReader("url=https%3A%2F%2Fyoutube.com%2Fwatch%3Fv%3Dx"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"video_id":"v"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}
