package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pingrid/pingrid/pkg/cache"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return New(logger, c, 0)
}

const sampleBody = `{
	"definitions": {
		"columns": 2,
		"pin_definitions": [
			{"pin": "3V3", "type": "power"},
			{"pin": "GND", "type": "ground"},
			{"pin": "PA0", "type": "io", "usage": "ADC1_IN0", "usage_type": "analog"},
			{"pin": "PA2", "type": "io", "usage": "USART2_TX", "usage_type": "uart"}
		]
	},
	"colors": {
		"pin_type_colors": {
			"power": ["#D62728", "white"],
			"ground": ["black", "white"],
			"io": ["#1F77B4", "white"]
		},
		"usage_type_colors": {
			"analog": ["#2CA02C", "white"],
			"uart": ["#9467BD", "white"]
		}
	}
}`

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderSVG(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(sampleBody))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if rec.Header().Get("X-Render-Id") == "" {
		t.Error("missing X-Render-Id header")
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	if !strings.Contains(rec.Body.String(), "USART2_TX") {
		t.Errorf("SVG missing usage label\n%s", rec.Body.String())
	}
}

func TestRenderCacheHit(t *testing.T) {
	srv := newTestServer(t)

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(sampleBody)))
	if first.Code != http.StatusOK {
		t.Fatalf("first render status = %d: %s", first.Code, first.Body.String())
	}

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(sampleBody)))
	if second.Code != http.StatusOK {
		t.Fatalf("second render status = %d", second.Code)
	}
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("X-Cache = %q, want hit", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached artifact differs from the original render")
	}
}

func TestRenderOptionsOverride(t *testing.T) {
	srv := newTestServer(t)

	body := strings.Replace(sampleBody, `"colors"`, `"options": {"row_height": 40}, "colors"`, 1)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	// 2 rows at height 40.
	if !strings.Contains(rec.Body.String(), `viewBox="0 0 240 80"`) {
		t.Errorf("row height override not applied\n%s", rec.Body.String())
	}
}

func TestRenderJSONFormat(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/render?format=json", strings.NewReader(sampleBody))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func errorResponse(t *testing.T, rec *httptest.ResponseRecorder) (msg, code string) {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body["error"], body["code"]
}

func TestRenderBadFormat(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/render?format=webp", strings.NewReader(sampleBody))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if _, code := errorResponse(t, rec); code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", code)
	}
}

func TestRenderMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderUnknownUsageType(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"definitions": {
			"pin_definitions": [
				{"pin": "PA0", "type": "io", "usage": "X", "usage_type": "spi"}
			]
		},
		"colors": {"pin_type_colors": {"io": ["blue", "white"]}}
	}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if _, code := errorResponse(t, rec); code != "UNKNOWN_USAGE_TYPE" {
		t.Errorf("code = %q, want UNKNOWN_USAGE_TYPE", code)
	}
}

func TestRenderGridFull(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"definitions": {
			"columns": 1,
			"rows": 1,
			"pin_definitions": [
				{"pin": "A", "type": "io"},
				{"pin": "B", "type": "io"}
			]
		},
		"colors": {"pin_type_colors": {"io": ["blue", "white"]}}
	}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if _, code := errorResponse(t, rec); code != "GRID_FULL" {
		t.Errorf("code = %q, want GRID_FULL", code)
	}
}
