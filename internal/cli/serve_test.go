package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/oceanplot/pkg/cache"
	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

const tsRequest = `{
  "table": {"columns": {
    "salt": [34.5, 35, 36],
    "temp": [5, 10, 20],
    "lon": [-30, -30, -30],
    "lat": [10, 10, 10],
    "pressure": [0, 0, 0]
  }},
  "options": {"title": "cast 7"}
}`

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	fc, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return newAPIHandler(runner, logger)
}

func post(h http.Handler, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestAPIHealth(t *testing.T) {
	h := newTestAPI(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
	if _, err := uuid.Parse(rec.Header().Get(headerRequestID)); err != nil {
		t.Errorf("X-Request-ID = %q is not a UUID", rec.Header().Get(headerRequestID))
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), appName) {
		t.Errorf("Server = %q", rec.Header().Get("Server"))
	}
}

func TestAPIRender(t *testing.T) {
	h := newTestAPI(t)

	first := post(h, "/v1/render/ts", tsRequest, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", first.Code, first.Body)
	}
	if ct := first.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if first.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", first.Header().Get("X-Cache"))
	}
	if len(first.Header().Get("X-Input-Hash")) != 64 {
		t.Errorf("X-Input-Hash = %q", first.Header().Get("X-Input-Hash"))
	}
	if !bytes.Contains(first.Body.Bytes(), []byte("<svg")) {
		t.Error("body does not look like SVG")
	}

	second := post(h, "/v1/render/ts", tsRequest, nil)
	if second.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", second.Header().Get("X-Cache"))
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached figure differs from the rendered one")
	}

	png := post(h, "/v1/render/ts?format=png", tsRequest, nil)
	if png.Code != http.StatusOK || png.Header().Get("Content-Type") != "image/png" {
		t.Errorf("png status = %d, Content-Type = %q", png.Code, png.Header().Get("Content-Type"))
	}
	if png.Header().Get("X-Input-Hash") != first.Header().Get("X-Input-Hash") {
		t.Error("input hash must not depend on the format")
	}
}

func TestAPIRenderKeepsRequestID(t *testing.T) {
	h := newTestAPI(t)
	id := uuid.NewString()
	rec := post(h, "/v1/render/nope", "{}", http.Header{headerRequestID: {id}})
	if got := rec.Header().Get(headerRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
	if e := decodeAPIError(t, rec); e.RequestID != id {
		t.Errorf("error request_id = %q, want %q", e.RequestID, id)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, id)
	direct := httptest.NewRecorder()
	h.ServeHTTP(direct, req)
	if got := direct.Header().Get(headerRequestID); got != id {
		t.Errorf("X-Request-ID set with Header.Set = %q, want %q", got, id)
	}

	replaced := post(h, "/v1/render/nope", "{}", http.Header{"X-Request-Id": {"not-a-uuid"}})
	if got := replaced.Header().Get(headerRequestID); got == "not-a-uuid" {
		t.Error("a malformed client request ID was echoed back")
	} else if _, err := uuid.Parse(got); err != nil {
		t.Errorf("replacement X-Request-ID = %q is not a UUID", got)
	}
}

func TestAPIRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		code   errors.Code
	}{
		{"unknown kind", "/v1/render/nope", tsRequest, errors.ErrCodeInvalidKind},
		{"bad json", "/v1/render/ts", "{", errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/render/ts", `{"tabel": {}}`, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/render/ts?format=gif", tsRequest, errors.ErrCodeInvalidFormat},
		{"two formats", "/v1/render/ts", `{"options": {"formats": ["svg", "png"]}}`, errors.ErrCodeInvalidInput},
		{"ragged table", "/v1/render/ts", `{"table": {"columns": {"salt": [1, 2], "temp": [1]}}}`, errors.ErrCodeInvalidInput},
		{"no table", "/v1/render/ts", `{}`, errors.ErrCodeInvalidInput},
		{"no boxes", "/v1/render/box", `{}`, errors.ErrCodeInvalidBox},
	}

	h := newTestAPI(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.target, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if e := decodeAPIError(t, rec); e.Code != tt.code {
				t.Errorf("code = %s, want %s (message %q)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestAPIRenderBox(t *testing.T) {
	h := newTestAPI(t)
	body := `{"options": {"boxes": [{"name": "Niño 3.4", "lon": [-170, -120], "lat": [-5, 5]}]}}`
	rec := post(h, "/v1/render/box?format=pdf", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body does not look like PDF")
	}
}

func TestCacheName(t *testing.T) {
	tests := []struct {
		noCache  bool
		redisURL string
		want     string
	}{
		{true, "redis://localhost:6379", "disabled"},
		{false, "redis://localhost:6379", "redis"},
		{false, "", "file"},
	}
	for _, tt := range tests {
		if got := cacheName(tt.noCache, tt.redisURL); got != tt.want {
			t.Errorf("cacheName(%v, %q) = %q, want %q", tt.noCache, tt.redisURL, got, tt.want)
		}
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr(0.0.0.0:9000) = %q", got)
	}
}
