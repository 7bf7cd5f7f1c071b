package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/server/ratelimit"
)

// memoryStore is an in-memory pipeline.AnalysisStore
type memoryStore struct {
	mu       sync.Mutex
	analyses []db.Analysis
}

func (m *memoryStore) SaveAnalysis(_ context.Context, input *db.AnalysisInput) (*db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := db.Analysis{
		ID:          uuid.New(),
		Keywords:    input.Keywords,
		BeforeScore: input.BeforeScore,
		AfterScore:  input.AfterScore,
		Changes:     input.Changes,
		Delta:       input.AfterScore.Overall - input.BeforeScore.Overall,
		CreatedAt:   time.Now(),
	}
	m.analyses = append(m.analyses, a)
	return &a, nil
}

func (m *memoryStore) GetAnalysis(_ context.Context, id uuid.UUID) (*db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			a := m.analyses[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) ListAnalyses(_ context.Context, limit int) ([]db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]db.Analysis, 0, len(m.analyses))
	for i := len(m.analyses) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.analyses[i])
	}
	return out, nil
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s := New(cfg)
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeBody(t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "GoBot API is running", body["message"])
}

func TestWithCORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"no list allows any", nil, "http://localhost:3000", "*"},
		{"wildcard in list", []string{"*"}, "http://a.example", "*"},
		{"listed origin echoed", []string{"http://localhost:3000"}, "http://localhost:3000", "http://localhost:3000"},
		{"unlisted origin omitted", []string{"http://localhost:3000"}, "http://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{AllowedOrigins: tt.allowed})
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			s.Handler().ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	s := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodOptions, "/api/optimize-resume", nil)
	rr := httptest.NewRecorder()

	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rr.Body.String())
}

func TestWithRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/parse-text", Method: http.MethodPost, Limit: 1, Window: time.Minute, Burst: 1},
		},
	}})

	first := doJSON(t, s.Handler(), http.MethodPost, "/api/parse-text", map[string]string{"text": "John Doe"})
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := doJSON(t, s.Handler(), http.MethodPost, "/api/parse-text", map[string]string{"text": "John Doe"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	body := decodeBody(t, second)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Rate limit exceeded")

	// health stays reachable
	health := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, s.Handler(), http.MethodGet, "/api/optimize-resume", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestClose_RunsClosersOnce(t *testing.T) {
	calls := 0
	s := New(Config{RateLimit: &ratelimit.Config{Enabled: false}, Closers: []func(){func() { calls++ }}})

	s.Close()
	s.Close()

	assert.Equal(t, 1, calls)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "text", Message: "No text provided"}, http.StatusBadRequest},
		{"file type", &ErrInvalidFileType{Extension: "exe"}, http.StatusBadRequest},
		{"too large", &ErrPayloadTooLarge{Limit: 1}, http.StatusRequestEntityTooLarge},
		{"not found", &ErrNotFound{Resource: "analysis", ID: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "analysis"}), http.StatusNotFound},
		{"store disabled", pipeline.ErrStoreDisabled, http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "No text provided", clientMessage(&ErrValidation{Field: "text", Message: "No text provided"}))
	assert.Equal(t, "Invalid file type. Allowed types: doc, docx, pdf, txt",
		clientMessage(&ErrInvalidFileType{Extension: "exe", Allowed: []string{"doc", "docx", "pdf", "txt"}}))
}
