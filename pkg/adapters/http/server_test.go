package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEngine for testing
type MockEngine struct {
	*meridian.Engine
	LayoutErr error
	WatchFunc func(ctx context.Context) (<-chan string, error)
}

func (m *MockEngine) Layout(ctx context.Context) (*domain.Layout, error) {
	if m.LayoutErr != nil {
		return nil, m.LayoutErr
	}
	return m.Engine.Layout(ctx)
}

func (m *MockEngine) Watch(ctx context.Context) (<-chan string, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx)
	}
	ch := make(chan string)
	close(ch)
	return ch, nil
}

func newMock(t *testing.T) *MockEngine {
	t.Helper()
	eng, err := meridian.New(t.Context(), "sample", meridian.WithLoader(memory.MustLoader(testutils.SampleWorld())))
	require.NoError(t, err)
	return &MockEngine{Engine: eng}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestAreas(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "GET", "/areas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Area](t, w), 11)

	w = do(t, h, "GET", "/areas/York", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "England", decode[domain.Area](t, w).Region)

	w = do(t, h, "GET", "/areas/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[errorResponse](t, w).Error, "area not found")
}

func TestAreas_EscapedName(t *testing.T) {
	eng := newMock(t)
	h := NewHandler(eng)

	w := do(t, h, "GET", "/areas/Sargasso/next/N", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ReasonWorldEdge, decode[domain.NavigationResult](t, w).Reason)

	w = do(t, h, "GET", "/areas/Open%20Sea/next/N", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ReasonNoAdjacency, decode[domain.NavigationResult](t, w).Reason)
}

func TestNext(t *testing.T) {
	h := NewHandler(newMock(t))

	tests := []struct {
		path   string
		kind   domain.NavigationKind
		reason domain.UnknownReason
	}{
		{"/areas/Edinburgh/next/south", domain.NavAdjacent, domain.ReasonNone},
		{"/areas/Edinburgh/next/N", domain.NavLiminal, domain.ReasonNone},
		{"/areas/Edinburgh/next/e", domain.NavRandomFallback, domain.ReasonWorldEdge},
		{"/areas/Paris/next/S", domain.NavRandomFallback, domain.ReasonUnresolved},
		{"/areas/Atlantis/next/W", domain.NavRandomFallback, domain.ReasonNoAdjacency},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, "GET", tt.path, "")
			require.Equal(t, http.StatusOK, w.Code)
			res := decode[domain.NavigationResult](t, w)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestNext_BadDirection(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "GET", "/areas/Edinburgh/next/up", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorResponse](t, w).Error, "invalid direction")
}

func TestEdge(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "GET", "/areas/Calais/edges/W", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[domain.EdgeResolution](t, w)
	assert.Equal(t, domain.EdgeLiminal, res.Kind)
	assert.Equal(t, "CHANNEL_FROM_CALAIS", res.Target)
}

func TestSequences(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "GET", "/sequences", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.LiminalSequence](t, w), 4)

	w = do(t, h, "GET", "/sequences/ATLANTIC_NORTH_SOUTH", "")
	require.Equal(t, http.StatusOK, w.Code)
	seq := decode[domain.LiminalSequence](t, w)
	assert.Equal(t, "Edinburgh", seq.Destination)
	assert.True(t, seq.Derived)

	w = do(t, h, "GET", "/sequences/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLayout(t *testing.T) {
	eng := newMock(t)
	h := NewHandler(eng)

	w := do(t, h, "GET", "/layout", "")
	require.Equal(t, http.StatusOK, w.Code)
	l := decode[domain.Layout](t, w)
	assert.Equal(t, 3, l.BufferCount)

	eng.LayoutErr = errors.New("lock timeout")
	w = do(t, h, "GET", "/layout", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGraph(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "GET", "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestBlend(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "POST", "/climate/blend", `{"area": "Highlands", "width": 8, "height": 8}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[domain.BlendResult](t, w)
	assert.Equal(t, 8, res.Map.Width)
	assert.NotEmpty(t, res.Zones)

	w = do(t, h, "POST", "/climate/blend", `{"climate": "COLD", "neighbors": {"S": "TEMPERATE"}, "tiles": [["TUNDRA"]]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res = decode[domain.BlendResult](t, w)
	assert.Equal(t, domain.BiomeGrassland, res.Map.Tiles[0][0].Biome)
}

func TestBlend_Errors(t *testing.T) {
	h := NewHandler(newMock(t))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"unknown field", `{"colour": "red"}`, http.StatusBadRequest},
		{"unknown area", `{"area": "Atlantis"}`, http.StatusNotFound},
		{"bad climate", `{"climate": "MILD"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/climate/blend", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHealthAndInfo(t *testing.T) {
	h := NewHandler(newMock(t), WithVersion("v0.3.0"))

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/info", "")
	info := decode[map[string]any](t, w)
	assert.Equal(t, "v0.3.0", info["version"])
	assert.Equal(t, float64(11), info["areas"])
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(newMock(t))

	w := do(t, h, "OPTIONS", "/areas", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	m := observability.New()
	h := NewHandler(newMock(t), WithMetrics(m))

	do(t, h, "GET", "/areas/York/next/S", "")
	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `meridian_http_requests_inflight`)
	assert.Contains(t, w.Body.String(), `route="/areas/{name}/next/{dir}"`)
}

func TestMetrics_NotMountedByDefault(t *testing.T) {
	h := NewHandler(newMock(t))
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)
}

func TestSubscribeEvents(t *testing.T) {
	eng := newMock(t)
	eng.WatchFunc = func(ctx context.Context) (<-chan string, error) {
		ch := make(chan string, 1)
		ch <- "areas/york.md"
		close(ch)
		return ch, nil
	}
	h := NewHandler(eng)

	w := do(t, h, "GET", "/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "event: reload\ndata: areas/york.md")
}

func TestSubscribeEvents_WatchError(t *testing.T) {
	eng := newMock(t)
	eng.WatchFunc = func(ctx context.Context) (<-chan string, error) {
		return nil, errors.New("current loader does not support watching")
	}

	w := do(t, NewHandler(eng), "GET", "/events", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
