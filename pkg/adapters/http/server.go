package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/observability"
	"github.com/aretw0/meridian/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps POST bodies. A 512x512 tile map fits comfortably.
const MaxBodyBytes = 4 << 20

// Server serves a Navigator.
type Server struct {
	Engine  ports.Navigator
	Version string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics instruments routes and mounts /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Navigator, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/areas", s.ListAreas)
	r.Get("/areas/{name}", s.GetArea)
	r.Get("/areas/{name}/next/{dir}", s.Next)
	r.Get("/areas/{name}/edges/{dir}", s.Edge)
	r.Get("/sequences", s.ListSequences)
	r.Get("/sequences/{key}", s.GetSequence)
	r.Get("/layout", s.GetLayout)
	r.Get("/graph", s.GetGraph)
	r.Post("/climate/blend", s.Blend)
	r.Get("/events", s.SubscribeEvents)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":       "meridian-http",
		"version":   strings.TrimSpace(s.Version),
		"areas":     len(s.Engine.Areas()),
		"sequences": len(s.Engine.Sequences()),
	})
}

// ListAreas handles the GET /areas request.
func (s *Server) ListAreas(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Areas())
}

// GetArea handles the GET /areas/{name} request.
func (s *Server) GetArea(w http.ResponseWriter, r *http.Request) {
	name, ok := s.param(w, r, "name")
	if !ok {
		return
	}
	a, found := s.Engine.Area(name)
	if !found {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", domain.ErrAreaNotFound, name))
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

// Next handles the GET /areas/{name}/next/{dir} request. Unknown areas are
// not an error: they resolve to a random fallback like any other gap.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	name, dir, ok := s.areaAndDirection(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Next(name, dir))
}

// Edge handles the GET /areas/{name}/edges/{dir} request.
func (s *Server) Edge(w http.ResponseWriter, r *http.Request) {
	name, dir, ok := s.areaAndDirection(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Edge(name, dir))
}

// ListSequences handles the GET /sequences request.
func (s *Server) ListSequences(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Sequences())
}

// GetSequence handles the GET /sequences/{key} request.
func (s *Server) GetSequence(w http.ResponseWriter, r *http.Request) {
	key, ok := s.param(w, r, "key")
	if !ok {
		return
	}
	seq, found := s.Engine.Sequence(key)
	if !found {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", domain.ErrSequenceNotFound, key))
		return
	}
	s.writeJSON(w, http.StatusOK, seq)
}

// GetLayout handles the GET /layout request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.Engine.Layout(r.Context())
	if err != nil {
		s.logger.Error("layout failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.Engine.Mermaid())
}

// Blend handles the POST /climate/blend request.
func (s *Server) Blend(w http.ResponseWriter, r *http.Request) {
	var req domain.BlendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	res, err := s.Engine.Blend(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrAreaNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// SubscribeEvents handles the GET /events request (SSE). Each event carries
// the ID of a changed world document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	watchable, ok := s.Engine.(ports.Watchable)
	if !ok {
		s.writeError(w, http.StatusNotImplemented, errors.New("engine does not support watching"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	events, err := watchable.Watch(r.Context())
	if err != nil {
		s.writeError(w, http.StatusNotImplemented, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) param(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v, err := url.PathUnescape(chi.URLParam(r, key))
	if err != nil || v == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid %s", key))
		return "", false
	}
	return v, true
}

func (s *Server) areaAndDirection(w http.ResponseWriter, r *http.Request) (string, domain.Direction, bool) {
	name, ok := s.param(w, r, "name")
	if !ok {
		return "", "", false
	}
	dir, err := domain.ParseDirection(chi.URLParam(r, "dir"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return "", "", false
	}
	return name, dir, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
