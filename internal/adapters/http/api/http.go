// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/adgenius/internal/domain/model"
	"github.com/okian/adgenius/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ResolveQuery applies the default term when q was not supplied.
	ResolveQuery(q string, present bool) string

	// Trending performs one upstream search.
	Trending(ctx context.Context, query string) ([]model.PromptCard, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler    *RootHandler
	metricsHandler *MetricsHandler
	statsHandler   *StatsHandler
	promptsHandler *PromptsHandler

	allowedOrigins []string
	logger         logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow-list; "*" allows any origin.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		allowedOrigins: []string{"*"},
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rootHandler = NewRootHandler()
	s.metricsHandler = NewMetricsHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.promptsHandler = NewPromptsHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/{$}", s.wrap(s.rootHandler.HandleRoot, "root"))
	mux.Handle("/metrics", s.wrap(s.metricsHandler.HandleMetrics, "metrics"))
	mux.Handle("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/api/prompts/trending", s.wrap(s.promptsHandler.HandleTrending, "trending"))
}

// wrap applies the common middleware chain to a route.
func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(CORSMiddleware(s.allowedOrigins, MetricsMiddleware(h, endpoint)))
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

// allowGet rejects everything but GET/HEAD with 405.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeDetail(w, http.StatusMethodNotAllowed, "")
	return false
}
