// Package api exposes the settlement core over HTTP. It is a consumer of
// the core's narrow interface: every endpoint bottoms out in pure derive,
// resolve, or tick calls plus optional history reads.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fairsettle/fairsettle-go/internal/session"
	"github.com/fairsettle/fairsettle-go/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	db      store.DB // nil disables history
	logger  *log.Logger
	metrics *Metrics

	tickInterval time.Duration
	batchSize    int

	mu      sync.RWMutex
	runners map[string]*session.Runner
}

// Option configures a Server.
type Option func(*Server)

// WithHistory wires a session history store.
func WithHistory(db store.DB) Option {
	return func(s *Server) { s.db = db }
}

// WithScheduling sets the runner pacing for sessions started over HTTP.
func WithScheduling(interval time.Duration, batchSize int) Option {
	return func(s *Server) {
		s.tickInterval = interval
		s.batchSize = batchSize
	}
}

// NewServer creates a new API server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:       log.New(os.Stdout, "[api] ", log.LstdFlags),
		metrics:      NewMetrics(),
		tickInterval: 50 * time.Millisecond,
		batchSize:    session.DefaultBatchSize,
		runners:      make(map[string]*session.Runner),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/derive", s.handleDerive)
		r.Post("/seed", s.handleSeed)
		r.Post("/resolve", s.handleResolve)
		r.Post("/verify", s.handleVerify)
		r.Get("/games", s.handleListGames)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/pause", s.handlePauseSession)
		r.Post("/sessions/{id}/resume", s.handleResumeSession)
		r.Post("/sessions/{id}/reset", s.handleResetSession)

		r.Get("/history", s.handleHistory)
		r.Get("/history/{id}/results", s.handleHistoryResults)
	})

	return r
}

// recoverer converts panics into structured 500s. The settlement core is
// total and should never panic; this guards the HTTP plumbing around it.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
					"internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, EngineError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// decodeJSON parses a request body, returning false after writing the
// validation error itself.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation,
			"invalid JSON body", map[string]any{"cause": err.Error()})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"history":   s.db != nil,
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
