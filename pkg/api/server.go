package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikogura/storyboard-scorer/pkg/feedback"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
)

// CacheClearer empties the external evaluation cache.
type CacheClearer interface {
	Clear()
}

// Server exposes the scorer over HTTP.
type Server struct {
	router   chi.Router
	scorer   *scorer.Scorer
	feedback *feedback.Service
	cache    CacheClearer
	log      *slog.Logger
	apiKey   string
}

// NewServer creates and configures the HTTP server. An empty apiKey leaves the API open.
// cache may be nil when no remote evaluator is configured.
func NewServer(s *scorer.Scorer, fb *feedback.Service, cache CacheClearer, log *slog.Logger, apiKey string) *Server {
	if log == nil {
		log = slog.Default()
	}
	srv := &Server{
		scorer:   s,
		feedback: fb,
		cache:    cache,
		log:      log,
		apiKey:   apiKey,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(AuthMiddleware(s.apiKey, s.log))
		}

		r.Post("/api/score", s.handleScore)
		r.Post("/api/metrics", s.handleMetrics)
		r.Get("/api/criteria", s.handleGetCriteria)
		r.Patch("/api/criteria", s.handlePatchCriteria)
		r.Delete("/api/cache", s.handleClearCache)

		if s.feedback != nil {
			r.Post("/api/feedback", s.handleFeedback)
			r.Get("/api/feedback/{sectionID}", s.handleFeedbackHistory)
		}
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
