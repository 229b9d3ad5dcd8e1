package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/coursekit/syllex/internal/config"
	"github.com/coursekit/syllex/internal/extractor"
)

// Server is the HTTP API server for syllex.
type Server struct {
	router    chi.Router
	extractor *extractor.Service
	log       zerolog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *extractor.Service, log zerolog.Logger, cfg config.Config) *Server {
	s := &Server{
		extractor: svc,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// API endpoints, auth-gated when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/api/extract", s.handleExtract)
		r.Get("/api/sections", s.handleSections)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
