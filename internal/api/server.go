package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Todamie/moodle-xml-to-txt/internal/config"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
)

// Server is the HTTP API for on-demand conversions.
type Server struct {
	router chi.Router
	stats  *pipeline.DurationStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. stats collects the
// duration of every conversion the server runs.
func NewServer(stats *pipeline.DurationStats, log *slog.Logger, cfg config.Config) *Server {
	if stats == nil {
		stats = pipeline.NewDurationStats(cfg.StatsWindow)
	}
	s := &Server{
		stats: stats,
		log:   log,
		cfg:   cfg,
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

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/convert", s.handleConvert)
		r.Post("/api/inspect", s.handleInspect)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
