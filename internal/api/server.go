package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwaldrop/bomgen/internal/config"
	"github.com/mwaldrop/bomgen/internal/mapstore"
	"github.com/mwaldrop/bomgen/internal/pipeline"
)

// Server is the HTTP surface for bomgen: the upload page, artifact routes
// and the JSON API.
type Server struct {
	router chi.Router
	pipe   *pipeline.Pipeline
	store  *mapstore.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(pipe *pipeline.Pipeline, store *mapstore.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipe:  pipe,
		store: store,
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

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Browser surface.
	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Get("/uploads/{filename}", s.handleServeUpload)
	r.Get("/download/{filename}", s.handleDownload)

	// JSON API; token-guarded when a key is configured.
	r.Route("/api", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Post("/bom", s.handleBoM)
		r.Get("/mapping/{identity}", s.handleGetMapping)
		r.Put("/mapping/{identity}", s.handlePutMapping)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
