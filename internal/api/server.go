package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Server is the HTTP API server for docsite.
type Server struct {
	router chi.Router
	site   *site.Site
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *site.Site, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		site: st,
		log:  log,
		cfg:  cfg,
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
	r.Use(corsHandler(s.cfg.CORSOrigins))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/assets/code.css", s.handleCodeCSS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sections", s.handleListSections)
		r.Get("/sections/{section}", s.handleGetSection)
		r.Get("/sections/{section}/docs/{doc}", s.handleGetDocument)
		r.Get("/sections/{section}/files/{file}", s.handleGetFile)
		r.Get("/search", s.handleSearch)
		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handlePutTheme)

		// Authenticated endpoints; without a key they are not mounted.
		if s.cfg.AdminAPIKey != "" {
			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(s.cfg.AdminAPIKey, s.log))
				r.Post("/reload", s.handleReload)
			})
		}
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.site.Snapshot()
	if snap == nil {
		jsonError(w, "content not loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"fingerprint": snap.Fingerprint,
		"documents":   snap.Index.Len(),
		"loaded_at":   snap.LoadedAt,
	})
}

func (s *Server) handleCodeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := s.site.Renderer().WriteCodeCSS(w); err != nil {
		s.log.Error("write code css", "error", err)
	}
}

// corsHandler allows credentialed requests only from an explicit origin
// list. A wildcard (or no list) answers every origin without credentials.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match"},
		AllowCredentials: !wildcard,
	}).Handler
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
