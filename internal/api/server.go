package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baxromumarov/seo-auditor/internal/config"
	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/store"
)

// AuditLister serves the persisted audit history.
type AuditLister interface {
	ListAudits(ctx context.Context, limit, offset int) ([]store.AuditRecord, error)
}

type Server struct {
	router          *chi.Mux
	audits          *core.AuditService
	history         AuditLister
	allowedOrigins  []string
	analysisLimiter *ipRateLimiter
	exportLimiter   *ipRateLimiter
}

// NewServer wires the routes. history may be nil when no database is configured.
func NewServer(cfg *config.Config, audits *core.AuditService, history AuditLister) *Server {
	s := &Server{
		router:          chi.NewRouter(),
		audits:          audits,
		history:         history,
		allowedOrigins:  cfg.AllowedOrigins,
		analysisLimiter: newIPRateLimiter(cfg.AnalysisRatePerMinute, time.Minute),
		exportLimiter:   newIPRateLimiter(cfg.ExportRatePerMinute, time.Minute),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: !allowsAnyOrigin(s.allowedOrigins),
		MaxAge:           300,
	}))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.analysisLimiter.Middleware)
			r.Get("/analysis", s.handleAnalysis)
			r.Post("/audit", s.handleAudit)
			r.Post("/audit/batch", s.handleAuditBatch)
			r.Get("/brief", s.handleBrief)
			r.Post("/brief", s.handleBrief)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.exportLimiter.Middleware)
			r.Post("/export/pdf", s.handleExportPDF)
			r.Post("/export/markdown", s.handleExportMarkdown)
		})

		r.Post("/content-analysis", s.handleContentAnalysis)
		r.Post("/keyword-research", s.handleKeywordResearch)
		r.Get("/stats", s.handleStats)
		r.Get("/analytics/stats", s.handleAnalyticsStats)
		r.Get("/audits", s.handleListAudits)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
