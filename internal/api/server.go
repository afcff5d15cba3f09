package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/studiofx/platform/internal/api/handler"
	mw "github.com/studiofx/platform/internal/api/middleware"
	"github.com/studiofx/platform/internal/config"
	"github.com/studiofx/platform/internal/core"
)

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	pool        *pgxpool.Pool
	cfg         *config.Config
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	services := core.NewServices(pool, cfg.SessionSecret, cfg.SessionIssuer, logger)
	auditLogger := mw.NewAuditLogger(pool, logger)

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		pool:        pool,
		cfg:         cfg,
		auditLogger: auditLogger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Session login (no auth required)
	auth := handler.NewAuth(s.services.Auth)
	s.router.Post("/auth/login", auth.Login)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(s.services.APIKey))
		r.Use(mw.SessionAuth(s.services.Auth, s.services.User))
		r.Use(mw.RequireUser)
		r.Use(s.auditLogger.Middleware)

		// API keys
		apiKey := handler.NewAPIKey(s.services.APIKey)
		r.Get("/api-keys", apiKey.List)
		r.Post("/api-keys", apiKey.Create)
		r.Delete("/api-keys/{publicID}", apiKey.Revoke)

		// Users
		user := handler.NewUser(s.services.User)
		r.Get("/users", user.List)
		r.Post("/users", user.Create)
		r.Get("/users/me", user.Me)
		r.Get("/users/{id}", user.Get)

		// Projects
		project := handler.NewProject(s.services.Project)
		r.Get("/projects", project.List)
		r.Post("/projects", project.Create)
		r.Get("/projects/{id}", project.Get)
		r.Put("/projects/{id}", project.Update)
		r.Delete("/projects/{id}", project.Delete)

		// Repositories
		repo := handler.NewRepository(s.services.Repository, s.services.Project)
		r.Get("/projects/{projectID}/repositories", repo.ListByProject)
		r.Post("/projects/{projectID}/repositories", repo.Create)
		r.Get("/repositories/{id}", repo.Get)
		r.Delete("/repositories/{id}", repo.Delete)

		// Releases
		release := handler.NewRelease(s.services.Release, s.services.Project)
		r.Get("/projects/{projectID}/releases", release.ListByProject)
		r.Post("/projects/{projectID}/releases", release.Create)
		r.Get("/releases/{id}", release.Get)
		r.Post("/releases/{id}/publish", release.Publish)

		// Agents
		agent := handler.NewAgent(s.services.Agent)
		r.Get("/agents", agent.List)
		r.Post("/agents", agent.Create)
		r.Get("/agents/{id}", agent.Get)
		r.Put("/agents/{id}", agent.Update)
		r.Delete("/agents/{id}", agent.Delete)

		// Skills
		skill := handler.NewSkill(s.services.Skill, s.services.Agent)
		r.Get("/agents/{agentID}/skills", skill.ListByAgent)
		r.Post("/agents/{agentID}/skills", skill.Create)
		r.Get("/skills/{id}", skill.Get)
		r.Delete("/skills/{id}", skill.Delete)

		// Audit logs
		audit := handler.NewAudit(s.pool)
		r.Get("/audit-logs", audit.List)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(checks)
}

// Close stops the async audit writer.
func (s *Server) Close() {
	s.auditLogger.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
