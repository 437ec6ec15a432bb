package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/port"
	"github.com/eeese/showcase/internal/service/repository"
)

// Config contains HTTP server configuration
type Config struct {
	BindAddr       string
	EnableAdminAPI bool
	AdminUsername  string
	AdminPassword  string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	// ForceRefreshInterval throttles ?force=true per scope. Zero disables it.
	ForceRefreshInterval time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		BindAddr:             "0.0.0.0:8080",
		ReadTimeout:          30 * time.Second,
		WriteTimeout:         30 * time.Second,
		IdleTimeout:          60 * time.Second,
		ForceRefreshInterval: 10 * time.Second,
	}
}

// ProjectCatalog is the project repository as the API uses it
type ProjectCatalog interface {
	port.ProjectSource
	Status() []repository.CategoryStatus
}

// EventCatalog is the event repository as the API uses it
type EventCatalog interface {
	port.EventSource
	Dirty() bool
	Cached() int
}

// SyncTrigger requests an out-of-band sync
type SyncTrigger interface {
	Trigger() (bool, time.Duration)
}

// MetricsSource exposes cache event counters
type MetricsSource interface {
	GetMetrics() map[string]int64
}

// Deps are the services behind the API. Syncer and Metrics may be nil.
type Deps struct {
	Store    port.Store
	Projects ProjectCatalog
	Events   EventCatalog
	Syncer   SyncTrigger
	Metrics  MetricsSource
}

// Server represents the HTTP API server
type Server struct {
	config         *Config
	store          port.Store
	logger         *zap.Logger
	server         *http.Server
	catalogHandler *CatalogHandler
	adminHandler   *AdminHandler
	debugHandler   *DebugHandler
}

// New creates a new HTTP server
func New(cfg *Config, deps *Deps, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config: cfg,
		store:  deps.Store,
		logger: logger,
	}

	s.catalogHandler = NewCatalogHandler(deps.Projects, deps.Events, cfg.ForceRefreshInterval, logger)
	s.adminHandler = NewAdminHandler(deps.Projects, deps.Events, deps.Syncer, logger)
	s.debugHandler = NewDebugHandler(deps.Store, deps.Projects, deps.Events, deps.Metrics, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	// Catalog
	mux.HandleFunc("GET /api/projects", s.catalogHandler.HandleListProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.catalogHandler.HandleGetProject)
	mux.HandleFunc("GET /api/events", s.catalogHandler.HandleListEvents)
	mux.HandleFunc("GET /api/events/{id}", s.catalogHandler.HandleGetEvent)

	// Admin writes
	if cfg.EnableAdminAPI {
		adminAuth := BasicAuthMiddleware(cfg.AdminUsername, cfg.AdminPassword, logger)
		mux.HandleFunc("POST /api/projects", adminAuth(s.adminHandler.HandleAddProjects))
		mux.HandleFunc("PUT /api/projects", adminAuth(s.adminHandler.HandleSetProjects))
		mux.HandleFunc("DELETE /api/projects", adminAuth(s.adminHandler.HandleClearProjects))
		mux.HandleFunc("POST /api/events", adminAuth(s.adminHandler.HandleAddEvents))
		mux.HandleFunc("PUT /api/events", adminAuth(s.adminHandler.HandleSetEvents))
		mux.HandleFunc("DELETE /api/events", adminAuth(s.adminHandler.HandleClearEvents))
		mux.HandleFunc("POST /api/sync", adminAuth(s.adminHandler.HandleSync))
	}

	// Debug endpoints
	mux.HandleFunc("GET /debug/cache", s.debugHandler.HandleCache)
	mux.HandleFunc("GET /debug/stats", s.debugHandler.HandleStats)

	s.server = &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      LoggingMiddleware(logger)(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the root handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.Bool("admin_api", s.config.EnableAdminAPI))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
