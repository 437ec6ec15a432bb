package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/adapter/backend"
	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/util/ratelimiter"
)

// CatalogHandler serves read requests for projects and events
type CatalogHandler struct {
	projects ProjectCatalog
	events   EventCatalog
	limiter  *ratelimiter.Limiter
	logger   *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(projects ProjectCatalog, events EventCatalog, forceInterval time.Duration, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		projects: projects,
		events:   events,
		limiter:  ratelimiter.New(forceInterval),
		logger:   logger,
	}
}

// HandleListProjects handles GET /api/projects[?category=&force=]
func (h *CatalogHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	force, err := parseForce(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	category, filtered, err := parseCategory(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	scope := "projects:all"
	if filtered {
		scope = "projects:" + category.String()
	}
	if !h.allowForce(w, force, scope) {
		return
	}

	var projects []domain.Project
	if filtered {
		projects, err = h.projects.GetProjectsByCategory(r.Context(), force, category)
	} else {
		projects, err = h.projects.GetProjects(r.Context(), force)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCatalog(w, r, backend.ProjectDTOs(projects))
}

// HandleGetProject handles GET /api/projects/{id}[?force=]
func (h *CatalogHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	force, err := parseForce(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	// A single project is looked up in the unfiltered read.
	if !h.allowForce(w, force, "projects:all") {
		return
	}

	project, err := h.projects.GetProject(r.Context(), r.PathValue("id"), force)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCatalog(w, r, backend.NewProjectDTO(project))
}

// HandleListEvents handles GET /api/events[?force=]
func (h *CatalogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	force, err := parseForce(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !h.allowForce(w, force, "events") {
		return
	}

	events, err := h.events.GetEvents(r.Context(), force)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCatalog(w, r, backend.EventDTOs(events))
}

// HandleGetEvent handles GET /api/events/{id}[?force=]
func (h *CatalogHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	force, err := parseForce(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !h.allowForce(w, force, "events") {
		return
	}

	e, err := h.events.GetEvent(r.Context(), r.PathValue("id"), force)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCatalog(w, r, backend.NewEventDTO(e))
}

// allowForce applies the per-scope throttle to forced reads
func (h *CatalogHandler) allowForce(w http.ResponseWriter, force bool, scope string) bool {
	if !force {
		return true
	}
	allowed, wait := h.limiter.Allow(scope)
	if !allowed {
		h.logger.Debug("forced refresh throttled", zap.String("scope", scope), zap.Duration("wait", wait))
		writeThrottled(w, wait, "forced refresh")
	}
	return allowed
}
