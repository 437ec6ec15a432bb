package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/port"
)

// DebugHandler handles debug endpoint requests
type DebugHandler struct {
	store    port.Store
	projects ProjectCatalog
	events   EventCatalog
	metrics  MetricsSource
	logger   *zap.Logger
}

// NewDebugHandler creates a new DebugHandler. metrics may be nil.
func NewDebugHandler(store port.Store, projects ProjectCatalog, events EventCatalog, metrics MetricsSource, logger *zap.Logger) *DebugHandler {
	return &DebugHandler{
		store:    store,
		projects: projects,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

type categoryCache struct {
	Category string `json:"category"`
	Dirty    bool   `json:"dirty"`
	Cached   int    `json:"cached"`
}

type eventCache struct {
	Dirty  bool `json:"dirty"`
	Cached int  `json:"cached"`
}

type cacheResponse struct {
	Projects []categoryCache  `json:"projects"`
	Events   eventCache       `json:"events"`
	Metrics  map[string]int64 `json:"metrics,omitempty"`
}

// HandleCache reports the dirty flag and cached count of every scope
func (h *DebugHandler) HandleCache(w http.ResponseWriter, r *http.Request) {
	status := h.projects.Status()
	resp := cacheResponse{
		Projects: make([]categoryCache, len(status)),
		Events:   eventCache{Dirty: h.events.Dirty(), Cached: h.events.Cached()},
	}
	for i, s := range status {
		resp.Projects[i] = categoryCache{Category: s.Category.String(), Dirty: s.Dirty, Cached: s.Cached}
	}
	if h.metrics != nil {
		resp.Metrics = h.metrics.GetMetrics()
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStats reports row counts of the local store
func (h *DebugHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	byCategory := make(map[string]int64, len(stats.ProjectsByCategory))
	for c, n := range stats.ProjectsByCategory {
		byCategory[c.String()] = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects":             stats.Projects,
		"projects_by_category": byCategory,
		"events":               stats.Events,
	})
}
