package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/adapter/backend"
	"github.com/eeese/showcase/internal/domain"
)

// maxBodySize bounds admin request bodies
const maxBodySize = 4 << 20

// AdminHandler handles authenticated catalog writes
type AdminHandler struct {
	projects ProjectCatalog
	events   EventCatalog
	syncer   SyncTrigger
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. syncer may be nil.
func NewAdminHandler(projects ProjectCatalog, events EventCatalog, syncer SyncTrigger, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		projects: projects,
		events:   events,
		syncer:   syncer,
		logger:   logger,
	}
}

// HandleAddProjects handles POST /api/projects with one project or a list
func (h *AdminHandler) HandleAddProjects(w http.ResponseWriter, r *http.Request) {
	projects, single, err := decodeProjectBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if single {
		err = h.projects.InsertProject(r.Context(), projects[0])
	} else {
		err = h.projects.InsertProjects(r.Context(), projects)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("projects added", zap.Int("count", len(projects)))
	if single {
		writeJSON(w, http.StatusCreated, backend.NewProjectDTO(projects[0]))
		return
	}
	writeJSON(w, http.StatusCreated, backend.ProjectDTOs(projects))
}

// HandleSetProjects handles PUT /api/projects[?category=]
func (h *AdminHandler) HandleSetProjects(w http.ResponseWriter, r *http.Request) {
	category, filtered, err := parseCategory(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	projects, _, err := decodeProjectBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if filtered {
		err = h.projects.SetProjectsInCategory(r.Context(), category, projects)
	} else {
		err = h.projects.SetProjects(r.Context(), projects)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("projects replaced",
		zap.Int("count", len(projects)),
		zap.String("category", categoryLabel(category, filtered)))
	w.WriteHeader(http.StatusNoContent)
}

// HandleClearProjects handles DELETE /api/projects[?category=]
func (h *AdminHandler) HandleClearProjects(w http.ResponseWriter, r *http.Request) {
	category, filtered, err := parseCategory(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if filtered {
		err = h.projects.ClearProjectsInCategory(r.Context(), category)
	} else {
		err = h.projects.ClearProjects(r.Context())
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("projects cleared", zap.String("category", categoryLabel(category, filtered)))
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddEvents handles POST /api/events with one event or a list
func (h *AdminHandler) HandleAddEvents(w http.ResponseWriter, r *http.Request) {
	events, single, err := decodeEventBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if single {
		err = h.events.InsertEvent(r.Context(), events[0])
	} else {
		err = h.events.InsertEvents(r.Context(), events)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("events added", zap.Int("count", len(events)))
	if single {
		writeJSON(w, http.StatusCreated, backend.NewEventDTO(events[0]))
		return
	}
	writeJSON(w, http.StatusCreated, backend.EventDTOs(events))
}

// HandleSetEvents handles PUT /api/events
func (h *AdminHandler) HandleSetEvents(w http.ResponseWriter, r *http.Request) {
	events, _, err := decodeEventBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.events.SetEvents(r.Context(), events); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("events replaced", zap.Int("count", len(events)))
	w.WriteHeader(http.StatusNoContent)
}

// HandleClearEvents handles DELETE /api/events
func (h *AdminHandler) HandleClearEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.events.ClearEvents(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("events cleared")
	w.WriteHeader(http.StatusNoContent)
}

// HandleSync handles POST /api/sync
func (h *AdminHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		writeError(w, h.logger, fmt.Errorf("%w: background sync is disabled", domain.ErrUnsupported))
		return
	}

	allowed, wait := h.syncer.Trigger()
	if !allowed {
		writeThrottled(w, wait, "sync")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
}

func categoryLabel(c domain.Category, filtered bool) string {
	if !filtered {
		return "all"
	}
	return c.String()
}

// readItems reads a body holding either one JSON object or a list of them
func readItems(w http.ResponseWriter, r *http.Request) ([]json.RawMessage, bool, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading body: %w", domain.ErrInvalidInput, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false, fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
	}

	if data[0] != '[' {
		return []json.RawMessage{data}, true, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return items, false, nil
}

func decodeProjectBody(w http.ResponseWriter, r *http.Request) ([]domain.Project, bool, error) {
	items, single, err := readItems(w, r)
	if err != nil {
		return nil, false, err
	}

	projects := make([]domain.Project, 0, len(items))
	for i, raw := range items {
		var dto backend.ProjectDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, false, fmt.Errorf("%w: project %d: %w", domain.ErrInvalidInput, i, err)
		}
		// New projects without an id get a generated one instead of the
		// name fallback used for backend payloads.
		if strings.TrimSpace(dto.ID) == "" {
			dto.ID = uuid.NewString()
		}
		p, err := dto.ToDomain()
		if err != nil {
			return nil, false, fmt.Errorf("project %d: %w", i, err)
		}
		projects = append(projects, p)
	}
	return projects, single, nil
}

func decodeEventBody(w http.ResponseWriter, r *http.Request) ([]domain.Event, bool, error) {
	items, single, err := readItems(w, r)
	if err != nil {
		return nil, false, err
	}

	events := make([]domain.Event, 0, len(items))
	for i, raw := range items {
		var dto backend.EventDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, false, fmt.Errorf("%w: event %d: %w", domain.ErrInvalidInput, i, err)
		}
		if strings.TrimSpace(dto.ID) == "" {
			dto.ID = uuid.NewString()
		}
		e, err := dto.ToDomain()
		if err != nil {
			return nil, false, fmt.Errorf("%w: event %d: %w", domain.ErrInvalidInput, i, err)
		}
		events = append(events, e)
	}
	return events, single, nil
}
