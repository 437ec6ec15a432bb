package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/domain/vo"
)

// ProjectDTO is the wire shape of a project. The HTTP API serves the same
// shape it reads from backends. Older payloads use "prereq" and a comma
// separated string.
type ProjectDTO struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"desc" yaml:"desc"`
	Head          string     `json:"head" yaml:"head"`
	Prerequisites stringList `json:"prerequisites" yaml:"prerequisites"`
	Prereq        stringList `json:"prereq,omitempty" yaml:"prereq,omitempty"`
	Category      string     `json:"category" yaml:"category"`
}

// EventDTO is the wire shape of an event
type EventDTO struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"desc" yaml:"desc"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	ImageURI    string `json:"imageUri,omitempty" yaml:"imageUri,omitempty"`
	Start       string `json:"start,omitempty" yaml:"start,omitempty"`
	End         string `json:"end,omitempty" yaml:"end,omitempty"`
}

// NewProjectDTO converts a project to its wire shape
func NewProjectDTO(p domain.Project) ProjectDTO {
	prereqs := p.Prerequisites()
	if prereqs == nil {
		prereqs = []string{}
	}
	return ProjectDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Head:          p.Head(),
		Prerequisites: prereqs,
		Category:      p.Category().String(),
	}
}

// NewEventDTO converts an event to its wire shape
func NewEventDTO(e domain.Event) EventDTO {
	dto := EventDTO{
		ID:          e.ID(),
		Name:        e.Name(),
		Description: e.Description(),
		ImageURI:    e.ImageURI(),
	}
	if loc, ok := e.Location(); ok {
		dto.Location = loc.String()
	}
	if start, ok := e.Start(); ok {
		dto.Start = start.Format(time.RFC3339)
	}
	if end, ok := e.End(); ok {
		dto.End = end.Format(time.RFC3339)
	}
	return dto
}

// ProjectDTOs converts a list, keeping an empty list non-nil
func ProjectDTOs(projects []domain.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = NewProjectDTO(p)
	}
	return out
}

// EventDTOs converts a list, keeping an empty list non-nil
func EventDTOs(events []domain.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, e := range events {
		out[i] = NewEventDTO(e)
	}
	return out
}

// APIError is returned for non-2xx responses that have no better mapping
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

var errMalformed = errors.New("malformed entry")

// stringList accepts either a JSON/YAML list of strings or a single comma
// separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = splitList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = splitList(value.Value)
		return nil
	}
	var items []string
	if err := value.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ToDomain converts the wire shape. A missing id falls back to the name,
// which is what the backend used as key before ids were introduced.
func (d ProjectDTO) ToDomain() (domain.Project, error) {
	category, err := domain.ParseCategory(d.Category)
	if err != nil {
		return domain.Project{}, err
	}
	id := d.ID
	if strings.TrimSpace(id) == "" {
		id = d.Name
	}
	prereqs := d.Prerequisites
	if len(prereqs) == 0 {
		prereqs = d.Prereq
	}
	return domain.NewProject(domain.ProjectAttrs{
		ID:            id,
		Name:          d.Name,
		Head:          d.Head,
		Description:   d.Description,
		Category:      category,
		Prerequisites: prereqs,
	})
}

func (d EventDTO) ToDomain() (domain.Event, error) {
	attrs := domain.EventAttrs{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURI:    d.ImageURI,
	}
	if attrs.ID == "" {
		attrs.ID = d.Name
	}
	if strings.TrimSpace(d.Location) != "" {
		loc, err := vo.ParseLocation(d.Location)
		if err != nil {
			return domain.Event{}, err
		}
		attrs.Location = &loc
	}
	var err error
	if attrs.Start, err = parseWireTime(d.Start); err != nil {
		return domain.Event{}, fmt.Errorf("start: %w", err)
	}
	if attrs.End, err = parseWireTime(d.End); err != nil {
		return domain.Event{}, fmt.Errorf("end: %w", err)
	}
	return domain.NewEvent(attrs)
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseWireTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unrecognised time %q", errMalformed, s)
}

// rawItem decodes one list entry into a DTO. It lets JSON and YAML payloads
// share the skip-on-error conversion below.
type rawItem func(v any) error

func jsonItem(raw json.RawMessage) rawItem {
	return func(v any) error { return json.Unmarshal(raw, v) }
}

func jsonItems(raw []json.RawMessage) []rawItem {
	items := make([]rawItem, len(raw))
	for i, r := range raw {
		items[i] = jsonItem(r)
	}
	return items
}

func yamlItems(nodes []yaml.Node) []rawItem {
	items := make([]rawItem, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		items[i] = func(v any) error { return node.Decode(v) }
	}
	return items
}

func decodeProjects(items []rawItem, logger *zap.Logger) []domain.Project {
	projects := make([]domain.Project, 0, len(items))
	for i, item := range items {
		p, err := decodeProject(item)
		if err != nil {
			logSkipped(logger, domain.NewSkippableError("project", i, err))
			continue
		}
		projects = append(projects, p)
	}
	return projects
}

func decodeProject(item rawItem) (domain.Project, error) {
	var dto ProjectDTO
	if err := item(&dto); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	return dto.ToDomain()
}

func decodeEvents(items []rawItem, logger *zap.Logger) []domain.Event {
	events := make([]domain.Event, 0, len(items))
	for i, item := range items {
		e, err := decodeEvent(item)
		if err != nil {
			logSkipped(logger, domain.NewSkippableError("event", i, err))
			continue
		}
		events = append(events, e)
	}
	return events
}

func decodeEvent(item rawItem) (domain.Event, error) {
	var dto EventDTO
	if err := item(&dto); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	return dto.ToDomain()
}

func logSkipped(logger *zap.Logger, err *domain.SkippableError) {
	logger.Warn("skipping malformed backend entry",
		zap.String("kind", err.Kind),
		zap.Int("index", err.Index),
		zap.Error(err.Err),
	)
}
