package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

// FileClient serves the backend contract from a bundled seed file.
// The file is re-read on every call so edits show up without a restart.
type FileClient struct {
	path   string
	logger *zap.Logger
}

// Ensure FileClient implements port.BackendClient
var _ port.BackendClient = (*FileClient)(nil)

// NewFileClient creates a client over a .json, .yaml or .yml seed file
func NewFileClient(path string, logger *zap.Logger) (*FileClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q", filepath.Ext(path))
	}
	return &FileClient{path: path, logger: logger}, nil
}

type jsonSeed struct {
	Projects []json.RawMessage `json:"projects"`
	Events   []json.RawMessage `json:"events"`
}

type yamlSeed struct {
	Projects []yaml.Node `yaml:"projects"`
	Events   []yaml.Node `yaml:"events"`
}

type seed struct {
	projects []domain.Project
	events   []domain.Event
}

func (c *FileClient) load(ctx context.Context) (*seed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var projects, events []rawItem
	if strings.ToLower(filepath.Ext(c.path)) == ".json" {
		var s jsonSeed
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode seed file: %w", err)
		}
		projects, events = jsonItems(s.Projects), jsonItems(s.Events)
	} else {
		var s yamlSeed
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode seed file: %w", err)
		}
		projects, events = yamlItems(s.Projects), yamlItems(s.Events)
	}

	return &seed{
		projects: decodeProjects(projects, c.logger),
		events:   decodeEvents(events, c.logger),
	}, nil
}

// Projects lists every project in the seed file
func (c *FileClient) Projects(ctx context.Context) ([]domain.Project, error) {
	s, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.projects, nil
}

// ProjectsByCategory lists the seed projects of one category
func (c *FileClient) ProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	s, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Category() == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Project returns one seed project
func (c *FileClient) Project(ctx context.Context, id string) (domain.Project, error) {
	s, err := c.load(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	i := slices.IndexFunc(s.projects, func(p domain.Project) bool { return p.ID() == id })
	if i < 0 {
		return domain.Project{}, fmt.Errorf("project %q: %w", id, domain.ErrNotFound)
	}
	return s.projects[i], nil
}

// Events lists every event in the seed file
func (c *FileClient) Events(ctx context.Context) ([]domain.Event, error) {
	s, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.events, nil
}

// Event returns one seed event
func (c *FileClient) Event(ctx context.Context, id string) (domain.Event, error) {
	s, err := c.load(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	i := slices.IndexFunc(s.events, func(e domain.Event) bool { return e.ID() == id })
	if i < 0 {
		return domain.Event{}, fmt.Errorf("event %q: %w", id, domain.ErrNotFound)
	}
	return s.events[i], nil
}
