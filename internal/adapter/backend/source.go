package backend

import (
	"context"
	"fmt"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

// Source adapts a BackendClient to the read/write source contracts.
// The backend is read-only; every write fails with domain.ErrUnsupported.
type Source struct {
	client port.BackendClient
}

var (
	_ port.ProjectSource = (*Source)(nil)
	_ port.EventSource   = (*Source)(nil)
)

// NewSource wraps client
func NewSource(client port.BackendClient) *Source {
	return &Source{client: client}
}

func unsupported(op string) error {
	return fmt.Errorf("%w: remote %s", domain.ErrUnsupported, op)
}

func (s *Source) InsertProject(ctx context.Context, project domain.Project) error {
	return unsupported("insert project")
}

func (s *Source) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return unsupported("insert projects")
}

func (s *Source) SetProjects(ctx context.Context, projects []domain.Project) error {
	return unsupported("set projects")
}

func (s *Source) SetProjectsInCategory(ctx context.Context, category domain.Category, projects []domain.Project) error {
	return unsupported("set projects in category")
}

func (s *Source) ClearProjects(ctx context.Context) error {
	return unsupported("clear projects")
}

func (s *Source) ClearProjectsInCategory(ctx context.Context, category domain.Category) error {
	return unsupported("clear projects in category")
}

// GetProject always asks the backend; force has no meaning here.
func (s *Source) GetProject(ctx context.Context, id string, force bool) (domain.Project, error) {
	return s.client.Project(ctx, id)
}

func (s *Source) GetProjects(ctx context.Context, force bool) ([]domain.Project, error) {
	return s.client.Projects(ctx)
}

func (s *Source) GetProjectsByCategory(ctx context.Context, force bool, category domain.Category) ([]domain.Project, error) {
	return s.client.ProjectsByCategory(ctx, category)
}

func (s *Source) InsertEvent(ctx context.Context, event domain.Event) error {
	return unsupported("insert event")
}

func (s *Source) InsertEvents(ctx context.Context, events []domain.Event) error {
	return unsupported("insert events")
}

func (s *Source) SetEvents(ctx context.Context, events []domain.Event) error {
	return unsupported("set events")
}

func (s *Source) ClearEvents(ctx context.Context) error {
	return unsupported("clear events")
}

func (s *Source) GetEvent(ctx context.Context, id string, force bool) (domain.Event, error) {
	return s.client.Event(ctx, id)
}

func (s *Source) GetEvents(ctx context.Context, force bool) ([]domain.Event, error) {
	return s.client.Events(ctx)
}
