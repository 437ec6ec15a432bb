package port

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"

	"github.com/eeese/showcase/internal/domain"
)

// ProjectSource is the contract shared by the local store, the remote
// backend and the cache-coordinating repository itself.
type ProjectSource interface {
	// InsertProject upserts a single project
	InsertProject(ctx context.Context, project domain.Project) error

	// InsertProjects upserts a batch of projects
	InsertProjects(ctx context.Context, projects []domain.Project) error

	// SetProjects replaces every stored project with the given set
	SetProjects(ctx context.Context, projects []domain.Project) error

	// SetProjectsInCategory replaces the projects of one category
	SetProjectsInCategory(ctx context.Context, category domain.Category, projects []domain.Project) error

	// ClearProjects removes every project
	ClearProjects(ctx context.Context) error

	// ClearProjectsInCategory removes the projects of one category
	ClearProjectsInCategory(ctx context.Context, category domain.Category) error

	// GetProject returns one project or domain.ErrNotFound.
	// force asks for fresh data; sources without a cache ignore it.
	GetProject(ctx context.Context, id string, force bool) (domain.Project, error)

	// GetProjects returns every project. No data is an empty slice and a nil error.
	GetProjects(ctx context.Context, force bool) ([]domain.Project, error)

	// GetProjectsByCategory returns the projects of one category
	GetProjectsByCategory(ctx context.Context, force bool, category domain.Category) ([]domain.Project, error)
}

// EventSource is the event counterpart of ProjectSource.
type EventSource interface {
	// InsertEvent upserts a single event
	InsertEvent(ctx context.Context, event domain.Event) error

	// InsertEvents upserts a batch of events
	InsertEvents(ctx context.Context, events []domain.Event) error

	// SetEvents replaces every stored event with the given set
	SetEvents(ctx context.Context, events []domain.Event) error

	// ClearEvents removes every event
	ClearEvents(ctx context.Context) error

	// GetEvent returns one event or domain.ErrNotFound
	GetEvent(ctx context.Context, id string, force bool) (domain.Event, error)

	// GetEvents returns every event
	GetEvents(ctx context.Context, force bool) ([]domain.Event, error)
}
