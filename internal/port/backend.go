package port

import (
	"context"

	"github.com/eeese/showcase/internal/domain"
)

// BackendClient defines the read operations of the society backend
type BackendClient interface {
	// Projects lists every project
	Projects(ctx context.Context) ([]domain.Project, error)

	// ProjectsByCategory lists the projects of one category
	ProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error)

	// Project fetches a single project; unknown ids return domain.ErrNotFound
	Project(ctx context.Context, id string) (domain.Project, error)

	// Events lists every event
	Events(ctx context.Context) ([]domain.Event, error)

	// Event fetches a single event; unknown ids return domain.ErrNotFound
	Event(ctx context.Context, id string) (domain.Event, error)
}
