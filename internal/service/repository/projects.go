package repository

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/zerr"
	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

const scopeAll = "all"

// ProjectRepository coordinates a local and a remote project source behind
// an in-memory cache with per-category dirty tracking.
type ProjectRepository struct {
	local  port.ProjectSource
	remote port.ProjectSource
	state  *cacheState[domain.Category, domain.Project]
	engine *engine[domain.Category, domain.Project]
}

// Ensure ProjectRepository implements port.ProjectSource
var _ port.ProjectSource = (*ProjectRepository)(nil)

// CategoryStatus reports the cache state of one category
type CategoryStatus struct {
	Category domain.Category
	Dirty    bool
	Cached   int
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(cfg *Config, local, remote port.ProjectSource, logger *zap.Logger) *ProjectRepository {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	state := newCacheState(domain.Categories(), domain.Project.ID, domain.Project.Category)
	return &ProjectRepository{
		local:  local,
		remote: remote,
		state:  state,
		engine: newEngine("projects", cfg, state, logger),
	}
}

// InsertProject upserts a project in the local store
func (r *ProjectRepository) InsertProject(ctx context.Context, project domain.Project) error {
	scopes := []domain.Category{project.Category()}
	if old, ok := r.state.scopeOfID(project.ID()); ok && old != project.Category() {
		scopes = append(scopes, old)
	}

	err := r.write(ctx, "insert project", scopes, func() error {
		return r.local.InsertProject(ctx, project)
	})
	return withID(err, project.ID())
}

// InsertProjects upserts projects in the local store
func (r *ProjectRepository) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return r.write(ctx, "insert projects", domain.Categories(), func() error {
		return r.local.InsertProjects(ctx, projects)
	})
}

// SetProjects replaces every project in the local store
func (r *ProjectRepository) SetProjects(ctx context.Context, projects []domain.Project) error {
	return r.write(ctx, "set projects", domain.Categories(), func() error {
		return r.local.SetProjects(ctx, projects)
	})
}

// SetProjectsInCategory replaces the projects of one category in the local store
func (r *ProjectRepository) SetProjectsInCategory(ctx context.Context, category domain.Category, projects []domain.Project) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidCategory, int(category))
	}

	scopes := []domain.Category{category}
	for _, p := range projects {
		if p.Category() != category {
			err := zerr.Wrap(domain.ErrInvalidInput, "project is not in the target category")
			err = zerr.With(err, "project_id", p.ID())
			return zerr.With(err, "category", category.String())
		}
		if old, ok := r.state.scopeOfID(p.ID()); ok && old != category && !slices.Contains(scopes, old) {
			scopes = append(scopes, old)
		}
	}

	return r.write(ctx, "set projects in category", scopes, func() error {
		return r.local.SetProjectsInCategory(ctx, category, projects)
	})
}

// ClearProjects removes every project from the cache and the local store
func (r *ProjectRepository) ClearProjects(ctx context.Context) error {
	err := r.engine.exclusive(func() error {
		r.state.clear()
		r.engine.invalidated("clear projects", categoryNames(domain.Categories())...)

		err := r.local.ClearProjects(ctx)
		r.state.invalidateAll()
		return err
	})
	return persistenceError("clear projects", err)
}

// ClearProjectsInCategory removes the projects of one category from the
// cache and the local store
func (r *ProjectRepository) ClearProjectsInCategory(ctx context.Context, category domain.Category) error {
	err := r.engine.exclusive(func() error {
		r.state.clearScope(category)
		r.engine.invalidated("clear projects in category", category.String())

		err := r.local.ClearProjectsInCategory(ctx, category)
		r.state.invalidate(category)
		return err
	})
	return persistenceError("clear projects in category", err)
}

// write invalidates scopes around a local write
func (r *ProjectRepository) write(ctx context.Context, op string, scopes []domain.Category, fn func() error) error {
	err := r.engine.exclusive(func() error {
		r.state.invalidate(scopes...)
		r.engine.invalidated(op, categoryNames(scopes)...)

		err := fn()
		r.state.invalidate(scopes...)
		return err
	})
	return persistenceError(op, err)
}

// GetProject returns one project, syncing all categories first if any is dirty
func (r *ProjectRepository) GetProject(ctx context.Context, id string, force bool) (domain.Project, error) {
	projects, err := r.GetProjects(ctx, force)
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range projects {
		if p.ID() == id {
			return p, nil
		}
	}
	return domain.Project{}, zerr.With(zerr.Wrap(domain.ErrNotFound, "project not found"), "project_id", id)
}

// GetProjects returns every project
func (r *ProjectRepository) GetProjects(ctx context.Context, force bool) ([]domain.Project, error) {
	return r.engine.read(ctx, query[domain.Category, domain.Project]{
		key:    scopeAll,
		scopes: domain.Categories(),
		local: func(ctx context.Context) ([]domain.Project, error) {
			return r.local.GetProjects(ctx, false)
		},
		remote: func(ctx context.Context) ([]domain.Project, error) {
			return r.remote.GetProjects(ctx, true)
		},
		persist: func(ctx context.Context, projects []domain.Project) error {
			return r.local.SetProjects(ctx, projects)
		},
	}, force)
}

// GetProjectsByCategory returns the projects of one category
func (r *ProjectRepository) GetProjectsByCategory(ctx context.Context, force bool, category domain.Category) ([]domain.Project, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCategory, int(category))
	}

	return r.engine.read(ctx, query[domain.Category, domain.Project]{
		key:    category.String(),
		scopes: []domain.Category{category},
		local: func(ctx context.Context) ([]domain.Project, error) {
			projects, err := r.local.GetProjectsByCategory(ctx, false, category)
			return inCategory(projects, category), err
		},
		remote: func(ctx context.Context) ([]domain.Project, error) {
			projects, err := r.remote.GetProjectsByCategory(ctx, true, category)
			return inCategory(projects, category), err
		},
		persist: func(ctx context.Context, projects []domain.Project) error {
			return r.local.SetProjectsInCategory(ctx, category, projects)
		},
	}, force)
}

// Status reports the dirty flag and cached count of every category
func (r *ProjectRepository) Status() []CategoryStatus {
	states := r.state.status()
	out := make([]CategoryStatus, len(states))
	for i, s := range states {
		out[i] = CategoryStatus{Category: s.scope, Dirty: s.dirty, Cached: s.cached}
	}
	return out
}

// Wait blocks until background remote fetches have settled. It must not be
// called while reads are in flight; use Close at shutdown.
func (r *ProjectRepository) Wait() {
	r.engine.wait()
}

// Close stops reads from starting new fetches and waits for background
// remote fetches to settle. Reads served from the cache keep working.
func (r *ProjectRepository) Close() {
	r.engine.close()
}

// inCategory drops projects a source returned for the wrong category
func inCategory(projects []domain.Project, category domain.Category) []domain.Project {
	if projects == nil {
		return nil
	}
	out := projects[:0:0]
	for _, p := range projects {
		if p.Category() == category {
			out = append(out, p)
		}
	}
	return out
}

func categoryNames(categories []domain.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}

func withID(err error, id string) error {
	if err == nil {
		return nil
	}
	return zerr.With(err, "project_id", id)
}
