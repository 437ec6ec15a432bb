package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eeese/showcase/internal/domain"
)

const projectColumns = `id, name, head, description, category, prerequisites`

const upsertProjectQuery = `
	INSERT INTO projects (id, name, head, description, category, prerequisites)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		head = excluded.head,
		description = excluded.description,
		category = excluded.category,
		prerequisites = excluded.prerequisites,
		updated_at = CURRENT_TIMESTAMP
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertProject(ctx context.Context, db execer, p domain.Project) error {
	prereqs := p.Prerequisites()
	if prereqs == nil {
		prereqs = []string{}
	}
	encoded, err := json.Marshal(prereqs)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, upsertProjectQuery,
		p.ID(), p.Name(), p.Head(), p.Description(), p.Category().Code(), string(encoded))
	if err != nil {
		return fmt.Errorf("project %s: %w", p.ID(), err)
	}
	return nil
}

// InsertProject upserts a project
func (s *Store) InsertProject(ctx context.Context, project domain.Project) error {
	if err := upsertProject(ctx, s.db, project); err != nil {
		return persistenceError("insert project", err)
	}
	return nil
}

// InsertProjects upserts a batch of projects in one transaction
func (s *Store) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return s.withTx(ctx, "insert projects", func(tx *sql.Tx) error {
		for _, p := range projects {
			if err := upsertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetProjects replaces the whole projects table
func (s *Store) SetProjects(ctx context.Context, projects []domain.Project) error {
	return s.withTx(ctx, "set projects", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
			return err
		}
		for _, p := range projects {
			if err := upsertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetProjectsInCategory replaces the projects of one category
func (s *Store) SetProjectsInCategory(ctx context.Context, category domain.Category, projects []domain.Project) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidCategory, int(category))
	}
	return s.withTx(ctx, "set projects in category", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE category = ?", category.Code()); err != nil {
			return err
		}
		for _, p := range projects {
			if err := upsertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearProjects deletes every project
func (s *Store) ClearProjects(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return persistenceError("clear projects", err)
	}
	return nil
}

// ClearProjectsInCategory deletes the projects of one category
func (s *Store) ClearProjectsInCategory(ctx context.Context, category domain.Category) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE category = ?", category.Code()); err != nil {
		return persistenceError("clear projects in category", err)
	}
	return nil
}

// GetProject retrieves a project by id. force is ignored.
func (s *Store) GetProject(ctx context.Context, id string, force bool) (domain.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, fmt.Errorf("project %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// GetProjects returns every project ordered by id. force is ignored.
func (s *Store) GetProjects(ctx context.Context, force bool) ([]domain.Project, error) {
	return s.queryProjects(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY id")
}

// GetProjectsByCategory returns the projects of one category. force is ignored.
func (s *Store) GetProjectsByCategory(ctx context.Context, force bool, category domain.Category) ([]domain.Project, error) {
	return s.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE category = ? ORDER BY id", category.Code())
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (domain.Project, error) {
	var (
		attrs   domain.ProjectAttrs
		code    int
		prereqs string
	)
	if err := row.Scan(&attrs.ID, &attrs.Name, &attrs.Head, &attrs.Description, &code, &prereqs); err != nil {
		return domain.Project{}, err
	}

	category, err := domain.CategoryFromCode(code)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", attrs.ID, err)
	}
	attrs.Category = category

	if prereqs != "" {
		if err := json.Unmarshal([]byte(prereqs), &attrs.Prerequisites); err != nil {
			return domain.Project{}, fmt.Errorf("project %s: prerequisites: %w", attrs.ID, err)
		}
	}

	return domain.NewProject(attrs)
}
