package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eeese/showcase/internal/domain/vo"
)

// ProjectAttrs carries the attributes used to build a Project.
type ProjectAttrs struct {
	ID            string
	Name          string
	Head          string
	Description   string
	Category      Category
	Prerequisites []string
}

// Project is an immutable catalog entry. Use Attrs and NewProject to derive a
// modified copy.
type Project struct {
	id            vo.EntityID
	name          string
	head          string
	description   string
	category      Category
	prerequisites []string
}

// NewProject validates attrs and builds a Project.
func NewProject(attrs ProjectAttrs) (Project, error) {
	id, err := vo.NewEntityID(attrs.ID)
	if err != nil {
		return Project{}, fmt.Errorf("%w: project id: %w", ErrInvalidInput, err)
	}
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return Project{}, fmt.Errorf("%w: project %s has no name", ErrInvalidInput, id)
	}
	if !attrs.Category.Valid() {
		return Project{}, fmt.Errorf("%w: project %s: %d", ErrInvalidCategory, id, int(attrs.Category))
	}

	var prereqs []string
	for _, p := range attrs.Prerequisites {
		if p = strings.TrimSpace(p); p != "" {
			prereqs = append(prereqs, p)
		}
	}

	return Project{
		id:            id,
		name:          name,
		head:          strings.TrimSpace(attrs.Head),
		description:   attrs.Description,
		category:      attrs.Category,
		prerequisites: prereqs,
	}, nil
}

// MustProject is NewProject that panics on invalid input.
func MustProject(attrs ProjectAttrs) Project {
	p, err := NewProject(attrs)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Project) ID() string { return p.id.String() }
func (p Project) Name() string { return p.name }
func (p Project) Head() string { return p.head }
func (p Project) Description() string { return p.description }
func (p Project) Category() Category { return p.category }
func (p Project) IsZero() bool { return p.id.IsEmpty() }

// Prerequisites returns a copy of the prerequisite list.
func (p Project) Prerequisites() []string {
	return slices.Clone(p.prerequisites)
}

// Attrs returns the attributes of p.
func (p Project) Attrs() ProjectAttrs {
	return ProjectAttrs{
		ID:            p.id.String(),
		Name:          p.name,
		Head:          p.head,
		Description:   p.description,
		Category:      p.category,
		Prerequisites: p.Prerequisites(),
	}
}

// Equal compares every field; prerequisite order matters.
func (p Project) Equal(other Project) bool {
	return p.id.Equals(other.id) &&
		p.name == other.name &&
		p.head == other.head &&
		p.description == other.description &&
		p.category == other.category &&
		slices.Equal(p.prerequisites, other.prerequisites)
}
