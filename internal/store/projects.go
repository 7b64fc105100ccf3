package store

import (
	"math/rand"
	"slices"

	"ttm/internal/models"
)

// Projects returns a copy of the projects in insertion order.
func (s *Store) Projects() []models.Project {
	return slices.Clone(s.projects)
}

// AddProject appends a new project with a color drawn from the palette and
// persists the collection. createdBy may be empty when no user is logged in.
func (s *Store) AddProject(name, description, createdBy string) models.Project {
	p := models.Project{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Color:       models.ProjectColors[rand.Intn(len(models.ProjectColors))],
		CreatedAt:   s.now(),
		CreatedBy:   createdBy,
	}
	s.projects = append(s.projects, p)
	s.persist(keyProjects, s.projects)
	return p
}

// UpdateProject applies patch to the project with the given id. An unknown
// id is a no-op on content, but the collection is persisted either way.
func (s *Store) UpdateProject(id string, patch models.ProjectPatch) {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.projects[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.projects[i].Description = *patch.Description
		}
		if patch.Color != nil {
			s.projects[i].Color = *patch.Color
		}
		break
	}
	s.persist(keyProjects, s.projects)
}

// RemoveProject drops the project with the given id. Its tasks are left in
// place with their project reference now dangling.
func (s *Store) RemoveProject(id string) {
	s.projects = slices.DeleteFunc(s.projects, func(p models.Project) bool {
		return p.ID == id
	})
	s.persist(keyProjects, s.projects)
}

// ReplaceAllProjects swaps in a whole new collection and persists it.
func (s *Store) ReplaceAllProjects(projects []models.Project) {
	s.projects = slices.Clone(projects)
	s.persist(keyProjects, s.projects)
}
