package store

import (
	"slices"

	"ttm/internal/models"
)

// Tasks returns a copy of the tasks in insertion order. Ordering beyond
// insertion order is a presentation concern of the query layer.
func (s *Store) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

// AddTask appends a new task in status todo and persists the collection.
// projectID and assignedTo may be empty; createdBy is empty when no user
// is logged in.
func (s *Store) AddTask(title, description, projectID, createdBy, assignedTo string) models.Task {
	t := models.Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Status:      models.StatusTodo,
		ProjectID:   projectID,
		CreatedBy:   createdBy,
		CreatedAt:   s.now(),
		AssignedTo:  assignedTo,
	}
	s.tasks = append(s.tasks, t)
	s.persist(keyTasks, s.tasks)
	return t
}

// UpdateTask applies patch to the task with the given id. A status outside
// the three known values is ignored so an invalid status is never stored.
// An unknown id is a no-op on content, but the collection is persisted
// either way.
func (s *Store) UpdateTask(id string, patch models.TaskPatch) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			s.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			s.tasks[i].Description = *patch.Description
		}
		if patch.Status != nil {
			if _, ok := models.ParseStatus(string(*patch.Status)); ok {
				s.tasks[i].Status = *patch.Status
			}
		}
		if patch.ProjectID != nil {
			s.tasks[i].ProjectID = *patch.ProjectID
		}
		if patch.AssignedTo != nil {
			s.tasks[i].AssignedTo = *patch.AssignedTo
		}
		break
	}
	s.persist(keyTasks, s.tasks)
}

// RemoveTask drops the task with the given id.
func (s *Store) RemoveTask(id string) {
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool {
		return t.ID == id
	})
	s.persist(keyTasks, s.tasks)
}

// ReplaceAllTasks swaps in a whole new collection and persists it.
func (s *Store) ReplaceAllTasks(tasks []models.Task) {
	s.tasks = slices.Clone(tasks)
	s.persist(keyTasks, s.tasks)
}
