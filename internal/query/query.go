// Package query derives read-side views from the entity collections. All
// functions are pure: they never mutate their inputs and carry no state of
// their own.
package query

import (
	"math"
	"slices"

	"ttm/internal/models"
)

// ProjectStats summarizes a project's tasks for dashboard cards.
type ProjectStats struct {
	Total           int
	Todo            int
	InProgress      int
	Done            int
	ProgressPercent int
}

// Progress computes a weighted completion percentage: done tasks count
// fully, in-progress tasks count half, todo tasks count zero. A project
// with no tasks is 0%.
func Progress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	weight := 0
	for _, t := range tasks {
		switch t.Status {
		case models.StatusDone:
			weight += 100
		case models.StatusInProgress:
			weight += 50
		}
	}
	return int(math.Round(float64(weight) / float64(len(tasks))))
}

// StatsFor computes ProjectStats over the tasks belonging to projectID.
func StatsFor(tasks []models.Task, projectID string) ProjectStats {
	projectTasks := ByProject(tasks, projectID)
	stats := ProjectStats{
		Total:           len(projectTasks),
		ProgressPercent: Progress(projectTasks),
	}
	for _, t := range projectTasks {
		switch t.Status {
		case models.StatusTodo:
			stats.Todo++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusDone:
			stats.Done++
		}
	}
	return stats
}

// CountByStatus tallies all tasks into the three status counts.
func CountByStatus(tasks []models.Task) (todo, inProgress, done int) {
	for _, t := range tasks {
		switch t.Status {
		case models.StatusTodo:
			todo++
		case models.StatusInProgress:
			inProgress++
		case models.StatusDone:
			done++
		}
	}
	return todo, inProgress, done
}

// StatusFilterAll selects every task regardless of status.
const StatusFilterAll = "all"

// ByStatusFilter filters tasks by an exact status token, or returns them
// all for StatusFilterAll.
func ByStatusFilter(tasks []models.Task, filter string) []models.Task {
	if filter == StatusFilterAll {
		return slices.Clone(tasks)
	}
	var out []models.Task
	for _, t := range tasks {
		if string(t.Status) == filter {
			out = append(out, t)
		}
	}
	return out
}

// ByProject returns the tasks referencing projectID.
func ByProject(tasks []models.Task, projectID string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// AssignedTo returns the tasks assigned to userID.
func AssignedTo(tasks []models.Task, userID string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out
}

// FindProject resolves a project id, or nil when it dangles.
func FindProject(projects []models.Project, id string) *models.Project {
	for i := range projects {
		if projects[i].ID == id {
			p := projects[i]
			return &p
		}
	}
	return nil
}

// FindUser resolves a user id, or nil when it dangles.
func FindUser(users []models.User, id string) *models.User {
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u
		}
	}
	return nil
}

// TaskRefs carries a task's resolved cross-references. Any of the fields
// may be nil when the underlying id is empty or dangling; callers render
// those as "Unknown"/"Unassigned" rather than failing.
type TaskRefs struct {
	Project  *models.Project
	Creator  *models.User
	Assignee *models.User
}

// ResolveTask looks up a task's project, creator and assignee.
func ResolveTask(t models.Task, projects []models.Project, users []models.User) TaskRefs {
	return TaskRefs{
		Project:  FindProject(projects, t.ProjectID),
		Creator:  FindUser(users, t.CreatedBy),
		Assignee: FindUser(users, t.AssignedTo),
	}
}

// NavItem is a navigation surface with its allowed-role set.
type NavItem struct {
	ID    string
	Label string
	Roles []models.Role
}

// NavItems lists the app's surfaces in display order. Team management is
// admin-only.
var NavItems = []NavItem{
	{ID: "dashboard", Label: "Dashboard", Roles: []models.Role{models.RoleAdmin, models.RoleMember}},
	{ID: "projects", Label: "Projects", Roles: []models.Role{models.RoleAdmin, models.RoleMember}},
	{ID: "board", Label: "Board", Roles: []models.Role{models.RoleAdmin, models.RoleMember}},
	{ID: "team", Label: "Team", Roles: []models.Role{models.RoleAdmin}},
}

// VisibleNav filters items down to those the current user may see. An
// absent user is treated as a member, the most restrictive role.
func VisibleNav(items []NavItem, current *models.User) []NavItem {
	role := models.RoleMember
	if current != nil {
		role = current.Role
	}
	var out []NavItem
	for _, item := range items {
		if slices.Contains(item.Roles, role) {
			out = append(out, item)
		}
	}
	return out
}
