// Package board turns board gestures into single status transitions. It
// never mutates tasks itself; a resolved gesture yields exactly one status
// for the caller to apply through the store.
package board

import (
	"ttm/internal/models"
)

// Next advances a status one step along the cycle
// todo → in-progress → done → todo.
func Next(s models.Status) models.Status {
	switch s {
	case models.StatusTodo:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusDone
	default:
		return models.StatusTodo
	}
}

// DropTarget describes where a dragged task was released. ID is the raw
// identifier under the drop point: either a column token (one of the three
// status values) or a task card id. Column is the status of the column
// containing that card, when known; it is empty for a bare or unrecognized
// target.
type DropTarget struct {
	ID     string
	Column models.Status
}

// ResolveDrop maps a drop target onto a destination status. Precedence:
// a column token wins, then the target's column membership; anything else
// is inconclusive and reported with ok false, which callers treat as a
// no-op. Dropping a task onto its own column resolves normally; re-applying
// the current status is harmless.
func ResolveDrop(target DropTarget) (models.Status, bool) {
	if status, ok := models.ParseStatus(target.ID); ok {
		return status, true
	}
	if _, ok := models.ParseStatus(string(target.Column)); ok {
		return target.Column, true
	}
	return "", false
}

// Column is one rendered board column: a status and the tasks in it.
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Columns partitions tasks into the three status columns, preserving the
// collection's insertion order within each. Status is the sole partition
// key, so every task lands in exactly one column.
func Columns(tasks []models.Task) [3]Column {
	var cols [3]Column
	for i, status := range models.Statuses {
		cols[i].Status = status
	}
	for _, t := range tasks {
		for i := range cols {
			if t.Status == cols[i].Status {
				cols[i].Tasks = append(cols[i].Tasks, t)
				break
			}
		}
	}
	return cols
}
