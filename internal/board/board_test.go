package board

import (
	"testing"

	"ttm/internal/models"
)

func TestNext_IsAThreeCycle(t *testing.T) {
	if got := Next(models.StatusTodo); got != models.StatusInProgress {
		t.Fatalf("todo → %q", got)
	}
	if got := Next(models.StatusInProgress); got != models.StatusDone {
		t.Fatalf("in-progress → %q", got)
	}
	if got := Next(models.StatusDone); got != models.StatusTodo {
		t.Fatalf("done → %q", got)
	}

	for _, start := range models.Statuses {
		if got := Next(Next(Next(start))); got != start {
			t.Fatalf("three advances from %q landed on %q", start, got)
		}
	}
}

func TestResolveDrop(t *testing.T) {
	tests := []struct {
		name   string
		target DropTarget
		want   models.Status
		ok     bool
	}{
		{"column token", DropTarget{ID: "done"}, models.StatusDone, true},
		{"card with column membership", DropTarget{ID: "task-123", Column: models.StatusInProgress}, models.StatusInProgress, true},
		{"column token wins over membership", DropTarget{ID: "todo", Column: models.StatusDone}, models.StatusTodo, true},
		{"bare card", DropTarget{ID: "task-123"}, "", false},
		{"empty target", DropTarget{}, "", false},
		{"unknown membership", DropTarget{ID: "task-123", Column: models.Status("archive")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDrop(tt.target)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ResolveDrop(%+v) = (%q, %v), want (%q, %v)",
					tt.target, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestColumns_PartitionsEveryTaskOnce(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Status: models.StatusTodo},
		{ID: "t2", Status: models.StatusDone},
		{ID: "t3", Status: models.StatusTodo},
		{ID: "t4", Status: models.StatusInProgress},
	}

	cols := Columns(tasks)

	if cols[0].Status != models.StatusTodo || cols[1].Status != models.StatusInProgress || cols[2].Status != models.StatusDone {
		t.Fatalf("column order wrong: %+v", cols)
	}

	seen := map[string]int{}
	total := 0
	for _, col := range cols {
		for _, task := range col.Tasks {
			seen[task.ID]++
			total++
			if task.Status != col.Status {
				t.Fatalf("task %s in wrong column %s", task.ID, col.Status)
			}
		}
	}
	if total != len(tasks) {
		t.Fatalf("partition lost or duplicated tasks: %d of %d", total, len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("task %s appeared %d times", id, n)
		}
	}

	// Insertion order is preserved within a column.
	if cols[0].Tasks[0].ID != "t1" || cols[0].Tasks[1].ID != "t3" {
		t.Fatalf("todo column order: %+v", cols[0].Tasks)
	}
}

func TestColumns_EmptyInput(t *testing.T) {
	cols := Columns(nil)
	for _, col := range cols {
		if len(col.Tasks) != 0 {
			t.Fatalf("expected empty columns, got %+v", col)
		}
	}
}
