package query

import (
	"testing"

	"ttm/internal/models"
)

func TestProgress_Weighting(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{"no tasks", nil, 0},
		{"all todo", []models.Task{
			{Status: models.StatusTodo}, {Status: models.StatusTodo},
		}, 0},
		{"all done", []models.Task{
			{Status: models.StatusDone},
		}, 100},
		{"mixed 2 done 1 in-progress 1 todo", []models.Task{
			{Status: models.StatusDone},
			{Status: models.StatusDone},
			{Status: models.StatusInProgress},
			{Status: models.StatusTodo},
		}, 63}, // round((200+50)/4)
		{"single in-progress", []models.Task{
			{Status: models.StatusInProgress},
		}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.tasks); got != tt.want {
				t.Fatalf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatsFor(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ProjectID: "p1", Status: models.StatusDone},
		{ID: "t2", ProjectID: "p1", Status: models.StatusTodo},
		{ID: "t3", ProjectID: "p2", Status: models.StatusInProgress},
	}

	stats := StatsFor(tasks, "p1")
	if stats.Total != 2 || stats.Done != 1 || stats.Todo != 1 || stats.InProgress != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ProgressPercent != 50 {
		t.Fatalf("progress = %d, want 50", stats.ProgressPercent)
	}

	empty := StatsFor(tasks, "p3")
	if empty.Total != 0 || empty.ProgressPercent != 0 {
		t.Fatalf("empty project stats: %+v", empty)
	}
}

func TestByStatusFilter(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Status: models.StatusTodo},
		{ID: "t2", Status: models.StatusDone},
		{ID: "t3", Status: models.StatusTodo},
	}

	all := ByStatusFilter(tasks, StatusFilterAll)
	if len(all) != 3 {
		t.Fatalf("all filter: got %d", len(all))
	}

	todos := ByStatusFilter(tasks, "todo")
	if len(todos) != 2 || todos[0].ID != "t1" || todos[1].ID != "t3" {
		t.Fatalf("todo filter order/content wrong: %+v", todos)
	}

	if got := ByStatusFilter(tasks, "archived"); len(got) != 0 {
		t.Fatalf("unknown status should match nothing, got %+v", got)
	}
}

func TestAssignedTo(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", AssignedTo: "u1"},
		{ID: "t2"},
		{ID: "t3", AssignedTo: "u1"},
	}
	mine := AssignedTo(tasks, "u1")
	if len(mine) != 2 || mine[0].ID != "t1" || mine[1].ID != "t3" {
		t.Fatalf("unexpected result: %+v", mine)
	}
}

func TestResolveTask_DanglingReferences(t *testing.T) {
	projects := []models.Project{{ID: "p1", Name: "launch"}}
	users := []models.User{{ID: "u1", Name: "Ada"}}

	task := models.Task{ID: "t1", ProjectID: "p1", CreatedBy: "u1", AssignedTo: "gone"}
	refs := ResolveTask(task, projects, users)

	if refs.Project == nil || refs.Project.Name != "launch" {
		t.Fatalf("project not resolved: %+v", refs.Project)
	}
	if refs.Creator == nil || refs.Creator.Name != "Ada" {
		t.Fatalf("creator not resolved: %+v", refs.Creator)
	}
	if refs.Assignee != nil {
		t.Fatalf("dangling assignee should be nil, got %+v", refs.Assignee)
	}

	orphan := models.Task{ID: "t2", ProjectID: "deleted"}
	refs = ResolveTask(orphan, projects, users)
	if refs.Project != nil || refs.Creator != nil || refs.Assignee != nil {
		t.Fatalf("orphan refs should all be nil: %+v", refs)
	}
}

func TestVisibleNav_RoleGating(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	member := &models.User{ID: "u2", Role: models.RoleMember}

	if got := len(VisibleNav(NavItems, admin)); got != 4 {
		t.Fatalf("admin should see all 4 surfaces, got %d", got)
	}

	forMember := VisibleNav(NavItems, member)
	if len(forMember) != 3 {
		t.Fatalf("member should see 3 surfaces, got %d", len(forMember))
	}
	for _, item := range forMember {
		if item.ID == "team" {
			t.Fatalf("member must not see team management")
		}
	}

	// No session user defaults to the most restrictive role.
	if got := len(VisibleNav(NavItems, nil)); got != 3 {
		t.Fatalf("absent user should be gated as member, got %d", got)
	}
}
