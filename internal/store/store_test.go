package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ttm/internal/db"
	"ttm/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "ttm.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return Open(database, testLogger()), database
}

func TestOpen_SeedsDefaultAdmin(t *testing.T) {
	s, _ := openTestStore(t)

	users := s.Users()
	if len(users) != 1 {
		t.Fatalf("expected seeded roster of 1, got %d", len(users))
	}
	u := users[0]
	if u.ID != models.DefaultUserID || u.Name != "You" || u.Role != models.RoleAdmin {
		t.Fatalf("unexpected seed user: %+v", u)
	}
}

func TestOpen_DoesNotSeedWhenUsersExist(t *testing.T) {
	s, database := openTestStore(t)
	s.AddUser("Ada", "ada@example.com", models.RoleMember)

	reloaded := Open(database, testLogger())
	if got := len(reloaded.Users()); got != 2 {
		t.Fatalf("expected 2 users after reload, got %d", got)
	}
}

func TestAddUser_DefaultsUnknownRoleToMember(t *testing.T) {
	s, _ := openTestStore(t)

	u := s.AddUser("Ada", "ada@example.com", models.Role("owner"))
	if u.Role != models.RoleMember {
		t.Fatalf("expected member, got %q", u.Role)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	s, _ := openTestStore(t)
	u := s.AddUser("Ada", "ada@example.com", models.RoleMember)

	role := models.RoleAdmin
	s.UpdateUser(u.ID, models.UserPatch{Role: &role})

	users := s.Users()
	got := users[len(users)-1]
	if got.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %+v", got)
	}
	if got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Fatalf("unpatched fields changed: %+v", got)
	}
}

func TestUpdate_UnknownIDLeavesContentButPersists(t *testing.T) {
	s, database := openTestStore(t)
	task := s.AddTask("write spec", "", "", "", "")

	title := "changed"
	s.UpdateTask("no-such-id", models.TaskPatch{Title: &title})

	after := s.Tasks()
	if len(after) != 1 || after[0].ID != task.ID || after[0].Title != "write spec" {
		t.Fatalf("collection content changed on unknown id: %+v", after)
	}

	// The no-op update still writes the collection.
	var persisted []models.Task
	if err := database.LoadCollection("tasks", &persisted); err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != task.ID || persisted[0].Title != "write spec" {
		t.Fatalf("persisted tasks diverge from in-memory state: %+v", persisted)
	}
}

func TestUpdateTask_IgnoresInvalidStatus(t *testing.T) {
	s, _ := openTestStore(t)
	task := s.AddTask("write spec", "", "", "", "")

	bogus := models.Status("archived")
	s.UpdateTask(task.ID, models.TaskPatch{Status: &bogus})

	if got := s.Tasks()[0].Status; got != models.StatusTodo {
		t.Fatalf("invalid status was stored: %q", got)
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s, _ := openTestStore(t)
	s.AddTask("write spec", "", "", "", "")

	s.RemoveTask("no-such-id")
	if got := len(s.Tasks()); got != 1 {
		t.Fatalf("expected 1 task, got %d", got)
	}
}

func TestRemoveProject_LeavesTasksDangling(t *testing.T) {
	s, _ := openTestStore(t)
	p := s.AddProject("launch", "", models.DefaultUserID)
	task := s.AddTask("write spec", "", p.ID, models.DefaultUserID, "")

	s.RemoveProject(p.ID)

	if got := len(s.Projects()); got != 0 {
		t.Fatalf("project not removed, %d left", got)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("task count changed: %d", len(tasks))
	}
	if tasks[0].ID != task.ID || tasks[0].ProjectID != p.ID {
		t.Fatalf("task should keep its dangling project id: %+v", tasks[0])
	}
}

func TestRemoveUser_LeavesAssignmentsDangling(t *testing.T) {
	s, _ := openTestStore(t)
	u := s.AddUser("Ada", "ada@example.com", models.RoleMember)
	s.AddTask("write spec", "", "", models.DefaultUserID, u.ID)

	s.RemoveUser(u.ID)

	if got := s.Tasks()[0].AssignedTo; got != u.ID {
		t.Fatalf("assignment should dangle, got %q", got)
	}
}

func TestReplaceAll_RoundTrip(t *testing.T) {
	s, database := openTestStore(t)

	tasks := []models.Task{
		{ID: "t1", Title: "one", Status: models.StatusDone, CreatedBy: "u1"},
		{ID: "t2", Title: "two", Status: models.StatusTodo, CreatedBy: "u1"},
	}
	s.ReplaceAllTasks(tasks)

	reloaded := Open(database, testLogger())
	got := reloaded.Tasks()
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Fatalf("reload mismatch: %+v", got)
	}
	if got[0].Status != models.StatusDone {
		t.Fatalf("status lost in round trip: %+v", got[0])
	}
}

func TestSession_PersistsAcrossReload(t *testing.T) {
	s, database := openTestStore(t)
	u := s.AddUser("Ada", "ada@example.com", models.RoleMember)

	s.SetCurrentUser(u.ID)

	reloaded := Open(database, testLogger())
	if reloaded.CurrentUserID() != u.ID {
		t.Fatalf("session not persisted: %q", reloaded.CurrentUserID())
	}
	current := reloaded.CurrentUser()
	if current == nil || current.ID != u.ID {
		t.Fatalf("current user not resolved: %+v", current)
	}
}

func TestSession_DanglingIDResolvesToNoUser(t *testing.T) {
	s, _ := openTestStore(t)

	s.SetCurrentUser("gone")
	if s.CurrentUser() != nil {
		t.Fatalf("dangling session id should resolve to nil")
	}

	s.SetCurrentUser("")
	if s.CurrentUser() != nil {
		t.Fatalf("logged out session should resolve to nil")
	}
}

func TestOpen_CorruptCollectionStartsEmpty(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "ttm.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(
		`INSERT INTO collections (key, value) VALUES ('tasks', '{not json')`,
	); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	s := Open(database, testLogger())
	if got := len(s.Tasks()); got != 0 {
		t.Fatalf("corrupt collection should load empty, got %d tasks", got)
	}
	// The roster still gets its bootstrap seed.
	if got := len(s.Users()); got != 1 {
		t.Fatalf("expected seeded roster, got %d users", got)
	}
}
