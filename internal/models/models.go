package models

import "time"

// Role controls which surfaces of the app a user can reach.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleMember
}

// Status is a task's position in its lifecycle. It is also the sole
// partition key for the board columns.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists all statuses in board-column order.
var Statuses = [3]Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus maps a raw token onto a Status. ok is false for anything
// outside the three known values.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(raw), true
	}
	return "", false
}

// Label returns the human form shown in column headers and badges.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// DefaultUserID identifies the seeded admin account. It always exists after
// bootstrap and the team view refuses to remove it.
const DefaultUserID = "default-user"

// User is a member of the team. Removing a user does not touch tasks that
// reference it; those references dangle and render as unassigned.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Project groups tasks. Tasks hold the foreign key; deleting a project
// leaves its tasks in place with a dangling project id.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// Task is a single unit of work.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	ProjectID   string    `json:"projectId,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
}

// ProjectColors is the palette new projects draw from.
var ProjectColors = []string{
	"#3B82F6", // blue
	"#EF4444", // red
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#10B981", // green
	"#F97316", // orange
	"#06B6D4", // cyan
	"#6366F1", // indigo
}

// UserPatch lists the user fields a partial update may overwrite.
// Nil fields are left alone.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *Role
}

// ProjectPatch lists the project fields a partial update may overwrite.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// TaskPatch lists the task fields a partial update may overwrite.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	ProjectID   *string
	AssignedTo  *string
}
