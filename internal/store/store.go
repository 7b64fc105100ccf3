package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ttm/internal/db"
	"ttm/internal/models"
)

// Storage keys. Collections live in the collections table; the session
// pointer is a setting so login state survives restarts independently of
// the users collection.
const (
	keyUsers           = "users"
	keyProjects        = "projects"
	keyTasks           = "tasks"
	settingCurrentUser = "currentUserId"
)

// Store holds the three entity collections and the session pointer. It is
// built once at startup and injected into every consumer; the in-memory
// collections are authoritative and every mutation rewrites the affected
// collection to the database before returning.
type Store struct {
	db     *db.DB
	logger *slog.Logger

	now   func() time.Time
	newID func() string

	users         []models.User
	projects      []models.Project
	tasks         []models.Task
	currentUserID string
}

// Open loads all collections from database. Entries that are missing or
// fail to decode start the session empty with a warning; the store never
// refuses to come up. An empty roster is seeded with the default admin so
// the app is usable with zero accounts.
func Open(database *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		db:     database,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	if err := database.LoadCollection(keyUsers, &s.users); err != nil {
		s.logger.Warn("loading users failed, starting empty", "error", err)
		s.users = nil
	}
	if err := database.LoadCollection(keyProjects, &s.projects); err != nil {
		s.logger.Warn("loading projects failed, starting empty", "error", err)
		s.projects = nil
	}
	if err := database.LoadCollection(keyTasks, &s.tasks); err != nil {
		s.logger.Warn("loading tasks failed, starting empty", "error", err)
		s.tasks = nil
	}

	if len(s.users) == 0 {
		s.users = []models.User{{
			ID:    models.DefaultUserID,
			Name:  "You",
			Email: "user@example.com",
			Role:  models.RoleAdmin,
		}}
	}

	current, err := database.GetSetting(settingCurrentUser)
	if err != nil {
		s.logger.Warn("loading session failed, starting logged out", "error", err)
		current = ""
	}
	s.currentUserID = current

	return s
}

// persist writes a whole collection. Write failures are logged and
// swallowed: the in-memory state stays authoritative for the session and
// the mutation path never fails.
func (s *Store) persist(key string, v any) {
	if err := s.db.SaveCollection(key, v); err != nil {
		s.logger.Warn("persist failed, keeping in-memory state", "collection", key, "error", err)
	}
}

// SetCurrentUser records the session user id. Empty means logged out. The
// id is not validated against the roster; a stale id simply resolves to no
// user on lookup.
func (s *Store) SetCurrentUser(userID string) {
	s.currentUserID = userID
	if err := s.db.SetSetting(settingCurrentUser, userID); err != nil {
		s.logger.Warn("persisting session failed", "error", err)
	}
}

// CurrentUserID returns the raw session pointer.
func (s *Store) CurrentUserID() string {
	return s.currentUserID
}

// CurrentUser resolves the session pointer against the roster, or nil when
// logged out or dangling.
func (s *Store) CurrentUser() *models.User {
	for i := range s.users {
		if s.users[i].ID == s.currentUserID {
			u := s.users[i]
			return &u
		}
	}
	return nil
}
