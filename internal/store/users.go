package store

import (
	"slices"

	"ttm/internal/models"
)

// Users returns a copy of the roster in insertion order.
func (s *Store) Users() []models.User {
	return slices.Clone(s.users)
}

// AddUser appends a new user and persists the roster. An unknown role
// defaults to member.
func (s *Store) AddUser(name, email string, role models.Role) models.User {
	if !models.ValidRole(role) {
		role = models.RoleMember
	}
	u := models.User{
		ID:    s.newID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	s.users = append(s.users, u)
	s.persist(keyUsers, s.users)
	return u
}

// UpdateUser applies patch to the user with the given id. An unknown id is
// a no-op on content, but the roster is persisted either way.
func (s *Store) UpdateUser(id string, patch models.UserPatch) {
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.users[i].Name = *patch.Name
		}
		if patch.Email != nil {
			s.users[i].Email = *patch.Email
		}
		if patch.Role != nil {
			s.users[i].Role = *patch.Role
		}
		break
	}
	s.persist(keyUsers, s.users)
}

// RemoveUser drops the user with the given id. Tasks that reference the
// user keep their ids; those references dangle and render as unassigned.
func (s *Store) RemoveUser(id string) {
	s.users = slices.DeleteFunc(s.users, func(u models.User) bool {
		return u.ID == id
	})
	s.persist(keyUsers, s.users)
}

// ReplaceAllUsers swaps in a whole new roster (import/restore) and
// persists it.
func (s *Store) ReplaceAllUsers(users []models.User) {
	s.users = slices.Clone(users)
	s.persist(keyUsers, s.users)
}
