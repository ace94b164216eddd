/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// ErrInvalidRole is returned when a user is assigned a role that does
	// not exist.
	ErrInvalidRole = errors.New("role does not exist")
)

type userRecord struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	RoleID       string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type roleRecord struct {
	ID          string
	Name        string
	Permissions map[string]bool
	CreatedAt   time.Time
}

// userPatch carries optional updates, empty strings are ignored.
type userPatch struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	RoleID    string
}

// store keeps users and roles in insertion order.
type store struct {
	lock sync.RWMutex

	users     map[string]*userRecord
	userOrder []string

	roles     map[string]*roleRecord
	roleOrder []string
}

func newStore() *store {
	return &store{
		users: map[string]*userRecord{},
		roles: map[string]*roleRecord{},
	}
}

func (s *store) emailTakenLocked(email, exceptID string) bool {
	for _, user := range s.users {
		if user.ID != exceptID && strings.EqualFold(user.Email, email) {
			return true
		}
	}

	return false
}

func (s *store) createUser(user *userRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.emailTakenLocked(user.Email, "") {
		return ErrConflict
	}

	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)

	return nil
}

func (s *store) userByEmail(email string) (userRecord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return *user, nil
		}
	}

	return userRecord{}, ErrNotFound
}

func (s *store) user(id string) (userRecord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return userRecord{}, ErrNotFound
	}

	return *user, nil
}

func (s *store) updateUser(id string, patch userPatch, now time.Time) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}

	if patch.RoleID != "" {
		if _, ok := s.roles[patch.RoleID]; !ok {
			return ErrInvalidRole
		}
	}

	if patch.Email != "" && s.emailTakenLocked(patch.Email, id) {
		return ErrConflict
	}

	if patch.FirstName != "" {
		user.FirstName = patch.FirstName
	}

	if patch.LastName != "" {
		user.LastName = patch.LastName
	}

	if patch.Email != "" {
		user.Email = patch.Email
	}

	if patch.Phone != "" {
		user.Phone = patch.Phone
	}

	if patch.RoleID != "" {
		user.RoleID = patch.RoleID
	}

	user.UpdatedAt = now

	return nil
}

// deleteUsers removes all of ids or none of them.
func (s *store) deleteUsers(ids []string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return ErrNotFound
		}
	}

	for _, id := range ids {
		delete(s.users, id)
	}

	s.userOrder = slices.DeleteFunc(s.userOrder, func(id string) bool {
		return slices.Contains(ids, id)
	})

	return nil
}

// listUsers returns one page of users and the total count.
func (s *store) listUsers(page, pageSize int) ([]userRecord, int) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := paginate(s.userOrder, page, pageSize)

	out := make([]userRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.users[id])
	}

	return out, len(s.userOrder)
}

func (s *store) allUsers() []userRecord {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]userRecord, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, *s.users[id])
	}

	return out
}

func (s *store) createRole(role *roleRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, existing := range s.roles {
		if existing.Name == role.Name {
			return ErrConflict
		}
	}

	s.roles[role.ID] = role
	s.roleOrder = append(s.roleOrder, role.ID)

	return nil
}

// deleteRoles removes all of ids or none of them. Users holding a deleted
// role are left without one.
func (s *store) deleteRoles(ids []string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, id := range ids {
		if _, ok := s.roles[id]; !ok {
			return ErrNotFound
		}
	}

	for _, id := range ids {
		delete(s.roles, id)
	}

	s.roleOrder = slices.DeleteFunc(s.roleOrder, func(id string) bool {
		return slices.Contains(ids, id)
	})

	for _, user := range s.users {
		if slices.Contains(ids, user.RoleID) {
			user.RoleID = ""
		}
	}

	return nil
}

func (s *store) listRoles(page, pageSize int) ([]roleRecord, int) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := paginate(s.roleOrder, page, pageSize)

	out := make([]roleRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.roles[id])
	}

	return out, len(s.roleOrder)
}

// paginate returns the 1-indexed page of ids.
func paginate(ids []string, page, pageSize int) []string {
	// Compare page counts rather than offsets so a huge page cannot overflow.
	if page-1 >= (len(ids)+pageSize-1)/pageSize {
		return nil
	}

	start := (page - 1) * pageSize

	end := min(start+pageSize, len(ids))

	return ids[start:end]
}
