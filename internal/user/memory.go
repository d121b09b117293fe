// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps users in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]User),
		nextID: 1,
	}
}

// FindByID returns a copy of the user with id.
func (s *MemoryStore) FindByID(
	_ context.Context,
	id int64,
) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

// FindByEmail returns a copy of the user with email, compared case-insensitively.
func (s *MemoryStore) FindByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}

	return nil, ErrNotFound
}

// List returns all users ordered by ID.
func (s *MemoryStore) List(
	_ context.Context,
) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// Create stores u, assigning its ID and timestamps.
func (s *MemoryStore) Create(
	_ context.Context,
	u *User,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(u.Email, 0) {
		return ErrEmailTaken
	}

	now := time.Now().UTC()
	u.ID = s.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	s.nextID++
	s.users[u.ID] = *u

	return nil
}

// Update replaces the stored user.
func (s *MemoryStore) Update(
	_ context.Context,
	u *User,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	if s.emailTakenLocked(u.Email, u.ID) {
		return ErrEmailTaken
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = *u

	return nil
}

// Delete removes the user with id.
func (s *MemoryStore) Delete(
	_ context.Context,
	id int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)

	return nil
}

// emailTakenLocked reports whether another user than exceptID owns email.
// Callers must hold s.mu.
func (s *MemoryStore) emailTakenLocked(
	email string,
	exceptID int64,
) bool {
	for id, u := range s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}

	return false
}
