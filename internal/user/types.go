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

// Package user defines user records and the repository that stores them.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/retr0h/taskboard/internal/authtoken"
)

// Sentinel errors returned by every Store implementation.
var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User is an account that can authenticate against the API.
type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         authtoken.Role `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Store is the user repository consumed by the identity provider and the
// user handlers.
type Store interface {
	// FindByID returns the user or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*User, error)
	// FindByEmail returns the user or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]User, error)
	// Create assigns ID and timestamps. Returns ErrEmailTaken on collision.
	Create(ctx context.Context, u *User) error
	// Update replaces the stored record and refreshes UpdatedAt.
	Update(ctx context.Context, u *User) error
	// Delete removes the user or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// record is the persisted form, which unlike User keeps the password hash.
type record struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"password_hash"`
	Role         authtoken.Role `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toRecord(
	u *User,
) record {
	return record(*u)
}

func (r record) user() *User {
	u := User(r)
	return &u
}
