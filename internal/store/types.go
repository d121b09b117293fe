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

// Package store provides a generic CRUD repository for the API's resources
// (projects, tasks, pages) with in-memory and NATS KV backends.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a record changed between read and write.
var ErrConflict = errors.New("record modified concurrently")

// Record is implemented by resource types stored in a Repository. Pointer
// types satisfy it by embedding Model.
type Record interface {
	GetID() int64
	SetID(id int64)
	Created() time.Time
	Stamp(createdAt time.Time, updatedAt time.Time)
}

// Model carries the identity and timestamps shared by every resource.
type Model struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the record ID.
func (m *Model) GetID() int64 { return m.ID }

// SetID assigns the record ID.
func (m *Model) SetID(id int64) { m.ID = id }

// Created returns the creation time.
func (m *Model) Created() time.Time { return m.CreatedAt }

// Stamp sets both timestamps.
func (m *Model) Stamp(
	createdAt time.Time,
	updatedAt time.Time,
) {
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt
}

// Filter selects records during List. A nil Filter selects everything.
type Filter[T Record] func(T) bool

// Repository is the CRUD contract consumed by the resource handlers.
type Repository[T Record] interface {
	// Create assigns an ID and timestamps to rec and stores it.
	Create(ctx context.Context, rec T) error
	// Find returns the record with id or ErrNotFound.
	Find(ctx context.Context, id int64) (T, error)
	// List returns matching records ordered by ID.
	List(ctx context.Context, filter Filter[T]) ([]T, error)
	// Update replaces an existing record, preserving CreatedAt.
	Update(ctx context.Context, rec T) error
	// Delete removes the record or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
