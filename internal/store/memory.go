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

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps encoded records in process memory, so callers
// never share pointers with the stored state.
type MemoryRepository[T Record] struct {
	mu      sync.RWMutex
	codec   codec[T]
	records map[int64][]byte
	nextID  int64
}

// NewMemoryRepository creates an empty repository. newT returns a fresh
// zero value for decoding, e.g. func() *Project { return &Project{} }.
func NewMemoryRepository[T Record](
	newT func() T,
) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		codec:   codec[T]{newT: newT},
		records: make(map[int64][]byte),
		nextID:  1,
	}
}

// Create stores rec under the next ID.
func (r *MemoryRepository[T]) Create(
	_ context.Context,
	rec T,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec.SetID(r.nextID)
	rec.Stamp(now, now)

	data, err := r.codec.encode(rec)
	if err != nil {
		return err
	}

	r.records[r.nextID] = data
	r.nextID++

	return nil
}

// Find returns a decoded copy of the record.
func (r *MemoryRepository[T]) Find(
	_ context.Context,
	id int64,
) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}

	return r.codec.decode(data)
}

// List returns every record accepted by filter.
func (r *MemoryRepository[T]) List(
	_ context.Context,
	filter Filter[T],
) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.records))
	for _, data := range r.records {
		rec, err := r.codec.decode(data)
		if err != nil {
			return nil, err
		}
		if filter == nil || filter(rec) {
			out = append(out, rec)
		}
	}
	sortByID(out)

	return out, nil
}

// Update overwrites an existing record.
func (r *MemoryRepository[T]) Update(
	_ context.Context,
	rec T,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.records[rec.GetID()]
	if !ok {
		return ErrNotFound
	}

	existing, err := r.codec.decode(data)
	if err != nil {
		return err
	}
	rec.Stamp(existing.Created(), time.Now().UTC())

	encoded, err := r.codec.encode(rec)
	if err != nil {
		return err
	}
	r.records[rec.GetID()] = encoded

	return nil
}

// Delete removes the record.
func (r *MemoryRepository[T]) Delete(
	_ context.Context,
	id int64,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return ErrNotFound
	}
	delete(r.records, id)

	return nil
}

func sortByID[T Record](
	recs []T,
) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].GetID() < recs[j].GetID() })
}
