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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/taskboard/internal/messaging"
)

// KVRepository stores records of one kind in a NATS KeyValue bucket under
// "<kind>.<id>", with IDs allocated from "seq.<kind>". Several kinds may
// share a bucket.
type KVRepository[T Record] struct {
	kv     jetstream.KeyValue
	kind   string
	codec  codec[T]
	logger *slog.Logger
}

// NewKVRepository creates a KVRepository for kind (e.g. "projects").
func NewKVRepository[T Record](
	logger *slog.Logger,
	kv jetstream.KeyValue,
	kind string,
	newT func() T,
) *KVRepository[T] {
	return &KVRepository[T]{
		kv:     kv,
		kind:   kind,
		codec:  codec[T]{newT: newT},
		logger: logger,
	}
}

// Create allocates an ID and writes rec.
func (r *KVRepository[T]) Create(
	ctx context.Context,
	rec T,
) error {
	id, err := messaging.NextSequence(ctx, r.kv, "seq."+r.kind)
	if err != nil {
		return fmt.Errorf("allocate %s id: %w", r.kind, err)
	}

	now := time.Now().UTC()
	rec.SetID(id)
	rec.Stamp(now, now)

	return r.put(ctx, rec)
}

// Find loads one record.
func (r *KVRepository[T]) Find(
	ctx context.Context,
	id int64,
) (T, error) {
	return r.get(ctx, messaging.IDKey(r.kind, id))
}

// List scans the kind's keys. Records that fail to load are skipped with a
// warning.
func (r *KVRepository[T]) List(
	ctx context.Context,
	filter Filter[T],
) ([]T, error) {
	keys, err := messaging.KeysWithPrefix(ctx, r.kv, r.kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		rec, err := r.get(ctx, key)
		if err != nil {
			r.logger.Warn(
				"failed to get record",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		if filter == nil || filter(rec) {
			out = append(out, rec)
		}
	}
	sortByID(out)

	return out, nil
}

// Update overwrites an existing record. The write is conditioned on the
// revision that was read; a record deleted in between yields ErrNotFound and
// one rewritten in between yields ErrConflict.
func (r *KVRepository[T]) Update(
	ctx context.Context,
	rec T,
) error {
	key := messaging.IDKey(r.kind, rec.GetID())
	existing, revision, err := r.getRevision(ctx, key)
	if err != nil {
		return err
	}
	rec.Stamp(existing.Created(), time.Now().UTC())

	data, err := r.codec.encode(rec)
	if err != nil {
		return err
	}

	if _, err := r.kv.Update(ctx, key, data, revision); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			if _, _, getErr := r.getRevision(ctx, key); errors.Is(getErr, ErrNotFound) {
				return ErrNotFound
			}
			return ErrConflict
		}
		return fmt.Errorf("update %s: %w", r.kind, err)
	}

	return nil
}

// Delete removes a record.
func (r *KVRepository[T]) Delete(
	ctx context.Context,
	id int64,
) error {
	key := messaging.IDKey(r.kind, id)
	if _, err := r.get(ctx, key); err != nil {
		return err
	}

	if err := r.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}

	return nil
}

func (r *KVRepository[T]) get(
	ctx context.Context,
	key string,
) (T, error) {
	rec, _, err := r.getRevision(ctx, key)

	return rec, err
}

func (r *KVRepository[T]) getRevision(
	ctx context.Context,
	key string,
) (T, uint64, error) {
	var zero T

	entry, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return zero, 0, ErrNotFound
		}
		return zero, 0, fmt.Errorf("get %s: %w", key, err)
	}

	rec, err := r.codec.decode(entry.Value())
	if err != nil {
		return zero, 0, err
	}

	return rec, entry.Revision(), nil
}

func (r *KVRepository[T]) put(
	ctx context.Context,
	rec T,
) error {
	data, err := r.codec.encode(rec)
	if err != nil {
		return err
	}

	if _, err := r.kv.Put(ctx, messaging.IDKey(r.kind, rec.GetID()), data); err != nil {
		return fmt.Errorf("put %s: %w", r.kind, err)
	}

	return nil
}
