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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/taskboard/internal/messaging"
)

const (
	kvUserPrefix  = "users"
	kvEmailPrefix = "email"
	kvSequenceKey = "seq.users"
)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// KVStore implements Store backed by a NATS KeyValue bucket. Records live
// under "users.<id>", an email index under "email.<token>" points back to
// the ID, and IDs come from the "seq.users" counter.
type KVStore struct {
	kv     jetstream.KeyValue
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv jetstream.KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// FindByID loads a user by ID.
func (s *KVStore) FindByID(
	ctx context.Context,
	id int64,
) (*User, error) {
	return s.get(ctx, messaging.IDKey(kvUserPrefix, id))
}

// FindByEmail resolves the email index and loads the user.
func (s *KVStore) FindByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	entry, err := s.kv.Get(ctx, emailKey(email))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get email index: %w", err)
	}

	id, err := strconv.ParseInt(string(entry.Value()), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse email index: %w", err)
	}

	return s.get(ctx, messaging.IDKey(kvUserPrefix, id))
}

// List returns every user ordered by ID. Unreadable records are skipped
// with a warning.
func (s *KVStore) List(
	ctx context.Context,
) ([]User, error) {
	keys, err := messaging.KeysWithPrefix(ctx, s.kv, kvUserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]User, 0, len(keys))
	for _, key := range keys {
		u, err := s.get(ctx, key)
		if err != nil {
			s.logger.Warn(
				"failed to get user",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// Create reserves the email index, allocates an ID and persists the record.
func (s *KVStore) Create(
	ctx context.Context,
	u *User,
) error {
	id, err := messaging.NextSequence(ctx, s.kv, kvSequenceKey)
	if err != nil {
		return fmt.Errorf("allocate user id: %w", err)
	}

	if _, err := s.kv.Create(ctx, emailKey(u.Email), []byte(strconv.FormatInt(id, 10))); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return ErrEmailTaken
		}
		return fmt.Errorf("reserve email: %w", err)
	}

	now := time.Now().UTC()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.put(ctx, u); err != nil {
		s.releaseEmail(ctx, id, emailKey(u.Email))
		return err
	}

	return nil
}

// Update persists u, moving the email index when the address changed. The
// new index is reserved before the record is written and the old one is
// released only after the write succeeds.
func (s *KVStore) Update(
	ctx context.Context,
	u *User,
) error {
	existing, err := s.get(ctx, messaging.IDKey(kvUserPrefix, u.ID))
	if err != nil {
		return err
	}

	oldKey, newKey := emailKey(existing.Email), emailKey(u.Email)
	moved := oldKey != newKey
	if moved {
		if _, err := s.kv.Create(ctx, newKey, []byte(strconv.FormatInt(u.ID, 10))); err != nil {
			if errors.Is(err, jetstream.ErrKeyExists) {
				return ErrEmailTaken
			}
			return fmt.Errorf("reserve email: %w", err)
		}
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	if err := s.put(ctx, u); err != nil {
		if moved {
			s.releaseEmail(ctx, u.ID, newKey)
		}
		return err
	}

	if moved {
		s.releaseEmail(ctx, u.ID, oldKey)
	}

	return nil
}

// Delete removes the record and its email index.
func (s *KVStore) Delete(
	ctx context.Context,
	id int64,
) error {
	existing, err := s.get(ctx, messaging.IDKey(kvUserPrefix, id))
	if err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, messaging.IDKey(kvUserPrefix, id)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.kv.Delete(ctx, emailKey(existing.Email)); err != nil {
		return fmt.Errorf("delete email index: %w", err)
	}

	return nil
}

func (s *KVStore) get(
	ctx context.Context,
	key string,
) (*User, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var r record
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return r.user(), nil
}

func (s *KVStore) put(
	ctx context.Context,
	u *User,
) error {
	data, err := marshalJSON(toRecord(u))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if _, err := s.kv.Put(ctx, messaging.IDKey(kvUserPrefix, u.ID), data); err != nil {
		return fmt.Errorf("put user: %w", err)
	}

	return nil
}

// releaseEmail drops an email index entry. A failure leaves a stale entry
// behind and is logged rather than returned.
func (s *KVStore) releaseEmail(
	ctx context.Context,
	userID int64,
	key string,
) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn(
			"failed to release email index",
			slog.Int64("user_id", userID),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func emailKey(
	email string,
) string {
	return kvEmailPrefix + "." + messaging.EncodeKeyToken(email)
}
