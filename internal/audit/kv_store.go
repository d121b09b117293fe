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

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/taskboard/internal/messaging"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("audit entry not found")

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

const kvEntryPrefix = "entry"

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// KVStore implements Store backed by a NATS KeyValue bucket. Entries live
// under "entry.<id>"; the bucket TTL handles retention.
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

// Write stores entry under its ID.
func (s *KVStore) Write(
	ctx context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if _, err := s.kv.Put(ctx, entryKey(entry.ID), data); err != nil {
		return fmt.Errorf("put audit entry %s: %w", entry.ID, err)
	}

	return nil
}

// Get loads one entry.
func (s *KVStore) Get(
	ctx context.Context,
	id string,
) (*Entry, error) {
	kve, err := s.kv.Get(ctx, entryKey(id))
	switch {
	case errors.Is(err, jetstream.ErrKeyNotFound), errors.Is(err, jetstream.ErrInvalidKey):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("get audit entry %s: %w", id, err)
	}

	entry, err := decodeEntry(kve.Value())
	if err != nil {
		return nil, fmt.Errorf("decode audit entry %s: %w", id, err)
	}

	return entry, nil
}

// List returns a page of entries, newest first. Entries that fail to load
// are logged and left out of the page but still count toward the total.
func (s *KVStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Entry, int, error) {
	keys, err := messaging.KeysWithPrefix(ctx, s.kv, kvEntryPrefix)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, kvEntryPrefix+"."))
	}

	pageIDs, total := newestFirst(ids, limit, offset)

	entries := make([]Entry, 0, len(pageIDs))
	for _, id := range pageIDs {
		entry, err := s.Get(ctx, id)
		if err != nil {
			s.logger.Warn(
				"skipping audit entry",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
			continue
		}

		entries = append(entries, *entry)
	}

	return entries, total, nil
}

func entryKey(
	id string,
) string {
	return kvEntryPrefix + "." + id
}

func decodeEntry(
	data []byte,
) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}
