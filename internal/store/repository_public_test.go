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

package store_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/messaging/natstest"
	"github.com/retr0h/taskboard/internal/store"
)

type note struct {
	store.Model
	OwnerID int64  `json:"owner_id"`
	Body    string `json:"body"`
}

func newNote() *note { return &note{} }

type RepositoryPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	newRepo func() store.Repository[*note]
	repo    store.Repository[*note]
}

func (s *RepositoryPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryPublicTestSuite) create(
	ownerID int64,
	body string,
) *note {
	n := &note{OwnerID: ownerID, Body: body}
	s.Require().NoError(s.repo.Create(s.ctx, n))

	return n
}

func (s *RepositoryPublicTestSuite) TestCreateAssignsIDAndTimestamps() {
	first := s.create(1, "first")
	second := s.create(1, "second")

	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)
	s.False(first.CreatedAt.IsZero())
	s.Equal(first.CreatedAt, first.UpdatedAt)
}

func (s *RepositoryPublicTestSuite) TestFind() {
	created := s.create(7, "hello")

	tests := []struct {
		name     string
		id       int64
		wantErr  error
		wantBody string
	}{
		{
			name:     "existing record",
			id:       created.ID,
			wantBody: "hello",
		},
		{
			name:    "missing record",
			id:      99,
			wantErr: store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.repo.Find(s.ctx, tt.id)

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.wantBody, got.Body)
			s.Equal(int64(7), got.OwnerID)
		})
	}
}

func (s *RepositoryPublicTestSuite) TestFindReturnsIndependentCopy() {
	created := s.create(1, "original")

	got, err := s.repo.Find(s.ctx, created.ID)
	s.Require().NoError(err)
	got.Body = "mutated"

	again, err := s.repo.Find(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("original", again.Body)
}

func (s *RepositoryPublicTestSuite) TestList() {
	s.create(1, "a")
	s.create(2, "b")
	s.create(1, "c")

	tests := []struct {
		name      string
		filter    store.Filter[*note]
		wantBodies []string
	}{
		{
			name:      "nil filter returns all in id order",
			wantBodies: []string{"a", "b", "c"},
		},
		{
			name:      "filter by owner",
			filter:    func(n *note) bool { return n.OwnerID == 1 },
			wantBodies: []string{"a", "c"},
		},
		{
			name:      "filter matching nothing",
			filter:    func(*note) bool { return false },
			wantBodies: []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.repo.List(s.ctx, tt.filter)
			s.Require().NoError(err)

			bodies := make([]string, 0, len(got))
			for _, n := range got {
				bodies = append(bodies, n.Body)
			}
			s.Equal(tt.wantBodies, bodies)
		})
	}
}

func (s *RepositoryPublicTestSuite) TestUpdatePreservesCreatedAt() {
	created := s.create(1, "draft")

	replacement := &note{OwnerID: 1, Body: "final"}
	replacement.ID = created.ID
	replacement.CreatedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.Update(s.ctx, replacement))

	got, err := s.repo.Find(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("final", got.Body)
	s.True(got.CreatedAt.Equal(created.CreatedAt))
	s.False(got.UpdatedAt.Before(created.UpdatedAt))

	missing := &note{}
	missing.ID = 42
	s.ErrorIs(s.repo.Update(s.ctx, missing), store.ErrNotFound)
}

func (s *RepositoryPublicTestSuite) TestDelete() {
	created := s.create(1, "gone")

	s.NoError(s.repo.Delete(s.ctx, created.ID))
	s.ErrorIs(s.repo.Delete(s.ctx, created.ID), store.ErrNotFound)

	_, err := s.repo.Find(s.ctx, created.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func TestMemoryRepositoryPublicTestSuite(t *testing.T) {
	suite.Run(t, &RepositoryPublicTestSuite{
		newRepo: func() store.Repository[*note] {
			return store.NewMemoryRepository(newNote)
		},
	})
}

func TestKVRepositoryPublicTestSuite(t *testing.T) {
	s := &RepositoryPublicTestSuite{}
	s.newRepo = func() store.Repository[*note] {
		return store.NewKVRepository(slog.Default(), natstest.KeyValue(s.T(), "resources"), "notes", newNote)
	}
	suite.Run(t, s)
}

// interleavedKV calls between once, after the first Get returns, standing in
// for another writer acting between a read and the following write.
type interleavedKV struct {
	jetstream.KeyValue

	between func()
}

func (kv *interleavedKV) Get(
	ctx context.Context,
	key string,
) (jetstream.KeyValueEntry, error) {
	entry, err := kv.KeyValue.Get(ctx, key)
	if kv.between != nil {
		between := kv.between
		kv.between = nil
		between()
	}

	return entry, err
}

type KVRepositoryConcurrencyTestSuite struct {
	suite.Suite

	ctx  context.Context
	kv   jetstream.KeyValue
	seed *store.KVRepository[*note]
}

func (s *KVRepositoryConcurrencyTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = natstest.KeyValue(s.T(), "resources")
	s.seed = store.NewKVRepository(slog.Default(), s.kv, "notes", newNote)
}

func (s *KVRepositoryConcurrencyTestSuite) TestUpdateIsConditionalOnRevision() {
	tests := []struct {
		name     string
		between  func(id int64)
		wantErr  error
		validate func(id int64)
	}{
		{
			name: "when record is deleted between read and write",
			between: func(id int64) {
				s.Require().NoError(s.seed.Delete(s.ctx, id))
			},
			wantErr: store.ErrNotFound,
			validate: func(id int64) {
				_, err := s.seed.Find(s.ctx, id)
				s.ErrorIs(err, store.ErrNotFound)
			},
		},
		{
			name: "when record is rewritten between read and write",
			between: func(id int64) {
				other := &note{OwnerID: 1, Body: "other writer"}
				other.ID = id
				s.Require().NoError(s.seed.Update(s.ctx, other))
			},
			wantErr: store.ErrConflict,
			validate: func(id int64) {
				got, err := s.seed.Find(s.ctx, id)
				s.Require().NoError(err)
				s.Equal("other writer", got.Body)
			},
		},
		{
			name: "when nothing intervenes",
			validate: func(id int64) {
				got, err := s.seed.Find(s.ctx, id)
				s.Require().NoError(err)
				s.Equal("mine", got.Body)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			created := &note{OwnerID: 1, Body: "draft"}
			s.Require().NoError(s.seed.Create(s.ctx, created))

			kv := &interleavedKV{KeyValue: s.kv}
			if tt.between != nil {
				kv.between = func() { tt.between(created.ID) }
			}
			repo := store.NewKVRepository(slog.Default(), kv, "notes", newNote)

			mine := &note{OwnerID: 1, Body: "mine"}
			mine.ID = created.ID
			err := repo.Update(s.ctx, mine)

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
			} else {
				s.NoError(err)
			}
			tt.validate(created.ID)
		})
	}
}

func TestKVRepositoryConcurrencyTestSuite(t *testing.T) {
	suite.Run(t, new(KVRepositoryConcurrencyTestSuite))
}
