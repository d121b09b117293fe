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

package audit_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/audit"
	"github.com/retr0h/taskboard/internal/messaging/natstest"
)

type StorePublicTestSuite struct {
	suite.Suite

	ctx      context.Context
	newStore func() audit.Store
	store    audit.Store
}

func (s *StorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *StorePublicTestSuite) newEntry(
	user string,
) audit.Entry {
	id, err := uuid.NewV7()
	s.Require().NoError(err)

	return audit.Entry{
		ID:           id.String(),
		Timestamp:    time.Now().UTC(),
		UserID:       1,
		User:         user,
		Role:         "admin",
		Method:       "GET",
		Path:         "/api/projects/1",
		Route:        "/api/projects/[id]",
		SourceIP:     "127.0.0.1",
		ResponseCode: 200,
		DurationMs:   42,
	}
}

func (s *StorePublicTestSuite) TestWriteAndGet() {
	entry := s.newEntry("jane@example.com")

	s.Require().NoError(s.store.Write(s.ctx, entry))

	got, err := s.store.Get(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal("jane@example.com", got.User)
	s.Equal("/api/projects/[id]", got.Route)

	_, err = s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, audit.ErrNotFound)
}

func (s *StorePublicTestSuite) TestList() {
	first := s.newEntry("first@example.com")
	second := s.newEntry("second@example.com")
	third := s.newEntry("third@example.com")
	for _, e := range []audit.Entry{first, second, third} {
		s.Require().NoError(s.store.Write(s.ctx, e))
	}

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantUsers []string
	}{
		{
			name:      "newest first",
			limit:     10,
			wantUsers: []string{"third@example.com", "second@example.com", "first@example.com"},
		},
		{
			name:      "paginates",
			limit:     1,
			offset:    1,
			wantUsers: []string{"second@example.com"},
		},
		{
			name:      "offset past end",
			limit:     10,
			offset:    5,
			wantUsers: []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, total, err := s.store.List(s.ctx, tt.limit, tt.offset)

			s.Require().NoError(err)
			s.Equal(3, total)
			users := make([]string, 0, len(entries))
			for _, e := range entries {
				users = append(users, e.User)
			}
			s.Equal(tt.wantUsers, users)
		})
	}
}

func (s *StorePublicTestSuite) TestListEmpty() {
	entries, total, err := s.store.List(s.ctx, 10, 0)

	s.NoError(err)
	s.Equal(0, total)
	s.Empty(entries)
}

func TestMemoryStorePublicTestSuite(t *testing.T) {
	suite.Run(t, &StorePublicTestSuite{
		newStore: func() audit.Store { return audit.NewMemoryStore() },
	})
}

func TestKVStorePublicTestSuite(t *testing.T) {
	s := &StorePublicTestSuite{}
	s.newStore = func() audit.Store {
		return audit.NewKVStore(slog.Default(), natstest.KeyValue(s.T(), "audit"))
	}
	suite.Run(t, s)
}
