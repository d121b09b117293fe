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

package messaging_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/messaging"
	"github.com/retr0h/taskboard/internal/messaging/natstest"
)

type KVPublicTestSuite struct {
	suite.Suite

	ctx context.Context
	kv  jetstream.KeyValue
}

func (s *KVPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = natstest.KeyValue(s.T(), "test")
}

func (s *KVPublicTestSuite) TestNextSequence() {
	for want := int64(1); want <= 3; want++ {
		got, err := messaging.NextSequence(s.ctx, s.kv, "seq.things")
		s.Require().NoError(err)
		s.Equal(want, got)
	}

	other, err := messaging.NextSequence(s.ctx, s.kv, "seq.others")
	s.Require().NoError(err)
	s.Equal(int64(1), other)
}

func (s *KVPublicTestSuite) TestNextSequenceConcurrent() {
	const writers = 8

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := messaging.NextSequence(s.ctx, s.kv, "seq.race")
			s.NoError(err)

			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(seen, writers)
}

func (s *KVPublicTestSuite) TestKeysWithPrefix() {
	keys, err := messaging.KeysWithPrefix(s.ctx, s.kv, "projects")
	s.Require().NoError(err)
	s.Empty(keys)

	for _, k := range []string{"projects.1", "projects.2", "tasks.1", "projectsx.1"} {
		_, err := s.kv.Put(s.ctx, k, []byte("{}"))
		s.Require().NoError(err)
	}

	keys, err = messaging.KeysWithPrefix(s.ctx, s.kv, "projects")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"projects.1", "projects.2"}, keys)
}

func (s *KVPublicTestSuite) TestKeyHelpers() {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "id key",
			got:  messaging.IDKey("users", 42),
			want: "users.42",
		},
		{
			name: "namespaced bucket",
			got:  messaging.ApplyNamespace("prod", "users"),
			want: "prod-users",
		},
		{
			name: "bucket without namespace",
			got:  messaging.ApplyNamespace("", "users"),
			want: "users",
		},
		{
			name: "email token is lower cased before encoding",
			got:  messaging.EncodeKeyToken("Jane@Example.com"),
			want: messaging.EncodeKeyToken("jane@example.com"),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, tt.got)
		})
	}
}

func TestKVPublicTestSuite(t *testing.T) {
	suite.Run(t, new(KVPublicTestSuite))
}
