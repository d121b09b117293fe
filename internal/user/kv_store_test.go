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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/messaging/natstest"
)

type KVStoreInternalTestSuite struct {
	suite.Suite

	store *KVStore
}

func (s *KVStoreInternalTestSuite) SetupTest() {
	s.store = NewKVStore(slog.Default(), natstest.KeyValue(s.T(), "users"))
}

func (s *KVStoreInternalTestSuite) TearDownTest() {
	marshalJSON = json.Marshal
}

func (s *KVStoreInternalTestSuite) TestCreateMarshalErrorReleasesEmail() {
	marshalJSON = func(_ interface{}) ([]byte, error) {
		return nil, fmt.Errorf("marshal failure")
	}

	err := s.store.Create(context.Background(), &User{Email: "jane@example.com"})

	s.Error(err)
	s.Contains(err.Error(), "marshal user")

	marshalJSON = json.Marshal
	s.NoError(s.store.Create(context.Background(), &User{Email: "jane@example.com"}))
}

func (s *KVStoreInternalTestSuite) TestUpdateMarshalErrorKeepsEmailIndex() {
	ctx := context.Background()
	u := &User{Email: "jane@example.com"}
	s.Require().NoError(s.store.Create(ctx, u))

	marshalJSON = func(_ interface{}) ([]byte, error) {
		return nil, fmt.Errorf("marshal failure")
	}

	moved := *u
	moved.Email = "jane.doe@example.com"
	err := s.store.Update(ctx, &moved)

	s.Error(err)
	s.Contains(err.Error(), "marshal user")

	marshalJSON = json.Marshal

	got, err := s.store.FindByEmail(ctx, "jane@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal("jane@example.com", got.Email)

	_, err = s.store.FindByEmail(ctx, "jane.doe@example.com")
	s.ErrorIs(err, ErrNotFound)
	s.NoError(s.store.Create(ctx, &User{Email: "jane.doe@example.com"}))
}

func (s *KVStoreInternalTestSuite) TestCreateLogsFailedEmailRollback() {
	var logs bytes.Buffer
	kv := &failingDeleteKV{
		KeyValue: natstest.KeyValue(s.T(), "users-rollback"),
		err:      errors.New("bucket unavailable"),
	}
	store := NewKVStore(slog.New(slog.NewTextHandler(&logs, nil)), kv)

	marshalJSON = func(_ interface{}) ([]byte, error) {
		return nil, fmt.Errorf("marshal failure")
	}

	err := store.Create(context.Background(), &User{Email: "jane@example.com"})

	s.Error(err)
	s.Contains(err.Error(), "marshal user")
	s.Contains(logs.String(), "failed to release email index")
	s.Contains(logs.String(), "bucket unavailable")
}

func (s *KVStoreInternalTestSuite) TestEmailKeyIsCaseInsensitive() {
	s.Equal(emailKey("Jane@Example.com"), emailKey("jane@example.com"))
	s.NotContains(emailKey("jane@example.com"), "@")
}

type failingDeleteKV struct {
	jetstream.KeyValue

	err error
}

func (kv *failingDeleteKV) Delete(
	_ context.Context,
	_ string,
	_ ...jetstream.KVDeleteOpt,
) error {
	return kv.err
}

func TestKVStoreInternalTestSuite(t *testing.T) {
	suite.Run(t, new(KVStoreInternalTestSuite))
}
