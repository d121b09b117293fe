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

package messaging

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// maxSequenceAttempts bounds optimistic retries when two writers race on a
// sequence key.
const maxSequenceAttempts = 16

// NextSequence atomically increments the integer stored under key and
// returns the new value. A missing key starts the sequence at 1.
func NextSequence(
	ctx context.Context,
	kv jetstream.KeyValue,
	key string,
) (int64, error) {
	for range maxSequenceAttempts {
		entry, err := kv.Get(ctx, key)
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			if _, err := kv.Create(ctx, key, []byte("1")); err != nil {
				if errors.Is(err, jetstream.ErrKeyExists) {
					continue
				}
				return 0, fmt.Errorf("create sequence %s: %w", key, err)
			}
			return 1, nil
		}
		if err != nil {
			return 0, fmt.Errorf("get sequence %s: %w", key, err)
		}

		current, err := strconv.ParseInt(string(entry.Value()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse sequence %s: %w", key, err)
		}

		next := current + 1
		_, err = kv.Update(ctx, key, []byte(strconv.FormatInt(next, 10)), entry.Revision())
		if err == nil {
			return next, nil
		}
		if !isWrongSequence(err) {
			return 0, fmt.Errorf("update sequence %s: %w", key, err)
		}
	}

	return 0, fmt.Errorf("update sequence %s: too many concurrent writers", key)
}

// EncodeKeyToken converts an arbitrary string into a token that is valid
// inside a KV key. Emails contain '@', which the key charset rejects.
func EncodeKeyToken(
	value string,
) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.ToLower(value)))
}

// IDKey builds "<prefix>.<id>".
func IDKey(
	prefix string,
	id int64,
) string {
	return prefix + "." + strconv.FormatInt(id, 10)
}

// KeysWithPrefix lists the keys in kv under "<prefix>.", treating an empty
// bucket as no keys.
func KeysWithPrefix(
	ctx context.Context,
	kv jetstream.KeyValue,
	prefix string,
) ([]string, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list keys: %w", err)
	}

	matched := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, prefix+".") {
			matched = append(matched, k)
		}
	}

	return matched, nil
}

// isWrongSequence reports whether err is the JetStream optimistic
// concurrency failure returned by Update.
func isWrongSequence(
	err error,
) bool {
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
	}

	return strings.Contains(err.Error(), "wrong last sequence")
}
