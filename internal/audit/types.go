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

// Package audit records authorized API requests and stores them for later
// review.
package audit

import (
	"context"
	"slices"
	"time"
)

// Entry represents a single audit log record.
type Entry struct {
	// ID is a time-ordered UUID (v7), so lexical order is chronological.
	ID string `json:"id"`
	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`
	// UserID is the authenticated caller.
	UserID int64 `json:"user_id"`
	// User is the caller's email.
	User string `json:"user"`
	// Role is the caller's role at request time.
	Role string `json:"role"`
	// Method is the HTTP method.
	Method string `json:"method"`
	// Path is the request URL path.
	Path string `json:"path"`
	// Route is the matched route pattern, e.g. /api/projects/[id].
	Route string `json:"route,omitempty"`
	// SourceIP is the client's IP address.
	SourceIP string `json:"source_ip"`
	// ResponseCode is the HTTP response status code.
	ResponseCode int `json:"response_code"`
	// DurationMs is the request processing time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// Store persists audit entries.
type Store interface {
	// Write persists a single entry.
	Write(ctx context.Context, entry Entry) error
	// Get returns one entry by ID.
	Get(ctx context.Context, id string) (*Entry, error)
	// List returns a page of entries, newest first, and the total count.
	List(ctx context.Context, limit int, offset int) ([]Entry, int, error)
}

// newestFirst orders ids newest first and returns the requested page along
// with the total count. UUIDv7 IDs sort chronologically.
func newestFirst(
	ids []string,
	limit int,
	offset int,
) ([]string, int) {
	slices.Sort(ids)
	slices.Reverse(ids)

	total := len(ids)
	if offset >= total || limit <= 0 {
		return []string{}, total
	}

	return ids[offset:min(offset+limit, total)], total
}
