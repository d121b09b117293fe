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

package export

import (
	"context"

	"github.com/retr0h/taskboard/internal/audit"
)

// Fetcher returns one page of audit entries and the total entry count.
type Fetcher func(
	ctx context.Context,
	limit int,
	offset int,
) ([]audit.Entry, int, error)

// Exporter receives audit entries one at a time.
type Exporter interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, entry audit.Entry) error
	Close(ctx context.Context) error
}

// Result summarizes an export run.
type Result struct {
	TotalEntries    int
	ExportedEntries int
	// Skipped counts entries the fetcher could not return.
	Skipped int
}

// StoreFetcher pages through an audit.Store.
func StoreFetcher(
	store audit.Store,
) Fetcher {
	return store.List
}
