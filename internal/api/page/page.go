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

package page

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/store"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	pages Repository,
) *Handler {
	return &Handler{
		logger: logger,
		pages:  pages,
	}
}

// Slugify derives a URL slug from title.
func Slugify(
	title string,
) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// findBySlug returns the first page with slug.
func (h *Handler) findBySlug(
	ctx context.Context,
	slug string,
) (*Page, error) {
	pages, err := h.pages.List(ctx, func(p *Page) bool { return p.Slug == slug })
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(pages) == 0 {
		return nil, apperr.NotFound("Page")
	}

	return pages[0], nil
}

// ensureSlugFree rejects a slug already used by a page other than id.
func (h *Handler) ensureSlugFree(
	ctx context.Context,
	slug string,
	id int64,
) error {
	existing, err := h.findBySlug(ctx, slug)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}
	if existing.ID != id {
		return apperr.Conflict("Slug already in use")
	}

	return nil
}

func toAppError(
	err error,
) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("Page")
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict("Page was modified concurrently")
	default:
		return apperr.Internal(err)
	}
}
