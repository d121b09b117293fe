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
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/controller"
)

// Update applies the non-nil fields of the body to one of the caller's pages.
// Changing the title without a slug regenerates the slug.
func (h *Handler) Update(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodPut, http.MethodPatch); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := controller.ParamInt64(c, "id")
	if err != nil {
		return err
	}

	in, err := controller.Bind[UpdateInput](c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := h.findOwned(ctx, caller, id, "You can only edit your own pages")
	if err != nil {
		return err
	}

	if in.Title != nil {
		p.Title = *in.Title
		if in.Slug == nil {
			p.Slug = Slugify(p.Title)
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		p.Slug = *in.Slug
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Status != nil {
		p.Status = *in.Status
	}

	if err := h.ensureSlugFree(ctx, p.Slug, p.ID); err != nil {
		return err
	}
	if err := h.pages.Update(ctx, p); err != nil {
		return toAppError(err)
	}

	return controller.OK(c, p, "Page updated successfully")
}

// Delete removes one of the caller's pages.
func (h *Handler) Delete(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodDelete); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := controller.ParamInt64(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.findOwned(ctx, caller, id, "You can only delete your own pages"); err != nil {
		return err
	}
	if err := h.pages.Delete(ctx, id); err != nil {
		return toAppError(err)
	}

	return controller.OK(c, struct{}{}, "Page deleted successfully")
}

// findOwned loads a page authored by caller, or fails with denied.
func (h *Handler) findOwned(
	ctx context.Context,
	caller *authz.AuthenticatedUser,
	id int64,
	denied string,
) (*Page, error) {
	p, err := h.pages.Find(ctx, id)
	if err != nil {
		return nil, toAppError(err)
	}
	if p.AuthorID != caller.ID {
		return nil, apperr.Forbidden(denied)
	}

	return p, nil
}
