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
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/controller"
)

// Get returns a page by numeric id, falling back to a slug lookup. It is
// served without authentication.
func (h *Handler) Get(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	ctx := c.Request().Context()
	key := controller.Param(c, "id")
	if key == "" {
		key = controller.Param(c, "slug")
	}
	if key == "" {
		return apperr.Validation("Page ID or slug is required")
	}

	var (
		p   *Page
		err error
	)
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil && id > 0 {
		p, err = h.pages.Find(ctx, id)
		if err != nil {
			return toAppError(err)
		}
	} else {
		p, err = h.findBySlug(ctx, key)
		if err != nil {
			return err
		}
	}

	return controller.OK(c, p, "Page retrieved successfully")
}
