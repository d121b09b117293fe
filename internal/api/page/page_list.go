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

	"github.com/retr0h/taskboard/internal/controller"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// List returns one page of pages with the given status (publish by default).
// Query parameters: page, limit, status.
func (h *Handler) List(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	pageNum := queryInt(c, "page", 1)
	limit := min(queryInt(c, "limit", defaultLimit), maxLimit)
	status := Status(controller.Query(c, "status"))
	if status == "" {
		status = StatusPublish
	}

	matched, err := h.pages.List(c.Request().Context(), func(p *Page) bool {
		return p.Status == status
	})
	if err != nil {
		return toAppError(err)
	}

	total := len(matched)
	start := min((pageNum-1)*limit, total)
	end := min(start+limit, total)

	return controller.OK(c, ListResponse{
		Pages: matched[start:end],
		Pagination: Pagination{
			Page:  pageNum,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, "Pages retrieved successfully")
}

// queryInt returns a positive integer query parameter or def.
func queryInt(
	c echo.Context,
	name string,
	def int,
) int {
	v, err := strconv.Atoi(controller.Query(c, name))
	if err != nil || v < 1 {
		return def
	}

	return v
}
