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

package project

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/controller"
	"github.com/retr0h/taskboard/internal/store"
)

// List returns the projects the caller owns or is a member of, or all
// projects for roles with canViewAllProjects. An optional status query
// narrows the result.
func (h *Handler) List(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	memberOf, err := MemberProjectIDs(ctx, h.members, caller.ID)
	if err != nil {
		return toAppError(err)
	}
	status := Status(controller.Query(c, "status"))

	var filter store.Filter[*Project] = func(p *Project) bool {
		if !CanView(caller, p, memberOf[p.ID]) {
			return false
		}
		return status == "" || p.Status == status
	}

	projects, err := h.projects.List(ctx, filter)
	if err != nil {
		return toAppError(err)
	}

	return controller.OK(c, projects, "Projects retrieved successfully")
}
