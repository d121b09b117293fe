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

package task

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/controller"
)

// ListByProject returns the tasks of a project the caller may see. An
// optional status query narrows the result.
func (h *Handler) ListByProject(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	projectID, err := controller.ParamInt64(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := project.FindVisible(ctx, h.projects, h.members, caller, projectID); err != nil {
		return err
	}

	status := Status(controller.Query(c, "status"))
	tasks, err := h.tasks.List(ctx, func(t *Task) bool {
		return t.ProjectID == projectID && (status == "" || t.Status == status)
	})
	if err != nil {
		return toAppError(err)
	}

	return controller.OK(c, tasks, "Project tasks retrieved successfully")
}

// ListMine returns the tasks assigned to or created by the caller across all
// projects. An optional status query narrows the result.
func (h *Handler) ListMine(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	status := Status(controller.Query(c, "status"))
	tasks, err := h.tasks.List(c.Request().Context(), func(t *Task) bool {
		mine := t.CreatedBy == caller.ID || (t.AssignedTo != nil && *t.AssignedTo == caller.ID)
		return mine && (status == "" || t.Status == status)
	})
	if err != nil {
		return toAppError(err)
	}

	return controller.OK(c, tasks, "User tasks retrieved successfully")
}
