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

	"github.com/retr0h/taskboard/internal/controller"
)

// Update applies the non-nil fields of the body to a task.
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
	t, err := h.findVisible(ctx, caller, id)
	if err != nil {
		return err
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}

	if err := h.tasks.Update(ctx, t); err != nil {
		return toAppError(err)
	}

	return controller.OK(c, t, "Task updated successfully")
}

// Assign sets the task's assignee.
func (h *Handler) Assign(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodPut); err != nil {
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

	in, err := controller.Bind[AssignInput](c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	t, err := h.findVisible(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := h.ensureAssignee(ctx, in.AssignedTo); err != nil {
		return err
	}

	t.AssignedTo = &in.AssignedTo
	if err := h.tasks.Update(ctx, t); err != nil {
		return toAppError(err)
	}

	return controller.OK(c, t, "Task assigned successfully")
}
