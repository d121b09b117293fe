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
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/controller"
)

// Delete removes a project and its memberships.
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
	if err := h.projects.Delete(ctx, id); err != nil {
		return toAppError(err)
	}
	h.removeAllMembers(ctx, id)

	h.logger.Info(
		"deleted project",
		slog.Int64("project_id", id),
		slog.Int64("by", caller.ID),
	)

	return controller.OK(c, DeleteResponse{Deleted: true}, "Project deleted successfully")
}

// removeAllMembers drops every membership of a deleted project. Failures are
// logged; a leftover membership references a project that no longer resolves.
func (h *Handler) removeAllMembers(
	ctx context.Context,
	projectID int64,
) {
	members, err := h.members.List(ctx, func(m *Member) bool {
		return m.ProjectID == projectID
	})
	if err != nil {
		h.logger.Warn(
			"failed to list project members",
			slog.Int64("project_id", projectID),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, m := range members {
		if err := h.members.Delete(ctx, m.ID); err != nil {
			h.logger.Warn(
				"failed to remove project member",
				slog.Int64("project_id", projectID),
				slog.Int64("user_id", m.UserID),
				slog.String("error", err.Error()),
			)
		}
	}
}
