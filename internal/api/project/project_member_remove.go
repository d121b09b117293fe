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
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/controller"
	"github.com/retr0h/taskboard/internal/store"
)

// RemoveMember revokes a user's membership of a project the caller may see.
func (h *Handler) RemoveMember(
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

	userID, err := controller.ParamInt64(c, "userId")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := FindVisible(ctx, h.projects, h.members, caller, id)
	if err != nil {
		return err
	}

	m, err := FindMembership(ctx, h.members, p.ID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Member")
		}
		return toAppError(err)
	}

	if err := h.members.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Member")
		}
		return toAppError(err)
	}

	h.logger.Info(
		"removed project member",
		slog.Int64("project_id", p.ID),
		slog.Int64("user_id", userID),
		slog.Int64("by", caller.ID),
	)

	return controller.OK(c, RemoveMemberResponse{Removed: true}, "Member removed successfully")
}
