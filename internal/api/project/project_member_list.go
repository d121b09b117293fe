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
	"github.com/retr0h/taskboard/internal/user"
)

// ListMembers returns the memberships of a project the caller may see, in
// the order they were added, with each member's name and email. Members
// whose user no longer exists are left out.
func (h *Handler) ListMembers(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
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
	p, err := FindVisible(ctx, h.projects, h.members, caller, id)
	if err != nil {
		return err
	}

	members, err := h.members.List(ctx, func(m *Member) bool {
		return m.ProjectID == p.ID
	})
	if err != nil {
		return toAppError(err)
	}

	details := make([]MemberDetails, 0, len(members))
	for _, m := range members {
		u, err := h.users.FindByID(ctx, m.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				h.logger.Debug(
					"skipping member without user",
					slog.Int64("project_id", p.ID),
					slog.Int64("user_id", m.UserID),
				)
				continue
			}
			return apperr.Internal(err)
		}
		details = append(details, MemberDetails{
			Member:    m,
			UserName:  u.Name,
			UserEmail: u.Email,
		})
	}

	return controller.OK(c, details, "Project members retrieved successfully")
}
