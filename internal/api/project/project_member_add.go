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
	"github.com/retr0h/taskboard/internal/user"
)

// AddMember grants an existing user membership of a project the caller may
// see. The role defaults to member.
func (h *Handler) AddMember(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodPost); err != nil {
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

	in, err := controller.Bind[AddMemberInput](c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := FindVisible(ctx, h.projects, h.members, caller, id)
	if err != nil {
		return err
	}

	if _, err := h.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperr.Validation("User does not exist")
		}
		return apperr.Internal(err)
	}
	if in.UserID == p.OwnerID {
		return apperr.Conflict("User already owns this project")
	}

	_, err = FindMembership(ctx, h.members, p.ID, in.UserID)
	switch {
	case err == nil:
		return apperr.Conflict("User is already a member of this project")
	case !errors.Is(err, store.ErrNotFound):
		return toAppError(err)
	}

	m := &Member{ProjectID: p.ID, UserID: in.UserID, Role: in.Role}
	if m.Role == "" {
		m.Role = MemberRoleMember
	}
	if err := h.members.Create(ctx, m); err != nil {
		return toAppError(err)
	}

	h.logger.Info(
		"added project member",
		slog.Int64("project_id", p.ID),
		slog.Int64("user_id", m.UserID),
		slog.String("role", string(m.Role)),
		slog.Int64("by", caller.ID),
	)

	return controller.Created(c, m, "Member added successfully")
}
