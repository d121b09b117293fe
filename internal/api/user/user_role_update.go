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

package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/controller"
)

// UpdateRole changes an account's role. Callers may not grant a role above
// their own, nor change the role of an account that outranks them.
func (u *User) UpdateRole(
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

	in, err := controller.Bind[UpdateRoleInput](c)
	if err != nil {
		return err
	}

	if !authtoken.HasAtLeastRole(caller.Role, in.Role) {
		return apperr.Forbidden("Cannot assign a role above your own")
	}

	ctx := c.Request().Context()
	target, err := u.users.FindByID(ctx, id)
	if err != nil {
		return toAppError(err)
	}

	if !authtoken.HasAtLeastRole(caller.Role, target.Role) {
		return apperr.Forbidden("Cannot change the role of a user above your own")
	}

	target.Role = in.Role
	if err := u.users.Update(ctx, target); err != nil {
		return toAppError(err)
	}

	u.logger.Info(
		"updated user role",
		slog.Int64("user_id", target.ID),
		slog.String("role", string(target.Role)),
		slog.Int64("by", caller.ID),
	)

	return controller.OK(c, target, "User role updated successfully")
}
