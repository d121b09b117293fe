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

package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	identity "github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/controller"
)

// GetProfile returns the caller's full user record.
func (a *Auth) GetProfile(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodGet); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	u, err := a.identity.ResolveUser(c.Request().Context(), caller.ID)
	if err != nil {
		return toAppError(err)
	}

	return controller.OK(c, u, "Profile retrieved successfully")
}

// UpdateProfile changes the caller's name, email or password.
func (a *Auth) UpdateProfile(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodPut, http.MethodPatch); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	in, err := controller.Bind[identity.ProfileInput](c)
	if err != nil {
		return err
	}

	u, err := a.identity.UpdateProfile(c.Request().Context(), caller.ID, in)
	if err != nil {
		return toAppError(err)
	}

	return controller.OK(c, u, "Profile updated successfully")
}
