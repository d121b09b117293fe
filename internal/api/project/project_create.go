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
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/controller"
)

// Create stores a project owned by the caller.
func (h *Handler) Create(
	c echo.Context,
) error {
	if err := controller.ValidateMethod(c, http.MethodPost); err != nil {
		return err
	}

	caller, err := controller.CurrentUser(c)
	if err != nil {
		return err
	}

	in, err := controller.Bind[CreateInput](c)
	if err != nil {
		return err
	}

	p := &Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		OwnerID:     caller.ID,
	}
	if p.Status == "" {
		p.Status = StatusActive
	}

	if err := h.projects.Create(c.Request().Context(), p); err != nil {
		return toAppError(err)
	}

	h.logger.Info(
		"created project",
		slog.Int64("project_id", p.ID),
		slog.Int64("owner_id", p.OwnerID),
	)

	return controller.Created(c, p, "Project created successfully")
}
