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

package audit

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/controller"
	"github.com/retr0h/taskboard/internal/validation"
)

// List returns a page of audit entries, newest first.
func (a *Audit) List(
	c echo.Context,
) error {
	var q ListQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return apperr.Validation("Invalid pagination parameters")
	}
	if errMsg, ok := validation.Struct(q); !ok {
		return apperr.Validation(errMsg)
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	entries, total, err := a.Store.List(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		a.logger.Error(
			"failed to list audit entries",
			slog.String("error", err.Error()),
		)
		return apperr.Internal(err)
	}

	return controller.OK(c, ListResponse{
		TotalItems: total,
		Items:      entries,
	}, "Audit entries retrieved successfully")
}
