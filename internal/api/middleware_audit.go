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

package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/audit"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/router"
)

var newEntryID = uuid.NewV7

// auditMiddleware records an entry for every request that passed
// authorization. Public routes and rejected requests carry no caller and
// are skipped. Writes are asynchronous.
func auditMiddleware(
	store audit.Store,
	logger *slog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			caller, ok := authz.UserFromEcho(c)
			if !ok {
				return err
			}

			id, idErr := newEntryID()
			if idErr != nil {
				logger.Warn(
					"failed to generate audit entry id",
					slog.String("error", idErr.Error()),
				)
				return err
			}

			route, _ := c.Get(router.ContextKeyRoute).(string)
			entry := audit.Entry{
				ID:           id.String(),
				Timestamp:    start,
				UserID:       caller.ID,
				User:         caller.Email,
				Role:         string(caller.Role),
				Method:       c.Request().Method,
				Path:         c.Request().URL.Path,
				Route:        route,
				SourceIP:     c.RealIP(),
				ResponseCode: c.Response().Status,
				DurationMs:   time.Since(start).Milliseconds(),
			}

			ctx := context.WithoutCancel(c.Request().Context())
			go func() {
				if writeErr := store.Write(ctx, entry); writeErr != nil {
					logger.Warn(
						"failed to write audit entry",
						slog.String("error", writeErr.Error()),
						slog.String("entry_id", entry.ID),
					)
				}
			}()

			return err
		}
	}
}
