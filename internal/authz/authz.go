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

package authz

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/telemetry"
	"github.com/retr0h/taskboard/internal/user"
)

const bearerPrefix = "Bearer "

type userContextKey struct{}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	identity IdentityProvider,
) *Middleware {
	return &Middleware{
		logger:   logger,
		identity: identity,
	}
}

// Authorize runs the authorization steps for req. On success the caller is
// attached to c; on failure an *apperr.Error is returned and c is untouched.
func (m *Middleware) Authorize(
	c echo.Context,
	req Requirement,
) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return apperr.Unauthenticated()
	}

	claims, err := m.identity.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return apperr.InvalidToken(err)
	}

	ctx := c.Request().Context()
	u, err := m.identity.ResolveUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperr.UserNotFound()
		}
		return apperr.Internal(err)
	}

	caller := &AuthenticatedUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}

	if !req.Allows(caller.Role) {
		m.logger.Debug(
			"access denied",
			slog.Int64("user_id", caller.ID),
			slog.String("role", string(caller.Role)),
			slog.String("requirement", req.String()),
			slog.String("path", c.Request().URL.Path),
		)
		return apperr.AccessDenied(string(caller.Role))
	}

	c.Set(ContextKeyUser, caller)
	ctx = telemetry.WithLogAttrs(ctx, slog.Int64("user_id", caller.ID))
	c.SetRequest(c.Request().WithContext(WithUser(ctx, caller)))

	return nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(
	ctx context.Context,
	u *AuthenticatedUser,
) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext returns the caller attached by Authorize.
func UserFromContext(
	ctx context.Context,
) (*AuthenticatedUser, bool) {
	u, ok := ctx.Value(userContextKey{}).(*AuthenticatedUser)
	return u, ok && u != nil
}

// UserFromEcho returns the caller stored on the echo context.
func UserFromEcho(
	c echo.Context,
) (*AuthenticatedUser, bool) {
	u, ok := c.Get(ContextKeyUser).(*AuthenticatedUser)
	return u, ok && u != nil
}
