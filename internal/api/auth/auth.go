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
	"errors"
	"log/slog"

	"github.com/retr0h/taskboard/internal/apperr"
	identity "github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/user"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	svc IdentityService,
) *Auth {
	return &Auth{
		logger:   logger,
		identity: svc,
	}
}

// toAppError maps identity provider errors onto the HTTP taxonomy.
func toAppError(
	err error,
) error {
	var validationErr *identity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return apperr.Validation(validationErr.Message)
	case errors.Is(err, identity.ErrUserExists):
		return apperr.Conflict("User already exists")
	case errors.Is(err, identity.ErrInvalidCredentials):
		return apperr.InvalidCredentials()
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("User")
	default:
		return apperr.Internal(err)
	}
}
