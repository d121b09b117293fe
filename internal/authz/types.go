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

// Package authz authorizes requests: it extracts the bearer token, asks
// the identity provider to verify it and resolve the caller, and checks the
// route's Requirement against the caller's role.
package authz

import (
	"context"
	"log/slog"

	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/user"
)

// ContextKeyUser is the echo context key holding *AuthenticatedUser.
const ContextKeyUser = "auth.user"

// IdentityProvider verifies tokens and resolves their subjects.
type IdentityProvider interface {
	Verify(token string) (*authtoken.CustomClaims, error)
	ResolveUser(ctx context.Context, id int64) (*user.User, error)
}

// AuthenticatedUser is the caller attached to an authorized request.
type AuthenticatedUser struct {
	ID    int64          `json:"id"`
	Email string         `json:"email"`
	Name  string         `json:"name"`
	Role  authtoken.Role `json:"role"`
}

// Middleware authorizes requests against a Requirement.
type Middleware struct {
	logger   *slog.Logger
	identity IdentityProvider
}
