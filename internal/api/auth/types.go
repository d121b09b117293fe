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

// Package auth provides the account and session API handlers.
package auth

import (
	"context"
	"log/slog"

	identity "github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/user"
)

// IdentityService is the subset of the identity provider used by the handlers.
type IdentityService interface {
	Login(ctx context.Context, in identity.LoginInput) (*identity.Result, error)
	Register(ctx context.Context, in identity.RegisterInput) (*identity.Result, error)
	ResolveUser(ctx context.Context, id int64) (*user.User, error)
	UpdateProfile(ctx context.Context, id int64, in identity.ProfileInput) (*user.User, error)
}

// Auth implements the /api/auth handlers.
type Auth struct {
	logger   *slog.Logger
	identity IdentityService
}

// LogoutResponse is the body returned by Logout.
type LogoutResponse struct {
	Message string `json:"message"`
}

// UserResponse wraps the caller for GetUser.
type UserResponse struct {
	User any `json:"user"`
}
