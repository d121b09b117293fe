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

// Package user provides the user administration API handlers.
package user

import (
	"log/slog"

	"github.com/retr0h/taskboard/internal/authtoken"
	userstore "github.com/retr0h/taskboard/internal/user"
)

// User implements the /api/users handlers.
type User struct {
	logger *slog.Logger
	users  userstore.Store
}

// UpdateRoleInput is the body accepted by UpdateRole.
type UpdateRoleInput struct {
	Role authtoken.Role `json:"role" validate:"required,role"`
}

// DeleteResponse is returned by Delete.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
