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

// Package api assembles the taskboard HTTP server.
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	auditapi "github.com/retr0h/taskboard/internal/api/audit"
	authapi "github.com/retr0h/taskboard/internal/api/auth"
	"github.com/retr0h/taskboard/internal/api/health"
	"github.com/retr0h/taskboard/internal/api/page"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/api/task"
	userapi "github.com/retr0h/taskboard/internal/api/user"
	"github.com/retr0h/taskboard/internal/audit"
	"github.com/retr0h/taskboard/internal/config"
)

// Server implementation of the taskboard API server.
type Server struct {
	// Echo is the underlying HTTP server.
	Echo *echo.Echo

	logger     *slog.Logger
	appConfig  config.Config
	auditStore audit.Store
}

// Option configures optional Server behavior.
type Option func(*Server)

// WithAuditStore records every authorized /api request to store.
func WithAuditStore(
	store audit.Store,
) Option {
	return func(s *Server) {
		s.auditStore = store
	}
}

// Handlers are the controllers mounted by Routes. Audit and Health may be
// nil; their routes are then omitted.
type Handlers struct {
	Auth     *authapi.Auth
	Users    *userapi.User
	Projects *project.Handler
	Tasks    *task.Handler
	Pages    *page.Handler
	Audit    *auditapi.Audit
	Health   *health.Health
}
