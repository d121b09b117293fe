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

// Package router matches requests to registered routes by method and a
// bracketed path pattern such as /api/projects/[id], authorizes them, and
// dispatches to the route's handler.
package router

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/authz"
)

// Route binds a method and path pattern to a handler. A nil Auth makes the
// route public.
type Route struct {
	Pattern string
	Method  string
	Name    string
	Handler echo.HandlerFunc
	Auth    *authz.Requirement

	matcher *regexp.Regexp
	params  []string
}

// Params returns the names of the pattern's dynamic segments in order.
func (r Route) Params() []string {
	return append([]string(nil), r.params...)
}

// ContextKeyRoute is the echo context key holding the matched pattern.
const ContextKeyRoute = "router.route"

// Step runs before the handler. A non-nil error stops the chain.
type Step func(c echo.Context) error

// Authorizer checks a route requirement against the request.
type Authorizer interface {
	Authorize(c echo.Context, req authz.Requirement) error
}

// Recorder observes completed dispatches.
type Recorder interface {
	RecordDispatch(route string, method string, status int, elapsed time.Duration)
}

// Router holds the ordered route table. Routes are registered before
// serving and read concurrently afterwards.
type Router struct {
	logger     *slog.Logger
	authorizer Authorizer
	recorder   Recorder
	routes     []Route
	steps      []Step
}

// Option configures a Router.
type Option func(*Router)

// WithRecorder reports every dispatch to rec.
func WithRecorder(
	rec Recorder,
) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}
