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

package router

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/controller"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	authorizer Authorizer,
	opts ...Option,
) *Router {
	r := &Router{
		logger:     logger,
		authorizer: authorizer,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Use appends steps that run for every matched route, before authorization.
func (r *Router) Use(
	steps ...Step,
) {
	r.steps = append(r.steps, steps...)
}

// Register compiles and appends routes in order. Nothing is registered when
// any pattern fails to compile. Duplicate method and pattern pairs are
// accepted; only the first one is reachable.
func (r *Router) Register(
	routes ...Route,
) error {
	compiled := make([]Route, 0, len(routes))
	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("route %s %s: nil handler", route.Method, route.Pattern)
		}
		if route.Auth != nil {
			if err := route.Auth.Validate(); err != nil {
				return fmt.Errorf("route %s %s: %w", route.Method, route.Pattern, err)
			}
		}

		matcher, params, err := compilePattern(route.Pattern)
		if err != nil {
			return err
		}

		route.Method = strings.ToUpper(route.Method)
		route.matcher = matcher
		route.params = params
		compiled = append(compiled, route)
	}

	r.routes = append(r.routes, compiled...)

	return nil
}

// MustRegister is Register that panics, for startup wiring.
func (r *Router) MustRegister(
	routes ...Route,
) {
	if err := r.Register(routes...); err != nil {
		panic(err)
	}
}

// Match returns the first registered route whose method equals method and
// whose pattern matches path. A path that matches only under another method
// yields no route.
func (r *Router) Match(
	method string,
	path string,
) (*Route, bool) {
	for i := range r.routes {
		route := &r.routes[i]
		if route.Method == method && route.matcher.MatchString(path) {
			return route, true
		}
	}

	return nil, false
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Dispatch is the echo handler for every API request. It always writes a
// response and never returns an error to echo.
func (r *Router) Dispatch(
	c echo.Context,
) error {
	start := time.Now()
	req := c.Request()
	label := "unmatched"

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(
				"handler panic",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("route", label),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			r.fail(c, apperr.Internal(fmt.Errorf("panic: %v", rec)))
		}

		if r.recorder != nil {
			r.recorder.RecordDispatch(label, req.Method, c.Response().Status, time.Since(start))
		}
	}()

	route, ok := r.Match(req.Method, req.URL.Path)
	if !ok {
		r.fail(c, apperr.RouteNotFound())
		return nil
	}
	label = route.Pattern
	c.Set(ContextKeyRoute, route.Pattern)

	bindParams(c, route, req.URL.Path)

	if err := r.run(c, route); err != nil {
		if _, typed := apperr.As(err); !typed || apperr.KindOf(err) == apperr.KindInternal {
			r.logger.Error(
				"request failed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("route", label),
				slog.String("error", err.Error()),
			)
		}
		r.fail(c, err)
	}

	return nil
}

// run executes the global steps, the authorization step and the handler.
func (r *Router) run(
	c echo.Context,
	route *Route,
) error {
	for _, step := range r.steps {
		if err := step(c); err != nil {
			return err
		}
	}

	if route.Auth != nil {
		if err := r.authorizer.Authorize(c, *route.Auth); err != nil {
			return err
		}
	}

	return route.Handler(c)
}

// fail writes the error envelope unless the handler already responded.
func (r *Router) fail(
	c echo.Context,
	err error,
) {
	if c.Response().Committed {
		return
	}

	if writeErr := controller.Fail(c, err); writeErr != nil {
		r.logger.Warn(
			"failed to write error response",
			slog.String("error", writeErr.Error()),
		)
	}
}

// bindParams exposes the route's captured segments as echo path params.
func bindParams(
	c echo.Context,
	route *Route,
	path string,
) {
	if len(route.params) == 0 {
		return
	}

	values := route.matcher.FindStringSubmatch(path)
	if len(values) != len(route.params)+1 {
		return
	}

	c.SetParamNames(route.params...)
	c.SetParamValues(values[1:]...)
}
