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
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/retr0h/taskboard/internal/api/health"
	"github.com/retr0h/taskboard/internal/config"
	"github.com/retr0h/taskboard/internal/router"
	"github.com/retr0h/taskboard/internal/telemetry"
)

// APIPrefix is the path prefix handed to the router.
const APIPrefix = "/api"

// New initialize a new Server and configure an Echo server.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = appConfig.API.Server.ReadTimeout
	e.Server.WriteTimeout = appConfig.API.Server.WriteTimeout

	corsConfig := middleware.CORSConfig{}
	if allowOrigins := appConfig.API.Server.Security.CORS.AllowOrigins; len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}

	e.Use(otelecho.Middleware(telemetry.ServiceName))
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(corsConfig))

	s := &Server{
		Echo:      e,
		logger:    logger,
		appConfig: appConfig,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Mount sends every /api request to r. The audit middleware, when
// configured, wraps the dispatch so it sees the authorized caller.
func (s *Server) Mount(
	r *router.Router,
) {
	var mw []echo.MiddlewareFunc
	if s.auditStore != nil {
		mw = append(mw, auditMiddleware(s.auditStore, s.logger))
	}

	s.Echo.Any(APIPrefix, r.Dispatch, mw...)
	s.Echo.Any(APIPrefix+"/*", r.Dispatch, mw...)
}

// RegisterProbes exposes the unauthenticated liveness and readiness probes.
func (s *Server) RegisterProbes(
	h *health.Health,
) {
	s.Echo.GET("/health", h.GetHealth)
	s.Echo.GET("/health/ready", h.GetHealthReady)
}

// RegisterMetrics exposes the Prometheus scrape endpoint at path.
func (s *Server) RegisterMetrics(
	handler http.Handler,
	path string,
) {
	s.Echo.GET(path, echo.WrapHandler(handler))
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		listenAddr := fmt.Sprintf(":%d", s.appConfig.API.Server.Port)
		s.logger.Info("starting server", slog.String("addr", listenAddr))

		if err := s.Echo.Start(listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
