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

package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/controller"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	checker Checker,
	startTime time.Time,
	version string,
) *Health {
	return &Health{
		Checker:   checker,
		StartTime: startTime,
		Version:   version,
		logger:    logger,
	}
}

// GetHealth liveness probe.
func (h *Health) GetHealth(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, ProbeResponse{Status: "ok"})
}

// GetHealthReady readiness probe. Returns 200 when dependencies are reachable.
func (h *Health) GetHealthReady(
	c echo.Context,
) error {
	if err := h.Checker.CheckHealth(c.Request().Context()); err != nil {
		h.logger.Warn(
			"readiness check failed",
			slog.String("error", err.Error()),
		)
		errMsg := err.Error()
		return c.JSON(http.StatusServiceUnavailable, ProbeResponse{
			Status: "not_ready",
			Error:  &errMsg,
		})
	}

	return c.JSON(http.StatusOK, ProbeResponse{Status: "ready"})
}

// GetHealthStatus reports per-component health with version and uptime.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	resp := h.status(c.Request().Context())
	if resp.Status != "ok" {
		return controller.Success(c, http.StatusServiceUnavailable, resp, "Service degraded")
	}

	return controller.OK(c, resp, "Service healthy")
}

func (h *Health) status(
	ctx context.Context,
) StatusResponse {
	resp := StatusResponse{
		Status:     "ok",
		Components: map[string]ComponentHealth{},
		Version:    h.Version,
		Uptime:     time.Since(h.StartTime).Round(time.Second).String(),
	}

	components, ok := h.Checker.(*ComponentChecker)
	if !ok {
		if err := h.Checker.CheckHealth(ctx); err != nil {
			resp.Status = "degraded"
		}
		return resp
	}

	for name, err := range components.Components(ctx) {
		ch := ComponentHealth{Status: "ok"}
		if err != nil {
			errMsg := err.Error()
			ch = ComponentHealth{Status: "error", Error: &errMsg}
			resp.Status = "degraded"
		}
		resp.Components[name] = ch
	}

	return resp
}
