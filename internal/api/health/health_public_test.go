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

package health_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/api/health"
)

type HealthPublicTestSuite struct {
	suite.Suite
}

func (s *HealthPublicTestSuite) serve(
	h echo.HandlerFunc,
) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	s.Require().NoError(h(c))

	return rec
}

func (s *HealthPublicTestSuite) TestGetHealth() {
	h := health.New(slog.Default(), &health.ComponentChecker{}, time.Now(), "0.1.0")

	rec := s.serve(h.GetHealth)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HealthPublicTestSuite) TestGetHealthReady() {
	tests := []struct {
		name     string
		checks   []health.Check
		wantCode int
		wantBody string
	}{
		{
			name:     "when no checks configured",
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready"}`,
		},
		{
			name: "when every check passes",
			checks: []health.Check{
				{Name: "store", Fn: func(context.Context) error { return nil }},
				{Name: "nats"},
			},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready"}`,
		},
		{
			name: "when a check fails",
			checks: []health.Check{
				{Name: "store", Fn: func(context.Context) error { return errors.New("connection refused") }},
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"status":"not_ready","error":"store: connection refused"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := health.New(
				slog.Default(),
				&health.ComponentChecker{Checks: tt.checks},
				time.Now(),
				"0.1.0",
			)

			rec := s.serve(h.GetHealthReady)

			s.Equal(tt.wantCode, rec.Code)
			s.JSONEq(tt.wantBody, rec.Body.String())
		})
	}
}

func (s *HealthPublicTestSuite) TestGetHealthStatus() {
	tests := []struct {
		name       string
		checks     []health.Check
		wantCode   int
		wantStatus string
	}{
		{
			name: "when healthy",
			checks: []health.Check{
				{Name: "store", Fn: func(context.Context) error { return nil }},
			},
			wantCode:   http.StatusOK,
			wantStatus: `"status":"ok"`,
		},
		{
			name: "when degraded",
			checks: []health.Check{
				{Name: "store", Fn: func(context.Context) error { return nil }},
				{Name: "audit", Fn: func(context.Context) error { return errors.New("bucket missing") }},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: `"status":"degraded"`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := health.New(
				slog.Default(),
				&health.ComponentChecker{Checks: tt.checks},
				time.Now(),
				"1.2.3",
			)

			rec := s.serve(h.GetHealthStatus)

			s.Equal(tt.wantCode, rec.Code)
			s.Contains(rec.Body.String(), tt.wantStatus)
			s.Contains(rec.Body.String(), `"version":"1.2.3"`)
		})
	}
}

func TestHealthPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthPublicTestSuite))
}
