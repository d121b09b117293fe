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

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/apperr"
)

type ApperrPublicTestSuite struct {
	suite.Suite
}

func (s *ApperrPublicTestSuite) TestConstructors() {
	tests := []struct {
		name       string
		err        *apperr.Error
		wantStatus int
		wantMsg    string
		wantAuth   bool
	}{
		{
			name:       "unauthenticated",
			err:        apperr.Unauthenticated(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Authentication token required",
			wantAuth:   true,
		},
		{
			name:       "invalid token",
			err:        apperr.InvalidToken(errors.New("token is expired")),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid authentication token",
			wantAuth:   true,
		},
		{
			name:       "user not found",
			err:        apperr.UserNotFound(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "User not found",
			wantAuth:   true,
		},
		{
			name:       "access denied names the role",
			err:        apperr.AccessDenied("user"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "Access denied. Required role: user",
			wantAuth:   true,
		},
		{
			name:       "invalid credentials",
			err:        apperr.InvalidCredentials(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "route not found",
			err:        apperr.RouteNotFound(),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Route not found",
		},
		{
			name:       "resource not found",
			err:        apperr.NotFound("Project"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Project not found",
		},
		{
			name:       "validation",
			err:        apperr.Validation("name is required"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "name is required",
		},
		{
			name:       "conflict",
			err:        apperr.Conflict("User already exists"),
			wantStatus: http.StatusConflict,
			wantMsg:    "User already exists",
		},
		{
			name:       "method not allowed",
			err:        apperr.MethodNotAllowed("DELETE"),
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method DELETE not allowed",
		},
		{
			name:       "forbidden",
			err:        apperr.Forbidden("You can only edit your own pages"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "You can only edit your own pages",
		},
		{
			name:       "internal",
			err:        apperr.Internal(errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.wantStatus, tt.err.Status())
			s.Equal(tt.wantMsg, tt.err.Message)
			s.Equal(tt.wantAuth, tt.err.Kind.IsAuth())
		})
	}
}

func (s *ApperrPublicTestSuite) TestErrorIncludesCause() {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	s.Contains(err.Error(), "connection refused")
	s.ErrorIs(err, cause)
}

func (s *ApperrPublicTestSuite) TestAsAndKindOf() {
	wrapped := fmt.Errorf("handler: %w", apperr.NotFound("Task"))

	got, ok := apperr.As(wrapped)
	s.Require().True(ok)
	s.Equal(apperr.KindNotFound, got.Kind)
	s.Equal(apperr.KindNotFound, apperr.KindOf(wrapped))

	_, ok = apperr.As(errors.New("plain"))
	s.False(ok)
	s.Equal(apperr.KindInternal, apperr.KindOf(errors.New("plain")))
}

func (s *ApperrPublicTestSuite) TestKindString() {
	s.Equal("access_denied", apperr.KindAccessDenied.String())
	s.Equal("internal", apperr.Kind(99).String())
	s.Equal(http.StatusInternalServerError, apperr.Kind(99).Status())
}

func TestApperrPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ApperrPublicTestSuite))
}
