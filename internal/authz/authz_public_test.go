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

package authz_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/authz/mocks"
	"github.com/retr0h/taskboard/internal/user"
)

type AuthzPublicTestSuite struct {
	suite.Suite

	ctrl         *gomock.Controller
	mockIdentity *mocks.MockIdentityProvider
	middleware   *authz.Middleware
	e            *echo.Echo
}

func (s *AuthzPublicTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockIdentity = mocks.NewMockIdentityProvider(s.ctrl)
	s.middleware = authz.New(slog.Default(), s.mockIdentity)
	s.e = echo.New()
}

func (s *AuthzPublicTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthzPublicTestSuite) newContext(
	header string,
) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}

	return s.e.NewContext(req, httptest.NewRecorder())
}

func (s *AuthzPublicTestSuite) expectUser(
	token string,
	role authtoken.Role,
) {
	s.mockIdentity.EXPECT().
		Verify(token).
		Return(&authtoken.CustomClaims{UserID: 3, Email: "jane@example.com"}, nil)
	s.mockIdentity.EXPECT().
		ResolveUser(gomock.Any(), int64(3)).
		Return(&user.User{ID: 3, Name: "Jane", Email: "jane@example.com", Role: role}, nil)
}

func (s *AuthzPublicTestSuite) TestAuthorize() {
	tests := []struct {
		name        string
		header      string
		requirement *authz.Requirement
		setupMock   func()
		wantKind    apperr.Kind
		wantMessage string
		wantOK      bool
	}{
		{
			name:        "when header is missing",
			requirement: authz.AnyAuthenticated(),
			setupMock:   func() {},
			wantKind:    apperr.KindUnauthenticated,
			wantMessage: "Authentication token required",
		},
		{
			name:        "when scheme is not bearer",
			header:      "Basic dXNlcjpwYXNz",
			requirement: authz.AnyAuthenticated(),
			setupMock:   func() {},
			wantKind:    apperr.KindUnauthenticated,
			wantMessage: "Authentication token required",
		},
		{
			name:        "when token fails verification",
			header:      "Bearer expired",
			requirement: authz.Roles(authtoken.RoleAdmin),
			setupMock: func() {
				s.mockIdentity.EXPECT().
					Verify("expired").
					Return(nil, errors.New("invalid token"))
			},
			wantKind:    apperr.KindInvalidToken,
			wantMessage: "Invalid authentication token",
		},
		{
			name:        "when user no longer exists",
			header:      "Bearer good",
			requirement: authz.AnyAuthenticated(),
			setupMock: func() {
				s.mockIdentity.EXPECT().
					Verify("good").
					Return(&authtoken.CustomClaims{UserID: 3}, nil)
				s.mockIdentity.EXPECT().
					ResolveUser(gomock.Any(), int64(3)).
					Return(nil, user.ErrNotFound)
			},
			wantKind:    apperr.KindUserNotFound,
			wantMessage: "User not found",
		},
		{
			name:        "when user lookup fails",
			header:      "Bearer good",
			requirement: authz.AnyAuthenticated(),
			setupMock: func() {
				s.mockIdentity.EXPECT().
					Verify("good").
					Return(&authtoken.CustomClaims{UserID: 3}, nil)
				s.mockIdentity.EXPECT().
					ResolveUser(gomock.Any(), int64(3)).
					Return(nil, errors.New("connection refused"))
			},
			wantKind:    apperr.KindInternal,
			wantMessage: "Internal server error",
		},
		{
			name:        "when role is outside the allowed set",
			header:      "Bearer good",
			requirement: authz.Roles(authtoken.RoleAdmin, authtoken.RoleSuperAdmin),
			setupMock:   func() { s.expectUser("good", authtoken.RoleUser) },
			wantKind:    apperr.KindAccessDenied,
			wantMessage: "Access denied. Required role: user",
		},
		{
			name:        "when role is below the minimum",
			header:      "Bearer good",
			requirement: authz.MinRole(authtoken.RoleManager),
			setupMock:   func() { s.expectUser("good", authtoken.RoleUser) },
			wantKind:    apperr.KindAccessDenied,
			wantMessage: "Access denied. Required role: user",
		},
		{
			name:        "when capability is not granted",
			header:      "Bearer good",
			requirement: authz.Capability(authtoken.CanDeleteProjects),
			setupMock:   func() { s.expectUser("good", authtoken.RoleAdmin) },
			wantKind:    apperr.KindAccessDenied,
			wantMessage: "Access denied. Required role: admin",
		},
		{
			name:        "when role is in the allowed set",
			header:      "Bearer good",
			requirement: authz.Roles(authtoken.RoleAdmin, authtoken.RoleSuperAdmin),
			setupMock:   func() { s.expectUser("good", authtoken.RoleSuperAdmin) },
			wantOK:      true,
		},
		{
			name:        "when role ranks above the minimum",
			header:      "Bearer good",
			requirement: authz.MinRole(authtoken.RoleManager),
			setupMock:   func() { s.expectUser("good", authtoken.RoleAdmin) },
			wantOK:      true,
		},
		{
			name:        "when capability is granted",
			header:      "Bearer good",
			requirement: authz.Capability(authtoken.CanDeleteProjects),
			setupMock:   func() { s.expectUser("good", authtoken.RoleSuperAdmin) },
			wantOK:      true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()
			c := s.newContext(tt.header)

			err := s.middleware.Authorize(c, *tt.requirement)

			if tt.wantOK {
				s.Require().NoError(err)

				caller, ok := authz.UserFromEcho(c)
				s.Require().True(ok)
				s.Equal(int64(3), caller.ID)

				fromCtx, ok := authz.UserFromContext(c.Request().Context())
				s.Require().True(ok)
				s.Equal(caller, fromCtx)
				return
			}

			appErr, ok := apperr.As(err)
			s.Require().True(ok)
			s.Equal(tt.wantKind, appErr.Kind)
			s.Equal(tt.wantMessage, appErr.Message)

			_, attached := authz.UserFromEcho(c)
			s.False(attached)
		})
	}
}

func (s *AuthzPublicTestSuite) TestUserFromContextWhenAbsent() {
	_, ok := authz.UserFromContext(context.Background())
	s.False(ok)

	u := &authz.AuthenticatedUser{ID: 1}
	got, ok := authz.UserFromContext(authz.WithUser(context.Background(), u))
	s.True(ok)
	s.Same(u, got)
}

func TestAuthzPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthzPublicTestSuite))
}
