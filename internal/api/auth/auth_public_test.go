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

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/retr0h/taskboard/internal/api/apitest"
	authapi "github.com/retr0h/taskboard/internal/api/auth"
	"github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/user"
)

type AuthPublicTestSuite struct {
	suite.Suite

	ctx      context.Context
	users    *user.MemoryStore
	identity *auth.Service
	handler  *authapi.Auth
}

func (s *AuthPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = user.NewMemoryStore()
	s.identity = auth.New(
		slog.Default(),
		s.users,
		authtoken.New(slog.Default()),
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.Options{SigningKey: "handler-test-key"},
	)
	s.handler = authapi.New(slog.Default(), s.identity)
}

func (s *AuthPublicTestSuite) register(
	email string,
) *user.User {
	result, err := s.identity.Register(s.ctx, auth.RegisterInput{
		Name:     "Jane",
		Email:    email,
		Password: "secret123",
	})
	s.Require().NoError(err)

	return result.User
}

func (s *AuthPublicTestSuite) TestRegister() {
	s.register("taken@example.com")

	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantMsg    string
		wantResult bool
	}{
		{
			name:       "when valid creates account",
			body:       `{"name":"Joe","email":"joe@example.com","password":"secret123"}`,
			wantCode:   http.StatusCreated,
			wantMsg:    "User registered successfully",
			wantResult: true,
		},
		{
			name:     "when email already registered",
			body:     `{"name":"Joe","email":"taken@example.com","password":"secret123"}`,
			wantCode: http.StatusConflict,
			wantMsg:  "User already exists",
		},
		{
			name:     "when password too short",
			body:     `{"name":"Joe","email":"short@example.com","password":"abc"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when body is malformed",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.Register, apitest.Request{
				Method: http.MethodPost,
				Path:   "/api/auth/register",
				Body:   tt.body,
			})

			s.Equal(tt.wantCode, rec.Code)
			env := apitest.Decode(s.T(), rec)
			if tt.wantMsg != "" {
				s.Equal(tt.wantMsg, env.Message)
			}
			if tt.wantResult {
				var result auth.Result
				apitest.DecodeData(s.T(), env, &result)
				s.NotEmpty(result.Token)
				s.Equal(authtoken.RoleUser, result.User.Role)
				s.NotContains(string(env.Data), "password")
			}
		})
	}
}

func (s *AuthPublicTestSuite) TestLogin() {
	s.register("jane@example.com")

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "when credentials match",
			body:     `{"email":"jane@example.com","password":"secret123"}`,
			wantCode: http.StatusOK,
			wantMsg:  "Login successful",
		},
		{
			name:     "when password is wrong",
			body:     `{"email":"jane@example.com","password":"nope"}`,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid credentials",
		},
		{
			name:     "when email is unknown",
			body:     `{"email":"ghost@example.com","password":"secret123"}`,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid credentials",
		},
		{
			name:     "when fields are missing",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.Login, apitest.Request{
				Method: http.MethodPost,
				Path:   "/api/auth/login",
				Body:   tt.body,
			})

			s.Equal(tt.wantCode, rec.Code)
			env := apitest.Decode(s.T(), rec)
			if tt.wantMsg != "" {
				s.Equal(tt.wantMsg, env.Message)
			}
		})
	}
}

func (s *AuthPublicTestSuite) TestLogout() {
	rec := apitest.Serve(s.handler.Logout, apitest.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	})

	s.Equal(http.StatusOK, rec.Code)
	env := apitest.Decode(s.T(), rec)
	s.True(env.IsSuccess)
	s.Equal("Logout successful", env.Message)
}

func (s *AuthPublicTestSuite) TestGetUser() {
	tests := []struct {
		name     string
		caller   *authz.AuthenticatedUser
		wantCode int
	}{
		{
			name: "when caller attached returns it",
			caller: &authz.AuthenticatedUser{
				ID:    1,
				Email: "root@example.com",
				Role:  authtoken.RoleSuperAdmin,
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "when no caller attached",
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.GetUser, apitest.Request{
				Method: http.MethodGet,
				Path:   "/api/auth/user",
				User:   tt.caller,
			})

			s.Equal(tt.wantCode, rec.Code)
			if tt.caller != nil {
				s.Contains(rec.Body.String(), tt.caller.Email)
			}
		})
	}
}

func (s *AuthPublicTestSuite) TestProfile() {
	u := s.register("jane@example.com")
	caller := &authz.AuthenticatedUser{ID: u.ID, Email: u.Email, Role: u.Role}

	rec := apitest.Serve(s.handler.GetProfile, apitest.Request{
		Method: http.MethodGet,
		Path:   "/api/auth/profile",
		User:   caller,
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"name":"Jane"`)

	rec = apitest.Serve(s.handler.UpdateProfile, apitest.Request{
		Method: http.MethodPatch,
		Path:   "/api/auth/profile",
		Body:   `{"name":"Janet"}`,
		User:   caller,
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Profile updated successfully", apitest.Decode(s.T(), rec).Message)

	stored, err := s.users.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Janet", stored.Name)
}

func (s *AuthPublicTestSuite) TestProfileWhenUserDeleted() {
	rec := apitest.Serve(s.handler.GetProfile, apitest.Request{
		Method: http.MethodGet,
		Path:   "/api/auth/profile",
		User:   &authz.AuthenticatedUser{ID: 404},
	})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("User not found", apitest.Decode(s.T(), rec).Message)
}

func (s *AuthPublicTestSuite) TestValidateMethod() {
	rec := apitest.Serve(s.handler.Login, apitest.Request{
		Method: http.MethodGet,
		Path:   "/api/auth/login",
	})

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal("Method GET not allowed", apitest.Decode(s.T(), rec).Message)
}

func TestAuthPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthPublicTestSuite))
}
