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

package authtoken_test

import (
	"encoding/base64"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/authtoken"
)

type AuthTokenPublicTestSuite struct {
	suite.Suite

	token      *authtoken.Token
	signingKey string
}

func (s *AuthTokenPublicTestSuite) SetupTest() {
	s.token = authtoken.New(slog.Default())
	s.signingKey = "test-signing-key-for-jwt-operations"
}

func (s *AuthTokenPublicTestSuite) TestNew() {
	t := authtoken.New(slog.Default())
	s.NotNil(t)
}

func (s *AuthTokenPublicTestSuite) TestGenerate() {
	tokenString, err := s.token.Generate(s.signingKey, 42, "ada@example.com", time.Hour)

	s.NoError(err)
	s.NotEmpty(tokenString)
}

func (s *AuthTokenPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		tokenFunc   func() string
		signingKey  string
		expectError bool
		errContains string
		validate    func(*authtoken.CustomClaims)
	}{
		{
			name: "valid token",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, 42, "ada@example.com", time.Hour)
				return t
			},
			signingKey:  s.signingKey,
			expectError: false,
			validate: func(claims *authtoken.CustomClaims) {
				s.Equal(int64(42), claims.UserID)
				s.Equal("ada@example.com", claims.Email)
				s.Equal("42", claims.Subject)
				s.Equal(authtoken.Issuer, claims.Issuer)
			},
		},
		{
			name: "expired token",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, 42, "ada@example.com", -time.Minute)
				return t
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "expired",
		},
		{
			name: "wrong signing key",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, 42, "ada@example.com", time.Hour)
				return t
			},
			signingKey:  "wrong-key",
			expectError: true,
			errContains: "signature is invalid",
		},
		{
			name: "malformed token",
			tokenFunc: func() string {
				return "not-a-valid-jwt-token"
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "invalid number of segments",
		},
		{
			name: "empty token",
			tokenFunc: func() string {
				return ""
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "invalid number of segments",
		},
		{
			name: "unexpected signing method",
			tokenFunc: func() string {
				header := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"alg":"none","typ":"JWT"}`),
				)
				payload := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"user_id":1,"email":"a@example.com"}`),
				)
				return header + "." + payload + "."
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "signing method none is invalid",
		},
		{
			name: "claims fail struct validation",
			tokenFunc: func() string {
				claims := authtoken.CustomClaims{
					UserID: 0,
					Email:  "not-an-email",
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    authtoken.Issuer,
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
				t, _ := token.SignedString([]byte(s.signingKey))
				return t
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "UserID",
		},
		{
			name: "foreign issuer",
			tokenFunc: func() string {
				claims := authtoken.CustomClaims{
					UserID: 7,
					Email:  "eve@example.com",
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "someone-else",
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
				t, _ := token.SignedString([]byte(s.signingKey))
				return t
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "unexpected issuer",
		},
		{
			name: "token without expiry",
			tokenFunc: func() string {
				claims := authtoken.CustomClaims{
					UserID: 7,
					Email:  "eve@example.com",
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:   authtoken.Issuer,
						IssuedAt: jwt.NewNumericDate(time.Now()),
					},
				}
				t, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.signingKey))
				return t
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: "no expiry",
		},
		{
			name: "subject names another user",
			tokenFunc: func() string {
				claims := authtoken.CustomClaims{
					UserID: 7,
					Email:  "eve@example.com",
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    authtoken.Issuer,
						Subject:   "8",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				t, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.signingKey))
				return t
			},
			signingKey:  s.signingKey,
			expectError: true,
			errContains: `subject "8" does not match user 7`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tokenString := tt.tokenFunc()

			claims, err := s.token.Validate(tokenString, tt.signingKey)

			if tt.expectError {
				s.Error(err)
				s.Nil(claims)
				if tt.errContains != "" {
					s.Contains(err.Error(), tt.errContains)
				}
			} else {
				s.NoError(err)
				s.NotNil(claims)
				if tt.validate != nil {
					tt.validate(claims)
				}
			}
		})
	}
}

func (s *AuthTokenPublicTestSuite) TestGenerateAndValidateRoundTrip() {
	tests := []struct {
		name   string
		userID int64
		email  string
		ttl    time.Duration
	}{
		{
			name:   "one hour token",
			userID: 1,
			email:  "root@example.com",
			ttl:    time.Hour,
		},
		{
			name:   "seven day token",
			userID: 1001,
			email:  "pm@example.com",
			ttl:    7 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tokenString, err := s.token.Generate(s.signingKey, tt.userID, tt.email, tt.ttl)
			s.NoError(err)
			s.NotEmpty(tokenString)

			claims, err := s.token.Validate(tokenString, s.signingKey)
			s.NoError(err)
			s.NotNil(claims)
			s.Equal(tt.userID, claims.UserID)
			s.Equal(tt.email, claims.Email)
			s.WithinDuration(time.Now().Add(tt.ttl), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func (s *AuthTokenPublicTestSuite) TestValidateExpiredIsTyped() {
	tokenString, err := s.token.Generate(s.signingKey, 42, "ada@example.com", -time.Minute)
	s.Require().NoError(err)

	_, err = s.token.Validate(tokenString, s.signingKey)

	s.ErrorIs(err, authtoken.ErrTokenExpired)
}

func TestAuthTokenPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTokenPublicTestSuite))
}
