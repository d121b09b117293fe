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

// Package auth implements the identity provider: it issues and verifies
// bearer tokens, resolves their subjects to user records, and handles
// credential login and registration.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/user"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// DefaultTokenTTL is the lifetime of issued tokens.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenManager signs and validates bearer tokens.
type TokenManager interface {
	Generate(signingKey string, userID int64, email string, ttl time.Duration) (string, error)
	Validate(tokenString string, signingKey string) (*authtoken.CustomClaims, error)
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash.
	Verify(password string, hash string) error
}

// Options configure the Service.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Service is the identity provider.
type Service struct {
	logger *slog.Logger
	users  user.Store
	tokens TokenManager
	hasher Hasher
	opts   Options
}

// Result is returned by Login and Register.
type Result struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the payload accepted by Login.
type LoginInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput holds the optional fields of a profile update.
type ProfileInput struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// ValidationError reports rejected input.
type ValidationError struct {
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string { return e.Message }
