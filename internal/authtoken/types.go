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

// Package authtoken signs and verifies bearer tokens and holds the static
// role hierarchy and capability table.
package authtoken

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is the "iss" claim stamped on every token.
const Issuer = "taskboard"

// Token signs and validates JWTs.
type Token struct {
	logger *slog.Logger
}

// CustomClaims are the claims embedded in a bearer token.
type CustomClaims struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Email  string `json:"email"   validate:"required,email"`
	jwt.RegisteredClaims
}
