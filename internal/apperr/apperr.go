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

// Package apperr defines the error taxonomy surfaced at the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status mapping.
type Kind int

// Error kinds returned by the dispatch pipeline and handlers.
const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindInvalidToken
	KindUserNotFound
	KindInvalidCredentials
	KindAccessDenied
	KindRouteNotFound
	KindNotFound
	KindValidation
	KindConflict
	KindMethodNotAllowed
	KindForbidden
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindUnauthenticated:    "unauthenticated",
	KindInvalidToken:       "invalid_token",
	KindUserNotFound:       "user_not_found",
	KindInvalidCredentials: "invalid_credentials",
	KindAccessDenied:       "access_denied",
	KindRouteNotFound:      "route_not_found",
	KindNotFound:           "not_found",
	KindValidation:         "validation",
	KindConflict:           "conflict",
	KindMethodNotAllowed:   "method_not_allowed",
	KindForbidden:          "forbidden",
}

var kindStatus = map[Kind]int{
	KindInternal:           http.StatusInternalServerError,
	KindUnauthenticated:    http.StatusUnauthorized,
	KindInvalidToken:       http.StatusUnauthorized,
	KindUserNotFound:       http.StatusUnauthorized,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindAccessDenied:       http.StatusForbidden,
	KindRouteNotFound:      http.StatusNotFound,
	KindNotFound:           http.StatusNotFound,
	KindValidation:         http.StatusBadRequest,
	KindConflict:           http.StatusConflict,
	KindMethodNotAllowed:   http.StatusMethodNotAllowed,
	KindForbidden:          http.StatusForbidden,
}

// String returns the machine-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindInternal]
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// IsAuth reports whether the kind is produced by the authorization
// middleware. Those failures are reported in the envelope's error field.
func (k Kind) IsAuth() bool {
	switch k {
	case KindUnauthenticated, KindInvalidToken, KindUserNotFound, KindAccessDenied:
		return true
	default:
		return false
	}
}

// Error is a typed failure whose Message is safe to show to callers.
// Cause carries diagnostics for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error returns the message with the cause appended, for logs.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// New creates an Error of the given kind.
func New(
	kind Kind,
	message string,
) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind carrying cause.
func Wrap(
	kind Kind,
	message string,
	cause error,
) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// As extracts an *Error from err's chain.
func As(
	err error,
) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not typed.
func KindOf(
	err error,
) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}

	return KindInternal
}

// Unauthenticated is returned when no bearer token was presented.
func Unauthenticated() *Error {
	return New(KindUnauthenticated, "Authentication token required")
}

// InvalidToken is returned when the bearer token fails verification.
func InvalidToken(
	cause error,
) *Error {
	return Wrap(KindInvalidToken, "Invalid authentication token", cause)
}

// UserNotFound is returned when a valid token names a missing user.
func UserNotFound() *Error {
	return New(KindUserNotFound, "User not found")
}

// InvalidCredentials is returned by login for any email/password mismatch.
func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "Invalid credentials")
}

// AccessDenied is returned when the caller's role does not satisfy a route.
func AccessDenied(
	role string,
) *Error {
	return New(KindAccessDenied, "Access denied. Required role: "+role)
}

// RouteNotFound is returned when no route matches method and path.
func RouteNotFound() *Error {
	return New(KindRouteNotFound, "Route not found")
}

// NotFound is returned when a named resource does not exist.
func NotFound(
	resource string,
) *Error {
	return New(KindNotFound, resource+" not found")
}

// Validation is returned for missing or malformed input.
func Validation(
	message string,
) *Error {
	return New(KindValidation, message)
}

// Conflict is returned when input collides with existing state.
func Conflict(
	message string,
) *Error {
	return New(KindConflict, message)
}

// MethodNotAllowed is returned by handlers that check methods themselves.
func MethodNotAllowed(
	method string,
) *Error {
	return New(KindMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

// Forbidden is returned by handlers that refuse an authorized caller, for
// example when editing another author's page.
func Forbidden(
	message string,
) *Error {
	return New(KindForbidden, message)
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(
	cause error,
) *Error {
	return Wrap(KindInternal, "Internal server error", cause)
}
