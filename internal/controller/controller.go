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

// Package controller holds the response envelope and input helpers shared
// by every API handler.
package controller

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/validation"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	IsSuccess bool   `json:"isSuccess"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Success writes a successful envelope.
func Success(
	c echo.Context,
	status int,
	data any,
	message string,
) error {
	return c.JSON(status, Envelope{
		IsSuccess: true,
		Data:      data,
		Message:   message,
	})
}

// OK writes a 200 envelope.
func OK(
	c echo.Context,
	data any,
	message string,
) error {
	return Success(c, http.StatusOK, data, message)
}

// Created writes a 201 envelope.
func Created(
	c echo.Context,
	data any,
	message string,
) error {
	return Success(c, http.StatusCreated, data, message)
}

// Fail writes the failure envelope for err. Authorization failures use the
// error field, everything else the message field. Untyped errors become a
// generic 500 and never leak their text.
func Fail(
	c echo.Context,
	err error,
) error {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(err)
	}

	body := Envelope{IsSuccess: false}
	if appErr.Kind.IsAuth() {
		body.Error = appErr.Message
	} else {
		body.Message = appErr.Message
	}

	return c.JSON(appErr.Status(), body)
}

// Bind decodes the JSON body into T and validates it.
func Bind[T any](
	c echo.Context,
) (T, error) {
	var in T
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return in, apperr.Validation("Invalid request body")
		}
		return in, apperr.Validation(err.Error())
	}

	if errMsg, ok := validation.Struct(in); !ok {
		return in, apperr.Validation(errMsg)
	}

	return in, nil
}

// Param returns the named path parameter, falling back to the query string.
func Param(
	c echo.Context,
	name string,
) string {
	if v := c.Param(name); v != "" {
		return v
	}

	return c.QueryParam(name)
}

// ParamInt64 returns Param parsed as a positive integer.
func ParamInt64(
	c echo.Context,
	name string,
) (int64, error) {
	raw := Param(c, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + name)
	}

	return id, nil
}

// Query returns a query string value.
func Query(
	c echo.Context,
	name string,
) string {
	return c.QueryParam(name)
}

// ValidateMethod rejects requests whose method is not in allowed.
func ValidateMethod(
	c echo.Context,
	allowed ...string,
) error {
	method := c.Request().Method
	if slices.ContainsFunc(allowed, func(m string) bool { return strings.EqualFold(m, method) }) {
		return nil
	}

	return apperr.MethodNotAllowed(method)
}

// CurrentUser returns the caller attached by the authorization step.
func CurrentUser(
	c echo.Context,
) (*authz.AuthenticatedUser, error) {
	u, ok := authz.UserFromEcho(c)
	if !ok {
		return nil, apperr.Unauthenticated()
	}

	return u, nil
}
