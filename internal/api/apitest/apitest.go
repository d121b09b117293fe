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

// Package apitest builds echo contexts for handler tests.
package apitest

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/controller"
)

// Request describes a handler invocation.
type Request struct {
	Method string
	Path   string
	Body   string
	// Params are bound as echo path parameters in order.
	Params map[string]string
	// User is attached as the authenticated caller when non-nil.
	User *authz.AuthenticatedUser
}

// Envelope mirrors controller.Envelope with a raw data payload.
type Envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
}

// NewContext returns an echo context for r and its response recorder.
func NewContext(
	r Request,
) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(r.Method, r.Path, strings.NewReader(r.Body))
	if r.Body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if len(r.Params) > 0 {
		names := make([]string, 0, len(r.Params))
		values := make([]string, 0, len(r.Params))
		for k, v := range r.Params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if r.User != nil {
		c.Set(authz.ContextKeyUser, r.User)
		c.SetRequest(req.WithContext(authz.WithUser(req.Context(), r.User)))
	}

	return c, rec
}

// Serve runs h for r and writes a returned error the way the router does.
func Serve(
	h echo.HandlerFunc,
	r Request,
) *httptest.ResponseRecorder {
	c, rec := NewContext(r)
	if err := h(c); err != nil {
		_ = controller.Fail(c, err)
	}

	return rec
}

// Decode parses the response envelope, failing t on malformed JSON.
func Decode(
	t *testing.T,
	rec *httptest.ResponseRecorder,
) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v: %s", err, rec.Body.String())
	}

	return env
}

// DecodeData unmarshals the envelope's data field into v.
func DecodeData(
	t *testing.T,
	env Envelope,
	v any,
) {
	t.Helper()

	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v: %s", err, string(env.Data))
	}
}
