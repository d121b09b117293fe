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

package router

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PatternTestSuite struct {
	suite.Suite
}

func (s *PatternTestSuite) TestCompilePattern() {
	tests := []struct {
		name       string
		pattern    string
		wantRegex  string
		wantParams []string
		wantErr    string
	}{
		{
			name:      "static path",
			pattern:   "/api/auth/login",
			wantRegex: `^/api/auth/login$`,
		},
		{
			name:       "single segment",
			pattern:    "/api/pages/[id]",
			wantRegex:  `^/api/pages/([^/]+)$`,
			wantParams: []string{"id"},
		},
		{
			name:       "segment followed by literal",
			pattern:    "/api/projects/[id]/tasks",
			wantRegex:  `^/api/projects/([^/]+)/tasks$`,
			wantParams: []string{"id"},
		},
		{
			name:       "multiple segments",
			pattern:    "/api/projects/[projectId]/tasks/[taskId]",
			wantRegex:  `^/api/projects/([^/]+)/tasks/([^/]+)$`,
			wantParams: []string{"projectId", "taskId"},
		},
		{
			name:      "literal metacharacters are quoted",
			pattern:   "/api/v1.0/items+",
			wantRegex: `^/api/v1\.0/items\+$`,
		},
		{
			name:    "relative pattern",
			pattern: "api/pages",
			wantErr: "must start with /",
		},
		{
			name:    "unbalanced bracket",
			pattern: "/api/pages/[id",
			wantErr: "unbalanced segment",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			re, params, err := compilePattern(tt.pattern)

			if tt.wantErr != "" {
				s.ErrorContains(err, tt.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.wantRegex, re.String())
			s.Equal(tt.wantParams, params)
		})
	}
}

func (s *PatternTestSuite) TestCompiledMatcher() {
	re, _, err := compilePattern("/api/pages/[id]")
	s.Require().NoError(err)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "numeric id", path: "/api/pages/42", want: true},
		{name: "slug", path: "/api/pages/about-us", want: true},
		{name: "missing segment", path: "/api/pages", want: false},
		{name: "empty segment", path: "/api/pages/", want: false},
		{name: "extra segment", path: "/api/pages/42/edit", want: false},
		{name: "prefix only", path: "/x/api/pages/42", want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, re.MatchString(tt.path))
		})
	}
}

func TestPatternTestSuite(t *testing.T) {
	suite.Run(t, new(PatternTestSuite))
}
