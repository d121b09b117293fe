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
	"fmt"
	"regexp"
	"strings"
)

// segmentPattern matches a dynamic segment such as [id].
var segmentPattern = regexp.MustCompile(`\[([^\[\]/]+)\]`)

// compilePattern turns "/api/pages/[id]" into ^/api/pages/([^/]+)$, quoting
// every literal part, and returns the segment names in order.
func compilePattern(
	pattern string,
) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("pattern %q must start with /", pattern)
	}

	var (
		b      strings.Builder
		params []string
		last   int
	)

	b.WriteString("^")
	for _, loc := range segmentPattern.FindAllStringSubmatchIndex(pattern, -1) {
		if err := writeLiteral(&b, pattern, pattern[last:loc[0]]); err != nil {
			return nil, nil, err
		}
		b.WriteString(`([^/]+)`)
		params = append(params, pattern[loc[2]:loc[3]])
		last = loc[1]
	}
	if err := writeLiteral(&b, pattern, pattern[last:]); err != nil {
		return nil, nil, err
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	return re, params, nil
}

func writeLiteral(
	b *strings.Builder,
	pattern string,
	literal string,
) error {
	if strings.ContainsAny(literal, "[]") {
		return fmt.Errorf("pattern %q has an unbalanced segment", pattern)
	}
	b.WriteString(regexp.QuoteMeta(literal))

	return nil
}
