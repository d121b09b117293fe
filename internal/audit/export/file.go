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

package export

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retr0h/taskboard/internal/audit"
)

var errNotOpened = errors.New("exporter not opened")

// OpenFunc opens the destination of a FileExporter.
type OpenFunc func(path string) (io.WriteCloser, error)

// FileExporter writes audit entries to a file as JSON lines.
type FileExporter struct {
	Path string

	open   OpenFunc
	file   io.WriteCloser
	writer *bufio.Writer
}

// NewFileExporter creates a FileExporter writing to path. A nil open uses os.Create.
func NewFileExporter(
	path string,
	open OpenFunc,
) *FileExporter {
	if open == nil {
		open = func(p string) (io.WriteCloser, error) {
			return os.Create(p)
		}
	}

	return &FileExporter{
		Path: path,
		open: open,
	}
}

// Open creates the output file.
func (e *FileExporter) Open(
	_ context.Context,
) error {
	f, err := e.open(e.Path)
	if err != nil {
		return fmt.Errorf("open export file %s: %w", e.Path, err)
	}

	e.file = f
	e.writer = bufio.NewWriter(f)

	return nil
}

// Write appends entry as a single JSON line.
func (e *FileExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	if e.writer == nil {
		return errNotOpened
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	data = append(data, '\n')
	if _, err := e.writer.Write(data); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}

	return nil
}

// Close flushes buffered lines and closes the file.
func (e *FileExporter) Close(
	_ context.Context,
) error {
	if e.writer == nil {
		return errNotOpened
	}

	if err := e.writer.Flush(); err != nil {
		_ = e.file.Close()
		return fmt.Errorf("flush export file: %w", err)
	}

	return e.file.Close()
}
