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

// Package page provides the CMS page API handlers.
package page

import (
	"log/slog"

	"github.com/retr0h/taskboard/internal/store"
)

// Status is a page's publication state.
type Status string

// Page statuses.
const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
	StatusPrivate Status = "private"
	StatusTrash   Status = "trash"
)

// Page is a piece of site content addressed by ID or slug.
type Page struct {
	store.Model

	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt,omitempty"`
	Status   Status `json:"status"`
}

// NewRecord returns an empty Page for repository decoding.
func NewRecord() *Page {
	return &Page{}
}

// Repository stores pages.
type Repository = store.Repository[*Page]

// CreateInput is the body accepted by Create.
type CreateInput struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Slug    string `json:"slug"    validate:"omitempty,max=255"`
	Excerpt string `json:"excerpt"`
	Status  Status `json:"status"  validate:"omitempty,oneof=publish draft private"`
}

// UpdateInput holds the optional fields of an update.
type UpdateInput struct {
	Title   *string `json:"title"   validate:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
	Slug    *string `json:"slug"    validate:"omitempty,max=255"`
	Excerpt *string `json:"excerpt"`
	Status  *Status `json:"status"  validate:"omitempty,oneof=publish draft private trash"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListResponse is returned by List.
type ListResponse struct {
	Pages      []*Page    `json:"pages"`
	Pagination Pagination `json:"pagination"`
}

// Handler implements the /api/pages handlers.
type Handler struct {
	logger *slog.Logger
	pages  Repository
}
