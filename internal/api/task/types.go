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

// Package task provides the task API handlers.
package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/store"
	"github.com/retr0h/taskboard/internal/user"
)

// Status is a task's workflow state.
type Status string

// Task statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Priority orders tasks by urgency.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task is a unit of work inside a project.
type Task struct {
	store.Model

	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	ProjectID   int64      `json:"project_id"`
	AssignedTo  *int64     `json:"assigned_to"`
	CreatedBy   int64      `json:"created_by"`
	DueDate     *time.Time `json:"due_date"`
}

// NewRecord returns an empty Task for repository decoding.
func NewRecord() *Task {
	return &Task{}
}

// Repository stores tasks.
type Repository = store.Repository[*Task]

// UserFinder looks up assignees.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// CreateInput is the body accepted by Create.
type CreateInput struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description"`
	ProjectID   int64      `json:"project_id"  validate:"required,gt=0"`
	Status      Status     `json:"status"      validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    Priority   `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *int64     `json:"assigned_to" validate:"omitempty,gt=0"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateInput holds the optional fields of an update.
type UpdateInput struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Status      *Status    `json:"status"      validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    *Priority  `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
}

// AssignInput is the body accepted by Assign.
type AssignInput struct {
	AssignedTo int64 `json:"assignedTo" validate:"required,gt=0"`
}

// DeleteResponse is returned by Delete.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Handler implements the task handlers.
type Handler struct {
	logger   *slog.Logger
	tasks    Repository
	projects project.Repository
	members  project.MemberRepository
	users    UserFinder
}
