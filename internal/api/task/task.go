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

package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/store"
	"github.com/retr0h/taskboard/internal/user"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	tasks Repository,
	projects project.Repository,
	members project.MemberRepository,
	users UserFinder,
) *Handler {
	return &Handler{
		logger:   logger,
		tasks:    tasks,
		projects: projects,
		members:  members,
		users:    users,
	}
}

// findVisible loads a task the caller created, is assigned to, or whose
// project the caller may see.
func (h *Handler) findVisible(
	ctx context.Context,
	caller *authz.AuthenticatedUser,
	id int64,
) (*Task, error) {
	t, err := h.tasks.Find(ctx, id)
	if err != nil {
		return nil, toAppError(err)
	}

	if t.CreatedBy == caller.ID || (t.AssignedTo != nil && *t.AssignedTo == caller.ID) {
		return t, nil
	}

	if _, err := project.FindVisible(ctx, h.projects, h.members, caller, t.ProjectID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Task")
		}
		return nil, err
	}

	return t, nil
}

// ensureAssignee checks that id names an existing user.
func (h *Handler) ensureAssignee(
	ctx context.Context,
	id int64,
) error {
	if _, err := h.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperr.Validation("Assigned user does not exist")
		}
		return apperr.Internal(err)
	}

	return nil
}

func toAppError(
	err error,
) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("Task")
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict("Task was modified concurrently")
	default:
		return apperr.Internal(err)
	}
}
