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

package project

import (
	"context"
	"errors"
	"log/slog"

	"github.com/retr0h/taskboard/internal/apperr"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/store"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	projects Repository,
	members MemberRepository,
	users UserFinder,
) *Handler {
	return &Handler{
		logger:   logger,
		projects: projects,
		members:  members,
		users:    users,
	}
}

// CanView reports whether caller may see p: owners and members always,
// everyone else only with canViewAllProjects.
func CanView(
	caller *authz.AuthenticatedUser,
	p *Project,
	isMember bool,
) bool {
	return p.OwnerID == caller.ID ||
		isMember ||
		authtoken.HasPermission(caller.Role, authtoken.CanViewAllProjects)
}

// FindVisible loads a project the caller may see. Projects hidden from the
// caller are reported as not found.
func FindVisible(
	ctx context.Context,
	projects Repository,
	members MemberRepository,
	caller *authz.AuthenticatedUser,
	id int64,
) (*Project, error) {
	p, err := projects.Find(ctx, id)
	if err != nil {
		return nil, toAppError(err)
	}
	if CanView(caller, p, false) {
		return p, nil
	}

	if _, err := FindMembership(ctx, members, p.ID, caller.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Project")
		}
		return nil, apperr.Internal(err)
	}

	return p, nil
}

// FindMembership returns the membership of userID in projectID, or
// store.ErrNotFound.
func FindMembership(
	ctx context.Context,
	members MemberRepository,
	projectID int64,
	userID int64,
) (*Member, error) {
	found, err := members.List(ctx, func(m *Member) bool {
		return m.ProjectID == projectID && m.UserID == userID
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, store.ErrNotFound
	}

	return found[0], nil
}

// MemberProjectIDs returns the IDs of the projects userID is a member of.
func MemberProjectIDs(
	ctx context.Context,
	members MemberRepository,
	userID int64,
) (map[int64]bool, error) {
	found, err := members.List(ctx, func(m *Member) bool {
		return m.UserID == userID
	})
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]bool, len(found))
	for _, m := range found {
		ids[m.ProjectID] = true
	}

	return ids, nil
}

func toAppError(
	err error,
) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("Project")
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict("Project was modified concurrently")
	default:
		return apperr.Internal(err)
	}
}
