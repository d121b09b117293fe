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

// Package project provides the project API handlers.
package project

import (
	"context"
	"log/slog"

	"github.com/retr0h/taskboard/internal/store"
	"github.com/retr0h/taskboard/internal/user"
)

// Status is a project's lifecycle state.
type Status string

// Project statuses.
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Project groups tasks under an owner.
type Project struct {
	store.Model

	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	OwnerID     int64  `json:"owner_id"`
}

// NewRecord returns an empty Project for repository decoding.
func NewRecord() *Project {
	return &Project{}
}

// Repository stores projects.
type Repository = store.Repository[*Project]

// MemberRole is a user's role inside one project.
type MemberRole string

// Member roles.
const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
	MemberRoleViewer MemberRole = "viewer"
)

// Member grants a user visibility of a project they do not own. A user holds
// at most one membership per project.
type Member struct {
	store.Model

	ProjectID int64      `json:"project_id"`
	UserID    int64      `json:"user_id"`
	Role      MemberRole `json:"role"`
}

// NewMemberRecord returns an empty Member for repository decoding.
func NewMemberRecord() *Member {
	return &Member{}
}

// MemberRepository stores project memberships.
type MemberRepository = store.Repository[*Member]

// UserFinder looks up the users added as members.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// CreateInput is the body accepted by Create.
type CreateInput struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
	Status      Status `json:"status"      validate:"omitempty,oneof=active completed archived"`
}

// UpdateInput holds the optional fields of an update.
type UpdateInput struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *Status `json:"status"      validate:"omitempty,oneof=active completed archived"`
}

// AddMemberInput is the body accepted by AddMember.
type AddMemberInput struct {
	UserID int64      `json:"user_id" validate:"required,gt=0"`
	Role   MemberRole `json:"role"    validate:"omitempty,oneof=owner admin member viewer"`
}

// MemberDetails is a membership joined with the member's name and email.
type MemberDetails struct {
	*Member

	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// RemoveMemberResponse is returned by RemoveMember.
type RemoveMemberResponse struct {
	Removed bool `json:"removed"`
}

// DeleteResponse is returned by Delete.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Handler implements the /api/projects handlers.
type Handler struct {
	logger   *slog.Logger
	projects Repository
	members  MemberRepository
	users    UserFinder
}
