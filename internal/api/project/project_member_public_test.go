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

package project_test

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/retr0h/taskboard/internal/api/apitest"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/authz"
)

func (s *ProjectPublicTestSuite) TestAddMember() {
	p := s.seed(s.owner.ID, "mine", project.StatusActive)
	hidden := s.seed(s.stranger.ID, "hidden", project.StatusActive)
	s.join(p, s.manager)

	tests := []struct {
		name      string
		projectID int64
		body      string
		caller    *authz.AuthenticatedUser
		wantCode  int
		wantMsg   string
		wantRole  project.MemberRole
	}{
		{
			name:      "when role omitted defaults to member",
			projectID: p.ID,
			body:      fmt.Sprintf(`{"user_id":%d}`, s.stranger.ID),
			caller:    s.owner,
			wantCode:  http.StatusCreated,
			wantMsg:   "Member added successfully",
			wantRole:  project.MemberRoleMember,
		},
		{
			name:      "when user is already a member",
			projectID: p.ID,
			body:      fmt.Sprintf(`{"user_id":%d,"role":"admin"}`, s.manager.ID),
			caller:    s.owner,
			wantCode:  http.StatusConflict,
			wantMsg:   "User is already a member of this project",
		},
		{
			name:      "when user owns the project",
			projectID: p.ID,
			body:      fmt.Sprintf(`{"user_id":%d}`, s.owner.ID),
			caller:    s.manager,
			wantCode:  http.StatusConflict,
			wantMsg:   "User already owns this project",
		},
		{
			name:      "when user does not exist",
			projectID: p.ID,
			body:      `{"user_id":999}`,
			caller:    s.owner,
			wantCode:  http.StatusBadRequest,
			wantMsg:   "User does not exist",
		},
		{
			name:      "when role is unknown",
			projectID: p.ID,
			body:      fmt.Sprintf(`{"user_id":%d,"role":"guest"}`, s.stranger.ID),
			caller:    s.owner,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "when user id missing",
			projectID: p.ID,
			body:      `{"role":"viewer"}`,
			caller:    s.owner,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "when project is hidden from the caller",
			projectID: hidden.ID,
			body:      fmt.Sprintf(`{"user_id":%d}`, s.owner.ID),
			caller:    s.owner,
			wantCode:  http.StatusNotFound,
			wantMsg:   "Project not found",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			id := strconv.FormatInt(tt.projectID, 10)
			rec := apitest.Serve(s.handler.AddMember, apitest.Request{
				Method: http.MethodPost,
				Path:   "/api/projects/" + id + "/members",
				Body:   tt.body,
				Params: map[string]string{"id": id},
				User:   tt.caller,
			})

			s.Equal(tt.wantCode, rec.Code)
			env := apitest.Decode(s.T(), rec)
			if tt.wantMsg != "" {
				s.Equal(tt.wantMsg, env.Message)
			}
			if tt.wantCode != http.StatusCreated {
				return
			}
			var got project.Member
			apitest.DecodeData(s.T(), env, &got)
			s.Equal(tt.wantRole, got.Role)
			s.Equal(tt.projectID, got.ProjectID)
			s.NotZero(got.ID)
		})
	}
}

func (s *ProjectPublicTestSuite) TestListMembers() {
	p := s.seed(s.owner.ID, "mine", project.StatusActive)
	s.join(p, s.stranger)
	s.join(p, s.manager)
	s.Require().NoError(s.members.Create(s.ctx, &project.Member{
		ProjectID: p.ID,
		UserID:    404,
		Role:      project.MemberRoleViewer,
	}))
	other := s.seed(s.manager.ID, "other", project.StatusActive)

	tests := []struct {
		name       string
		projectID  int64
		caller     *authz.AuthenticatedUser
		wantCode   int
		wantEmails []string
	}{
		{
			name:       "when owner lists members in join order",
			projectID:  p.ID,
			caller:     s.owner,
			wantCode:   http.StatusOK,
			wantEmails: []string{"stranger@example.com", "manager@example.com"},
		},
		{
			name:       "when member lists members",
			projectID:  p.ID,
			caller:     s.stranger,
			wantCode:   http.StatusOK,
			wantEmails: []string{"stranger@example.com", "manager@example.com"},
		},
		{
			name:      "when project is hidden from the caller",
			projectID: other.ID,
			caller:    s.owner,
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			id := strconv.FormatInt(tt.projectID, 10)
			rec := apitest.Serve(s.handler.ListMembers, apitest.Request{
				Method: http.MethodGet,
				Path:   "/api/projects/" + id + "/members",
				Params: map[string]string{"id": id},
				User:   tt.caller,
			})

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			env := apitest.Decode(s.T(), rec)
			s.Equal("Project members retrieved successfully", env.Message)
			var got []project.MemberDetails
			apitest.DecodeData(s.T(), env, &got)
			emails := make([]string, 0, len(got))
			for _, m := range got {
				emails = append(emails, m.UserEmail)
				s.Equal(p.ID, m.ProjectID)
				s.Equal("Name "+m.UserEmail, m.UserName)
			}
			s.Equal(tt.wantEmails, emails)
		})
	}
}

func (s *ProjectPublicTestSuite) TestRemoveMember() {
	p := s.seed(s.owner.ID, "mine", project.StatusActive)
	s.join(p, s.stranger)
	pid := strconv.FormatInt(p.ID, 10)

	tests := []struct {
		name     string
		userID   string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "when user is a member",
			userID:   strconv.FormatInt(s.stranger.ID, 10),
			wantCode: http.StatusOK,
			wantMsg:  "Member removed successfully",
		},
		{
			name:     "when membership was already removed",
			userID:   strconv.FormatInt(s.stranger.ID, 10),
			wantCode: http.StatusNotFound,
			wantMsg:  "Member not found",
		},
		{
			name:     "when user id is invalid",
			userID:   "abc",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.RemoveMember, apitest.Request{
				Method: http.MethodDelete,
				Path:   "/api/projects/" + pid + "/members/" + tt.userID,
				Params: map[string]string{"id": pid, "userId": tt.userID},
				User:   s.owner,
			})

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantMsg != "" {
				s.Equal(tt.wantMsg, apitest.Decode(s.T(), rec).Message)
			}
		})
	}

	rec := apitest.Serve(s.handler.Get, apitest.Request{
		Method: http.MethodGet,
		Path:   "/api/projects/" + pid,
		Params: map[string]string{"id": pid},
		User:   s.stranger,
	})
	s.Equal(http.StatusNotFound, rec.Code)
}
