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

package task_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/api/apitest"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/api/task"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/store"
	"github.com/retr0h/taskboard/internal/user"
)

type TaskPublicTestSuite struct {
	suite.Suite

	ctx      context.Context
	tasks    *store.MemoryRepository[*task.Task]
	projects *store.MemoryRepository[*project.Project]
	members  *store.MemoryRepository[*project.Member]
	users    *user.MemoryStore
	handler  *task.Handler

	manager  *authz.AuthenticatedUser
	member   *authz.AuthenticatedUser
	teammate *authz.AuthenticatedUser
	stranger *authz.AuthenticatedUser
	project  *project.Project
}

func (s *TaskPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tasks = store.NewMemoryRepository(task.NewRecord)
	s.projects = store.NewMemoryRepository(project.NewRecord)
	s.members = store.NewMemoryRepository(project.NewMemberRecord)
	s.users = user.NewMemoryStore()
	s.handler = task.New(slog.Default(), s.tasks, s.projects, s.members, s.users)

	s.manager = s.account("manager@example.com", authtoken.RoleManager)
	s.member = s.account("member@example.com", authtoken.RoleUser)
	s.teammate = s.account("teammate@example.com", authtoken.RoleUser)
	s.stranger = s.account("stranger@example.com", authtoken.RoleUser)

	s.project = &project.Project{Name: "Launch", OwnerID: s.manager.ID, Status: project.StatusActive}
	s.Require().NoError(s.projects.Create(s.ctx, s.project))
	s.Require().NoError(s.members.Create(s.ctx, &project.Member{
		ProjectID: s.project.ID,
		UserID:    s.teammate.ID,
		Role:      project.MemberRoleViewer,
	}))
}

func (s *TaskPublicTestSuite) account(
	email string,
	role authtoken.Role,
) *authz.AuthenticatedUser {
	u := &user.User{Name: email, Email: email, Role: role}
	s.Require().NoError(s.users.Create(s.ctx, u))

	return &authz.AuthenticatedUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (s *TaskPublicTestSuite) seed(
	title string,
	status task.Status,
	assignee *int64,
) *task.Task {
	t := &task.Task{
		Title:      title,
		Status:     status,
		Priority:   task.PriorityMedium,
		ProjectID:  s.project.ID,
		CreatedBy:  s.manager.ID,
		AssignedTo: assignee,
	}
	s.Require().NoError(s.tasks.Create(s.ctx, t))

	return t
}

func (s *TaskPublicTestSuite) TestCreate() {
	tests := []struct {
		name         string
		body         string
		wantCode     int
		wantMsg      string
		wantPriority task.Priority
	}{
		{
			name:         "when minimal body applies defaults",
			body:         fmt.Sprintf(`{"title":"Write docs","project_id":%d}`, s.project.ID),
			wantCode:     http.StatusCreated,
			wantPriority: task.PriorityMedium,
		},
		{
			name: "when assignee exists",
			body: fmt.Sprintf(
				`{"title":"Ship","project_id":%d,"priority":"urgent","assigned_to":%d}`,
				s.project.ID,
				s.member.ID,
			),
			wantCode:     http.StatusCreated,
			wantPriority: task.PriorityUrgent,
		},
		{
			name:     "when assignee is unknown",
			body:     fmt.Sprintf(`{"title":"Ship","project_id":%d,"assigned_to":999}`, s.project.ID),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Assigned user does not exist",
		},
		{
			name:     "when project is missing",
			body:     `{"title":"Ship","project_id":999}`,
			wantCode: http.StatusNotFound,
			wantMsg:  "Project not found",
		},
		{
			name:     "when title is missing",
			body:     fmt.Sprintf(`{"project_id":%d}`, s.project.ID),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when priority is unknown",
			body:     fmt.Sprintf(`{"title":"Ship","project_id":%d,"priority":"asap"}`, s.project.ID),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.Create, apitest.Request{
				Method: http.MethodPost,
				Path:   "/api/tasks",
				Body:   tt.body,
				User:   s.manager,
			})

			s.Equal(tt.wantCode, rec.Code)
			env := apitest.Decode(s.T(), rec)
			if tt.wantMsg != "" {
				s.Equal(tt.wantMsg, env.Message)
			}
			if tt.wantCode == http.StatusCreated {
				var got task.Task
				apitest.DecodeData(s.T(), env, &got)
				s.Equal(task.StatusPending, got.Status)
				s.Equal(tt.wantPriority, got.Priority)
				s.Equal(s.manager.ID, got.CreatedBy)
			}
		})
	}
}

func (s *TaskPublicTestSuite) TestGetVisibility() {
	assignee := s.member.ID
	assigned := s.seed("assigned", task.StatusPending, &assignee)
	unassigned := s.seed("unassigned", task.StatusPending, nil)

	tests := []struct {
		name     string
		taskID   int64
		caller   *authz.AuthenticatedUser
		wantCode int
	}{
		{
			name:     "when caller is the assignee",
			taskID:   assigned.ID,
			caller:   s.member,
			wantCode: http.StatusOK,
		},
		{
			name:     "when caller can view all projects",
			taskID:   unassigned.ID,
			caller:   s.manager,
			wantCode: http.StatusOK,
		},
		{
			name:     "when caller is a project member",
			taskID:   unassigned.ID,
			caller:   s.teammate,
			wantCode: http.StatusOK,
		},
		{
			name:     "when caller has no relation to the task",
			taskID:   unassigned.ID,
			caller:   s.stranger,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "when task is missing",
			taskID:   999,
			caller:   s.manager,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			id := strconv.FormatInt(tt.taskID, 10)
			rec := apitest.Serve(s.handler.Get, apitest.Request{
				Method: http.MethodGet,
				Path:   "/api/tasks/" + id,
				Params: map[string]string{"id": id},
				User:   tt.caller,
			})

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNotFound {
				s.Equal("Task not found", apitest.Decode(s.T(), rec).Message)
			}
		})
	}
}

func (s *TaskPublicTestSuite) TestListByProject() {
	s.seed("one", task.StatusPending, nil)
	s.seed("two", task.StatusCompleted, nil)
	other := &project.Project{Name: "Other", OwnerID: s.manager.ID}
	s.Require().NoError(s.projects.Create(s.ctx, other))
	s.Require().NoError(s.tasks.Create(s.ctx, &task.Task{Title: "elsewhere", ProjectID: other.ID}))

	tests := []struct {
		name      string
		query     string
		caller    *authz.AuthenticatedUser
		wantCode  int
		wantTitle []string
	}{
		{
			name:      "when listing all tasks of the project",
			caller:    s.manager,
			wantCode:  http.StatusOK,
			wantTitle: []string{"one", "two"},
		},
		{
			name:      "when filtered by status",
			query:     "?status=completed",
			caller:    s.manager,
			wantCode:  http.StatusOK,
			wantTitle: []string{"two"},
		},
		{
			name:      "when caller is a project member",
			caller:    s.teammate,
			wantCode:  http.StatusOK,
			wantTitle: []string{"one", "two"},
		},
		{
			name:     "when project is hidden from the caller",
			caller:   s.stranger,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			id := strconv.FormatInt(s.project.ID, 10)
			rec := apitest.Serve(s.handler.ListByProject, apitest.Request{
				Method: http.MethodGet,
				Path:   "/api/projects/" + id + "/tasks" + tt.query,
				Params: map[string]string{"id": id},
				User:   tt.caller,
			})

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var got []task.Task
			apitest.DecodeData(s.T(), apitest.Decode(s.T(), rec), &got)
			titles := make([]string, 0, len(got))
			for _, t := range got {
				titles = append(titles, t.Title)
			}
			s.Equal(tt.wantTitle, titles)
		})
	}
}

func (s *TaskPublicTestSuite) TestListMine() {
	assignee := s.member.ID
	s.seed("assigned pending", task.StatusPending, &assignee)
	s.seed("assigned done", task.StatusCompleted, &assignee)
	s.seed("unassigned", task.StatusPending, nil)
	s.Require().NoError(s.tasks.Create(s.ctx, &task.Task{
		Title:     "own",
		Status:    task.StatusPending,
		ProjectID: s.project.ID,
		CreatedBy: s.member.ID,
	}))

	tests := []struct {
		name      string
		query     string
		caller    *authz.AuthenticatedUser
		wantTitle []string
	}{
		{
			name:      "when caller has assigned and created tasks",
			caller:    s.member,
			wantTitle: []string{"assigned pending", "assigned done", "own"},
		},
		{
			name:      "when filtered by status",
			query:     "?status=pending",
			caller:    s.member,
			wantTitle: []string{"assigned pending", "own"},
		},
		{
			name:      "when caller created every seeded task",
			caller:    s.manager,
			wantTitle: []string{"assigned pending", "assigned done", "unassigned"},
		},
		{
			name:      "when caller has no tasks",
			caller:    s.stranger,
			wantTitle: []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := apitest.Serve(s.handler.ListMine, apitest.Request{
				Method: http.MethodGet,
				Path:   "/api/tasks" + tt.query,
				User:   tt.caller,
			})

			s.Equal(http.StatusOK, rec.Code)
			env := apitest.Decode(s.T(), rec)
			s.Equal("User tasks retrieved successfully", env.Message)
			var got []task.Task
			apitest.DecodeData(s.T(), env, &got)
			titles := make([]string, 0, len(got))
			for _, t := range got {
				titles = append(titles, t.Title)
			}
			s.Equal(tt.wantTitle, titles)
		})
	}
}

func (s *TaskPublicTestSuite) TestUpdateAndAssign() {
	t := s.seed("draft", task.StatusPending, nil)
	id := strconv.FormatInt(t.ID, 10)

	rec := apitest.Serve(s.handler.Update, apitest.Request{
		Method: http.MethodPatch,
		Path:   "/api/tasks/" + id,
		Body:   `{"status":"in_progress","priority":"high"}`,
		Params: map[string]string{"id": id},
		User:   s.manager,
	})
	s.Equal(http.StatusOK, rec.Code)

	rec = apitest.Serve(s.handler.Assign, apitest.Request{
		Method: http.MethodPut,
		Path:   "/api/tasks/" + id + "/assign",
		Body:   fmt.Sprintf(`{"assignedTo":%d}`, s.member.ID),
		Params: map[string]string{"id": id},
		User:   s.manager,
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Task assigned successfully", apitest.Decode(s.T(), rec).Message)

	stored, err := s.tasks.Find(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(task.StatusInProgress, stored.Status)
	s.Equal(task.PriorityHigh, stored.Priority)
	s.Require().NotNil(stored.AssignedTo)
	s.Equal(s.member.ID, *stored.AssignedTo)
}

func (s *TaskPublicTestSuite) TestAssignRejectsUnknownUser() {
	t := s.seed("draft", task.StatusPending, nil)
	id := strconv.FormatInt(t.ID, 10)

	rec := apitest.Serve(s.handler.Assign, apitest.Request{
		Method: http.MethodPut,
		Path:   "/api/tasks/" + id + "/assign",
		Body:   `{"assignedTo":999}`,
		Params: map[string]string{"id": id},
		User:   s.manager,
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TaskPublicTestSuite) TestDelete() {
	t := s.seed("doomed", task.StatusPending, nil)
	id := strconv.FormatInt(t.ID, 10)
	admin := &authz.AuthenticatedUser{ID: 99, Role: authtoken.RoleAdmin}

	rec := apitest.Serve(s.handler.Delete, apitest.Request{
		Method: http.MethodDelete,
		Path:   "/api/tasks/" + id,
		Params: map[string]string{"id": id},
		User:   admin,
	})
	s.Equal(http.StatusOK, rec.Code)

	_, err := s.tasks.Find(s.ctx, t.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func TestTaskPublicTestSuite(t *testing.T) {
	suite.Run(t, new(TaskPublicTestSuite))
}
