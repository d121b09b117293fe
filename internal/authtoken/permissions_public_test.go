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

package authtoken_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/taskboard/internal/authtoken"
)

type PermissionsPublicTestSuite struct {
	suite.Suite
}

func (s *PermissionsPublicTestSuite) TestHasPermission() {
	tests := []struct {
		name       string
		role       authtoken.Role
		capability authtoken.Capability
		expected   bool
	}{
		{
			name:       "manager cannot delete projects",
			role:       authtoken.RoleManager,
			capability: authtoken.CanDeleteProjects,
			expected:   false,
		},
		{
			name:       "super admin can delete projects",
			role:       authtoken.RoleSuperAdmin,
			capability: authtoken.CanDeleteProjects,
			expected:   true,
		},
		{
			name:       "admin manages users but cannot delete projects",
			role:       authtoken.RoleAdmin,
			capability: authtoken.CanDeleteProjects,
			expected:   false,
		},
		{
			name:       "admin can manage users",
			role:       authtoken.RoleAdmin,
			capability: authtoken.CanManageUsers,
			expected:   true,
		},
		{
			name:       "admin can delete tasks",
			role:       authtoken.RoleAdmin,
			capability: authtoken.CanDeleteTasks,
			expected:   true,
		},
		{
			name:       "manager cannot delete tasks",
			role:       authtoken.RoleManager,
			capability: authtoken.CanDeleteTasks,
			expected:   false,
		},
		{
			name:       "manager can assign tasks",
			role:       authtoken.RoleManager,
			capability: authtoken.CanAssignTasks,
			expected:   true,
		},
		{
			name:       "user has no capabilities",
			role:       authtoken.RoleUser,
			capability: authtoken.CanManageTasks,
			expected:   false,
		},
		{
			name:       "unknown role has no capabilities",
			role:       authtoken.Role("guest"),
			capability: authtoken.CanManageTasks,
			expected:   false,
		},
		{
			name:       "unknown capability is never granted",
			role:       authtoken.RoleSuperAdmin,
			capability: "canLaunchRockets",
			expected:   false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, authtoken.HasPermission(tt.role, tt.capability))
		})
	}
}

func (s *PermissionsPublicTestSuite) TestCapabilities() {
	tests := []struct {
		name     string
		role     authtoken.Role
		expected []authtoken.Capability
	}{
		{
			name:     "super admin holds every capability",
			role:     authtoken.RoleSuperAdmin,
			expected: authtoken.AllCapabilities,
		},
		{
			name: "manager capabilities",
			role: authtoken.RoleManager,
			expected: []authtoken.Capability{
				authtoken.CanManageProjects,
				authtoken.CanManageTasks,
				authtoken.CanViewAllProjects,
				authtoken.CanAssignTasks,
			},
		},
		{
			name:     "user capabilities",
			role:     authtoken.RoleUser,
			expected: []authtoken.Capability{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, authtoken.Capabilities(tt.role))
		})
	}
}

func TestPermissionsPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionsPublicTestSuite))
}
