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

package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/authz"
	"github.com/retr0h/taskboard/internal/router"
)

// NewRouter builds the API router with Routes(h) registered, authorizing
// requests through identity.
func NewRouter(
	logger *slog.Logger,
	identity authz.IdentityProvider,
	h Handlers,
	opts ...router.Option,
) (*router.Router, error) {
	r := router.New(logger, authz.New(logger, identity), opts...)
	if err := r.Register(Routes(h)...); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return r, nil
}

// Routes returns the API route table in match order. A nil Auth leaves the
// route public.
func Routes(
	h Handlers,
) []router.Route {
	var (
		authed      = authz.AnyAuthenticated()
		superAdmin  = authz.Roles(authtoken.RoleSuperAdmin)
		manageUsers = authz.Capability(authtoken.CanManageUsers)
		manageProj  = authz.Capability(authtoken.CanManageProjects)
		manageTasks = authz.Capability(authtoken.CanManageTasks)
	)

	routes := []router.Route{
		{Method: http.MethodPost, Pattern: "/api/auth/register", Name: "auth.register", Handler: h.Auth.Register},
		{Method: http.MethodPost, Pattern: "/api/auth/login", Name: "auth.login", Handler: h.Auth.Login},
		{Method: http.MethodPost, Pattern: "/api/auth/logout", Name: "auth.logout", Handler: h.Auth.Logout},
		{Method: http.MethodGet, Pattern: "/api/auth/user", Name: "auth.user", Handler: h.Auth.GetUser, Auth: superAdmin},
		{Method: http.MethodGet, Pattern: "/api/auth/profile", Name: "auth.profile.get", Handler: h.Auth.GetProfile, Auth: authed},
	}
	routes = append(routes, updateRoutes("/api/auth/profile", "auth.profile.update", h.Auth.UpdateProfile, authed)...)

	routes = append(routes,
		router.Route{Method: http.MethodGet, Pattern: "/api/users", Name: "users.list", Handler: h.Users.List, Auth: manageUsers},
		router.Route{Method: http.MethodPut, Pattern: "/api/users/[id]/role", Name: "users.role", Handler: h.Users.UpdateRole, Auth: manageUsers},
		router.Route{Method: http.MethodDelete, Pattern: "/api/users/[id]", Name: "users.delete", Handler: h.Users.Delete, Auth: superAdmin},

		router.Route{Method: http.MethodGet, Pattern: "/api/projects", Name: "projects.list", Handler: h.Projects.List, Auth: authed},
		router.Route{Method: http.MethodPost, Pattern: "/api/projects", Name: "projects.create", Handler: h.Projects.Create, Auth: manageProj},
		router.Route{Method: http.MethodGet, Pattern: "/api/projects/[id]", Name: "projects.get", Handler: h.Projects.Get, Auth: authed},
	)
	routes = append(routes, updateRoutes("/api/projects/[id]", "projects.update", h.Projects.Update, manageProj)...)
	routes = append(routes,
		router.Route{
			Method:  http.MethodDelete,
			Pattern: "/api/projects/[id]",
			Name:    "projects.delete",
			Handler: h.Projects.Delete,
			Auth:    authz.Capability(authtoken.CanDeleteProjects),
		},
		router.Route{Method: http.MethodGet, Pattern: "/api/projects/[id]/tasks", Name: "projects.tasks", Handler: h.Tasks.ListByProject, Auth: authed},
		router.Route{Method: http.MethodGet, Pattern: "/api/projects/[id]/members", Name: "projects.members.list", Handler: h.Projects.ListMembers, Auth: authed},
		router.Route{Method: http.MethodPost, Pattern: "/api/projects/[id]/members", Name: "projects.members.add", Handler: h.Projects.AddMember, Auth: manageProj},
		router.Route{
			Method:  http.MethodDelete,
			Pattern: "/api/projects/[id]/members/[userId]",
			Name:    "projects.members.remove",
			Handler: h.Projects.RemoveMember,
			Auth:    manageProj,
		},

		router.Route{Method: http.MethodGet, Pattern: "/api/tasks", Name: "tasks.mine", Handler: h.Tasks.ListMine, Auth: authed},
		router.Route{Method: http.MethodPost, Pattern: "/api/tasks", Name: "tasks.create", Handler: h.Tasks.Create, Auth: manageTasks},
		router.Route{Method: http.MethodGet, Pattern: "/api/tasks/[id]", Name: "tasks.get", Handler: h.Tasks.Get, Auth: authed},
	)
	routes = append(routes, updateRoutes("/api/tasks/[id]", "tasks.update", h.Tasks.Update, manageTasks)...)
	routes = append(routes,
		router.Route{
			Method:  http.MethodPut,
			Pattern: "/api/tasks/[id]/assign",
			Name:    "tasks.assign",
			Handler: h.Tasks.Assign,
			Auth:    authz.Capability(authtoken.CanAssignTasks),
		},
		router.Route{
			Method:  http.MethodDelete,
			Pattern: "/api/tasks/[id]",
			Name:    "tasks.delete",
			Handler: h.Tasks.Delete,
			Auth:    authz.Capability(authtoken.CanDeleteTasks),
		},

		router.Route{Method: http.MethodGet, Pattern: "/api/pages", Name: "pages.list", Handler: h.Pages.List, Auth: authed},
		router.Route{Method: http.MethodPost, Pattern: "/api/pages", Name: "pages.create", Handler: h.Pages.Create, Auth: authed},
		router.Route{Method: http.MethodGet, Pattern: "/api/pages/[id]", Name: "pages.get", Handler: h.Pages.Get},
	)
	routes = append(routes, updateRoutes("/api/pages/[id]", "pages.update", h.Pages.Update, authed)...)
	routes = append(routes,
		router.Route{Method: http.MethodDelete, Pattern: "/api/pages/[id]", Name: "pages.delete", Handler: h.Pages.Delete, Auth: authed},
		// Shadowed by /api/pages/[id]; Get resolves slugs itself.
		router.Route{Method: http.MethodGet, Pattern: "/api/pages/[slug]", Name: "pages.get.slug", Handler: h.Pages.Get},
	)

	if h.Audit != nil {
		routes = append(routes,
			router.Route{Method: http.MethodGet, Pattern: "/api/audit", Name: "audit.list", Handler: h.Audit.List, Auth: superAdmin},
			router.Route{Method: http.MethodGet, Pattern: "/api/audit/[id]", Name: "audit.get", Handler: h.Audit.Get, Auth: superAdmin},
		)
	}

	if h.Health != nil {
		routes = append(routes, router.Route{
			Method:  http.MethodGet,
			Pattern: "/api/health/status",
			Name:    "health.status",
			Handler: h.Health.GetHealthStatus,
			Auth:    authz.MinRole(authtoken.RoleAdmin),
		})
	}

	return routes
}

// updateRoutes registers handler for both PUT and PATCH.
func updateRoutes(
	pattern string,
	name string,
	handler echo.HandlerFunc,
	auth *authz.Requirement,
) []router.Route {
	return []router.Route{
		{Method: http.MethodPut, Pattern: pattern, Name: name, Handler: handler, Auth: auth},
		{Method: http.MethodPatch, Pattern: pattern, Name: name, Handler: handler, Auth: auth},
	}
}
