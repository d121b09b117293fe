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

package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retr0h/taskboard/internal/api"
	auditapi "github.com/retr0h/taskboard/internal/api/audit"
	authapi "github.com/retr0h/taskboard/internal/api/auth"
	"github.com/retr0h/taskboard/internal/api/health"
	"github.com/retr0h/taskboard/internal/api/page"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/api/task"
	userapi "github.com/retr0h/taskboard/internal/api/user"
	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/router"
)

// routesCmd represents the routes command.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Inspect the API route table",
}

// routesListCmd represents the routesList command.
var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every route in match order",
	Long: `List every route in the order the router tries them, with the
authorization requirement each one enforces. Only the first of two routes
sharing a method and matching pattern is reachable.
`,
	Run: func(_ *cobra.Command, _ []string) {
		r := router.New(logger, nil)
		if err := r.Register(api.Routes(routeListing())...); err != nil {
			cli.LogFatal(logger, "failed to compile routes", err)
		}

		cli.PrintCompactTable(os.Stdout, []cli.Section{routeSection(r.Routes())})
	},
}

// routeListing returns handlers that are never invoked; only the route
// metadata is read.
func routeListing() api.Handlers {
	return api.Handlers{
		Auth:     &authapi.Auth{},
		Users:    &userapi.User{},
		Projects: &project.Handler{},
		Tasks:    &task.Handler{},
		Pages:    &page.Handler{},
		Audit:    &auditapi.Audit{},
		Health:   &health.Health{},
	}
}

func routeSection(
	routes []router.Route,
) cli.Section {
	rows := make([][]string, 0, len(routes))
	for _, route := range routes {
		requirement := "public"
		if route.Auth != nil {
			requirement = route.Auth.String()
		}

		rows = append(rows, []string{
			route.Method,
			route.Pattern,
			route.Name,
			requirement,
			strings.Join(route.Params(), ","),
		})
	}

	logger.Debug("listed routes", slog.Int("count", len(rows)))

	return cli.Section{
		Title:   "Routes",
		Headers: []string{"method", "pattern", "name", "auth", "params"},
		Rows:    rows,
	}
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesListCmd)
}
