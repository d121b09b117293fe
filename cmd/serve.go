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
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/taskboard/internal/api"
	auditapi "github.com/retr0h/taskboard/internal/api/audit"
	authapi "github.com/retr0h/taskboard/internal/api/auth"
	"github.com/retr0h/taskboard/internal/api/health"
	"github.com/retr0h/taskboard/internal/api/page"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/api/task"
	userapi "github.com/retr0h/taskboard/internal/api/user"
	"github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/router"
	"github.com/retr0h/taskboard/internal/telemetry"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the API server on the configured port. Stores are selected by
store.backend; the process runs until interrupted.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(ctx, versionInfo().GitVersion, appConfig.Telemetry.Tracing)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracing", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(appConfig.Telemetry.Metrics)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize metrics", err)
		}

		recorder, err := telemetry.NewDispatchRecorder(nil)
		if err != nil {
			cli.LogFatal(logger, "failed to create dispatch metrics", err)
		}

		var servers cli.Group
		if appConfig.Store.Backend == "nats" && appConfig.Store.NATS.Server.Embedded {
			ns, err := newEmbeddedNATS()
			if err != nil {
				cli.LogFatal(logger, "failed to create nats server", err)
			}
			ns.Start()
			servers = append(servers, ns)
		}

		b, err := openBackend(ctx, logger, appConfig)
		if err != nil {
			cli.LogFatal(logger, "failed to open store", err, "backend", appConfig.Store.Backend)
		}

		identity := newIdentity(b)
		handlers := newHandlers(b, identity)

		r, err := api.NewRouter(logger, identity, handlers, router.WithRecorder(recorder))
		if err != nil {
			cli.LogFatal(logger, "failed to build router", err)
		}

		var opts []api.Option
		if b.audit != nil {
			opts = append(opts, api.WithAuditStore(b.audit))
		}

		server := api.New(appConfig, logger, opts...)
		servers = append(servers, server)
		server.Mount(r)
		server.RegisterProbes(handlers.Health)
		server.RegisterMetrics(metricsHandler, metricsPath)

		logger.Info(
			"configured api",
			slog.String("store", appConfig.Store.Backend),
			slog.Bool("audit", b.audit != nil),
			slog.Int("routes", len(r.Routes())),
		)

		cli.RunServer(ctx, servers, b.Close, func() {
			shutdown(logger, "meter", shutdownMeter)
			shutdown(logger, "tracer", shutdownTracer)
		})
	},
}

func newIdentity(
	b *backend,
) *auth.Service {
	security := appConfig.API.Server.Security

	return auth.New(
		logger,
		b.users,
		authtoken.New(logger),
		auth.NewBcryptHasher(security.BcryptCost),
		auth.Options{
			SigningKey: security.SigningKey,
			TokenTTL:   security.TokenTTL,
		},
	)
}

func newHandlers(
	b *backend,
	identity *auth.Service,
) api.Handlers {
	checker := &health.ComponentChecker{Checks: b.checks}

	h := api.Handlers{
		Auth:     authapi.New(logger, identity),
		Users:    userapi.New(logger, b.users),
		Projects: project.New(logger, b.projects, b.members, b.users),
		Tasks:    task.New(logger, b.tasks, b.projects, b.members, b.users),
		Pages:    page.New(logger, b.pages),
		Health:   health.New(logger, checker, time.Now(), versionInfo().GitVersion),
	}
	if b.audit != nil {
		h.Audit = auditapi.New(logger, b.audit)
	}

	return h
}

func shutdown(
	log *slog.Logger,
	name string,
	fn telemetry.ShutdownFunc,
) {
	ctx, cancel := context.WithTimeout(context.Background(), cli.DefaultShutdownTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		log.Warn(
			"telemetry shutdown failed",
			slog.String("provider", name),
			slog.String("error", err.Error()),
		)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
