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
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	natsclient "github.com/osapi-io/nats-client/pkg/client"

	"github.com/retr0h/taskboard/internal/api/health"
	"github.com/retr0h/taskboard/internal/api/page"
	"github.com/retr0h/taskboard/internal/api/project"
	"github.com/retr0h/taskboard/internal/api/task"
	"github.com/retr0h/taskboard/internal/audit"
	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/config"
	"github.com/retr0h/taskboard/internal/messaging"
	"github.com/retr0h/taskboard/internal/store"
	"github.com/retr0h/taskboard/internal/user"
)

// backend holds the stores selected by the store and audit config.
type backend struct {
	users    user.Store
	projects project.Repository
	members  project.MemberRepository
	tasks    task.Repository
	pages    page.Repository
	audit    audit.Store
	checks   []health.Check
	closeFns []func()
}

// Close releases connections in reverse order of acquisition.
func (b *backend) Close() {
	for i := len(b.closeFns) - 1; i >= 0; i-- {
		b.closeFns[i]()
	}
}

func openBackend(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Config,
) (*backend, error) {
	b := &backend{}

	switch cfg.Store.Backend {
	case "nats":
		if err := b.openNATS(ctx, log, cfg); err != nil {
			b.Close()
			return nil, err
		}
	case "postgres":
		if err := b.openPostgres(ctx, cfg.Store.Postgres); err != nil {
			b.Close()
			return nil, err
		}
		b.openMemoryResources()
	default:
		b.users = user.NewMemoryStore()
		b.openMemoryResources()
	}

	if cfg.Audit.Enabled && b.audit == nil {
		b.audit = audit.NewMemoryStore()
	}

	return b, nil
}

func (b *backend) openMemoryResources() {
	b.projects = store.NewMemoryRepository(project.NewRecord)
	b.members = store.NewMemoryRepository(project.NewMemberRecord)
	b.tasks = store.NewMemoryRepository(task.NewRecord)
	b.pages = store.NewMemoryRepository(page.NewRecord)
}

func (b *backend) openPostgres(
	ctx context.Context,
	cfg config.Postgres,
) error {
	db, err := user.OpenPostgres(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	b.closeFns = append(b.closeFns, func() { _ = db.Close() })

	b.users = user.NewSQLStore(db)
	b.checks = append(b.checks, health.Check{
		Name: "postgres",
		Fn:   postgresCheck(db),
	})

	return nil
}

func postgresCheck(
	db *sql.DB,
) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres unreachable: %w", err)
		}

		return nil
	}
}

func (b *backend) openNATS(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Config,
) error {
	natsCfg := cfg.Store.NATS

	var nc messaging.NATSClient = natsclient.New(log, &natsclient.Options{
		Host: natsCfg.Host,
		Port: natsCfg.Port,
		Auth: cli.BuildNATSAuthOptions(natsCfg.Auth),
		Name: natsCfg.ClientName,
	})
	if err := nc.Connect(); err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	b.closeFns = append(b.closeFns, func() { cli.CloseNATSClient(nc) })

	usersKV, err := nc.CreateOrUpdateKVBucketWithConfig(
		ctx,
		cli.BuildKVConfig(natsCfg, natsCfg.UsersBucket, ""),
	)
	if err != nil {
		return fmt.Errorf("create users bucket: %w", err)
	}

	resourcesKV, err := nc.CreateOrUpdateKVBucketWithConfig(
		ctx,
		cli.BuildKVConfig(natsCfg, natsCfg.ResourcesBucket, ""),
	)
	if err != nil {
		return fmt.Errorf("create resources bucket: %w", err)
	}

	b.users = user.NewKVStore(log, usersKV)
	b.projects = store.NewKVRepository(log, resourcesKV, "projects", project.NewRecord)
	b.members = store.NewKVRepository(log, resourcesKV, "members", project.NewMemberRecord)
	b.tasks = store.NewKVRepository(log, resourcesKV, "tasks", task.NewRecord)
	b.pages = store.NewKVRepository(log, resourcesKV, "pages", page.NewRecord)

	b.checks = append(b.checks,
		health.Check{Name: "nats", Fn: natsCheck(nc)},
		health.Check{Name: "kv", Fn: kvCheck(usersKV, resourcesKV)},
	)

	if cfg.Audit.Enabled && cfg.Audit.Backend == "nats" {
		auditKV, err := nc.CreateOrUpdateKVBucketWithConfig(
			ctx,
			cli.BuildKVConfig(natsCfg, cfg.Audit.Bucket, cfg.Audit.TTL),
		)
		if err != nil {
			return fmt.Errorf("create audit bucket: %w", err)
		}
		b.audit = audit.NewKVStore(log, auditKV)
	}

	return nil
}

func natsCheck(
	nc messaging.NATSClient,
) func(context.Context) error {
	return func(_ context.Context) error {
		natsConn, ok := nc.(*natsclient.Client)
		if !ok || natsConn.NC == nil {
			return fmt.Errorf("nats client unavailable")
		}

		if natsConn.NC.ConnectedUrl() == "" {
			return fmt.Errorf("nats not connected")
		}

		return nil
	}
}

func kvCheck(
	buckets ...jetstream.KeyValue,
) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, kv := range buckets {
			if _, err := kv.Status(ctx); err != nil {
				return fmt.Errorf("kv bucket %s not accessible: %w", kv.Bucket(), err)
			}
		}

		return nil
	}
}
