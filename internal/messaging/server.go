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

package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// DefaultReadyTimeout bounds how long Start waits for the embedded server to
// accept connections.
const DefaultReadyTimeout = 10 * time.Second

// ServerOptions configures an embedded JetStream server.
type ServerOptions struct {
	Host     string
	Port     int
	StoreDir string
}

// Server is an embedded NATS server with JetStream enabled.
type Server struct {
	logger *slog.Logger
	srv    *server.Server
	start  sync.Once
}

// NewServer creates an embedded server without starting it.
func NewServer(
	logger *slog.Logger,
	opts ServerOptions,
) (*Server, error) {
	srv, err := server.NewServer(&server.Options{
		ServerName: "taskboard",
		Host:       opts.Host,
		Port:       opts.Port,
		JetStream:  true,
		StoreDir:   opts.StoreDir,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	return &Server{
		logger: logger,
		srv:    srv,
	}, nil
}

// Start runs the server in the background. Calls after the first are no-ops.
func (s *Server) Start() {
	s.start.Do(s.run)
}

func (s *Server) run() {
	s.srv.Start()

	if !s.srv.ReadyForConnections(DefaultReadyTimeout) {
		s.logger.Error(
			"nats server not ready",
			slog.Duration("timeout", DefaultReadyTimeout),
		)
		return
	}

	s.logger.Info(
		"nats server started",
		slog.String("url", s.srv.ClientURL()),
		slog.Bool("jetstream", s.srv.JetStreamEnabled()),
	)
}

// Stop shuts the server down, giving up when ctx is done.
func (s *Server) Stop(
	ctx context.Context,
) {
	done := make(chan struct{})
	go func() {
		s.srv.Shutdown()
		s.srv.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("nats server stopped")
	case <-ctx.Done():
		s.logger.Warn(
			"nats server shutdown timed out",
			slog.String("error", ctx.Err().Error()),
		)
	}
}

// ClientURL returns the URL clients connect to.
func (s *Server) ClientURL() string {
	return s.srv.ClientURL()
}
