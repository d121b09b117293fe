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
	"github.com/spf13/cobra"

	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/messaging"
)

// natsCmd represents the nats command.
var natsCmd = &cobra.Command{
	Use:   "nats",
	Short: "Run the embedded NATS server",
}

// natsStartCmd represents the natsStart command.
var natsStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the embedded NATS server",
	Long: `Start an embedded NATS server with JetStream enabled, for running the
nats store backend without a separate NATS deployment. Buckets are created
by "serve" on first connect.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		srv, err := newEmbeddedNATS()
		if err != nil {
			cli.LogFatal(logger, "failed to create nats server", err)
		}

		var ns cli.Lifecycle = srv
		cli.RunServer(ctx, ns)
	},
}

func newEmbeddedNATS() (*messaging.Server, error) {
	serverCfg := appConfig.Store.NATS.Server

	return messaging.NewServer(logger.With("component", "nats"), messaging.ServerOptions{
		Host:     serverCfg.Host,
		Port:     serverCfg.Port,
		StoreDir: serverCfg.StoreDir,
	})
}

func init() {
	rootCmd.AddCommand(natsCmd)
	natsCmd.AddCommand(natsStartCmd)
}
