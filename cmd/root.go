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

// Package cmd implements the taskboard command line.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/config"
	"github.com/retr0h/taskboard/internal/telemetry"
)

var (
	appConfig  config.Config
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "A project management API.",
	Long: `A project management API for users, projects, tasks and pages,
guarded by role and capability based authorization.

https://github.com/retr0h/taskboard
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.Version = versionInfo().GitVersion

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("taskboard-file", "f", "/etc/taskboard/taskboard.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("taskboardFile", rootCmd.PersistentFlags().Lookup("taskboard-file"))
}

func setDefaults() {
	viper.SetDefault("api.server.port", 8080)
	viper.SetDefault("api.server.read_timeout", 15*time.Second)
	viper.SetDefault("api.server.write_timeout", 15*time.Second)
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.nats.host", "localhost")
	viper.SetDefault("store.nats.port", 4222)
	viper.SetDefault("store.nats.client_name", "taskboard-api")
	viper.SetDefault("store.nats.users_bucket", "taskboard-users")
	viper.SetDefault("store.nats.resources_bucket", "taskboard-resources")
	viper.SetDefault("store.nats.server.embedded", false)
	viper.SetDefault("store.nats.server.host", "0.0.0.0")
	viper.SetDefault("store.nats.server.port", 4222)
	viper.SetDefault("store.nats.server.store_dir", "/var/lib/taskboard/jetstream")
	viper.SetDefault("audit.backend", "memory")
	viper.SetDefault("audit.bucket", "taskboard-audit")
	viper.SetDefault("audit.ttl", "720h")
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("taskboard")
	viper.SetConfigFile(viper.GetString("taskboardFile"))
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		cli.LogFatal(logger, "failed to read config", err, "taskboardFile", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "taskboardFile", viper.ConfigFileUsed())
	}

	// Debug mode turns on tracing without an exporter so log lines carry trace_id.
	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}

	if err := config.Validate(&appConfig); err != nil {
		cli.LogFatal(logger, "validation failed", err, "taskboardFile", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}
