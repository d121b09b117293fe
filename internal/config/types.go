// Copyright (c) 2024 John Dewey

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

// Package config defines the taskboard configuration file schema.
package config

import "time"

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API       API       `mapstructure:"api"       mask:"struct"`
	Store     Store     `mapstructure:"store"     mask:"struct"`
	Audit     Audit     `mapstructure:"audit"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// API configuration settings.
type API struct {
	Server Server `mapstructure:"server" mask:"struct"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	// ReadTimeout bounds reading an entire request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// Security contains security-related configuration for the server, such as CORS and tokens.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
	// TokenTTL is the lifetime of issued tokens. Defaults to 7 days.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// BcryptCost is the password hashing work factor. Defaults to 12.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// Store selects and configures the persistence backend.
type Store struct {
	// Backend is one of "memory", "nats" or "postgres".
	Backend  string   `mapstructure:"backend"  validate:"required,oneof=memory nats postgres"`
	NATS     NATS     `mapstructure:"nats"`
	Postgres Postgres `mapstructure:"postgres" mask:"struct"`
}

// NATS connection and bucket settings for the nats backend.
type NATS struct {
	// Host the NATS server hostname.
	Host string `mapstructure:"host"`
	// Port the NATS server port.
	Port int `mapstructure:"port"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Namespace is a prefix for all bucket names.
	Namespace string `mapstructure:"namespace"`
	// UsersBucket is the KV bucket holding accounts.
	UsersBucket string `mapstructure:"users_bucket"`
	// ResourcesBucket is the KV bucket holding projects, tasks and pages.
	ResourcesBucket string `mapstructure:"resources_bucket"`
	// Storage is "file" or "memory".
	Storage string `mapstructure:"storage" validate:"omitempty,oneof=file memory"`
	// Auth holds client-side authentication configuration.
	Auth NATSAuth `mapstructure:"auth,omitempty"`
	// Server configures the embedded server started by "nats start".
	Server NATSServer `mapstructure:"server"`
}

// NATSServer settings for the embedded JetStream server.
type NATSServer struct {
	// Embedded starts the server inside "serve" when the store backend is nats.
	Embedded bool `mapstructure:"embedded"`
	// Host the address to listen on.
	Host string `mapstructure:"host"`
	// Port the client port to listen on.
	Port int `mapstructure:"port"      validate:"omitempty,min=1,max=65535"`
	// StoreDir is the JetStream storage directory.
	StoreDir string `mapstructure:"store_dir"`
}

// NATSAuth holds client-side authentication settings for connecting to NATS.
type NATSAuth struct {
	// Type is the auth method: "none", "user_pass", or "nkey".
	Type string `mapstructure:"type" validate:"omitempty,oneof=none user_pass nkey"`
	// Username for user_pass auth.
	Username string `mapstructure:"username"`
	// Password for user_pass auth.
	Password string `mapstructure:"password"  mask:"password"`
	// NKeyFile path to the NKey seed file for nkey auth.
	NKeyFile string `mapstructure:"nkey_file"`
}

// Postgres settings for the postgres backend. Only accounts are stored in
// Postgres; projects, tasks and pages stay in memory.
type Postgres struct {
	// DSN is a lib/pq connection string.
	DSN string `mapstructure:"dsn" mask:"password"`
}

// Audit configures request auditing.
type Audit struct {
	// Enabled turns on the audit middleware.
	Enabled bool `mapstructure:"enabled"`
	// Backend is "memory" or "nats".
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=memory nats"`
	// Bucket is the KV bucket name for audit entries.
	Bucket string `mapstructure:"bucket"`
	// TTL is the bucket's entry lifetime, e.g. "720h".
	TTL string `mapstructure:"ttl"`
}
