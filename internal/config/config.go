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

package config

import (
	"fmt"

	masker "github.com/ggwhite/go-masker/v2"

	"github.com/retr0h/taskboard/internal/validation"
)

// Validate checks the struct tags of cfg.
func Validate(
	cfg *Config,
) error {
	if errMsg, ok := validation.Struct(cfg); !ok {
		return fmt.Errorf("invalid config: %s", errMsg)
	}

	if cfg.Store.Backend == "postgres" && cfg.Store.Postgres.DSN == "" {
		return fmt.Errorf("invalid config: store.postgres.dsn is required for the postgres backend")
	}

	if cfg.Audit.Enabled && cfg.Audit.Backend == "nats" && cfg.Store.Backend != "nats" {
		return fmt.Errorf("invalid config: audit.backend nats requires store.backend nats")
	}

	return nil
}

// Masked returns a copy of cfg with secrets masked, for display.
func Masked(
	cfg Config,
) (*Config, error) {
	out, err := masker.NewMaskerMarshaler().Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("mask config: %w", err)
	}

	masked, ok := out.(*Config)
	if !ok {
		return nil, fmt.Errorf("mask config: unexpected type %T", out)
	}

	return masked, nil
}
