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

package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/retr0h/taskboard/internal/config"
)

// Swapped in tests to simulate exporter failures.
var prometheusNewFn = prometheus.New

// DefaultMetricsPath is the default HTTP path for the Prometheus scrape endpoint.
const DefaultMetricsPath = "/metrics"

// InitMeter installs a global meter provider backed by a Prometheus
// exporter. It returns the scrape handler, the resolved path and a shutdown
// function.
func InitMeter(
	cfg config.MetricsConfig,
) (http.Handler, string, ShutdownFunc, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultMetricsPath
	}

	exporter, err := prometheusNewFn()
	if err != nil {
		return nil, "", nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	return promhttp.Handler(), path, mp.Shutdown, nil
}

// DispatchRecorder counts routed requests and records their latency.
type DispatchRecorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewDispatchRecorder creates the instruments on meter. A nil meter uses
// the global provider.
func NewDispatchRecorder(
	meter metric.Meter,
) (*DispatchRecorder, error) {
	if meter == nil {
		meter = otel.Meter(ServiceName)
	}

	requests, err := meter.Int64Counter(
		"taskboard.api.requests",
		metric.WithDescription("Requests dispatched by the API router."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"taskboard.api.request.duration",
		metric.WithDescription("Routed request latency."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &DispatchRecorder{
		requests: requests,
		duration: duration,
	}, nil
}

// RecordDispatch records one completed request. route is the matched
// pattern, never the raw path, to keep label cardinality bounded.
func (r *DispatchRecorder) RecordDispatch(
	route string,
	method string,
	status int,
	elapsed time.Duration,
) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	)

	r.requests.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}
