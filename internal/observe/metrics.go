// Package observe provides application-wide observability primitives for
// linecoach: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all linecoach metrics.
const meterName = "github.com/offstage/linecoach"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// CheckDuration tracks end-to-end line accuracy check latency.
	CheckDuration metric.Float64Histogram

	// LineAccuracy tracks the accuracy percentage of finished line attempts.
	LineAccuracy metric.Float64Histogram

	// LineChecks counts finished line attempts. Use with attribute:
	//   attribute.String("verdict", "pass"|"fail")
	LineChecks metric.Int64Counter

	// TranscriptUpdates counts transcript revisions fed into sessions. Use
	// with attribute:
	//   attribute.String("kind", "partial"|"final")
	TranscriptUpdates metric.Int64Counter

	// ActiveSessions tracks the number of live practice sessions.
	ActiveSessions metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("route", ...),
	//   attribute.Int("status", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// checkBuckets defines histogram bucket boundaries (in seconds) sized for
// per-utterance matching work, which is far below typical request latencies.
var checkBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// accuracyBuckets covers the 0–100 accuracy percentage range.
var accuracyBuckets = []float64{
	0, 10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 95, 100,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CheckDuration, err = m.Float64Histogram("linecoach.check.duration",
		metric.WithDescription("Latency of a single line accuracy check."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(checkBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LineAccuracy, err = m.Float64Histogram("linecoach.line.accuracy",
		metric.WithDescription("Accuracy percentage of finished line attempts."),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(accuracyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LineChecks, err = m.Int64Counter("linecoach.line.checks",
		metric.WithDescription("Total finished line attempts by verdict."),
	); err != nil {
		return nil, err
	}
	if met.TranscriptUpdates, err = m.Int64Counter("linecoach.transcript.updates",
		metric.WithDescription("Total transcript revisions by kind."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("linecoach.active_sessions",
		metric.WithDescription("Number of live practice sessions."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("linecoach.http.request.duration",
		metric.WithDescription("HTTP request latency by method and route."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordLineCheck records one finished line attempt: the verdict counter and
// the accuracy histogram.
func (m *Metrics) RecordLineCheck(ctx context.Context, pass bool, accuracy int) {
	verdict := "fail"
	if pass {
		verdict = "pass"
	}
	m.LineChecks.Add(ctx, 1,
		metric.WithAttributes(attribute.String("verdict", verdict)),
	)
	m.LineAccuracy.Record(ctx, float64(accuracy))
}

// RecordTranscriptUpdate records one transcript revision by kind
// ("partial" or "final").
func (m *Metrics) RecordTranscriptUpdate(ctx context.Context, kind string) {
	m.TranscriptUpdates.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}
