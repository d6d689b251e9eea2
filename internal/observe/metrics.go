// Package observe provides the observability primitives for Sunbeam:
// OpenTelemetry metrics, tracing, trace-aware logging, and HTTP middleware for
// the optional metrics endpoint.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported in
// Prometheus format via [InitProvider]. A package-level default [Metrics]
// instance ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with their own [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Sunbeam metrics.
const meterName = "github.com/krfshft/PoeHud-Sunbeam"

// Metrics holds the metric instruments of the alert engine. All fields are
// safe for concurrent use.
type Metrics struct {
	// --- Counters ---

	// ItemsEvaluated counts classified items. Use with attribute:
	//   attribute.Bool("worthy", ...)
	ItemsEvaluated metric.Int64Counter

	// AlertsCreated counts alerts added to the tracker. Use with attribute:
	//   attribute.String("rarity", ...)
	AlertsCreated metric.Int64Counter

	// SoundsPlayed counts alert sounds triggered.
	SoundsPlayed metric.Int64Counter

	// LabelRebuilds counts full ground-label cache rebuilds.
	LabelRebuilds metric.Int64Counter

	// --- Gauges ---

	// ActiveAlerts tracks the number of alerts currently tracked.
	ActiveAlerts metric.Int64UpDownCounter

	// --- Histograms ---

	// FrameDuration tracks the time spent rendering one overlay frame.
	FrameDuration metric.Float64Histogram

	// FrameAlerts tracks how many alerts were drawn per frame.
	FrameAlerts metric.Int64Histogram

	// HTTPRequestDuration tracks metrics-endpoint request time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// frameBuckets are histogram bucket boundaries (in seconds) sized for work
// that must fit inside a display frame.
var frameBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.1,
}

// countBuckets are bucket boundaries for the number of alerts on screen.
var countBuckets = []float64{0, 1, 2, 4, 8, 16, 32, 64}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Counters.
	if met.ItemsEvaluated, err = m.Int64Counter("sunbeam.items.evaluated",
		metric.WithDescription("Total dropped items classified, by outcome."),
	); err != nil {
		return nil, err
	}
	if met.AlertsCreated, err = m.Int64Counter("sunbeam.alerts.created",
		metric.WithDescription("Total alerts created, by item rarity."),
	); err != nil {
		return nil, err
	}
	if met.SoundsPlayed, err = m.Int64Counter("sunbeam.sounds.played",
		metric.WithDescription("Total alert sounds played."),
	); err != nil {
		return nil, err
	}
	if met.LabelRebuilds, err = m.Int64Counter("sunbeam.labels.rebuilds",
		metric.WithDescription("Total full rebuilds of the ground-label cache."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveAlerts, err = m.Int64UpDownCounter("sunbeam.alerts.active",
		metric.WithDescription("Number of alerts currently tracked."),
	); err != nil {
		return nil, err
	}

	// Histograms.
	if met.FrameDuration, err = m.Float64Histogram("sunbeam.frame.duration",
		metric.WithDescription("Time spent rendering one overlay frame."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(frameBuckets...),
	); err != nil {
		return nil, err
	}
	if met.FrameAlerts, err = m.Int64Histogram("sunbeam.frame.alerts",
		metric.WithDescription("Alerts drawn per overlay frame."),
		metric.WithExplicitBucketBoundaries(countBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("sunbeam.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
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
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails (should not happen with the global provider).
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

// RecordEvaluation records one classified item.
func (m *Metrics) RecordEvaluation(ctx context.Context, worthy bool) {
	m.ItemsEvaluated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("worthy", worthy)))
}

// RecordAlertCreated records a new alert and raises the active-alert gauge.
func (m *Metrics) RecordAlertCreated(ctx context.Context, rarity string) {
	m.AlertsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("rarity", rarity)))
	m.ActiveAlerts.Add(ctx, 1)
}

// RecordAlertRemoved lowers the active-alert gauge.
func (m *Metrics) RecordAlertRemoved(ctx context.Context) {
	m.ActiveAlerts.Add(ctx, -1)
}

// RecordFrame records the duration and drawn-alert count of one frame.
func (m *Metrics) RecordFrame(ctx context.Context, seconds float64, alerts int) {
	m.FrameDuration.Record(ctx, seconds)
	m.FrameAlerts.Record(ctx, int64(alerts))
}
