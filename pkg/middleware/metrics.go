package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/assethelper/pkg/assets"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "assethelper").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for stat duration.
	// Default: buckets from 100µs to about 1.6s.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "assethelper",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records resolver activity. It implements assets.Observer.
type Metrics struct {
	resolved     *prometheus.CounterVec
	statDuration *prometheus.HistogramVec
}

// NewMetrics registers the asset metrics. Registering twice on the same
// registry panics, so create one Metrics per registry and share it.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		resolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "assets_resolved_total",
			Help:        "Total number of asset references resolved",
			ConstLabels: config.ConstLabels,
		}, []string{"category", "outcome", "sharded"}),

		statDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "assets_stat_duration_seconds",
			Help:        "Time spent reading asset modification times",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"found"}),
	}
}

// ObserveResolve implements assets.Observer.
func (m *Metrics) ObserveResolve(c assets.Category, outcome assets.Outcome, sharded bool) {
	m.resolved.WithLabelValues(c.String(), string(outcome), strconv.FormatBool(sharded)).Inc()
}

// Stater wraps next so each lookup is timed.
func (m *Metrics) Stater(next assets.Stater) assets.Stater {
	return assets.StaterFunc(func(ctx context.Context, path string) (time.Time, bool) {
		start := time.Now()
		mod, ok := next.ModTime(ctx, path)
		m.statDuration.WithLabelValues(strconv.FormatBool(ok)).Observe(time.Since(start).Seconds())
		return mod, ok
	})
}
