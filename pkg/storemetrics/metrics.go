// Package storemetrics exports dispatcher activity as Prometheus metrics.
package storemetrics

import (
	"errors"

	"github.com/delaneyj/storeparty/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "store").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for wave duration in seconds.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "store",
		// waves are usually microseconds long
		Buckets:  prometheus.ExponentialBuckets(1e-6, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors for one or more dispatchers.
type Metrics struct {
	waves          prometheus.Counter
	deliveries     prometheus.Counter
	waveDeliveries prometheus.Histogram
	waveDuration   prometheus.Histogram
	computeErrors  *prometheus.CounterVec
}

// New registers the collectors with the configured registry. Registering
// twice against the same registry panics, as promauto does.
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		waves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "waves_total",
			Help:        "Total number of flushed notification waves.",
			ConstLabels: config.ConstLabels,
		}),
		deliveries: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deliveries_total",
			Help:        "Total number of subscriber deliveries.",
			ConstLabels: config.ConstLabels,
		}),
		waveDeliveries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "wave_deliveries",
			Help:        "Deliveries per flushed wave.",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
		waveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "wave_duration_seconds",
			Help:        "Time spent draining a wave.",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		computeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compute_errors_total",
			Help:        "Derivation compute failures by store name.",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),
	}
}

// Hook is installed with store.WithFlushHook.
func (m *Metrics) Hook() store.FlushHook {
	return func(stats store.WaveStats) {
		m.waves.Inc()
		m.deliveries.Add(float64(stats.Deliveries))
		m.waveDeliveries.Observe(float64(stats.Deliveries))
		m.waveDuration.Observe(stats.Duration.Seconds())
	}
}

// ErrorHandler counts compute failures and hands them to next. A nil next
// keeps the dispatcher's default policy of panicking.
func (m *Metrics) ErrorHandler(next store.OnErrorFunc) store.OnErrorFunc {
	return func(err error) {
		name := "unknown"
		var ce *store.ComputeError
		if errors.As(err, &ce) {
			name = ce.Store
		}
		m.computeErrors.WithLabelValues(name).Inc()

		if next == nil {
			panic(err)
		}
		next(err)
	}
}
