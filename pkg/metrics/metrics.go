// Package metrics exports engine pass reports as Prometheus metrics.
//
// Register a Collector's Observe method as an engine observer:
//
//	c := metrics.New(metrics.WithRegistry(reg))
//	e := engine.New(doc, root, engine.WithObserver(c.Observe))
//
// Metrics collected:
//   - weave_passes_total: render passes by status (ok, error)
//   - weave_pass_duration_seconds: pass duration by phase (build, patch, total)
//   - weave_patch_ops_total: host operations applied, by op
//   - weave_pass_errors_total: failed passes by error code
//   - weave_components: registered component instances
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/weave/pkg/engine"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "weave").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "weave",
		// Passes are usually well under a millisecond.
		Buckets:  []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Collector holds the engine metrics.
type Collector struct {
	passes     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	ops        *prometheus.CounterVec
	errors     *prometheus.CounterVec
	components prometheus.Gauge
}

// New creates a Collector and registers its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds by phase",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"phase"}),

		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_ops_total",
			Help:        "Total number of host operations applied",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_errors_total",
			Help:        "Total number of failed render passes by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		components: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components",
			Help:        "Number of registered component instances",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Observe records one pass. It has the engine.Observer signature.
func (c *Collector) Observe(r engine.PassReport) {
	if r.Err != nil {
		c.passes.WithLabelValues("error").Inc()
		c.errors.WithLabelValues(errorCode(r.Err)).Inc()
	} else {
		c.passes.WithLabelValues("ok").Inc()
	}
	c.duration.WithLabelValues("build").Observe(r.Build.Seconds())
	c.duration.WithLabelValues("patch").Observe(r.Patch.Seconds())
	c.duration.WithLabelValues("total").Observe(r.Total.Seconds())
	for op, n := range r.Ops {
		if n > 0 {
			c.ops.WithLabelValues(op.String()).Add(float64(n))
		}
	}
	c.components.Set(float64(r.Components))
}

type coder interface {
	ErrorCode() string
}

// errorCode returns the code of the outermost coded error in err's chain.
func errorCode(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	if code := engine.ErrorCode(err); code != "" {
		return code
	}
	return "unknown"
}
