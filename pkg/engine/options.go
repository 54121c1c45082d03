package engine

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
)

// DefaultMaxChainedPasses is the default limit on consecutive passes that
// run without an intervening task.
const DefaultMaxChainedPasses = 100

// DefaultFetchTimeout bounds a single Fetch.
const DefaultFetchTimeout = 30 * time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimers sets the timer source used by After. Default:
// host.SystemTimers.
func WithTimers(t host.Timers) Option {
	return func(e *Engine) {
		if t != nil {
			e.timers = t
		}
	}
}

// WithFetcher sets the fetcher used by Fetch. Without one, fetch callbacks
// receive ErrNoFetcher.
func WithFetcher(f host.Fetcher) Option {
	return func(e *Engine) {
		e.fetcher = f
	}
}

// WithLocation sets the query-string source for components.
func WithLocation(l host.Location) Option {
	return func(e *Engine) {
		e.location = l
	}
}

// WithObserver registers fn to receive a report after every pass.
func WithObserver(fn Observer) Option {
	return func(e *Engine) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// WithTracer sets the tracer for pass spans. Default: the global
// OpenTelemetry provider's "weave" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMaxChainedPasses sets how many passes may run back to back without a
// task before Tick fails with ErrRenderLoop. Zero or less disables the
// check.
func WithMaxChainedPasses(n int) Option {
	return func(e *Engine) {
		e.maxChained = n
	}
}

// WithFetchTimeout bounds each Fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.fetchTimeout = d
		}
	}
}

// WithRootParams sets the attribute bag the root component is constructed
// with.
func WithRootParams(p component.Params) Option {
	return func(e *Engine) {
		e.rootParams = p
	}
}
