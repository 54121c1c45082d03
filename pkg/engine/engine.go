package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
)

// Engine renders a root component into a host document.
//
// Everything except Post, Do and Stop must be called from the run loop:
// the goroutine running Run, or the test calling Tick.
type Engine struct {
	doc        host.Document
	root       *component.Type
	rootParams component.Params

	logger       *slog.Logger
	timers       host.Timers
	fetcher      host.Fetcher
	location     host.Location
	observers    []Observer
	tracer       trace.Tracer
	maxChained   int
	fetchTimeout time.Duration

	reg registry

	// Loop state.
	dirty   bool
	mounted bool
	chained int
	seq     uint64
	last    PassReport

	// Task queue, shared with other goroutines.
	mu    sync.Mutex
	queue []func() error
	wake  chan struct{}

	runOnce  sync.Once
	stopOnce sync.Once
	done     chan struct{}
}

var _ component.Runtime = (*Engine)(nil)

// New creates an engine that will mount root into doc's body on the first
// Tick.
func New(doc host.Document, root *component.Type, opts ...Option) *Engine {
	e := &Engine{
		doc:          doc,
		root:         root,
		logger:       slog.Default(),
		timers:       host.SystemTimers{},
		tracer:       otel.Tracer("weave"),
		maxChained:   DefaultMaxChainedPasses,
		fetchTimeout: DefaultFetchTimeout,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("root", root.Name())
	return e
}

// Document returns the host document.
func (e *Engine) Document() host.Document { return e.doc }

// Logger implements component.Runtime.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Location implements component.Runtime.
func (e *Engine) Location() host.Location { return e.location }

// MarkDirty implements component.Runtime.
func (e *Engine) MarkDirty() { e.dirty = true }

// Dirty reports whether a pass is pending.
func (e *Engine) Dirty() bool { return e.dirty || !e.mounted }

// Passes returns the number of render passes started so far.
func (e *Engine) Passes() uint64 { return e.seq }

// LastReport returns the report of the most recent pass.
func (e *Engine) LastReport() PassReport { return e.last }

// Root returns the root instance, or nil before the first pass.
func (e *Engine) Root() *component.Instance {
	return e.reg.get(component.RootPath(e.root.Name()))
}

// Components returns every registered instance in pre-order.
func (e *Engine) Components() []*component.Instance {
	out := make([]*component.Instance, 0, e.reg.len())
	e.reg.walk(func(in *component.Instance) {
		out = append(out, in)
	})
	return out
}

// Lookup returns the instance registered at path, or nil.
func (e *Engine) Lookup(path component.Path) *component.Instance {
	return e.reg.get(path)
}

// Resolve implements component.Runtime. Instances are created on first use
// and never evicted or replaced.
func (e *Engine) Resolve(path component.Path, t *component.Type, params component.Params) (*component.Instance, error) {
	if in := e.reg.get(path); in != nil {
		if in.Type() != t {
			return nil, &TypeConflictError{Path: path.String(), Type: t.Name()}
		}
		return in, nil
	}
	in, err := component.New(e, path, t, params)
	if err != nil {
		return nil, err
	}
	e.reg.put(path, in)
	e.logger.Debug("component created", "component", t.Name(), "path", path.String())
	return in, nil
}

// Post implements component.Runtime. It is safe to call from any
// goroutine.
func (e *Engine) Post(task func() error) {
	if task == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, task)
	e.mu.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// After implements component.Runtime.
func (e *Engine) After(d time.Duration, task func() error) (stop func() bool) {
	return e.timers.AfterFunc(d, func() {
		e.Post(task)
	})
}

// Fetch implements component.Runtime. The request runs on its own
// goroutine and done runs on the loop.
func (e *Engine) Fetch(url string, done func(body string, err error) error) {
	if e.fetcher == nil {
		e.Post(func() error { return done("", ErrNoFetcher) })
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.fetchTimeout)
		start := time.Now()
		body, err := e.fetcher.Fetch(ctx, url)
		cancel()
		e.logger.Debug("fetch complete", "url", url, "duration", time.Since(start), "error", err)
		e.Post(func() error { return done(body, err) })
	}()
}

func (e *Engine) pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Tick runs every queued task, then one render pass if the engine is
// unmounted or dirty. A task or pass error aborts the tick; tasks queued
// behind a failed one stay queued.
func (e *Engine) Tick() error {
	e.mu.Lock()
	tasks := e.queue
	e.queue = nil
	e.mu.Unlock()

	for i, task := range tasks {
		if err := e.runTask(task); err != nil {
			e.requeue(tasks[i+1:])
			return err
		}
	}
	if len(tasks) > 0 {
		e.chained = 0
	}

	if e.mounted && !e.dirty {
		return nil
	}
	e.chained++
	if e.maxChained > 0 && e.chained > e.maxChained {
		e.logger.Error("render loop detected", "passes", e.chained-1)
		return fmt.Errorf("%w: %d passes without a task", ErrRenderLoop, e.chained-1)
	}
	return e.Render()
}

func (e *Engine) requeue(rest []func() error) {
	if len(rest) == 0 {
		return
	}
	e.mu.Lock()
	e.queue = append(append([]func() error(nil), rest...), e.queue...)
	e.mu.Unlock()
}

func (e *Engine) runTask(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: task: %w", &component.PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	return task()
}

// Run drives the loop until ctx is done or a tick fails. It returns nil on
// cancellation. Run may be called once.
func (e *Engine) Run(ctx context.Context) error {
	started := false
	e.runOnce.Do(func() { started = true })
	if !started {
		return fmt.Errorf("engine: Run called twice")
	}
	defer e.Stop()

	for {
		if err := e.Tick(); err != nil {
			e.logger.Error("run loop stopped", "error", err)
			return err
		}
		if e.dirty {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-e.done:
			return nil
		case <-e.wake:
		}
	}
}

// Stop ends Run. Pending and future Do calls return ErrStopped.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// Do runs fn on the loop and waits for it. It is the way for other
// goroutines, such as HTTP handlers, to read engine or host state.
func (e *Engine) Do(ctx context.Context, fn func() error) error {
	select {
	case <-e.done:
		return ErrStopped
	default:
	}
	result := make(chan error, 1)
	e.Post(func() error {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("engine: Do: panic: %v", r)
			}
		}()
		result <- fn()
		return nil
	})
	select {
	case err := <-result:
		return err
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
