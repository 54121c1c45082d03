package component

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/weave/pkg/host"
)

// Component is implemented by every component. Render appends the
// component's elements to b; it must not touch the host and may be called
// any number of times.
type Component interface {
	Render(b *Builder) error
}

// PropDeclarer declares the input props a component reads from its
// parent's parameter bag.
type PropDeclarer interface {
	Props() []string
}

// StateDeclarer declares named state with initial values. It is called
// after props are bound, so initial values may be derived from props.
type StateDeclarer interface {
	State() []Field
}

// SetupHook runs once, after props and state are wired. Use it for
// subscriptions, timers and fetches.
type SetupHook interface {
	Setup() error
}

// Watcher returns hooks keyed by field or prop name. A hook runs when its
// state field changes, or when a parent forwards a new value for its prop.
type Watcher interface {
	Watchers() map[string]func(value any)
}

// Field declares one piece of state.
type Field struct {
	Name    string
	Initial any
}

// Params is the attribute bag a parent passes to a nested component.
// Values are either plain props or Receivers for events the child emits.
type Params map[string]any

// Receiver handles an event emitted by a child component.
type Receiver func(payload any) error

// Type is a declared component type.
type Type struct {
	name    string
	factory func(*Instance) Component
}

// Define declares a component type. name becomes part of every instance's
// identity path and of error messages.
func Define(name string, factory func(*Instance) Component) *Type {
	if name == "" {
		panic("component: Define with empty name")
	}
	if factory == nil {
		panic(fmt.Sprintf("component: Define(%q) with nil factory", name))
	}
	return &Type{name: name, factory: factory}
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	return t.name
}

// Runtime is the engine as seen by a component. Components use it to
// resolve nested components and to signal that a render pass is needed;
// the engine keeps sole ownership of the registry.
type Runtime interface {
	// MarkDirty requests a render pass.
	MarkDirty()

	// Resolve returns the instance registered at path, constructing and
	// registering it when absent.
	Resolve(path Path, t *Type, params Params) (*Instance, error)

	// Post queues task on the run loop.
	Post(task func() error)

	// After queues task on the run loop once d has elapsed.
	After(d time.Duration, task func() error) (stop func() bool)

	// Fetch requests url off the loop and delivers the result to done on
	// the loop.
	Fetch(url string, done func(body string, err error) error)

	// Location returns the host location, or nil.
	Location() host.Location

	// Logger returns the engine logger.
	Logger() *slog.Logger
}
