// Package weave is the import for component authors. It re-exports the
// component model, the element attribute and event helpers, and the
// engine constructor.
//
//	import "github.com/vango-dev/weave"
//
// Usage:
//
//	var Counter = weave.Define("Counter", func(in *weave.Instance) weave.Component {
//	    return &counter{in: in}
//	})
//
//	func (c *counter) State() []weave.Field {
//	    return []weave.Field{{Name: "count", Initial: 0}}
//	}
//
//	func (c *counter) Render(b *weave.Builder) error {
//	    b.Button(weave.OnClick(func(weave.Event) error {
//	        return weave.Update(c.in, "count", func(n int) int { return n + 1 })
//	    }), strconv.Itoa(weave.Get[int](c.in, "count")))
//	    return nil
//	}
//
//	e := weave.NewEngine(doc, Counter, weave.WithLogger(logger))
//	err := e.Run(ctx)
package weave

import (
	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/engine"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// =============================================================================
// Components
// =============================================================================

type (
	Component     = component.Component
	PropDeclarer  = component.PropDeclarer
	StateDeclarer = component.StateDeclarer
	SetupHook     = component.SetupHook
	Watcher       = component.Watcher
	Type          = component.Type
	Instance      = component.Instance
	Builder       = component.Builder
	Field         = component.Field
	Params        = component.Params
	Receiver      = component.Receiver
	Path          = component.Path
)

// Define declares a component type.
var Define = component.Define

// Get returns a state or prop value as T, or T's zero value.
func Get[T any](in *Instance, name string) T { return component.Get[T](in, name) }

// Lookup returns a state or prop value as T.
func Lookup[T any](in *Instance, name string) (T, error) { return component.Lookup[T](in, name) }

// Set writes a state field.
func Set[T any](in *Instance, name string, v T) error { return component.Set(in, name, v) }

// Update replaces a state field with fn applied to its current value.
func Update[T any](in *Instance, name string, fn func(T) T) error {
	return component.Update(in, name, fn)
}

// =============================================================================
// Attributes and events
// =============================================================================

type (
	Attr         = vdom.Attr
	EventHandler = vdom.EventHandler
	Handler      = vdom.Handler
	Event        = host.Event
)

var (
	A           = vdom.A
	ID          = vdom.ID
	Class       = vdom.Class
	Style       = vdom.StyleAttr
	InputType   = vdom.Type
	Value       = vdom.Value
	Name        = vdom.Name
	Placeholder = vdom.PlaceholderAttr
	Href        = vdom.Href
	Disabled    = vdom.Disabled
	Data        = vdom.Data

	On       = vdom.On
	OnClick  = vdom.OnClick
	OnInput  = vdom.OnInput
	OnChange = vdom.OnChange
	OnSubmit = vdom.OnSubmit
	Model    = vdom.Model
)

// =============================================================================
// Engine
// =============================================================================

type (
	Engine     = engine.Engine
	Option     = engine.Option
	PassReport = engine.PassReport
)

// NewEngine creates an engine that renders root into doc's body.
var NewEngine = engine.New

var (
	WithLogger           = engine.WithLogger
	WithTimers           = engine.WithTimers
	WithFetcher          = engine.WithFetcher
	WithLocation         = engine.WithLocation
	WithObserver         = engine.WithObserver
	WithTracer           = engine.WithTracer
	WithMaxChainedPasses = engine.WithMaxChainedPasses
	WithFetchTimeout     = engine.WithFetchTimeout
	WithRootParams       = engine.WithRootParams
)
