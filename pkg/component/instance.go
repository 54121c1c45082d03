package component

import (
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/vango-dev/weave/pkg/reactive"
	"github.com/vango-dev/weave/pkg/vdom"
)

// reserved holds names a prop or state field may not take: the builder's
// constructors and the hooks of the authoring contract.
var reserved = func() map[string]bool {
	m := map[string]bool{
		"text": true, "component": true, "el": true, "emit": true,
		"setup": true, "render": true, "props": true, "state": true,
		"watchers": true, "model": true,
	}
	for _, tag := range vdom.Tags {
		m[tag] = true
	}
	return m
}()

// IsReserved reports whether name is unavailable for props and state.
func IsReserved(name string) bool {
	return reserved[name]
}

// Instance is a live component: its identity, bound props, state cells and
// latest rendered subtree.
type Instance struct {
	rt     Runtime
	path   Path
	typ    *Type
	impl   Component
	params Params

	propNames []string
	props     map[string]any

	fields []string
	cells  map[string]*reactive.Cell[any]

	watch map[string]func(any)

	// forwards maps a state field to the children that received it as a
	// prop in the latest pass.
	forwards map[string][]*Instance

	builder  Builder
	rendered []*vdom.VNode
	renders  int
	logger   *slog.Logger
}

// New constructs an instance: binds props from params, creates state
// cells, installs watch hooks and runs Setup. Errors are annotated with the
// type name. Callers normally go through Runtime.Resolve instead.
func New(rt Runtime, path Path, t *Type, params Params) (in *Instance, err error) {
	in = &Instance{
		rt:       rt,
		path:     path,
		typ:      t,
		params:   params,
		props:    make(map[string]any),
		cells:    make(map[string]*reactive.Cell[any]),
		watch:    make(map[string]func(any)),
		forwards: make(map[string][]*Instance),
	}
	if in.params == nil {
		in.params = Params{}
	}
	if rt != nil && rt.Logger() != nil {
		in.logger = rt.Logger().With("component", t.Name(), "path", path.String())
	} else {
		in.logger = slog.Default().With("component", t.Name(), "path", path.String())
	}
	in.builder.owner = in

	phase := PhaseConstruct
	defer func() {
		if r := recover(); r != nil {
			err = annotate(t.Name(), phase, &PanicError{Value: r, Stack: debug.Stack()})
			in = nil
		}
	}()

	in.impl = t.factory(in)
	if in.impl == nil {
		return nil, annotate(t.Name(), phase, fmt.Errorf("factory returned nil"))
	}
	if err := in.bindProps(); err != nil {
		return nil, annotate(t.Name(), phase, err)
	}
	if err := in.bindState(); err != nil {
		return nil, annotate(t.Name(), phase, err)
	}
	if err := in.bindWatchers(); err != nil {
		return nil, annotate(t.Name(), phase, err)
	}

	phase = PhaseSetup
	if s, ok := in.impl.(SetupHook); ok {
		if err := s.Setup(); err != nil {
			return nil, annotate(t.Name(), phase, err)
		}
	}
	return in, nil
}

func (in *Instance) checkName(name string) error {
	switch {
	case name == "":
		return &ConfigurationError{Component: in.typ.Name(), Name: name, Reason: "empty name"}
	case reserved[name]:
		return &ConfigurationError{Component: in.typ.Name(), Name: name, Reason: "collides with a reserved builder name"}
	case in.declared(name):
		return &ConfigurationError{Component: in.typ.Name(), Name: name, Reason: "declared more than once"}
	}
	return nil
}

func (in *Instance) declared(name string) bool {
	if _, ok := in.props[name]; ok {
		return true
	}
	_, ok := in.cells[name]
	return ok
}

func (in *Instance) bindProps() error {
	d, ok := in.impl.(PropDeclarer)
	if !ok {
		return nil
	}
	for _, name := range d.Props() {
		if err := in.checkName(name); err != nil {
			return err
		}
		in.props[name] = in.params[name]
		in.propNames = append(in.propNames, name)
	}
	return nil
}

func (in *Instance) bindState() error {
	d, ok := in.impl.(StateDeclarer)
	if !ok {
		return nil
	}
	for _, f := range d.State() {
		if err := in.checkName(f.Name); err != nil {
			return err
		}
		name := f.Name
		in.cells[name] = reactive.NewCell(f.Initial, func(v any) {
			in.changed(name, v)
		})
		in.fields = append(in.fields, name)
	}
	return nil
}

func (in *Instance) bindWatchers() error {
	w, ok := in.impl.(Watcher)
	if !ok {
		return nil
	}
	for name, fn := range w.Watchers() {
		if !in.declared(name) {
			return &ConfigurationError{Component: in.typ.Name(), Name: name, Reason: "watch hook for an undeclared field"}
		}
		if fn != nil {
			in.watch[name] = fn
		}
	}
	return nil
}

// changed is the onChange of every state cell.
func (in *Instance) changed(name string, v any) {
	if fn := in.watch[name]; fn != nil {
		fn(v)
	}
	for _, child := range in.forwards[name] {
		child.receiveProp(name, v)
	}
	if in.rt != nil {
		in.rt.MarkDirty()
	}
}

// receiveProp applies a value forwarded by the parent.
func (in *Instance) receiveProp(name string, v any) {
	in.params[name] = v
	if _, ok := in.props[name]; ok {
		in.props[name] = v
	}
	if fn := in.watch[name]; fn != nil {
		fn(v)
	}
}

// Name returns the component type name.
func (in *Instance) Name() string { return in.typ.Name() }

// Type returns the component type.
func (in *Instance) Type() *Type { return in.typ }

// Path returns the identity path.
func (in *Instance) Path() Path { return in.path }

// Impl returns the author's Component value.
func (in *Instance) Impl() Component { return in.impl }

// Logger returns a logger scoped to this instance.
func (in *Instance) Logger() *slog.Logger { return in.logger }

// Renders returns how many times Render has run.
func (in *Instance) Renders() int { return in.renders }

// Rendered returns the children produced by the latest Render.
func (in *Instance) Rendered() []*vdom.VNode { return in.rendered }

// Fields returns the state field names in declaration order.
func (in *Instance) Fields() []string {
	out := make([]string, len(in.fields))
	copy(out, in.fields)
	return out
}

// PropNames returns the declared prop names in declaration order.
func (in *Instance) PropNames() []string {
	out := make([]string, len(in.propNames))
	copy(out, in.propNames)
	return out
}

// IsState reports whether name is a declared state field.
func (in *Instance) IsState(name string) bool {
	_, ok := in.cells[name]
	return ok
}

// Value returns a state field's value, or a declared prop's value.
func (in *Instance) Value(name string) (any, error) {
	if c, ok := in.cells[name]; ok {
		return c.Get(), nil
	}
	if v, ok := in.props[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w %q on %s", ErrUnknownField, name, in.Name())
}

// Prop returns a declared prop's value, or nil.
func (in *Instance) Prop(name string) any {
	return in.props[name]
}

// Set writes a state field. Writing the value the field already holds is
// a no-op: no watch hook, no forwarding, no render.
func (in *Instance) Set(name string, v any) error {
	c, ok := in.cells[name]
	if !ok {
		if _, isProp := in.props[name]; isProp {
			return fmt.Errorf("%w: %q on %s", ErrReadOnly, name, in.Name())
		}
		return fmt.Errorf("%w %q on %s", ErrUnknownField, name, in.Name())
	}
	c.Set(v)
	return nil
}

// Snapshot returns a copy of all state and prop values.
func (in *Instance) Snapshot() map[string]any {
	out := make(map[string]any, len(in.cells)+len(in.props))
	for k, v := range in.props {
		out[k] = v
	}
	for k, c := range in.cells {
		out[k] = c.Get()
	}
	return out
}

// Emit calls the handler the parent passed under event in this instance's
// parameter bag.
func (in *Instance) Emit(event string, payload any) error {
	switch fn := in.params[event].(type) {
	case Receiver:
		if fn != nil {
			return fn(payload)
		}
	case func(any) error:
		if fn != nil {
			return fn(payload)
		}
	}
	return &NoReceiverError{Component: in.Name(), Event: event}
}

// SetTimeout runs fn on the engine's loop after d.
func (in *Instance) SetTimeout(d time.Duration, fn func() error) (stop func() bool) {
	return in.rt.After(d, fn)
}

// Fetch requests url and hands the body to fn on the engine's loop.
func (in *Instance) Fetch(url string, fn func(body string, err error) error) {
	in.rt.Fetch(url, fn)
}

// SearchParams returns the host query parameters. It is empty when the
// engine has no location.
func (in *Instance) SearchParams() url.Values {
	loc := in.rt.Location()
	if loc == nil {
		return url.Values{}
	}
	return loc.Query()
}

// SetSearchParam updates a query parameter without reloading.
func (in *Instance) SetSearchParam(key, value string) error {
	loc := in.rt.Location()
	if loc == nil {
		return ErrNoLocation
	}
	loc.SetQueryParam(key, value)
	return nil
}

// Render rebuilds this instance's subtree. Nested components are resolved
// and rendered as they are encountered.
func (in *Instance) Render() (children []*vdom.VNode, err error) {
	in.renders++
	in.forwards = make(map[string][]*Instance)
	in.builder.reset()

	defer func() {
		if r := recover(); r != nil {
			children = nil
			err = annotate(in.Name(), PhaseRender, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	if err := in.impl.Render(&in.builder); err != nil {
		return nil, annotate(in.Name(), PhaseRender, err)
	}
	if err := in.builder.err; err != nil {
		return nil, annotate(in.Name(), PhaseRender, err)
	}
	in.rendered = in.builder.root.Children
	return in.rendered, nil
}

// prepareParams copies params and wires a child model binding: a "model"
// entry naming one of this instance's state fields installs an "input"
// receiver that writes the emitted payload into that field.
func (in *Instance) prepareParams(params Params) (Params, error) {
	out := make(Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	raw, ok := out["model"]
	if !ok {
		return out, nil
	}
	field, _ := raw.(string)
	if !in.IsState(field) {
		return nil, &ConfigurationError{Component: in.Name(), Name: field, Reason: "model binding targets an undeclared state field"}
	}
	out["input"] = Receiver(func(payload any) error {
		return in.Set(field, payload)
	})
	return out, nil
}

// trackForwards records child as a receiver of every state field it was
// handed as a prop.
func (in *Instance) trackForwards(params Params, child *Instance) {
	for key := range params {
		if !in.IsState(key) {
			continue
		}
		already := false
		for _, c := range in.forwards[key] {
			if c == child {
				already = true
				break
			}
		}
		if !already {
			in.forwards[key] = append(in.forwards[key], child)
		}
	}
}

// refreshReceivers replaces event handlers in the parameter bag with the
// ones passed in the current render.
func (in *Instance) refreshReceivers(params Params) {
	for k, v := range params {
		switch v.(type) {
		case Receiver, func(any) error:
			in.params[k] = v
		}
	}
}
