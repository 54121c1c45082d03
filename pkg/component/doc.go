// Package component binds reactive state and input props to a render
// function and builds the element tree for one component instance.
//
// # Authoring
//
// A component type is declared once with Define. The factory receives the
// Instance being constructed; keep it to read state and props later.
//
//	var Counter = component.Define("Counter", func(in *component.Instance) component.Component {
//	    return &counter{in: in}
//	})
//
//	type counter struct{ in *component.Instance }
//
//	func (c *counter) State() []component.Field {
//	    return []component.Field{{Name: "count", Initial: 0}}
//	}
//
//	func (c *counter) Render(b *component.Builder) error {
//	    b.Button(vdom.OnClick(c.increment), func() {
//	        b.Text(component.Get[int](c.in, "count"))
//	    })
//	    return nil
//	}
//
//	func (c *counter) increment(host.Event) error {
//	    return component.Update(c.in, "count", func(n int) int { return n + 1 })
//	}
//
// Optional interfaces add props (PropDeclarer), state (StateDeclarer), a
// one-time Setup (SetupHook) and per-field watch hooks (Watcher).
//
// # Identity
//
// Instances are keyed by a Path of (type, ordinal) segments. The ordinal
// is the position of the placeholder among its siblings in the enclosing
// container, so an instance survives re-renders while the nodes before it
// in that container stay the same. Nodes built inside an earlier
// sibling's block do not count. A placeholder nested in containers also
// records their sibling positions in Segment.Slot, so components in
// different rows of a list keep distinct identities. Anything that shifts
// the ordinal, such as a conditional sibling rendered before it, yields a
// fresh instance with fresh state.
//
// Instances never touch the registry themselves. They reach the engine
// through the Runtime interface to resolve children and to signal that a
// render pass is needed.
package component
