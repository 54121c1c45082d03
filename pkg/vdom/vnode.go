package vdom

import "github.com/vango-dev/weave/pkg/host"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComponent             // Nested component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ComponentTag is the host tag a component placeholder mounts as.
const ComponentTag = "div"

// VNode is a virtual element node.
type VNode struct {
	Kind     Kind      // Node type
	Tag      string    // Element tag; ComponentTag for placeholders
	Props    Props     // Attributes, handlers, model binding
	Children []*VNode  // Child nodes; a placeholder holds its component's output
	Text     string    // For KindText
	Comp     Component // For KindComponent
}

// Component is the instance a placeholder refers to.
type Component interface {
	Name() string
}

// Props holds attributes and event handlers.
type Props struct {
	Attrs  []Attr
	Events []EventHandler
	Model  *ModelBinding
}

// Attr returns the attribute with the given key.
func (p Props) Attr(key string) (Attr, bool) {
	for _, a := range p.Attrs {
		if a.Key == key {
			return a, true
		}
	}
	return Attr{}, false
}

// Handler returns the handler bound to event.
func (p Props) Handler(event string) (Handler, bool) {
	for _, e := range p.Events {
		if e.Event == event {
			return e.Handler, true
		}
	}
	return nil, false
}

// IsEmpty returns true if there are no attributes, handlers or model.
func (p Props) IsEmpty() bool {
	return len(p.Attrs) == 0 && len(p.Events) == 0 && p.Model == nil
}

// SetAttr adds or replaces the attribute with a's key, keeping the
// position of the first occurrence.
func (p *Props) SetAttr(a Attr) {
	for i, existing := range p.Attrs {
		if existing.Key == a.Key {
			p.Attrs[i] = a
			return
		}
	}
	p.Attrs = append(p.Attrs, a)
}

// SetHandler adds or replaces the handler for h's event.
func (p *Props) SetHandler(h EventHandler) {
	for i, existing := range p.Events {
		if existing.Event == h.Event {
			p.Events[i] = h
			return
		}
	}
	p.Events = append(p.Events, h)
}

// Handler handles a host event.
type Handler func(ev host.Event) error

// EventHandler binds a handler to an event name ("click", "input").
type EventHandler struct {
	Event   string
	Handler Handler
}

// ModelBinding links a state field to a control's value. Value and Set are
// filled in by the builder from the owning component's field.
type ModelBinding struct {
	Field string
	Value string
	Set   func(string) error
}

// Text creates a text leaf.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

// Element creates an element container.
func Element(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Props: props, Children: children}
}

// Placeholder creates a component placeholder around comp's rendered
// children.
func Placeholder(comp Component, children []*VNode) *VNode {
	return &VNode{Kind: KindComponent, Tag: ComponentTag, Comp: comp, Children: children}
}

// Walk calls fn for node and every descendant in pre-order. Returning
// false from fn skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node *VNode) int {
	n := 0
	Walk(node, func(*VNode) bool {
		n++
		return true
	})
	return n
}
