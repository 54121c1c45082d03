package memdom

import (
	"github.com/vango-dev/weave/pkg/host"
)

type listenerEntry struct {
	event string
	fn    host.Listener
}

// Node is an in-memory host.Node.
type Node struct {
	doc       *Document
	typ       host.NodeType
	name      string
	text      string
	value     string
	parent    *Node
	children  []*Node
	attrs     []host.Attr
	listeners []listenerEntry
}

var (
	_ host.Node       = (*Node)(nil)
	_ host.Dispatcher = (*Node)(nil)
)

// NodeType implements host.Node.
func (n *Node) NodeType() host.NodeType { return n.typ }

// NodeName implements host.Node.
func (n *Node) NodeName() string { return n.name }

// ParentNode implements host.Node.
func (n *Node) ParentNode() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ChildNodes implements host.Node. The returned slice is a copy.
func (n *Node) ChildNodes() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Children returns the concrete children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AppendChild implements host.Node.
func (n *Node) AppendChild(child host.Node) error {
	c, err := n.adopt(child)
	if err != nil {
		return err
	}
	c.detach()
	c.parent = n
	n.children = append(n.children, c)
	n.doc.stats.Appended++
	return nil
}

// ReplaceChild implements host.Node.
func (n *Node) ReplaceChild(newChild, oldChild host.Node) error {
	c, err := n.adopt(newChild)
	if err != nil {
		return err
	}
	old, ok := oldChild.(*Node)
	if !ok || old.parent != n {
		return ErrNotChild
	}
	if c == old {
		return nil
	}
	c.detach()
	idx := n.indexOf(old)
	n.children[idx] = c
	c.parent = n
	old.parent = nil
	n.doc.stats.Replaced++
	return nil
}

// RemoveChild implements host.Node.
func (n *Node) RemoveChild(child host.Node) error {
	c, ok := child.(*Node)
	if !ok || c.parent != n {
		return ErrNotChild
	}
	c.detach()
	n.doc.stats.Removed++
	return nil
}

func (n *Node) adopt(child host.Node) (*Node, error) {
	c, ok := child.(*Node)
	if !ok || c == nil || n.typ != host.ElementNode {
		return nil, ErrHierarchy
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return nil, ErrHierarchy
		}
	}
	return c, nil
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	idx := p.indexOf(n)
	p.children = append(p.children[:idx], p.children[idx+1:]...)
	n.parent = nil
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Attributes implements host.Node.
func (n *Node) Attributes() []host.Attr {
	out := make([]host.Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// GetAttribute implements host.Node.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute implements host.Node.
func (n *Node) SetAttribute(name, value string) {
	if n.typ != host.ElementNode {
		return
	}
	n.doc.stats.AttrsSet++
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, host.Attr{Name: name, Value: value})
}

// RemoveAttribute implements host.Node.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.doc.stats.AttrsRemoved++
			return
		}
	}
}

// AddEventListener implements host.Node.
func (n *Node) AddEventListener(event string, fn host.Listener) {
	if n.typ != host.ElementNode || fn == nil {
		return
	}
	n.listeners = append(n.listeners, listenerEntry{event: event, fn: fn})
	n.doc.stats.ListenersAdded++
}

// RemoveEventListeners implements host.Node.
func (n *Node) RemoveEventListeners(event string) {
	kept := n.listeners[:0]
	for _, l := range n.listeners {
		if l.event == event {
			n.doc.stats.ListenersRemoved++
			continue
		}
		kept = append(kept, l)
	}
	n.listeners = kept
}

// EventTypes implements host.Node.
func (n *Node) EventTypes() []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range n.listeners {
		if !seen[l.event] {
			seen[l.event] = true
			out = append(out, l.event)
		}
	}
	return out
}

// ListenerCount returns how many listeners are registered for event.
func (n *Node) ListenerCount(event string) int {
	count := 0
	for _, l := range n.listeners {
		if l.event == event {
			count++
		}
	}
	return count
}

// Value implements host.Node.
func (n *Node) Value() string { return n.value }

// SetValue implements host.Node.
func (n *Node) SetValue(v string) {
	if n.typ != host.ElementNode {
		return
	}
	n.value = v
	n.doc.stats.ValuesSet++
}

// TextContent implements host.Node. For elements it concatenates the text
// of all descendants.
func (n *Node) TextContent() string {
	if n.typ != host.ElementNode {
		return n.text
	}
	var out string
	for _, c := range n.children {
		if c.typ == host.CommentNode {
			continue
		}
		out += c.TextContent()
	}
	return out
}

// SetTextContent implements host.Node. On an element it replaces all
// children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.typ != host.ElementNode {
		n.text = text
		n.doc.stats.TextSet++
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.doc.stats.TextSet++
	if text != "" {
		t := &Node{doc: n.doc, typ: host.TextNode, name: "#text", text: text, parent: n}
		n.children = append(n.children, t)
	}
}

// DispatchEvent implements host.Dispatcher. Input and change events update
// the control value first, the way typing into a control would.
func (n *Node) DispatchEvent(ev host.Event) {
	if ev.Target == nil {
		ev.Target = n
	}
	if ev.Type == "input" || ev.Type == "change" {
		n.value = ev.Value
	}
	listeners := make([]listenerEntry, len(n.listeners))
	copy(listeners, n.listeners)
	for _, l := range listeners {
		if l.event == ev.Type {
			l.fn(ev)
		}
	}
}

// Find returns the first descendant (depth-first, pre-order, including n)
// with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	if n.typ == host.ElementNode && n.name == tag {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(tag); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every descendant with the given tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		if x.typ == host.ElementNode && x.name == tag {
			out = append(out, x)
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return out
}
