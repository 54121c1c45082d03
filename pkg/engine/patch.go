package engine

import (
	"strings"

	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// patcher applies one pass's tree to the host.
type patcher struct {
	e   *Engine
	ops OpCounts
}

// patch reconciles host node h with n.
func (p *patcher) patch(n *vdom.VNode, h host.Node) error {
	switch h.NodeType() {
	case host.ElementNode, host.TextNode:
	default:
		return &HostMismatchError{NodeType: h.NodeType(), NodeName: h.NodeName()}
	}

	if !sameKind(n, h) {
		return p.replace(n, h)
	}
	if n.Kind == vdom.KindText {
		if h.TextContent() != n.Text {
			h.SetTextContent(n.Text)
			p.ops[OpSetText]++
		}
		return nil
	}

	p.bindEvents(n, h)
	p.syncModel(n, h)
	p.syncAttrs(n, h)
	return p.patchChildren(n, h)
}

func sameKind(n *vdom.VNode, h host.Node) bool {
	if n.Kind == vdom.KindText {
		return h.NodeType() == host.TextNode
	}
	return h.NodeType() == host.ElementNode && strings.EqualFold(n.Tag, h.NodeName())
}

func (p *patcher) replace(n *vdom.VNode, h host.Node) error {
	parent := h.ParentNode()
	if parent == nil {
		return ErrDetachedMount
	}
	node, err := p.materialize(n)
	if err != nil {
		return err
	}
	if err := parent.ReplaceChild(node, h); err != nil {
		return err
	}
	p.ops[OpReplaceNode]++
	return nil
}

// materialize creates the host subtree for n.
func (p *patcher) materialize(n *vdom.VNode) (host.Node, error) {
	doc := p.e.doc
	if n.Kind == vdom.KindText {
		return doc.CreateTextNode(n.Text), nil
	}
	node := doc.CreateElement(n.Tag)
	p.bindEvents(n, node)
	p.syncModel(n, node)
	p.syncAttrs(n, node)
	for _, c := range n.Children {
		child, err := p.materialize(c)
		if err != nil {
			return nil, err
		}
		if err := node.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// bindEvents drops every listener on h and registers n's handlers. Each
// listener queues its handler as a task, so handlers always run on the
// loop.
func (p *patcher) bindEvents(n *vdom.VNode, h host.Node) {
	for _, typ := range h.EventTypes() {
		h.RemoveEventListeners(typ)
	}
	e := p.e
	for _, eh := range n.Props.Events {
		handler := eh.Handler
		h.AddEventListener(eh.Event, func(ev host.Event) {
			e.Post(func() error { return handler(ev) })
		})
	}
	if m := n.Props.Model; m != nil && m.Set != nil {
		set := m.Set
		h.AddEventListener("input", func(ev host.Event) {
			e.Post(func() error { return set(ev.Value) })
		})
	}
}

// syncModel pushes the bound field's value into the control. Without a
// binding nothing is written; the input listener is gone already.
func (p *patcher) syncModel(n *vdom.VNode, h host.Node) {
	m := n.Props.Model
	if m == nil {
		return
	}
	if h.Value() != m.Value {
		h.SetValue(m.Value)
		p.ops[OpSetValue]++
	}
}

// syncAttrs removes host attributes n lacks, then sets each of n's
// attributes whose live value differs.
func (p *patcher) syncAttrs(n *vdom.VNode, h host.Node) {
	for _, a := range h.Attributes() {
		if _, ok := n.Props.Attr(a.Name); !ok {
			h.RemoveAttribute(a.Name)
			p.ops[OpRemoveAttr]++
		}
	}
	for _, a := range n.Props.Attrs {
		v := a.String()
		if cur, ok := h.GetAttribute(a.Key); ok && cur == v {
			continue
		}
		h.SetAttribute(a.Key, v)
		p.ops[OpSetAttr]++
	}
}

// patchChildren matches children by position.
func (p *patcher) patchChildren(n *vdom.VNode, h host.Node) error {
	existing := h.ChildNodes()
	for i, c := range n.Children {
		if i < len(existing) {
			if err := p.patch(c, existing[i]); err != nil {
				return err
			}
			continue
		}
		node, err := p.materialize(c)
		if err != nil {
			return err
		}
		if err := h.AppendChild(node); err != nil {
			return err
		}
		p.ops[OpInsertNode]++
	}
	for {
		kids := h.ChildNodes()
		if len(kids) <= len(n.Children) {
			return nil
		}
		if err := h.RemoveChild(kids[len(kids)-1]); err != nil {
			return err
		}
		p.ops[OpRemoveNode]++
	}
}
