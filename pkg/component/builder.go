package component

import (
	"fmt"

	"github.com/vango-dev/weave/pkg/vdom"
)

// Builder records the elements a component renders. Container methods
// take any mix of attributes, handlers, a model binding, string text
// children and at most one func() block that builds the element's
// children:
//
//	b.Div(vdom.Class("row"), func() {
//	    b.Span("label")
//	    b.Input(vdom.Type("text"), vdom.Model("query"))
//	})
//
// The first misuse is recorded and returned from Render; later calls are
// still accepted so author code does not need to check after each one.
type Builder struct {
	owner *Instance
	root  vdom.VNode
	cur   *vdom.VNode
	seq   int
	slot  []int
	err   error
}

func (b *Builder) reset() {
	b.root = vdom.VNode{Kind: vdom.KindElement}
	b.cur = &b.root
	b.seq = 0
	b.slot = b.slot[:0]
	b.err = nil
}

// Instance returns the instance being rendered.
func (b *Builder) Instance() *Instance {
	return b.owner
}

// Fail records err as the render error unless one is already recorded.
func (b *Builder) Fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// Err returns the first recorded error.
func (b *Builder) Err() error {
	return b.err
}

// next returns the ordinal of the node about to be created among the
// children of the open container.
func (b *Builder) next() int {
	n := b.seq
	b.seq++
	return n
}

func (b *Builder) append(n *vdom.VNode) {
	b.cur.Children = append(b.cur.Children, n)
}

// Text appends a text node. Non-string values are formatted with
// fmt.Sprint.
func (b *Builder) Text(v any) {
	b.next()
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case nil:
	default:
		s = fmt.Sprint(x)
	}
	b.append(vdom.Text(s))
}

// El appends an element with an arbitrary tag.
func (b *Builder) El(tag string, args ...any) {
	ord := b.next()
	node := vdom.Element(tag, vdom.Props{})
	var block func()
	var texts []string

	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case vdom.Attr:
			if !a.IsEmpty() {
				node.Props.SetAttr(a)
			}
		case []vdom.Attr:
			for _, x := range a {
				if !x.IsEmpty() {
					node.Props.SetAttr(x)
				}
			}
		case vdom.EventHandler:
			if a.Handler != nil {
				node.Props.SetHandler(a)
			}
		case []vdom.EventHandler:
			for _, h := range a {
				if h.Handler != nil {
					node.Props.SetHandler(h)
				}
			}
		case vdom.ModelBinding:
			b.bindModel(node, a)
		case func():
			if block != nil {
				b.Fail(fmt.Errorf("<%s>: more than one child block", tag))
				continue
			}
			block = a
		case string:
			texts = append(texts, a)
		default:
			b.Fail(fmt.Errorf("<%s>: unsupported argument of type %T", tag, arg))
		}
	}

	if vdom.IsVoidElement(tag) && (block != nil || len(texts) > 0) {
		b.Fail(fmt.Errorf("<%s> is a void element and cannot have children", tag))
		block, texts = nil, nil
	}

	b.append(node)
	if len(texts) == 0 && block == nil {
		return
	}

	parent, seq := b.cur, b.seq
	b.cur, b.seq = node, 0
	b.slot = append(b.slot, ord)
	for _, s := range texts {
		b.Text(s)
	}
	if block != nil {
		block()
	}
	b.slot = b.slot[:len(b.slot)-1]
	b.cur, b.seq = parent, seq
}

func (b *Builder) bindModel(node *vdom.VNode, m vdom.ModelBinding) {
	owner := b.owner
	if node.Props.Model != nil {
		b.Fail(&ConfigurationError{Component: owner.Name(), Name: m.Field, Reason: "element already has a model binding"})
		return
	}
	if !owner.IsState(m.Field) {
		b.Fail(&ConfigurationError{Component: owner.Name(), Name: m.Field, Reason: "model binding targets an undeclared state field"})
		return
	}
	v, _ := owner.Value(m.Field)
	field := m.Field
	node.Props.Model = &vdom.ModelBinding{
		Field: field,
		Value: vdom.AttrString(v),
		Set: func(s string) error {
			return owner.Set(field, s)
		},
	}
}

// Component appends a placeholder for a nested component. The child is
// resolved by its identity path, constructed on first use, and rendered in
// place. A "model" entry in params binds the child's "input" event to the
// named state field of the component being rendered.
func (b *Builder) Component(t *Type, params Params) {
	ord := b.next()
	if b.err != nil {
		return
	}
	owner := b.owner
	params, err := owner.prepareParams(params)
	if err != nil {
		b.Fail(err)
		return
	}
	child, err := owner.rt.Resolve(owner.path.ChildAt(b.slot, t.Name(), ord), t, params)
	if err != nil {
		b.Fail(err)
		return
	}
	child.refreshReceivers(params)
	owner.trackForwards(params, child)

	children, err := child.Render()
	if err != nil {
		b.Fail(err)
		return
	}
	b.append(vdom.Placeholder(child, children))
}

// H1 appends an <h1> element.
func (b *Builder) H1(args ...any) { b.El("h1", args...) }

// H2 appends an <h2> element.
func (b *Builder) H2(args ...any) { b.El("h2", args...) }

// H3 appends an <h3> element.
func (b *Builder) H3(args ...any) { b.El("h3", args...) }

// Div appends a <div> element.
func (b *Builder) Div(args ...any) { b.El("div", args...) }

// Span appends a <span> element.
func (b *Builder) Span(args ...any) { b.El("span", args...) }

// P appends a <p> element.
func (b *Builder) P(args ...any) { b.El("p", args...) }

// Br appends a <br> element.
func (b *Builder) Br(args ...any) { b.El("br", args...) }

// Ul appends a <ul> element.
func (b *Builder) Ul(args ...any) { b.El("ul", args...) }

// Ol appends an <ol> element.
func (b *Builder) Ol(args ...any) { b.El("ol", args...) }

// Li appends an <li> element.
func (b *Builder) Li(args ...any) { b.El("li", args...) }

// Table appends a <table> element.
func (b *Builder) Table(args ...any) { b.El("table", args...) }

// Th appends a <th> element.
func (b *Builder) Th(args ...any) { b.El("th", args...) }

// Tr appends a <tr> element.
func (b *Builder) Tr(args ...any) { b.El("tr", args...) }

// Td appends a <td> element.
func (b *Builder) Td(args ...any) { b.El("td", args...) }

// Caption appends a <caption> element.
func (b *Builder) Caption(args ...any) { b.El("caption", args...) }

// Colgroup appends a <colgroup> element.
func (b *Builder) Colgroup(args ...any) { b.El("colgroup", args...) }

// Col appends a <col> element.
func (b *Builder) Col(args ...any) { b.El("col", args...) }

// Thead appends a <thead> element.
func (b *Builder) Thead(args ...any) { b.El("thead", args...) }

// Tbody appends a <tbody> element.
func (b *Builder) Tbody(args ...any) { b.El("tbody", args...) }

// Tfoot appends a <tfoot> element.
func (b *Builder) Tfoot(args ...any) { b.El("tfoot", args...) }

// Button appends a <button> element.
func (b *Builder) Button(args ...any) { b.El("button", args...) }

// Input appends an <input> element.
func (b *Builder) Input(args ...any) { b.El("input", args...) }

// Label appends a <label> element.
func (b *Builder) Label(args ...any) { b.El("label", args...) }

// Form appends a <form> element.
func (b *Builder) Form(args ...any) { b.El("form", args...) }

// A appends an <a> element.
func (b *Builder) A(args ...any) { b.El("a", args...) }
