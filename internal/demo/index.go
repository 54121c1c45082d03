package demo

import (
	"errors"
	"fmt"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// Index shows a heading that counts clicks and a search box bound to its
// query field.
var Index = register(component.Define("Index", func(in *component.Instance) component.Component {
	return &index{in: in}
}))

type index struct {
	in *component.Instance
}

func (x *index) Props() []string { return []string{"heading"} }

func (x *index) State() []component.Field {
	return []component.Field{
		{Name: "label", Initial: "Click me"},
		{Name: "clicks", Initial: 0},
		{Name: "query", Initial: ""},
	}
}

func (x *index) click(host.Event) error {
	clicks := component.Get[int](x.in, "clicks") + 1
	if err := x.in.Set("clicks", clicks); err != nil {
		return err
	}
	return x.in.Set("label", fmt.Sprintf("%s %d", component.Get[string](x.in, "heading"), clicks))
}

func (x *index) Render(b *component.Builder) error {
	b.H1(vdom.Class("text-2xl mt-2"), vdom.OnClick(x.click), component.Get[string](x.in, "label"))
	b.Component(InputField, component.Params{"model": "query", "placeholder": "Search"})
	if q := component.Get[string](x.in, "query"); q != "" {
		b.P("Searching for: " + q)
	}
	return nil
}

// InputField is a text box. Typing updates its own state and is emitted
// as "input" to a parent that bound it with a model.
var InputField = register(component.Define("InputField", func(in *component.Instance) component.Component {
	return &inputField{in: in}
}))

type inputField struct {
	in *component.Instance
}

func (f *inputField) Props() []string { return []string{"placeholder"} }

func (f *inputField) State() []component.Field {
	return []component.Field{{Name: "current", Initial: ""}}
}

func (f *inputField) Watchers() map[string]func(any) {
	return map[string]func(any){
		"current": func(v any) {
			f.in.Logger().Debug("input", "value", v)
			err := f.in.Emit("input", v)
			var nr *component.NoReceiverError
			if err != nil && !errors.As(err, &nr) {
				f.in.Logger().Warn("input not forwarded", "error", err)
			}
		},
	}
}

func (f *inputField) Render(b *component.Builder) error {
	args := []any{vdom.Class("border border-red-400"), vdom.Type("text")}
	if ph := component.Get[string](f.in, "placeholder"); ph != "" {
		args = append(args, vdom.PlaceholderAttr(ph))
	}
	b.Input(append(args, vdom.Model("current"))...)
	return nil
}
