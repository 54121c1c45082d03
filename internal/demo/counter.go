package demo

import (
	"errors"
	"strconv"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// Counter starts from the "count" query parameter and writes every change
// back to it.
var Counter = register(component.Define("Counter", func(in *component.Instance) component.Component {
	return &counter{in: in}
}))

type counter struct {
	in *component.Instance
}

func (c *counter) State() []component.Field {
	return []component.Field{{Name: "count", Initial: 0}}
}

func (c *counter) Setup() error {
	raw := c.in.SearchParams().Get("count")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.in.Logger().Warn("ignoring count parameter", "value", raw)
		return nil
	}
	return c.in.Set("count", n)
}

func (c *counter) Watchers() map[string]func(any) {
	return map[string]func(any){
		"count": func(v any) {
			err := c.in.SetSearchParam("count", strconv.Itoa(v.(int)))
			if err != nil && !errors.Is(err, component.ErrNoLocation) {
				c.in.Logger().Warn("count not saved", "error", err)
			}
		},
	}
}

func (c *counter) add(delta int) vdom.Handler {
	return func(host.Event) error {
		return component.Update(c.in, "count", func(n int) int { return n + delta })
	}
}

func (c *counter) Render(b *component.Builder) error {
	b.Div(vdom.Class("counter"), func() {
		b.Button(vdom.Class(buttonClass), vdom.OnClick(c.add(-1)), "-")
		b.Span(strconv.Itoa(component.Get[int](c.in, "count")))
		b.Button(vdom.Class(buttonClass), vdom.OnClick(c.add(1)), "+")
	})
	return nil
}
