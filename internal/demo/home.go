package demo

import (
	"errors"
	"fmt"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// Pages Home can show. The current page is mirrored in the "page" query
// parameter when the engine has a location.
const (
	PageIndex  = "index"
	PagePage2  = "page2"
	PagePeople = "people"
)

// Home is the root of the sample application.
var Home = register(component.Define("Home", func(in *component.Instance) component.Component {
	return &home{in: in}
}))

type home struct {
	in *component.Instance
}

func (h *home) State() []component.Field {
	return []component.Field{{Name: "page", Initial: PageIndex}}
}

func (h *home) Setup() error {
	if p := h.in.SearchParams().Get("page"); p != "" {
		return h.in.Set("page", p)
	}
	return nil
}

func (h *home) show(page string) vdom.Handler {
	return func(host.Event) error {
		if err := h.in.Set("page", page); err != nil {
			return err
		}
		if err := h.in.SetSearchParam("page", page); err != nil && !errors.Is(err, component.ErrNoLocation) {
			return err
		}
		return nil
	}
}

func (h *home) Render(b *component.Builder) error {
	b.Div(func() {
		b.Button(vdom.Class(buttonClass), vdom.OnClick(h.show(PageIndex)), "Go to index")
		b.Button(vdom.Class(buttonClass), vdom.OnClick(h.show(PagePage2)), "Go to page2")
		b.Button(vdom.Class(buttonClass), vdom.OnClick(h.show(PagePeople)), "Characters")

		switch page := component.Get[string](h.in, "page"); page {
		case PageIndex:
			b.Component(Index, component.Params{"heading": "Hello world"})
		case PagePage2:
			b.Component(Page2, nil)
		case PagePeople:
			b.Component(StarWarsCharacters, nil)
		default:
			b.Fail(fmt.Errorf("unknown page %q", page))
		}
	})
	return nil
}
