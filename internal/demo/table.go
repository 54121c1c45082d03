package demo

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/vdom"
)

// DefaultPageSize is used when PagedTable gets no pageSize prop.
const DefaultPageSize = 20

// Page2 shows a hundred generated rows in a PagedTable.
var Page2 = register(component.Define("Page2", func(in *component.Instance) component.Component {
	rows := make([][]string, 100)
	for i := range rows {
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(i / 2), strconv.Itoa(i / 3)}
	}
	return &page2{rows: rows}
}))

type page2 struct {
	rows [][]string
}

func (p *page2) Render(b *component.Builder) error {
	b.H1(vdom.Class("text-2xl mt-2"), "You are currently viewing Page 2")
	b.Component(PagedTable, component.Params{
		"headers": []string{"Test", "Test2", "Test3"},
		"rows":    p.rows,
	})
	return nil
}

// PagedTable renders rows one page at a time with previous and next
// buttons. New rows from the parent reset it to the first page.
var PagedTable = register(component.Define("PagedTable", func(in *component.Instance) component.Component {
	return &pagedTable{in: in}
}))

type pagedTable struct {
	in *component.Instance
}

func (t *pagedTable) Props() []string { return []string{"headers", "rows", "pageSize"} }

func (t *pagedTable) State() []component.Field {
	return []component.Field{{Name: "page", Initial: 0}}
}

func (t *pagedTable) Watchers() map[string]func(any) {
	return map[string]func(any){
		"rows": func(any) {
			if err := t.in.Set("page", 0); err != nil {
				t.in.Logger().Warn("reset page", "error", err)
			}
		},
	}
}

func (t *pagedTable) size() int {
	if n := component.Get[int](t.in, "pageSize"); n > 0 {
		return n
	}
	return DefaultPageSize
}

func (t *pagedTable) pages() int {
	rows := len(component.Get[[][]string](t.in, "rows"))
	return max((rows+t.size()-1)/t.size(), 1)
}

func (t *pagedTable) turn(delta int) vdom.Handler {
	return func(host.Event) error {
		return component.Update(t.in, "page", func(p int) int {
			return min(max(p+delta, 0), t.pages()-1)
		})
	}
}

func (t *pagedTable) Render(b *component.Builder) error {
	headers := component.Get[[]string](t.in, "headers")
	rows := component.Get[[][]string](t.in, "rows")
	page := min(component.Get[int](t.in, "page"), t.pages()-1)
	start := min(page*t.size(), len(rows))
	end := min(start+t.size(), len(rows))

	b.Table(func() {
		b.Tr(func() {
			for _, h := range headers {
				b.Th(h)
			}
		})
		for _, row := range rows[start:end] {
			b.Tr(func() {
				for _, col := range row {
					b.Td(col)
				}
			})
		}
	})
	b.P(fmt.Sprintf("Page %d of %d", page+1, t.pages()))
	b.Button(vdom.Class(buttonClass), vdom.OnClick(t.turn(-1)), "Previous page")
	b.Button(vdom.Class(buttonClass), vdom.OnClick(t.turn(1)), "Next page")
	return nil
}
