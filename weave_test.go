package weave_test

import (
	"strconv"
	"testing"

	"github.com/vango-dev/weave"
	"github.com/vango-dev/weave/pkg/vtest"
)

type counter struct{ in *weave.Instance }

func (c *counter) State() []weave.Field {
	return []weave.Field{{Name: "count", Initial: 0}}
}

func (c *counter) Render(b *weave.Builder) error {
	b.Button(weave.Class("inc"), weave.OnClick(func(weave.Event) error {
		return weave.Update(c.in, "count", func(n int) int { return n + 1 })
	}), strconv.Itoa(weave.Get[int](c.in, "count")))
	return nil
}

var counterType = weave.Define("Counter", func(in *weave.Instance) weave.Component {
	return &counter{in: in}
})

func TestFacade(t *testing.T) {
	h := vtest.Mount(t, counterType)
	if got, want := h.HTML(), `<button class="inc">0</button>`; got != want {
		t.Fatalf("HTML = %q, want %q", got, want)
	}
	h.Click("button")
	h.Click("button")
	if got := h.Text("button"); got != "2" {
		t.Errorf("button = %q, want 2", got)
	}
	if n, err := weave.Lookup[int](h.Root(), "count"); err != nil || n != 2 {
		t.Errorf("Lookup = %d, %v", n, err)
	}
	if err := weave.Set(h.Root(), "count", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := weave.Lookup[int](h.Root(), "count"); err == nil {
		t.Error("Lookup of a string as int should fail")
	}
}
