package vtest

import (
	"testing"
	"time"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/engine"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/host/memdom"
)

// Harness is a mounted component.
type Harness struct {
	t      testing.TB
	Doc    *memdom.Document
	Engine *engine.Engine
}

// Mount creates an engine for root on a fresh document and runs the first
// pass. Options are passed to engine.New.
func Mount(t testing.TB, root *component.Type, opts ...engine.Option) *Harness {
	t.Helper()
	h := New(t, root, opts...)
	h.Tick()
	return h
}

// New is Mount without the first pass.
func New(t testing.TB, root *component.Type, opts ...engine.Option) *Harness {
	t.Helper()
	doc := memdom.New()
	return &Harness{t: t, Doc: doc, Engine: engine.New(doc, root, opts...)}
}

// Tick runs queued tasks and a pass if one is due.
func (h *Harness) Tick() {
	h.t.Helper()
	if err := h.Engine.Tick(); err != nil {
		h.t.Fatalf("Tick: %v", err)
	}
}

// Settle ticks until nothing is queued and no pass is due, up to limit
// ticks.
func (h *Harness) Settle(limit int) {
	h.t.Helper()
	for i := 0; i < limit; i++ {
		before := h.Engine.Passes()
		h.Tick()
		if h.Engine.Passes() == before && !h.Engine.Dirty() {
			return
		}
	}
	h.t.Fatalf("not settled after %d ticks", limit)
}

// Eventually ticks until cond holds, sleeping briefly between ticks so
// fetches and timers running off the loop can post their results.
func (h *Harness) Eventually(cond func() bool, timeout time.Duration) {
	h.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		h.Tick()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			h.t.Fatalf("condition not met after %v: %s", timeout, h.HTML())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Root returns the root instance.
func (h *Harness) Root() *component.Instance {
	return h.Engine.Root()
}

// HTML returns the body's inner HTML.
func (h *Harness) HTML() string {
	return h.Doc.HTML()
}

// Find returns the first element with tag, failing the test if none.
func (h *Harness) Find(tag string) *memdom.Node {
	h.t.Helper()
	n := h.Doc.BodyNode().Find(tag)
	if n == nil {
		h.t.Fatalf("no <%s> in %s", tag, h.HTML())
	}
	return n
}

// FindAll returns every element with tag.
func (h *Harness) FindAll(tag string) []*memdom.Node {
	return h.Doc.BodyNode().FindAll(tag)
}

// Text returns the text content of the first element with tag.
func (h *Harness) Text(tag string) string {
	h.t.Helper()
	return h.Find(tag).TextContent()
}

// Dispatch fires ev on n and ticks.
func (h *Harness) Dispatch(n *memdom.Node, ev host.Event) {
	h.t.Helper()
	n.DispatchEvent(ev)
	h.Tick()
}

// Click clicks the first element with tag and ticks.
func (h *Harness) Click(tag string) {
	h.t.Helper()
	h.Dispatch(h.Find(tag), host.Event{Type: "click"})
}

// Input types value into the first element with tag and ticks.
func (h *Harness) Input(tag, value string) {
	h.t.Helper()
	h.Dispatch(h.Find(tag), host.Event{Type: "input", Value: value})
}

// Mutations returns the host mutations since the last ResetStats.
func (h *Harness) Mutations() int {
	return h.Doc.Stats().Mutations()
}

// ResetStats zeroes the document counters.
func (h *Harness) ResetStats() {
	h.Doc.ResetStats()
}
