package component

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/host/memdom"
	"github.com/vango-dev/weave/pkg/vdom"
)

// fakeRuntime is a minimal engine: a flat registry keyed by path string,
// a dirty counter and a task list the test drains by hand.
type fakeRuntime struct {
	dirty int
	reg   map[string]*Instance
	tasks []func() error
	loc   host.Location
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{reg: make(map[string]*Instance)}
}

func (r *fakeRuntime) MarkDirty() { r.dirty++ }

func (r *fakeRuntime) Resolve(p Path, t *Type, params Params) (*Instance, error) {
	if in, ok := r.reg[p.String()]; ok {
		return in, nil
	}
	in, err := New(r, p, t, params)
	if err != nil {
		return nil, err
	}
	r.reg[p.String()] = in
	return in, nil
}

func (r *fakeRuntime) Post(task func() error) { r.tasks = append(r.tasks, task) }

func (r *fakeRuntime) After(_ time.Duration, task func() error) func() bool {
	r.tasks = append(r.tasks, task)
	return func() bool { return true }
}

func (r *fakeRuntime) Fetch(url string, done func(string, error) error) {
	r.tasks = append(r.tasks, func() error { return done("body:"+url, nil) })
}

func (r *fakeRuntime) Location() host.Location { return r.loc }

func (r *fakeRuntime) Logger() *slog.Logger { return slog.Default() }

func (r *fakeRuntime) drain(t *testing.T) {
	t.Helper()
	for len(r.tasks) > 0 {
		task := r.tasks[0]
		r.tasks = r.tasks[1:]
		if err := task(); err != nil {
			t.Fatalf("task error: %v", err)
		}
	}
}

func mount(t *testing.T, rt *fakeRuntime, typ *Type, params Params) *Instance {
	t.Helper()
	in, err := rt.Resolve(RootPath(typ.Name()), typ, params)
	if err != nil {
		t.Fatalf("mount %s: %v", typ.Name(), err)
	}
	return in
}

// dump renders a vnode forest in a compact form: tag[attrs](children).
func dump(nodes []*vdom.VNode) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(" ")
		}
		switch n.Kind {
		case vdom.KindText:
			fmt.Fprintf(&sb, "%q", n.Text)
			continue
		case vdom.KindComponent:
			sb.WriteString("<" + n.Comp.Name() + ">")
		default:
			sb.WriteString(n.Tag)
		}
		if len(n.Props.Attrs) > 0 {
			attrs := make([]string, len(n.Props.Attrs))
			for j, a := range n.Props.Attrs {
				attrs[j] = fmt.Sprintf("%s=%q", a.Key, a.String())
			}
			sb.WriteString("[" + strings.Join(attrs, " ") + "]")
		}
		if len(n.Children) > 0 {
			sb.WriteString("(" + dump(n.Children) + ")")
		}
	}
	return sb.String()
}

// --- test components ---

type counter struct {
	in      *Instance
	watched []any
}

func (c *counter) State() []Field { return []Field{{Name: "count", Initial: 0}} }

func (c *counter) Watchers() map[string]func(any) {
	return map[string]func(any){
		"count": func(v any) { c.watched = append(c.watched, v) },
	}
}

func (c *counter) Render(b *Builder) error {
	b.Button(vdom.OnClick(c.increment), func() {
		b.Text(Get[int](c.in, "count"))
	})
	return nil
}

func (c *counter) increment(host.Event) error {
	return Update(c.in, "count", func(n int) int { return n + 1 })
}

var counterType = Define("Counter", func(in *Instance) Component { return &counter{in: in} })

type label struct {
	in      *Instance
	watched []any
}

func (l *label) Props() []string { return []string{"text_value"} }

func (l *label) Watchers() map[string]func(any) {
	return map[string]func(any){
		"text_value": func(v any) { l.watched = append(l.watched, v) },
	}
}

func (l *label) Render(b *Builder) error {
	b.Span(fmt.Sprint(l.in.Prop("text_value")))
	return nil
}

var labelType = Define("Label", func(in *Instance) Component { return &label{in: in} })

type parent struct{ in *Instance }

func (p *parent) State() []Field { return []Field{{Name: "text_value", Initial: "a"}} }

func (p *parent) Render(b *Builder) error {
	b.Div(func() {
		b.Component(labelType, Params{"text_value": Get[string](p.in, "text_value")})
	})
	return nil
}

var parentType = Define("Parent", func(in *Instance) Component { return &parent{in: in} })

type funcComponent struct {
	props  []string
	state  []Field
	setup  func() error
	render func(b *Builder) error
}

func (f *funcComponent) Props() []string { return f.props }
func (f *funcComponent) State() []Field { return f.state }
func (f *funcComponent) Setup() error {
	if f.setup != nil {
		return f.setup()
	}
	return nil
}
func (f *funcComponent) Render(b *Builder) error {
	if f.render != nil {
		return f.render(b)
	}
	return nil
}

func define(name string, f *funcComponent) *Type {
	return Define(name, func(*Instance) Component { return f })
}

// --- tests ---

func TestDefinePanicsOnEmptyName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Define(\"\") did not panic")
		}
	}()
	Define("", func(*Instance) Component { return nil })
}

func TestNewBindsPropsAndState(t *testing.T) {
	rt := newFakeRuntime()
	typ := define("Box", &funcComponent{
		props: []string{"title"},
		state: []Field{{Name: "open", Initial: true}},
	})
	in := mount(t, rt, typ, Params{"title": "hello", "ignored": 1})

	if got := in.Prop("title"); got != "hello" {
		t.Errorf("Prop(title) = %v, want hello", got)
	}
	if got := Get[bool](in, "open"); !got {
		t.Errorf("open = %v, want true", got)
	}
	if diff := cmp.Diff([]string{"title"}, in.PropNames()); diff != "" {
		t.Errorf("PropNames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"open"}, in.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"title": "hello", "open": true}, in.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		comp *funcComponent
	}{
		{"reserved prop", &funcComponent{props: []string{"div"}}},
		{"reserved state", &funcComponent{state: []Field{{Name: "text"}}}},
		{"duplicate", &funcComponent{props: []string{"x"}, state: []Field{{Name: "x"}}}},
		{"empty", &funcComponent{state: []Field{{Name: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newFakeRuntime(), RootPath("Bad"), define("Bad", tt.comp), nil)
			var cfg *ConfigurationError
			if !errors.As(err, &cfg) {
				t.Fatalf("New() error = %v, want ConfigurationError", err)
			}
			var ce *Error
			if !errors.As(err, &ce) || ce.Component != "Bad" || ce.Phase != PhaseConstruct {
				t.Errorf("New() error = %v, want annotated with Bad/construct", err)
			}
		})
	}
}

type badWatcher struct{ funcComponent }

func (badWatcher) Watchers() map[string]func(any) {
	return map[string]func(any){"missing": func(any) {}}
}

func TestNewRejectsWatcherForUndeclaredField(t *testing.T) {
	typ := Define("W", func(*Instance) Component { return &badWatcher{} })
	_, err := New(newFakeRuntime(), RootPath("W"), typ, nil)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) || cfg.Name != "missing" {
		t.Fatalf("New() error = %v, want ConfigurationError for missing", err)
	}
}

func TestSetupErrorIsAnnotated(t *testing.T) {
	boom := errors.New("boom")
	typ := define("Fails", &funcComponent{setup: func() error { return boom }})
	_, err := New(newFakeRuntime(), RootPath("Fails"), typ, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("New() error = %v, want boom", err)
	}
	if got, want := err.Error(), "Fails: setup: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSetEqualValueIsNoOp(t *testing.T) {
	rt := newFakeRuntime()
	in := mount(t, rt, counterType, nil)
	c := in.Impl().(*counter)

	if err := in.Set("count", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if rt.dirty != 0 {
		t.Errorf("dirty = %d after equal write, want 0", rt.dirty)
	}
	if len(c.watched) != 0 {
		t.Errorf("watch hook ran %d times after equal write, want 0", len(c.watched))
	}

	if err := in.Set("count", 5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if rt.dirty != 1 {
		t.Errorf("dirty = %d, want 1", rt.dirty)
	}
	if diff := cmp.Diff([]any{5}, c.watched); diff != "" {
		t.Errorf("watched mismatch (-want +got):\n%s", diff)
	}
}

func TestSetErrors(t *testing.T) {
	rt := newFakeRuntime()
	typ := define("Ro", &funcComponent{props: []string{"p"}})
	in := mount(t, rt, typ, Params{"p": 1})

	if err := in.Set("p", 2); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set(prop) = %v, want ErrReadOnly", err)
	}
	if err := in.Set("nope", 2); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(unknown) = %v, want ErrUnknownField", err)
	}
	if _, err := in.Value("nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Value(unknown) = %v, want ErrUnknownField", err)
	}
	if got := ErrorCode(fmt.Errorf("wrap: %w", ErrReadOnly)); got != "W103" {
		t.Errorf("ErrorCode = %q, want W103", got)
	}
}

func TestAccessors(t *testing.T) {
	rt := newFakeRuntime()
	typ := define("Acc", &funcComponent{state: []Field{
		{Name: "n", Initial: 3},
		{Name: "s", Initial: nil},
	}})
	in := mount(t, rt, typ, nil)

	if got := Get[int](in, "n"); got != 3 {
		t.Errorf("Get[int] = %d, want 3", got)
	}
	if got := Get[string](in, "n"); got != "" {
		t.Errorf("Get[string] on int = %q, want zero", got)
	}
	if _, err := Lookup[string](in, "n"); err == nil {
		t.Error("Lookup[string] on int: want error")
	}
	if got, err := Lookup[string](in, "s"); err != nil || got != "" {
		t.Errorf("Lookup on nil = %q, %v; want \"\", nil", got, err)
	}
	if err := Update(in, "n", func(n int) int { return n * 2 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := Get[int](in, "n"); got != 6 {
		t.Errorf("after Update n = %d, want 6", got)
	}
	if err := Set(in, "s", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get[string](in, "s"); got != "x" {
		t.Errorf("s = %q, want x", got)
	}
}

func TestEmit(t *testing.T) {
	rt := newFakeRuntime()
	var got []any
	typ := define("Emitter", &funcComponent{})
	in := mount(t, rt, typ, Params{
		"picked": Receiver(func(p any) error { got = append(got, p); return nil }),
		"plain":  func(p any) error { got = append(got, p); return nil },
	})

	if err := in.Emit("picked", 1); err != nil {
		t.Fatalf("Emit(picked): %v", err)
	}
	if err := in.Emit("plain", 2); err != nil {
		t.Fatalf("Emit(plain): %v", err)
	}
	if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}

	err := in.Emit("missing", nil)
	var nr *NoReceiverError
	if !errors.As(err, &nr) || nr.Event != "missing" || nr.Component != "Emitter" {
		t.Errorf("Emit(missing) = %v, want NoReceiverError", err)
	}
}

func TestRenderBuildsTree(t *testing.T) {
	rt := newFakeRuntime()
	typ := define("Page", &funcComponent{
		state: []Field{{Name: "query", Initial: "go"}},
		render: func(b *Builder) error {
			b.H1("Title")
			b.Div(vdom.Class("row"), func() {
				b.Input(vdom.Type("text"), vdom.Model("query"))
				b.Br()
				b.Text(42)
			})
			return nil
		},
	})
	in := mount(t, rt, typ, nil)

	nodes, err := in.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `h1("Title") div[class="row"](input[type="text"] br "42")`
	if got := dump(nodes); got != want {
		t.Errorf("tree = %s\nwant   %s", got, want)
	}

	input := nodes[1].Children[0]
	if input.Props.Model == nil || input.Props.Model.Value != "go" {
		t.Fatalf("model = %+v, want value go", input.Props.Model)
	}
	if err := input.Props.Model.Set("rust"); err != nil {
		t.Fatalf("model Set: %v", err)
	}
	if got := Get[string](in, "query"); got != "rust" {
		t.Errorf("query = %q, want rust", got)
	}
	if in.Renders() != 1 {
		t.Errorf("Renders = %d, want 1", in.Renders())
	}
}

func TestRenderRecordsBuilderErrors(t *testing.T) {
	tests := []struct {
		name   string
		render func(b *Builder) error
		want   string
	}{
		{
			name:   "void with children",
			render: func(b *Builder) error { b.Input("x"); return nil },
			want:   "void element",
		},
		{
			name:   "unsupported arg",
			render: func(b *Builder) error { b.Div(3.5); return nil },
			want:   "unsupported argument",
		},
		{
			name:   "two blocks",
			render: func(b *Builder) error { b.Div(func() {}, func() {}); return nil },
			want:   "more than one child block",
		},
		{
			name:   "undeclared model",
			render: func(b *Builder) error { b.Input(vdom.Model("nope")); return nil },
			want:   "undeclared state field",
		},
		{
			name:   "explicit",
			render: func(b *Builder) error { return errors.New("explicit") },
			want:   "explicit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mount(t, newFakeRuntime(), define("R", &funcComponent{render: tt.render}), nil)
			_, err := in.Render()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Render() error = %v, want containing %q", err, tt.want)
			}
			var ce *Error
			if !errors.As(err, &ce) || ce.Phase != PhaseRender || ce.Component != "R" {
				t.Errorf("Render() error = %v, want annotated R/render", err)
			}
		})
	}
}

func TestRenderRecoversPanic(t *testing.T) {
	in := mount(t, newFakeRuntime(), define("P", &funcComponent{
		render: func(b *Builder) error { panic("kaboom") },
	}), nil)
	_, err := in.Render()
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "kaboom" {
		t.Fatalf("Render() error = %v, want PanicError", err)
	}
}

func TestComponentOrdinalCountsSiblings(t *testing.T) {
	rt := newFakeRuntime()
	note, banner := false, false
	typ := define("Host", &funcComponent{render: func(b *Builder) error {
		if banner {
			b.P("banner")
		}
		b.Div(func() {
			if note {
				b.Text("note")
			}
			b.Span("x")
		})
		b.Component(counterType, nil)
		b.Div(func() {
			b.Component(counterType, nil)
		})
		return nil
	}})
	in := mount(t, rt, typ, nil)
	render := func() {
		t.Helper()
		if _, err := in.Render(); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}

	render()
	top, nested := rt.reg["Host[0]/Counter[1]"], rt.reg["Host[0]/Counter[2.0]"]
	if top == nil || nested == nil || len(rt.reg) != 3 {
		t.Fatalf("registry = %v, want Host[0], Counter[1], Counter[2.0]", keys(rt.reg))
	}
	if err := top.Set("count", 5); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Nodes added inside an earlier sibling's block leave identities alone.
	note = true
	render()
	if rt.reg["Host[0]/Counter[1]"] != top || rt.reg["Host[0]/Counter[2.0]"] != nested || len(rt.reg) != 3 {
		t.Fatalf("registry changed: %v", keys(rt.reg))
	}
	if got := Get[int](top, "count"); got != 5 {
		t.Errorf("count = %d, want 5", got)
	}

	// A new sibling before them shifts both ordinals.
	banner = true
	render()
	shifted := rt.reg["Host[0]/Counter[2]"]
	if shifted == nil || rt.reg["Host[0]/Counter[3.0]"] == nil || len(rt.reg) != 5 {
		t.Fatalf("registry = %v, want shifted counters", keys(rt.reg))
	}
	if got := Get[int](shifted, "count"); got != 0 {
		t.Errorf("shifted count = %d, want 0", got)
	}
}

func TestComponentsInRowsKeepDistinctIdentities(t *testing.T) {
	rt := newFakeRuntime()
	typ := define("List", &funcComponent{render: func(b *Builder) error {
		b.Ul(func() {
			for i := 0; i < 3; i++ {
				b.Li(func() {
					b.Component(counterType, nil)
				})
			}
		})
		return nil
	}})
	in := mount(t, rt, typ, nil)
	if _, err := in.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, k := range []string{"List[0]/Counter[0.0.0]", "List[0]/Counter[0.1.0]", "List[0]/Counter[0.2.0]"} {
		if rt.reg[k] == nil {
			t.Errorf("registry has no %s: %v", k, keys(rt.reg))
		}
	}
}

func keys(m map[string]*Instance) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestParentStateForwardsToChildProp(t *testing.T) {
	rt := newFakeRuntime()
	p := mount(t, rt, parentType, nil)
	nodes, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := dump(nodes), `div(<Label>(span("a")))`; got != want {
		t.Fatalf("tree = %s, want %s", got, want)
	}

	child := rt.reg["Parent[0]/Label[0]"]
	if child == nil {
		t.Fatalf("child not registered: %v", keys(rt.reg))
	}
	if err := p.Set("text_value", "b"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := child.Prop("text_value"); got != "b" {
		t.Errorf("child prop = %v, want b", got)
	}
	if diff := cmp.Diff([]any{"b"}, child.Impl().(*label).watched); diff != "" {
		t.Errorf("child watch mismatch (-want +got):\n%s", diff)
	}
}

func TestChildModelBinding(t *testing.T) {
	rt := newFakeRuntime()
	field := define("Field", &funcComponent{render: func(b *Builder) error {
		b.Input(vdom.OnInput(func(ev host.Event) error {
			return b.Instance().Emit("input", ev.Value)
		}))
		return nil
	}})
	form := define("Form", &funcComponent{
		state: []Field{{Name: "name", Initial: ""}},
		render: func(b *Builder) error {
			b.Component(field, Params{"model": "name"})
			return nil
		},
	})
	in := mount(t, rt, form, nil)
	nodes, err := in.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	handler, ok := nodes[0].Children[0].Props.Handler("input")
	if !ok {
		t.Fatal("input handler missing")
	}
	if err := handler(host.Event{Type: "input", Value: "abc"}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := Get[string](in, "name"); got != "abc" {
		t.Errorf("name = %q, want abc", got)
	}
}

func TestChildModelBindingRequiresState(t *testing.T) {
	rt := newFakeRuntime()
	form := define("Form", &funcComponent{render: func(b *Builder) error {
		b.Component(counterType, Params{"model": "missing"})
		return nil
	}})
	_, err := mount(t, rt, form, nil).Render()
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("Render() error = %v, want ConfigurationError", err)
	}
}

func TestNestedErrorChain(t *testing.T) {
	rt := newFakeRuntime()
	inner := define("Inner", &funcComponent{setup: func() error { return errors.New("boom") }})
	outer := define("Outer", &funcComponent{render: func(b *Builder) error {
		b.Component(inner, nil)
		return nil
	}})
	_, err := mount(t, rt, outer, nil).Render()
	if got, want := fmt.Sprint(err), "Outer: render: Inner: setup: boom"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestTimersAndFetchRunThroughRuntime(t *testing.T) {
	rt := newFakeRuntime()
	var got []string
	var self *Instance
	typ := Define("Async", func(in *Instance) Component {
		self = in
		return &funcComponent{setup: func() error {
			in.SetTimeout(time.Second, func() error {
				got = append(got, "timeout")
				return nil
			})
			in.Fetch("https://example.test/x", func(body string, err error) error {
				got = append(got, body)
				return err
			})
			return nil
		}}
	})
	mount(t, rt, typ, nil)
	if len(got) != 0 {
		t.Fatalf("callbacks ran before the loop: %v", got)
	}
	rt.drain(t)
	if diff := cmp.Diff([]string{"timeout", "body:https://example.test/x"}, got); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if self == nil {
		t.Fatal("factory did not run")
	}
}

func TestSearchParams(t *testing.T) {
	rt := newFakeRuntime()
	in := mount(t, rt, define("Q", &funcComponent{}), nil)

	if got := in.SearchParams(); len(got) != 0 {
		t.Errorf("SearchParams without location = %v, want empty", got)
	}
	if err := in.SetSearchParam("page", "2"); !errors.Is(err, ErrNoLocation) {
		t.Errorf("SetSearchParam without location = %v, want ErrNoLocation", err)
	}

	loc := memdom.NewLocation("http://localhost/?page=1")
	rt.loc = loc
	if got := in.SearchParams().Get("page"); got != "1" {
		t.Errorf("page = %q, want 1", got)
	}
	if err := in.SetSearchParam("page", "3"); err != nil {
		t.Fatalf("SetSearchParam: %v", err)
	}
	if got := loc.Query().Get("page"); got != "3" {
		t.Errorf("location page = %q, want 3", got)
	}
}

func TestBuilderHasMethodForEveryTag(t *testing.T) {
	bt := reflect.TypeOf(&Builder{})
	for _, tag := range vdom.Tags {
		name := strings.ToUpper(tag[:1]) + tag[1:]
		if _, ok := bt.MethodByName(name); !ok {
			t.Errorf("Builder has no %s method for <%s>", name, tag)
		}
		if !IsReserved(tag) {
			t.Errorf("IsReserved(%q) = false", tag)
		}
	}
}
