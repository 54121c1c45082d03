package demo

import (
	"sort"

	"github.com/vango-dev/weave/pkg/component"
)

// buttonClass is shared by every navigation and pager button.
const buttonClass = "m-1 p-2 bg-red-400"

var types = map[string]*component.Type{}

func register(t *component.Type) *component.Type {
	types[t.Name()] = t
	return t
}

// Lookup returns the component type registered under name.
func Lookup(name string) (*component.Type, bool) {
	t, ok := types[name]
	return t, ok
}

// Names returns the registered component names in order.
func Names() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
