package engine

import (
	"slices"
	"sort"

	"github.com/vango-dev/weave/pkg/component"
)

// registry maps identity paths to instances. It is a trie over path
// segments, so lookups compare segments structurally and never build a
// string key. Entries are never removed.
type registry struct {
	root trieNode
	size int
}

type trieNode struct {
	inst     *component.Instance
	children map[component.Segment]*trieNode
}

func (r *registry) get(p component.Path) *component.Instance {
	n := &r.root
	for _, seg := range p {
		next, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = next
	}
	return n.inst
}

func (r *registry) put(p component.Path, in *component.Instance) {
	n := &r.root
	for _, seg := range p {
		if n.children == nil {
			n.children = make(map[component.Segment]*trieNode)
		}
		next, ok := n.children[seg]
		if !ok {
			next = &trieNode{}
			n.children[seg] = next
		}
		n = next
	}
	if n.inst == nil {
		r.size++
	}
	n.inst = in
}

func (r *registry) len() int {
	return r.size
}

// walk visits instances in pre-order, siblings ordered by position then
// type name.
func (r *registry) walk(fn func(*component.Instance)) {
	r.root.walk(fn)
}

func (n *trieNode) walk(fn func(*component.Instance)) {
	if n.inst != nil {
		fn(n.inst)
	}
	segs := make([]component.Segment, 0, len(n.children))
	for s := range n.children {
		segs = append(segs, s)
	}
	sort.Slice(segs, func(i, j int) bool {
		if c := slices.Compare(segs[i].Position(), segs[j].Position()); c != 0 {
			return c < 0
		}
		return segs[i].Type < segs[j].Type
	})
	for _, s := range segs {
		n.children[s].walk(fn)
	}
}
