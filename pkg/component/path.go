package component

import (
	"strconv"
	"strings"
)

// Segment is one step of an identity path. Ordinal is the placeholder's
// position among its siblings. Slot holds the dot-separated sibling
// positions of the containers between the parent component's top level
// and the placeholder; it is empty for a top-level placeholder.
type Segment struct {
	Type    string
	Slot    string
	Ordinal int
}

// String returns "Type[ordinal]", or "Type[slot.ordinal]" for a
// placeholder nested in containers.
func (s Segment) String() string {
	if s.Slot == "" {
		return s.Type + "[" + strconv.Itoa(s.Ordinal) + "]"
	}
	return s.Type + "[" + s.Slot + "." + strconv.Itoa(s.Ordinal) + "]"
}

// Position returns the container positions followed by the ordinal.
func (s Segment) Position() []int {
	var out []int
	if s.Slot != "" {
		for _, f := range strings.Split(s.Slot, ".") {
			n, _ := strconv.Atoi(f)
			out = append(out, n)
		}
	}
	return append(out, s.Ordinal)
}

// Path identifies a component instance structurally, root first.
type Path []Segment

// RootPath returns the path of a root component of the given type.
func RootPath(typeName string) Path {
	return Path{{Type: typeName}}
}

// Child returns a new path extending p with a top-level placeholder. It
// never aliases p's storage.
func (p Path) Child(typeName string, ordinal int) Path {
	return p.ChildAt(nil, typeName, ordinal)
}

// ChildAt is Child for a placeholder nested in containers at the given
// sibling positions.
func (p Path) ChildAt(slot []int, typeName string, ordinal int) Path {
	seg := Segment{Type: typeName, Ordinal: ordinal}
	if len(slot) > 0 {
		parts := make([]string, len(slot))
		for i, n := range slot {
			parts[i] = strconv.Itoa(n)
		}
		seg.Slot = strings.Join(parts, ".")
	}
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment, or the zero Segment for an empty path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// Equal reports whether p and q have the same segments.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String is for display only; identity comparisons use Equal.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
