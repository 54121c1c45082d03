package engine

import (
	"testing"

	"github.com/vango-dev/weave/pkg/component"
)

func TestRegistry(t *testing.T) {
	var r registry
	root := component.RootPath("Home")
	a := root.Child("Index", 2)
	b := root.Child("Index", 1)

	// Instances are opaque to the registry; zero values are enough.
	ra, rb, rr := &component.Instance{}, &component.Instance{}, &component.Instance{}

	if r.get(a) != nil {
		t.Fatal("get on empty registry returned an instance")
	}
	r.put(a, ra)
	r.put(b, rb)
	r.put(root, rr)

	if r.get(root.Child("Index", 2)) != ra {
		t.Error("structurally equal path did not resolve")
	}
	if r.get(root.Child("Other", 2)) != nil {
		t.Error("different type resolved")
	}
	if r.len() != 3 {
		t.Errorf("len = %d, want 3", r.len())
	}
	r.put(a, ra)
	if r.len() != 3 {
		t.Errorf("len after re-put = %d, want 3", r.len())
	}

	var order []*component.Instance
	r.walk(func(in *component.Instance) { order = append(order, in) })
	if len(order) != 3 || order[0] != rr || order[1] != rb || order[2] != ra {
		t.Errorf("walk order wrong")
	}
}
