package vdom

import (
	"testing"
	"time"
)

func TestAttributeConstructors(t *testing.T) {
	tests := []struct {
		attr    Attr
		key     string
		wantStr string
	}{
		{ID("main"), "id", "main"},
		{Class("a", "b"), "class", "a b"},
		{Type("text"), "type", "text"},
		{Value(3), "value", "3"},
		{Data("row", "7"), "data-row", "7"},
		{Colspan(2), "colspan", "2"},
		{Hidden(), "hidden", ""},
		{Disabled(true), "disabled", ""},
		{A("x-custom", 1.5), "x-custom", "1.5"},
	}
	for _, tt := range tests {
		if tt.attr.Key != tt.key {
			t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
		}
		if got := tt.attr.String(); got != tt.wantStr {
			t.Errorf("%s: String() = %q, want %q", tt.key, got, tt.wantStr)
		}
	}
}

func TestDisabledFalseIsEmpty(t *testing.T) {
	if !Disabled(false).IsEmpty() {
		t.Error("Disabled(false) is not empty")
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-7), "-7"},
		{0.25, "0.25"},
		{time.Second, "1s"},
		{[]int{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		if got := AttrString(tt.in); got != tt.want {
			t.Errorf("AttrString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
