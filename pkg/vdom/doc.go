// Package vdom describes the element tree a component renders.
//
// A VNode is one of three kinds: an element container with a tag,
// properties and ordered children; a text leaf; or a component placeholder
// that stands in for a nested component instance and carries that
// instance's rendered children. Trees are rebuilt from scratch on every
// render pass and are never mutated once built.
//
// # Properties
//
// Props holds the static attributes, the event handlers and at most one
// two-way model binding of an element:
//
//	Class("m-1 p-2"), ID("next"), OnClick(next), Model("query")
//
// Attribute values of any type are rendered with AttrString.
//
// Trees are built through component.Builder; this package only defines the
// node types and the property constructors.
package vdom
