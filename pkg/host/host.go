// Package host defines the live document the engine reconciles against.
//
// The engine never talks to a concrete UI toolkit. It consumes the small
// set of operations below: create elements and text nodes, move them
// around, set attributes, attach listeners, and read or write a control's
// value. Timers, network fetches and the query string are host services
// too and have their own interfaces.
//
// Package memdom provides an in-memory implementation used by tests, the
// CLI, and the devtools server.
package host

import (
	"context"
	"net/url"
	"time"
)

// NodeType is the kind of a host node. Values match the DOM's nodeType.
type NodeType int

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
	CommentNode NodeType = 8
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute on an element node.
type Attr struct {
	Name  string
	Value string
}

// Event is delivered to listeners.
type Event struct {
	// Type is the event name without the "on" prefix ("click", "input").
	Type string

	// Value is the target control's value at dispatch time.
	Value string

	// Target is the node the event was dispatched on.
	Target Node
}

// Listener receives host events.
type Listener func(Event)

// Node is a live node in the host tree.
//
// Tree mutations return an error when the host rejects them, for example
// removing a node that is not a child. Attribute, listener and value
// operations on a text node are ignored.
type Node interface {
	NodeType() NodeType

	// NodeName is the lower-case tag for elements and "#text" for text.
	NodeName() string

	ParentNode() Node
	ChildNodes() []Node
	AppendChild(child Node) error
	ReplaceChild(newChild, oldChild Node) error
	RemoveChild(child Node) error

	// Attributes returns the attributes in the order they were first set.
	Attributes() []Attr
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	AddEventListener(event string, fn Listener)
	// RemoveEventListeners drops every listener registered for event.
	RemoveEventListeners(event string)
	// EventTypes lists event names that currently have listeners.
	EventTypes() []string

	// Value and SetValue access a form control's live value.
	Value() string
	SetValue(v string)

	TextContent() string
	SetTextContent(text string)
}

// Document creates nodes and exposes the mount point.
type Document interface {
	CreateElement(tag string) Node
	CreateTextNode(text string) Node

	// Body is the node the root component is mounted on.
	Body() Node
}

// Dispatcher is implemented by nodes that can synthesize events. Headless
// hosts use it to drive handlers from tests and tooling.
type Dispatcher interface {
	DispatchEvent(ev Event)
}

// Location reads and writes navigational query parameters without a reload.
type Location interface {
	Query() url.Values
	SetQueryParam(key, value string)
}

// Timers schedules a callback after a delay. The callback may run on any
// goroutine; the engine moves it back onto its run loop.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// Fetcher issues a network request and returns the body as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SystemTimers implements Timers with time.AfterFunc.
type SystemTimers struct{}

// AfterFunc implements Timers.
func (SystemTimers) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
