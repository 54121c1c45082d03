// Package memdom is an in-memory host document.
//
// It behaves like the subset of the browser DOM that the engine uses and
// counts every mutating call so tests can assert on exactly what a render
// pass did. A Document is not safe for concurrent use; drive it from the
// engine's run loop.
package memdom

import (
	"errors"
	"strings"

	"github.com/vango-dev/weave/pkg/host"
)

// ErrNotChild is returned when a tree operation names a node that is not a
// child of the receiver.
var ErrNotChild = errors.New("memdom: node is not a child of this node")

// ErrHierarchy is returned when an insertion would create a cycle or
// target a text node.
var ErrHierarchy = errors.New("memdom: hierarchy request error")

// Stats counts calls made against a document's nodes.
type Stats struct {
	Created          int
	Appended         int
	Replaced         int
	Removed          int
	AttrsSet         int
	AttrsRemoved     int
	TextSet          int
	ValuesSet        int
	ListenersAdded   int
	ListenersRemoved int
}

// Mutations is the number of calls that change the tree, attributes, text
// or control values. Listener bookkeeping and node creation are excluded.
func (s Stats) Mutations() int {
	return s.Appended + s.Replaced + s.Removed + s.AttrsSet + s.AttrsRemoved + s.TextSet + s.ValuesSet
}

// Document is an in-memory host.Document.
type Document struct {
	body  *Node
	stats Stats
}

var _ host.Document = (*Document)(nil)

// New creates a document with an empty body.
func New() *Document {
	d := &Document{}
	d.body = &Node{doc: d, typ: host.ElementNode, name: "body"}
	return d
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Node {
	d.stats.Created++
	return &Node{doc: d, typ: host.ElementNode, name: strings.ToLower(tag)}
}

// CreateTextNode implements host.Document.
func (d *Document) CreateTextNode(text string) host.Node {
	d.stats.Created++
	return &Node{doc: d, typ: host.TextNode, name: "#text", text: text}
}

// CreateComment creates a comment node. The engine never creates these;
// they exist so tests can plant foreign nodes in the tree.
func (d *Document) CreateComment(text string) *Node {
	d.stats.Created++
	return &Node{doc: d, typ: host.CommentNode, name: "#comment", text: text}
}

// Body implements host.Document.
func (d *Document) Body() host.Node {
	return d.body
}

// BodyNode returns the body as a concrete *Node.
func (d *Document) BodyNode() *Node {
	return d.body
}

// Stats returns the counters accumulated since creation or the last Reset.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

// HTML serializes the body's children.
func (d *Document) HTML() string {
	return host.InnerHTML(d.body)
}
