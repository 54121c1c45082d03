package host

import (
	"html"
	"strings"
)

// voidTags are elements serialized without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// OuterHTML serializes node and its subtree. Attribute order follows
// Attributes(). The live control value is not part of the output.
func OuterHTML(node Node) string {
	var sb strings.Builder
	writeHTML(&sb, node)
	return sb.String()
}

// InnerHTML serializes the children of node.
func InnerHTML(node Node) string {
	var sb strings.Builder
	for _, child := range node.ChildNodes() {
		writeHTML(&sb, child)
	}
	return sb.String()
}

func writeHTML(sb *strings.Builder, node Node) {
	if node == nil {
		return
	}
	switch node.NodeType() {
	case TextNode:
		sb.WriteString(html.EscapeString(node.TextContent()))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(node.TextContent())
		sb.WriteString("-->")
	case ElementNode:
		tag := node.NodeName()
		sb.WriteByte('<')
		sb.WriteString(tag)
		for _, a := range node.Attributes() {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Value))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if voidTags[tag] {
			return
		}
		for _, child := range node.ChildNodes() {
			writeHTML(sb, child)
		}
		sb.WriteString("</")
		sb.WriteString(tag)
		sb.WriteByte('>')
	}
}

// NodeAt follows child indices from root. It returns nil when an index is
// out of range.
func NodeAt(root Node, path []int) Node {
	n := root
	for _, i := range path {
		if n == nil {
			return nil
		}
		children := n.ChildNodes()
		if i < 0 || i >= len(children) {
			return nil
		}
		n = children[i]
	}
	return n
}
