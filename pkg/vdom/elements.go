package vdom

// Tags lists the container tags the builder has a constructor for.
var Tags = []string{
	"h1", "h2", "h3", "div", "span", "p", "br", "ul", "ol", "li",
	"table", "th", "tr", "td", "caption", "colgroup", "col",
	"thead", "tbody", "tfoot", "button", "input", "label", "form", "a",
}

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}
