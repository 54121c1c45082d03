package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr represents a single static attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// String returns the attribute value as the host will see it.
func (a Attr) String() string {
	return AttrString(a.Value)
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v any) Attr { return attr("value", v) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// PlaceholderAttr sets the placeholder attribute.
func PlaceholderAttr(text string) Attr { return attr("placeholder", text) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Colspan sets the colspan attribute of a table cell.
func Colspan(n int) Attr { return attr("colspan", n) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Disabled sets the disabled attribute. A false value yields an empty Attr
// that the builder skips.
func Disabled(disabled bool) Attr {
	if !disabled {
		return Attr{}
	}
	return attr("disabled", "")
}

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", "") }

// AttrString converts an attribute value to its host string form.
func AttrString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
