package vdom

// event creates an EventHandler with the given name and handler.
func event(name string, handler Handler) EventHandler {
	return EventHandler{Event: name, Handler: handler}
}

// On binds handler to an arbitrary event name.
func On(name string, handler Handler) EventHandler { return event(name, handler) }

// OnClick handles click events.
func OnClick(handler Handler) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler Handler) EventHandler { return event("dblclick", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler Handler) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler Handler) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler Handler) EventHandler { return event("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler Handler) EventHandler { return event("keydown", handler) }

// OnFocus handles focus events.
func OnFocus(handler Handler) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler Handler) EventHandler { return event("blur", handler) }

// Model requests a two-way binding between the element's value and the
// named state field of the component being rendered.
func Model(field string) ModelBinding {
	return ModelBinding{Field: field}
}
