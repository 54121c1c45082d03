// Package reactive provides the value cell that backs component state.
//
// A Cell holds a single value and a change callback. Writing a value that
// differs from the stored one stores it and then calls the callback
// synchronously, before Set returns. Writing an equal value does nothing,
// which is what stops a callback that writes the same value back from
// looping.
//
// Cells are not safe for concurrent use. They are owned by a component and
// only touched from the engine's run loop.
//
//	count := reactive.NewCell(0, func(v int) {
//	    fmt.Println("count is now", v)
//	})
//	count.Set(1) // prints
//	count.Set(1) // no-op
package reactive
