package reactive

import "reflect"

// Cell is a value holder that notifies a callback when its value changes.
type Cell[T any] struct {
	// value is the current value.
	value T

	// onChange is called after value has been replaced.
	onChange func(T)

	// equal decides whether a write is a change. Nil means Equal.
	equal func(T, T) bool
}

// NewCell creates a cell holding initial. onChange may be nil.
func NewCell[T any](initial T, onChange func(T)) *Cell[T] {
	return &Cell[T]{
		value:    initial,
		onChange: onChange,
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores value and calls the change callback if value differs from the
// current one. It reports whether the value changed.
func (c *Cell[T]) Set(value T) bool {
	if c.equals(c.value, value) {
		return false
	}
	c.value = value
	if c.onChange != nil {
		c.onChange(value)
	}
	return true
}

// Update replaces the value with fn applied to the current value.
// It follows the same change rules as Set.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.value))
}

// WithEquals returns the cell configured with a custom equality function.
// Useful when Equal is too expensive or has the wrong semantics for T.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.equal = fn
	return c
}

func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return Equal(a, b)
}

// Equal is the default equality used by cells.
//
// Values of different dynamic types are never equal. Scalars and strings
// compare with ==; slices, maps, structs and everything else fall back to
// reflect.DeepEqual. Functions are only equal when both are nil.
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}

	switch x := av.(type) {
	case int:
		y, ok := bv.(int)
		return ok && x == y
	case int64:
		y, ok := bv.(int64)
		return ok && x == y
	case float64:
		y, ok := bv.(float64)
		return ok && x == y
	case string:
		y, ok := bv.(string)
		return ok && x == y
	case bool:
		y, ok := bv.(bool)
		return ok && x == y
	}

	ta, tb := reflect.TypeOf(av), reflect.TypeOf(bv)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Complex64, reflect.Complex128, reflect.Pointer,
		reflect.Chan:
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
