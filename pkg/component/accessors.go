package component

import "fmt"

// Lookup returns a state or prop value as T. A nil value yields T's zero
// value; a value of another type is an error.
func Lookup[T any](in *Instance, name string) (T, error) {
	var zero T
	v, err := in.Value(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("component: %s.%s holds %T, not %T", in.Name(), name, v, zero)
	}
	return t, nil
}

// Get is Lookup without the error: misses and type mismatches yield T's
// zero value.
func Get[T any](in *Instance, name string) T {
	v, _ := Lookup[T](in, name)
	return v
}

// Set writes a typed value to a state field.
func Set[T any](in *Instance, name string, v T) error {
	return in.Set(name, v)
}

// Update replaces a state field with fn applied to its current value.
func Update[T any](in *Instance, name string, fn func(T) T) error {
	cur, err := Lookup[T](in, name)
	if err != nil {
		return err
	}
	return in.Set(name, fn(cur))
}
