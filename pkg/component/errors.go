package component

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when reading or writing a name that is
// neither a declared state field nor a declared prop.
var ErrUnknownField = errors.New("component: unknown field")

// ErrReadOnly is returned when writing to a prop.
var ErrReadOnly = errors.New("component: props are read-only")

// ErrNoLocation is returned by query-parameter helpers when the engine has
// no host location.
var ErrNoLocation = errors.New("component: no host location configured")

// ErrorCode returns the catalogue code for the sentinel errors above, or
// "" for anything else.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownField), errors.Is(err, ErrReadOnly):
		return "W103"
	case errors.Is(err, ErrNoLocation):
		return "W106"
	}
	return ""
}

// ConfigurationError reports a declared name that collides with a reserved
// builder name or with another declared name, or a binding that refers to
// something that was never declared.
type ConfigurationError struct {
	Component string
	Name      string
	Reason    string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %q: %s", e.Component, e.Name, e.Reason)
}

// ErrorCode returns the catalogue code.
func (e *ConfigurationError) ErrorCode() string { return "W101" }

// NoReceiverError is returned by Emit when the parent supplied no handler
// for the event.
type NoReceiverError struct {
	Component string
	Event     string
}

// Error implements the error interface.
func (e *NoReceiverError) Error() string {
	return fmt.Sprintf("%s: unable to find receiver for event %q", e.Component, e.Event)
}

// ErrorCode returns the catalogue code.
func (e *NoReceiverError) ErrorCode() string { return "W102" }

// Phase names the lifecycle step an Error happened in.
type Phase string

const (
	PhaseConstruct Phase = "construct"
	PhaseSetup     Phase = "setup"
	PhaseRender    Phase = "render"
)

// Error annotates a failure with the component type and lifecycle phase.
// Nested failures chain: "Home: render: Index: setup: boom".
type Error struct {
	Component string
	Phase     Phase
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Phase, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the catalogue code.
func (e *Error) ErrorCode() string {
	if e.Phase == PhaseRender {
		return "W105"
	}
	return "W104"
}

// PanicError carries a panic recovered from author code.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func annotate(name string, phase Phase, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Component: name, Phase: phase, Err: err}
}
