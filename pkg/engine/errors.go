package engine

import (
	"errors"
	"fmt"

	"github.com/vango-dev/weave/pkg/host"
)

// ErrRenderLoop is returned when passes keep marking the engine dirty
// without any task in between, more times in a row than the configured
// limit.
var ErrRenderLoop = errors.New("engine: render loop detected")

// ErrStopped is returned by Do once the run loop has exited.
var ErrStopped = errors.New("engine: run loop stopped")

// ErrNoFetcher is delivered to fetch callbacks when no Fetcher is
// configured.
var ErrNoFetcher = errors.New("engine: no fetcher configured")

// ErrDetachedMount is returned when a pass has to replace a host node that
// has no parent.
var ErrDetachedMount = errors.New("engine: cannot replace a node without a parent")

// ErrNoMount is returned by a pass when the document has no body to
// render into.
var ErrNoMount = errors.New("engine: document has no mount node")

// TypeConflictError is returned when a placeholder asks for a type at a
// path already registered to a different type with the same name.
type TypeConflictError struct {
	Path string
	Type string
}

// Error implements the error interface.
func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("engine: %s is registered to another component type named %s", e.Path, e.Type)
}

// ErrorCode returns the catalogue code.
func (e *TypeConflictError) ErrorCode() string { return "W204" }

// HostMismatchError is returned when the diff meets a host node that is
// neither an element nor a text node.
type HostMismatchError struct {
	NodeType host.NodeType
	NodeName string
}

// Error implements the error interface.
func (e *HostMismatchError) Error() string {
	return fmt.Sprintf("engine: unexpected host node %s (type %d, %s)", e.NodeName, int(e.NodeType), e.NodeType)
}

// ErrorCode returns the catalogue code.
func (e *HostMismatchError) ErrorCode() string { return "W201" }

// ErrorCode returns the catalogue code for the sentinel errors above, or
// "" for anything else.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRenderLoop):
		return "W202"
	case errors.Is(err, ErrStopped):
		return "W203"
	case errors.Is(err, ErrNoMount):
		return "W205"
	}
	return ""
}
