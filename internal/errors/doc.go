// Package errors provides the coded error catalogue used by the weave CLI.
//
// Library packages return plain typed errors (component.ConfigurationError,
// engine.HostMismatchError, ...). Each of those reports a catalogue code
// through an ErrorCode method; Describe maps any such error to a
// WeaveError carrying the catalogue's message, detail and hint, ready for
// terminal output.
//
// # Error Categories
//
//   - component: declaration, construction and render failures
//   - host: the live document does not look the way the engine expects
//   - engine: run loop failures
//   - config: weave.yaml problems
//   - cli: command-line usage
//
// # Usage
//
//	if err := e.Tick(); err != nil {
//	    errors.PrintError(err)
//	}
//	// Output:
//	// ERROR W105: Component render failed
//	//
//	//   Home: render: Index: render: boom
//	//
//	//   Hint: The first segment names the component whose Render failed.
package errors
