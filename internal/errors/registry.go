package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Component Errors (W101-W199)
	// ============================================

	"W101": {
		Category:   CategoryComponent,
		Message:    "Invalid component declaration",
		Detail:     "A prop or state name collides with a builder method or another declared name, or a binding refers to a field that was never declared.",
		Suggestion: "Rename the field, or declare it in State() before binding it with Model.",
	},
	"W102": {
		Category:   CategoryComponent,
		Message:    "No receiver for emitted event",
		Detail:     "A component emitted an event its parent did not pass a handler for.",
		Suggestion: "Pass a component.Receiver under the event name in the child's Params.",
	},
	"W103": {
		Category:   CategoryComponent,
		Message:    "Unknown or read-only field",
		Detail:     "A component read or wrote a name that is not declared, or wrote to a prop.",
		Suggestion: "Props are read-only; copy the value into state to change it.",
	},
	"W104": {
		Category:   CategoryComponent,
		Message:    "Component construction failed",
		Detail:     "A component failed while binding props and state or in Setup.",
		Suggestion: "The first segment of the message names the component that failed.",
	},
	"W105": {
		Category:   CategoryComponent,
		Message:    "Component render failed",
		Detail:     "A component returned an error or misused the builder during Render.",
		Suggestion: "The first segment names the component whose Render failed.",
	},
	"W106": {
		Category:   CategoryComponent,
		Message:    "No host location configured",
		Detail:     "Query parameters were written but the engine has no location.",
		Suggestion: "Pass engine.WithLocation when creating the engine.",
	},

	// ============================================
	// Host and Engine Errors (W201-W299)
	// ============================================

	"W201": {
		Category:   CategoryHost,
		Message:    "Unexpected host node",
		Detail:     "The mount point contains a node that is neither an element nor text, such as a comment inserted by something else.",
		Suggestion: "Leave the mount node to the engine, or mount on an empty node.",
	},
	"W202": {
		Category:   CategoryEngine,
		Message:    "Render loop detected",
		Detail:     "Render passes kept writing state that scheduled another pass.",
		Suggestion: "Move state writes out of Render and into handlers, watchers or Setup.",
	},
	"W203": {
		Category: CategoryEngine,
		Message:  "Engine stopped",
		Detail:   "The run loop has exited; no further work can be queued.",
	},
	"W204": {
		Category:   CategoryEngine,
		Message:    "Component type conflict",
		Detail:     "Two distinct component types share a name, and one was placed where the other is already registered.",
		Suggestion: "Give every component type a unique name in Define.",
	},
	"W205": {
		Category:   CategoryHost,
		Message:    "No mount node",
		Detail:     "The host document returned no body to render into.",
		Suggestion: "Make sure the document is ready before starting the engine.",
	},

	// ============================================
	// Configuration Errors (W301-W399)
	// ============================================

	"W301": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Detail:     "weave.yaml could not be parsed.",
		Suggestion: "Check that weave.yaml is valid YAML.",
	},
	"W302": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create weave.yaml in the project root, or pass --config.",
	},
	"W303": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI Errors (W401-W499)
	// ============================================

	"W401": {
		Category:   CategoryCLI,
		Message:    "Unknown component",
		Suggestion: "Run 'weave components' to list the available components.",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
