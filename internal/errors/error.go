package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryComponent Category = "component"
	CategoryHost      Category = "host"
	CategoryEngine    Category = "engine"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Location represents a position in a file, such as a line in weave.yaml.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// WeaveError is a structured error with an optional location and a hint.
type WeaveError struct {
	// Code is a unique error identifier (e.g., "W101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to.
	Location *Location

	// Context contains surrounding lines of the file.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error

	contextStart int
}

// Error implements the error interface.
func (e *WeaveError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WeaveError) Unwrap() error {
	return e.Wrapped
}

// ErrorCode returns the catalogue code.
func (e *WeaveError) ErrorCode() string {
	return e.Code
}

// WithLocation adds a file location to the error.
func (e *WeaveError) WithLocation(file string, line, column int) *WeaveError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.contextStart = max(line-contextSize/2, 1)
	e.Context = readContextLines(file, e.contextStart, line+contextSize/2)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WeaveError) WithSuggestion(s string) *WeaveError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WeaveError) WithDetail(d string) *WeaveError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WeaveError) Wrap(err error) *WeaveError {
	e.Wrapped = err
	return e
}

// contextSize is the number of lines shown around a location.
const contextSize = 5

// readContextLines reads lines startLine through endLine from a file.
func readContextLines(filename string, startLine, endLine int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a WeaveError from a registered error code.
func New(code string) *WeaveError {
	template, ok := registry[code]
	if !ok {
		return &WeaveError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WeaveError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new WeaveError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WeaveError {
	return &WeaveError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WeaveError.
func FromError(err error, code string) *WeaveError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WeaveError); ok {
		return we
	}
	return New(code).Wrap(err)
}
