package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryBuild    Category = "build"
	CategoryRender   Category = "render"
	CategoryDocument Category = "document"
	CategoryConfig   Category = "config"
	CategoryPublish  Category = "publish"
	CategoryCLI      Category = "cli"
)

// Location points at the place in a document that caused the error.
type Location struct {
	File string // Document file, if any
	Path string // Node path inside the document, e.g. "root.render[2]"
}

// String returns the location as "file: path".
func (l *Location) String() string {
	switch {
	case l == nil:
		return ""
	case l.File == "":
		return l.Path
	case l.Path == "":
		return l.File
	default:
		return l.File + ": " + l.Path
	}
}

// RaptorError is a structured error with a code, location and fix hint.
type RaptorError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type (build, document, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in a document the error occurred.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RaptorError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RaptorError) Unwrap() error {
	return e.Wrapped
}

// WithLocation records where in a document the error occurred.
func (e *RaptorError) WithLocation(file, path string) *RaptorError {
	e.Location = &Location{File: file, Path: path}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RaptorError) WithSuggestion(s string) *RaptorError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RaptorError) WithDetail(d string) *RaptorError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RaptorError) Wrap(err error) *RaptorError {
	e.Wrapped = err
	return e
}

// New creates a RaptorError from a registered error code.
func New(code string) *RaptorError {
	template, ok := registry[code]
	if !ok {
		return &RaptorError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RaptorError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new RaptorError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RaptorError {
	return &RaptorError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
