package vdom

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCtor is returned when a component is built without a constructor.
	ErrNilCtor = errors.New("vdom: nil component constructor")

	// ErrUnresolvedCtor is returned when a Circular factory yields nil.
	ErrUnresolvedCtor = errors.New("vdom: circular factory returned no constructor")
)

// ConfigurationError reports a Config that sets mutually exclusive fields.
type ConfigurationError struct {
	Sel      string // Selector of the node being built
	Field    string // Offending field, e.g. "className"
	Conflict string // Field it conflicts with, e.g. "classMap"
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vdom: <%s>: %s cannot be combined with %s", e.Sel, e.Field, e.Conflict)
}

// InvalidChildError reports a child of H that is neither a *VNode nor nil.
type InvalidChildError struct {
	Sel   string
	Index int
	Type  string
}

// Error implements the error interface.
func (e *InvalidChildError) Error() string {
	return fmt.Sprintf("vdom: <%s>: child %d has invalid type %s, want *VNode or nil", e.Sel, e.Index, e.Type)
}
