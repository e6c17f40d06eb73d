package errors

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/raptor-dev/raptor/pkg/engine"
	"github.com/raptor-dev/raptor/pkg/render"
	"github.com/raptor-dev/raptor/pkg/vdom"
	"github.com/raptor-dev/raptor/pkg/vtree"
)

// Error codes.
const (
	CodeConflictingClass  = "R001"
	CodeInvalidChild      = "R002"
	CodeUnresolvedCtor    = "R003"
	CodeDepthExceeded     = "R004"
	CodeRenderFailed      = "R005"
	CodeTooManyNodes      = "R006"
	CodeRenderCanceled    = "R007"
	CodeDocumentSyntax    = "R010"
	CodeUnknownComponent  = "R011"
	CodeInvalidNode       = "R012"
	CodeInvalidConfig     = "R020"
	CodeUploadFailed      = "R030"
	CodeMissingArgument   = "R040"
	CodeUnexpectedFailure = "R099"
)

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
	// Build Errors (R001-R009)
	// ============================================

	CodeConflictingClass: {
		Category:   CategoryBuild,
		Message:    "Conflicting class shorthands",
		Detail:     "A node sets both className and classMap. Only one of them may describe the class list of a node.",
		Suggestion: "Keep className for static lists or classMap for toggles.",
	},
	CodeInvalidChild: {
		Category:   CategoryBuild,
		Message:    "Invalid child node",
		Detail:     "Element children must be nodes or null placeholders. Strings and other values are not nodes.",
		Suggestion: "Wrap text in a text node.",
	},
	CodeUnresolvedCtor: {
		Category: CategoryBuild,
		Message:  "Component constructor could not be resolved",
		Detail:   "A component was built without a constructor, or a deferred constructor lookup returned nothing.",
	},
	CodeDepthExceeded: {
		Category:   CategoryRender,
		Message:    "Component nesting too deep",
		Detail:     "Components nest deeper than the engine allows. A component most likely renders itself.",
		Suggestion: "Check the render output of recursive components for a base case.",
	},
	CodeRenderFailed: {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The host tree could not be serialized to HTML.",
	},
	CodeTooManyNodes: {
		Category:   CategoryRender,
		Message:    "Document expands to too many nodes",
		Detail:     "Mounting the document creates more host nodes than allowed. Components that render several copies of each other multiply at every level.",
		Suggestion: "Reduce how often components repeat each other, or raise server.max_nodes.",
	},
	CodeRenderCanceled: {
		Category: CategoryRender,
		Message:  "Render canceled",
		Detail:   "The render was stopped before it finished because its request was canceled or timed out.",
	},

	// ============================================
	// Document Errors (R010-R019)
	// ============================================

	CodeDocumentSyntax: {
		Category: CategoryDocument,
		Message:  "Document could not be parsed",
		Detail:   "The tree document is not valid YAML or JSON, or a field has the wrong type.",
	},
	CodeUnknownComponent: {
		Category:   CategoryDocument,
		Message:    "Unknown component",
		Detail:     "A node refers to a component that is not declared under components.",
		Suggestion: "Declare the component or fix the ctor name.",
	},
	CodeInvalidNode: {
		Category:   CategoryDocument,
		Message:    "Invalid node",
		Detail:     "Each node must set exactly one of h, c or text.",
		Suggestion: "Use null for an empty position.",
	},

	// ============================================
	// Config, Publish and CLI Errors (R020-R099)
	// ============================================

	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file or RAPTOR_ environment variables failed validation.",
	},
	CodeUploadFailed: {
		Category:   CategoryPublish,
		Message:    "Upload failed",
		Detail:     "The rendered document could not be stored in the bucket.",
		Suggestion: "Check AWS credentials, region and bucket permissions.",
	},
	CodeMissingArgument: {
		Category: CategoryCLI,
		Message:  "Missing argument",
	},
	CodeUnexpectedFailure: {
		Category: CategoryCLI,
		Message:  "Unexpected failure",
	},
}

// FromError classifies err and wraps it in a RaptorError. Errors that
// already are RaptorErrors are returned as is.
func FromError(err error) *RaptorError {
	if err == nil {
		return nil
	}
	var re *RaptorError
	if stderrors.As(err, &re) {
		return re
	}

	e := New(Classify(err)).Wrap(err)
	var docErr *vtree.Error
	if stderrors.As(err, &docErr) {
		e.WithLocation(docErr.File, docErr.Path)
	}
	return e
}

// Classify returns the code that best describes err.
func Classify(err error) string {
	var (
		cfgErr   *vdom.ConfigurationError
		childErr *vdom.InvalidChildError
		docErr   *vtree.Error
	)
	switch {
	case stderrors.As(err, &cfgErr):
		return CodeConflictingClass
	case stderrors.As(err, &childErr):
		return CodeInvalidChild
	case stderrors.Is(err, vtree.ErrUnknownComponent):
		return CodeUnknownComponent
	case stderrors.Is(err, vdom.ErrNilCtor), stderrors.Is(err, vdom.ErrUnresolvedCtor):
		return CodeUnresolvedCtor
	case stderrors.Is(err, engine.ErrDepthExceeded):
		return CodeDepthExceeded
	case stderrors.Is(err, engine.ErrTooManyNodes):
		return CodeTooManyNodes
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return CodeRenderCanceled
	case stderrors.Is(err, render.ErrInvalidName):
		return CodeRenderFailed
	case stderrors.Is(err, vtree.ErrInvalidNode):
		return CodeInvalidNode
	case stderrors.As(err, &docErr):
		return CodeDocumentSyntax
	default:
		return CodeUnexpectedFailure
	}
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
