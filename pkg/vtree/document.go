// Package vtree decodes declarative tree documents and builds them with the
// vdom builders.
//
// A document is plain data in YAML or JSON. It declares components and a
// root element; there are no expressions or bindings:
//
//	components:
//	  x-card:
//	    forceTagName: section
//	    render:
//	      - h: h2
//	        className: title
//	        children: [{text: Card}]
//	      - null
//	      - c: x-badge
//	  x-badge:
//	    render: [{h: span, children: [{text: new}]}]
//	root:
//	  tag: x-app
//	  is: x-card
//
// Component references are resolved through vdom.Circular factories, so
// components may refer to each other in any order.
package vtree

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var (
	// ErrUnknownComponent is returned for references to undeclared components.
	ErrUnknownComponent = errors.New("vtree: unknown component")

	// ErrInvalidNode is returned for nodes that are not exactly one of h, c
	// or text.
	ErrInvalidNode = errors.New("vtree: node must set exactly one of h, c or text")
)

// Error locates a failure inside a document.
type Error struct {
	File string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := e.Path
	if e.File != "" {
		loc = e.File + ": " + loc
	}
	if loc == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Document is a decoded tree document.
type Document struct {
	Components map[string]*ComponentSpec `yaml:"components,omitempty"`
	Root       RootSpec                  `yaml:"root"`

	file string
}

// ComponentSpec declares a component.
type ComponentSpec struct {
	ForceTagName string  `yaml:"forceTagName,omitempty"`
	Render       []*Node `yaml:"render,omitempty"`
}

// RootSpec declares the root element.
type RootSpec struct {
	Tag      string  `yaml:"tag"`
	Is       string  `yaml:"is,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// Node is one node of a document. A nil *Node is an empty position.
type Node struct {
	H    string  `yaml:"h,omitempty"`
	C    string  `yaml:"c,omitempty"`
	Ctor string  `yaml:"ctor,omitempty"` // Component name, defaults to C
	Text *string `yaml:"text,omitempty"`

	ClassName string            `yaml:"className,omitempty"`
	ClassMap  map[string]bool   `yaml:"classMap,omitempty"`
	Style     any               `yaml:"style,omitempty"`
	StyleMap  map[string]string `yaml:"styleMap,omitempty"`
	Attrs     map[string]any    `yaml:"attrs,omitempty"`
	Key       any               `yaml:"key,omitempty"`
	Is        string            `yaml:"is,omitempty"`
	Props     map[string]any    `yaml:"props,omitempty"`

	Children []*Node `yaml:"children,omitempty"`
}

// ctorName returns the component a c node refers to.
func (n *Node) ctorName() string {
	if n.Ctor != "" {
		return n.Ctor
	}
	return n.C
}

// Parse decodes and validates a document. JSON is accepted as YAML.
func Parse(data []byte) (*Document, error) {
	return parse(data, "")
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, path)
}

func parse(data []byte, file string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{File: file, Err: err}
	}
	doc.file = file
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// File returns the path the document was loaded from, if any.
func (d *Document) File() string {
	return d.file
}

// Validate checks node shapes and component references.
func (d *Document) Validate() error {
	if d.Root.Tag == "" {
		return d.errorf("root.tag", "%w: root tag is required", ErrInvalidNode)
	}
	if d.Root.Is != "" && !d.declares(d.Root.Is) {
		return d.errorf("root.is", "%w %q", ErrUnknownComponent, d.Root.Is)
	}
	if err := d.validateNodes(d.Root.Children, "root.children"); err != nil {
		return err
	}
	for name, spec := range d.Components {
		if spec == nil {
			continue
		}
		if err := d.validateNodes(spec.Render, "components."+name+".render"); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateNodes(nodes []*Node, path string) error {
	for i, n := range nodes {
		if n == nil {
			continue
		}
		p := fmt.Sprintf("%s[%d]", path, i)

		kinds := 0
		for _, set := range []bool{n.H != "", n.C != "", n.Text != nil} {
			if set {
				kinds++
			}
		}
		if kinds != 1 {
			return d.errorf(p, "%w", ErrInvalidNode)
		}
		if n.C != "" && !d.declares(n.ctorName()) {
			return d.errorf(p, "%w %q", ErrUnknownComponent, n.ctorName())
		}
		if err := d.validateNodes(n.Children, p+".children"); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) declares(name string) bool {
	_, ok := d.Components[name]
	return ok
}

func (d *Document) errorf(path, format string, args ...any) error {
	return &Error{File: d.file, Path: path, Err: fmt.Errorf(format, args...)}
}
