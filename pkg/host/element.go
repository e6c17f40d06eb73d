package host

import (
	"slices"
	"strings"
)

// Node is an element or a text node.
type Node interface {
	// TextContent returns the concatenated text of the node and its descendants.
	TextContent() string
}

// Text is a text node.
type Text struct {
	Data string
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// TextContent implements Node.
func (t *Text) TextContent() string {
	return t.Data
}

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a host element.
type Element struct {
	localName string
	attrs     []Attr
	children  []Node
	parent    *Element
}

// NewElement creates an element. The tag is stored lower case.
func NewElement(tag string) *Element {
	return &Element{localName: strings.ToLower(tag)}
}

// TagName returns the upper case tag name.
func (e *Element) TagName() string {
	return strings.ToUpper(e.localName)
}

// LocalName returns the lower case tag name.
func (e *Element) LocalName() string {
	return e.localName
}

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element {
	return e.parent
}

// SetAttribute sets an attribute, keeping the position of an existing one.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	if i := e.attrIndex(name); i >= 0 {
		e.attrs[i].Value = value
		return
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// GetAttribute returns the attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	if i := e.attrIndex(strings.ToLower(name)); i >= 0 {
		return e.attrs[i].Value, true
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.attrIndex(strings.ToLower(name)) >= 0
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	if i := e.attrIndex(strings.ToLower(name)); i >= 0 {
		e.attrs = slices.Delete(e.attrs, i, i+1)
	}
}

// Attributes returns the attributes in the order they were first set.
func (e *Element) Attributes() []Attr {
	return slices.Clone(e.attrs)
}

func (e *Element) attrIndex(name string) int {
	return slices.IndexFunc(e.attrs, func(a Attr) bool { return a.Name == name })
}

// AppendChild appends a child node. An element child is detached from its
// previous parent first.
func (e *Element) AppendChild(child Node) {
	if el, ok := child.(*Element); ok {
		if el.parent != nil {
			el.parent.removeChild(el)
		}
		el.parent = e
	}
	e.children = append(e.children, child)
}

func (e *Element) removeChild(child *Element) {
	e.children = slices.DeleteFunc(e.children, func(n Node) bool {
		el, ok := n.(*Element)
		return ok && el == child
	})
	child.parent = nil
}

// ChildNodes returns the child nodes.
func (e *Element) ChildNodes() []Node {
	return slices.Clone(e.children)
}

// Children returns the element children only.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, n := range e.children {
		if el, ok := n.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// TextContent implements Node.
func (e *Element) TextContent() string {
	var b strings.Builder
	for _, n := range e.children {
		b.WriteString(n.TextContent())
	}
	return b.String()
}

// QuerySelector returns the first descendant with the given tag name, in
// document order.
func (e *Element) QuerySelector(tag string) *Element {
	tag = strings.ToLower(tag)
	var found *Element
	e.walk(func(el *Element) bool {
		if el.localName == tag {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns all descendants with the given tag name.
func (e *Element) QuerySelectorAll(tag string) []*Element {
	tag = strings.ToLower(tag)
	var out []*Element
	e.walk(func(el *Element) bool {
		if el.localName == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}

// walk visits descendants depth first until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	for _, el := range e.Children() {
		if !fn(el) || !el.walk(fn) {
			return false
		}
	}
	return true
}
