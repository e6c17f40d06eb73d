package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <p>, <span>, etc.
	KindComponent              // Instantiable component
	KindText                   // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode describes one node of a render tree. It is never mutated after a
// builder returns it.
type VNode struct {
	Kind VKind

	// Sel is the selector the node was built with: a tag name for elements,
	// the component name for components.
	Sel string

	// Tag is the host tag the node renders as. It equals Sel unless the
	// component forces a different tag.
	Tag string

	Data Data

	// Children may contain nil entries. A nil entry keeps its position
	// without producing a host node.
	Children []*VNode

	Text string // For KindText
	Ctor *Ctor  // For KindComponent
}

// IsComponent reports whether the node is backed by a component constructor.
func (v *VNode) IsComponent() bool {
	return v != nil && v.Kind == KindComponent && v.Ctor != nil
}

// Forced reports whether the node renders as a tag other than its selector.
func (v *VNode) Forced() bool {
	return v != nil && v.Tag != v.Sel
}
