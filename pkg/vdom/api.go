package vdom

import "fmt"

// C builds a component node.
//
// If the constructor forces a tag name and cfg.Attrs has no "is" entry, the
// node renders as the forced tag and gets an "is" attribute holding sel. An
// explicit "is" attribute disables the substitution for this node. Children
// are passed through unchecked.
func C(sel string, ref CtorRef, cfg Config, children ...*VNode) (*VNode, error) {
	ctor, err := ResolveCtor(ref)
	if err != nil {
		return nil, err
	}

	data, err := normalizeData(sel, cfg)
	if err != nil {
		return nil, err
	}

	tag := sel
	if ctor.ForceTagName != "" && !cfg.Attrs.Has("is") {
		tag = ctor.ForceTagName
		data.Attrs = cfg.Attrs.with("is", sel)
	}

	return &VNode{
		Kind:     KindComponent,
		Sel:      sel,
		Tag:      tag,
		Data:     data,
		Children: children,
		Ctor:     ctor,
	}, nil
}

// H builds a host element node. Each child must be a *VNode or nil; nil
// entries are kept in place.
func H(sel string, cfg Config, children []any) (*VNode, error) {
	data, err := normalizeData(sel, cfg)
	if err != nil {
		return nil, err
	}

	kids := make([]*VNode, len(children))
	for i, child := range children {
		switch c := child.(type) {
		case nil:
		case *VNode:
			kids[i] = c
		default:
			return nil, &InvalidChildError{Sel: sel, Index: i, Type: fmt.Sprintf("%T", child)}
		}
	}

	return &VNode{
		Kind:     KindElement,
		Sel:      sel,
		Tag:      sel,
		Data:     data,
		Children: kids,
	}, nil
}

// T builds a text node.
func T(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// Tf builds a formatted text node.
func Tf(format string, args ...any) *VNode {
	return T(fmt.Sprintf(format, args...))
}
