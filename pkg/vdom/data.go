package vdom

import (
	"maps"
	"slices"
	"strings"
)

// ClassMap is a set of class-name tokens. Every present token maps to true.
type ClassMap map[string]bool

// String returns the enabled tokens in sorted order, space separated.
func (m ClassMap) String() string {
	tokens := make([]string, 0, len(m))
	for token, on := range m {
		if on {
			tokens = append(tokens, token)
		}
	}
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// StyleMap maps style property names to values.
type StyleMap map[string]string

// String returns the declarations as CSS text in property order.
func (m StyleMap) String() string {
	var b strings.Builder
	for i, prop := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(m[prop])
		b.WriteByte(';')
	}
	return b.String()
}

// Style is the canonical style of a node: absent, a literal string passed
// through to the host attribute, or a map applied per property.
type Style struct {
	text  string
	props StyleMap
	kind  styleKind
}

type styleKind uint8

const (
	styleAbsent styleKind = iota
	styleText
	styleProps
)

// StyleText returns a literal style.
func StyleText(s string) Style {
	return Style{text: s, kind: styleText}
}

// StyleProps returns a per-property style.
func StyleProps(m StyleMap) Style {
	return Style{props: m, kind: styleProps}
}

// IsZero reports whether no style was set.
func (s Style) IsZero() bool {
	return s.kind == styleAbsent
}

// Text returns the literal style, if the style is literal.
func (s Style) Text() (string, bool) {
	return s.text, s.kind == styleText
}

// Map returns the property map, if the style is a map.
func (s Style) Map() (StyleMap, bool) {
	return s.props, s.kind == styleProps
}

// String returns the style as attribute text.
func (s Style) String() string {
	switch s.kind {
	case styleText:
		return s.text
	case styleProps:
		return s.props.String()
	default:
		return ""
	}
}

// Attrs holds host attributes.
type Attrs map[string]any

// Has reports whether the attribute is present, regardless of its value.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// with returns a copy of a with name set to value.
func (a Attrs) with(name string, value any) Attrs {
	out := make(Attrs, len(a)+1)
	maps.Copy(out, a)
	out[name] = value
	return out
}

// Data is the canonical configuration of a node.
type Data struct {
	Class ClassMap // nil when absent
	Style Style
	Attrs Attrs
	Key   any
	Is    string

	// Props carries fields this layer does not interpret.
	Props map[string]any
}

// Config is the author-facing configuration accepted by the builders.
type Config struct {
	// ClassName is a whitespace separated class list. Empty means absent.
	ClassName string

	// ClassMap is used as the class set as-is. Mutually exclusive with ClassName.
	ClassMap ClassMap

	// Style is literal style text. Any non-string value is converted with
	// Stringify, so a map or struct becomes "[object Object]".
	Style any

	// StyleMap takes precedence over Style.
	StyleMap StyleMap

	Attrs Attrs
	Is    string
	Key   any
	Props map[string]any
}
