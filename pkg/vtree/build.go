package vtree

import (
	"errors"
	"fmt"

	"github.com/raptor-dev/raptor/pkg/engine"
	"github.com/raptor-dev/raptor/pkg/host"
	"github.com/raptor-dev/raptor/pkg/render"
	"github.com/raptor-dev/raptor/pkg/vdom"
)

// builder turns document nodes into VNodes against one registry.
type builder struct {
	doc      *Document
	registry map[string]*vdom.Ctor
}

func newBuilder(d *Document) *builder {
	b := &builder{doc: d, registry: make(map[string]*vdom.Ctor, len(d.Components))}
	for name, spec := range d.Components {
		ctor := &vdom.Ctor{Name: name}
		if spec != nil {
			ctor.ForceTagName = spec.ForceTagName
			if spec.Render != nil {
				ctor.New = func() vdom.Component {
					return &component{b: b, name: name, spec: spec}
				}
			}
		}
		b.registry[name] = ctor
	}
	return b
}

// ref defers the registry lookup until the node is built.
func (b *builder) ref(name string) vdom.CtorRef {
	return vdom.Circular(func() *vdom.Ctor {
		return b.registry[name]
	})
}

// component renders the nodes declared for a document component.
type component struct {
	b    *builder
	name string
	spec *ComponentSpec
}

func (c *component) Render() ([]*vdom.VNode, error) {
	return c.b.nodes(c.spec.Render, "components."+c.name+".render")
}

// Ctors returns the constructors declared by the document.
func (d *Document) Ctors() map[string]*vdom.Ctor {
	return newBuilder(d).registry
}

// Build creates the root host element of the document. Options such as
// engine.Context and engine.NodeLimit bound the mount.
func (d *Document) Build(opts ...engine.Option) (*host.Element, error) {
	b := newBuilder(d)

	if d.Root.Is != "" {
		el, err := engine.CreateElement(d.Root.Tag, append([]engine.Option{engine.Is(b.ref(d.Root.Is))}, opts...)...)
		if err != nil {
			return nil, b.wrap("root", err)
		}
		return el, nil
	}

	el, err := engine.CreateElement(d.Root.Tag, opts...)
	if err != nil {
		return nil, b.wrap("root", err)
	}
	children, err := b.nodes(d.Root.Children, "root.children")
	if err != nil {
		return nil, err
	}
	if err := engine.Mount(el, children, opts...); err != nil {
		return nil, b.wrap("root.children", err)
	}
	return el, nil
}

// Render builds the document and serializes it with r.
func (d *Document) Render(r *render.Renderer, opts ...engine.Option) (string, error) {
	el, err := d.Build(opts...)
	if err != nil {
		return "", err
	}
	return r.RenderToString(el)
}

type built struct {
	node *vdom.VNode
	err  error
}

// nodes builds a list of nodes, keeping nil entries in place.
func (b *builder) nodes(list []*Node, path string) ([]*vdom.VNode, error) {
	results := vdom.I(vdom.Slice(list), func(n *Node, i int, _, _ bool) built {
		v, err := b.node(n, fmt.Sprintf("%s[%d]", path, i))
		return built{node: v, err: err}
	})

	out := make([]*vdom.VNode, len(results))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out[i] = r.node
	}
	return out, nil
}

func (b *builder) node(n *Node, path string) (*vdom.VNode, error) {
	if n == nil {
		return nil, nil
	}
	if n.Text != nil {
		return vdom.T(*n.Text), nil
	}

	children, err := b.nodes(n.Children, path+".children")
	if err != nil {
		return nil, err
	}

	cfg := vdom.Config{
		ClassName: n.ClassName,
		ClassMap:  vdom.ClassMap(n.ClassMap),
		Style:     n.Style,
		StyleMap:  vdom.StyleMap(n.StyleMap),
		Attrs:     vdom.Attrs(n.Attrs),
		Is:        n.Is,
		Key:       n.Key,
		Props:     n.Props,
	}

	var v *vdom.VNode
	switch {
	case n.H != "":
		kids := make([]any, len(children))
		for i, c := range children {
			if c != nil {
				kids[i] = c
			}
		}
		v, err = vdom.H(n.H, cfg, kids)
	case n.C != "":
		name := n.ctorName()
		if _, ok := b.registry[name]; !ok {
			return nil, b.wrap(path, fmt.Errorf("%w %q", ErrUnknownComponent, name))
		}
		v, err = vdom.C(n.C, b.ref(name), cfg, children...)
	default:
		err = ErrInvalidNode
	}
	if err != nil {
		return nil, b.wrap(path, err)
	}
	return v, nil
}

// wrap attaches a document location to err unless it already has one.
func (b *builder) wrap(path string, err error) error {
	var docErr *Error
	if errors.As(err, &docErr) {
		return err
	}
	return &Error{File: b.doc.file, Path: path, Err: err}
}
