package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/pkg/host"
	"github.com/raptor-dev/raptor/pkg/vdom"
)

// Mount creates host nodes for children and appends them to parent. Nil
// children produce no host node. Context and NodeLimit bound the work.
func Mount(parent *host.Element, children []*vdom.VNode, opts ...Option) error {
	return newMounter(newOptions(opts)).mountChildren(parent, children, 0)
}

// MountNode creates the host node for a single VNode. A nil node yields nil.
func MountNode(node *vdom.VNode, opts ...Option) (host.Node, error) {
	return newMounter(newOptions(opts)).mountNode(node, 0)
}

// mounter holds the state of one mount pass.
type mounter struct {
	ctx      context.Context
	maxNodes int
	nodes    int
}

func newMounter(o options) *mounter {
	return &mounter{ctx: o.ctx, maxNodes: o.maxNodes}
}

// count charges one host node against the budget and reports cancellation.
func (m *mounter) count() error {
	m.nodes++
	if m.nodes > m.maxNodes {
		return fmt.Errorf("%w: more than %d nodes", ErrTooManyNodes, m.maxNodes)
	}
	return m.ctx.Err()
}

func (m *mounter) mountChildren(parent *host.Element, children []*vdom.VNode, depth int) error {
	for _, child := range children {
		n, err := m.mountNode(child, depth)
		if err != nil {
			return err
		}
		if n != nil {
			parent.AppendChild(n)
		}
	}
	return nil
}

func (m *mounter) mountNode(node *vdom.VNode, depth int) (host.Node, error) {
	if node == nil {
		return nil, nil
	}
	if err := m.count(); err != nil {
		return nil, err
	}

	switch node.Kind {
	case vdom.KindText:
		return host.NewText(node.Text), nil

	case vdom.KindElement:
		el := host.NewElement(node.Tag)
		applyData(el, node.Data)
		if err := m.mountChildren(el, node.Children, depth); err != nil {
			return nil, err
		}
		return el, nil

	case vdom.KindComponent:
		el := host.NewElement(node.Tag)
		applyData(el, node.Data)
		if err := m.renderComponent(el, node.Ctor, node.Children, depth+1); err != nil {
			return nil, err
		}
		return el, nil

	default:
		return nil, fmt.Errorf("engine: unknown node kind: %s", node.Kind)
	}
}

// renderComponent instantiates ctor and mounts its output into el. A
// constructor without New mounts the children it was given instead.
func (m *mounter) renderComponent(el *host.Element, ctor *vdom.Ctor, children []*vdom.VNode, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: <%s>", ErrDepthExceeded, el.LocalName())
	}

	inst := ctor.Instantiate()
	if inst == nil {
		return m.mountChildren(el, children, depth)
	}

	output, err := inst.Render()
	if err != nil {
		return fmt.Errorf("engine: render %s: %w", ctor.Name, err)
	}
	Logger().Debug("component rendered",
		zap.String("component", ctor.Name),
		zap.Int("nodes", len(output)),
		zap.Int("depth", depth),
	)
	return m.mountChildren(el, output, depth)
}

// applyData copies the canonical class, style and attributes of a node onto
// its host element.
func applyData(el *host.Element, data vdom.Data) {
	if data.Class != nil {
		if cls := data.Class.String(); cls != "" {
			el.SetAttribute("class", cls)
		}
	}
	if !data.Style.IsZero() {
		el.SetAttribute("style", data.Style.String())
	}
	for _, name := range slices.Sorted(maps.Keys(data.Attrs)) {
		switch v := data.Attrs[name].(type) {
		case nil:
		case bool:
			if v {
				el.SetAttribute(name, "")
			}
		default:
			el.SetAttribute(name, vdom.Stringify(v))
		}
	}
}
