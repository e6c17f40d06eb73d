package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/raptor-dev/raptor/pkg/host"
)

// ErrInvalidName is returned for a tag or attribute name that cannot be
// written as HTML.
var ErrInvalidName = errors.New("render: invalid name")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Intended for development only.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer writes host trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node and its descendants to a string.
func (r *Renderer) RenderToString(node host.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node and its descendants to w.
func (r *Renderer) RenderToWriter(w io.Writer, node host.Node) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0, r.config.Pretty)
	return ew.err
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) fail(err error) {
	if ew.err == nil {
		ew.err = err
	}
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) renderNode(w *errWriter, node host.Node, depth int, pretty bool) {
	switch n := node.(type) {
	case nil:
	case *host.Text:
		w.WriteString(escapeHTML(n.Data))
	case *host.Element:
		r.renderElement(w, n, depth, pretty)
	default:
		w.fail(fmt.Errorf("render: unsupported node type %T", node))
	}
}

// renderElement writes one element. Pretty output indents block children
// and keeps inline content on the line of its parent.
func (r *Renderer) renderElement(w *errWriter, el *host.Element, depth int, pretty bool) {
	tag := el.LocalName()
	if !validTagName(tag) {
		w.fail(fmt.Errorf("%w: tag %q", ErrInvalidName, tag))
		return
	}
	for _, a := range el.Attributes() {
		if !validAttrName(a.Name) {
			w.fail(fmt.Errorf("%w: attribute %q on <%s>", ErrInvalidName, a.Name, tag))
			return
		}
	}

	if pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	for _, a := range el.Attributes() {
		if a.Value == "" && isBooleanAttr(a.Name) {
			w.WriteString(" " + a.Name)
			continue
		}
		w.WriteString(fmt.Sprintf(` %s="%s"`, a.Name, escapeAttr(a.Value)))
	}
	w.WriteString(">")

	if isVoidElement(tag) {
		if pretty {
			w.WriteString("\n")
		}
		return
	}

	block := pretty && len(el.Children()) > 0 && !isInlineElement(tag)
	if block {
		w.WriteString("\n")
	}
	for _, child := range el.ChildNodes() {
		if !block {
			r.renderNode(w, child, 0, false)
			continue
		}
		if _, ok := child.(*host.Text); ok {
			r.writeIndent(w, depth+1)
			r.renderNode(w, child, depth+1, true)
			w.WriteString("\n")
			continue
		}
		r.renderNode(w, child, depth+1, true)
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + tag + ">")
	if pretty {
		w.WriteString("\n")
	}
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
