// Package engine bootstraps root components and mounts VNode trees into
// host elements.
//
// Mounting here is a single top-down pass that creates host elements. It
// does not diff or patch an existing tree.
package engine

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/pkg/host"
	"github.com/raptor-dev/raptor/pkg/vdom"
)

const (
	// MaxDepth bounds component nesting during a mount.
	MaxDepth = 256

	// MaxNodes is the default number of host nodes one mount may create.
	MaxNodes = 100_000
)

var (
	// ErrDepthExceeded is returned when components nest deeper than
	// MaxDepth, usually because a component renders itself.
	ErrDepthExceeded = errors.New("engine: component nesting exceeds maximum depth")

	// ErrTooManyNodes is returned when a mount would create more host nodes
	// than its limit, usually because components fan out into many copies
	// of each other.
	ErrTooManyNodes = errors.New("engine: tree exceeds maximum node count")
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine's logger. It is a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the engine's logger. Call it before mounting.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Option configures CreateElement and Mount.
type Option func(*options)

type options struct {
	is       vdom.CtorRef
	ctx      context.Context
	maxNodes int
}

func newOptions(opts []Option) options {
	o := options{ctx: context.Background(), maxNodes: MaxNodes}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Is names the component constructor the root element is an instance of.
// Mount ignores it.
func Is(ref vdom.CtorRef) Option {
	return func(o *options) {
		o.is = ref
	}
}

// Context stops the mount with ctx.Err() once ctx is done.
func Context(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// NodeLimit sets how many host nodes one mount may create below its root.
// Values below 1 keep the default of MaxNodes.
func NodeLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxNodes = n
		}
	}
}

// CreateElement creates a root host element outside of any render tree.
//
// Without Is, a plain element named tag is returned. With Is, the component
// is instantiated and its render output mounted into the element. If the
// constructor forces a tag name, the element uses that tag and carries an
// "is" attribute equal to tag.
func CreateElement(tag string, opts ...Option) (*host.Element, error) {
	o := newOptions(opts)
	if err := o.ctx.Err(); err != nil {
		return nil, err
	}

	if o.is == nil {
		return host.NewElement(tag), nil
	}

	ctor, err := vdom.ResolveCtor(o.is)
	if err != nil {
		return nil, err
	}

	el := host.NewElement(tag)
	if ctor.ForceTagName != "" {
		el = host.NewElement(ctor.ForceTagName)
		el.SetAttribute("is", tag)
	}

	Logger().Debug("create root element",
		zap.String("tag", tag),
		zap.String("component", ctor.Name),
		zap.String("hostTag", el.LocalName()),
		zap.Bool("deferred", vdom.IsCircular(o.is)),
	)

	if err := newMounter(o).renderComponent(el, ctor, nil, 0); err != nil {
		return nil, err
	}
	return el, nil
}
