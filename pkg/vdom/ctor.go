package vdom

// Component is a live component instance.
type Component interface {
	// Render returns the nodes the component renders inside its host element.
	Render() ([]*VNode, error)
}

// Ctor describes an instantiable component.
type Ctor struct {
	Name string

	// ForceTagName makes instances render as this host tag instead of the
	// selector they were created with. The selector is kept in an "is"
	// attribute.
	ForceTagName string

	// New creates an instance. A nil New yields a component that renders the
	// children it was given.
	New func() Component
}

// Instantiate creates a new component instance.
func (c *Ctor) Instantiate() Component {
	if c == nil || c.New == nil {
		return nil
	}
	return c.New()
}

// CtorRef references a component constructor. It is either a *Ctor or a
// deferred factory created with Circular.
type CtorRef interface {
	resolveCtor() (*Ctor, error)
}

func (c *Ctor) resolveCtor() (*Ctor, error) {
	if c == nil {
		return nil, ErrNilCtor
	}
	return c, nil
}

type circular func() *Ctor

func (f circular) resolveCtor() (*Ctor, error) {
	if f == nil {
		return nil, ErrNilCtor
	}
	ctor := f()
	if ctor == nil {
		return nil, ErrUnresolvedCtor
	}
	return ctor, nil
}

// Circular wraps a factory that returns a constructor defined elsewhere,
// typically in a package that would otherwise form an import cycle. The
// factory runs once per build call and its result is not cached.
func Circular(factory func() *Ctor) CtorRef {
	return circular(factory)
}

// IsCircular reports whether ref is a deferred factory.
func IsCircular(ref CtorRef) bool {
	_, ok := ref.(circular)
	return ok
}

// ResolveCtor returns the concrete constructor behind ref.
func ResolveCtor(ref CtorRef) (*Ctor, error) {
	if ref == nil {
		return nil, ErrNilCtor
	}
	return ref.resolveCtor()
}
