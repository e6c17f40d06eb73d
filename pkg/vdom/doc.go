// Package vdom provides the VNode creation layer for Raptor.
//
// Render functions describe their output by calling a small vocabulary of
// builders. The resulting tree is handed to a reconciler, which owns it from
// then on; nothing in this package touches a node after returning it.
//
// # Builders
//
// C builds a component node, H builds a plain host element node and T builds
// a text node:
//
//	card, err := vdom.C("x-card", CardCtor, vdom.Config{ClassName: "card wide"})
//	p, err := vdom.H("p", vdom.Config{Style: "color:red"}, []any{vdom.T("hi"), nil})
//
// Both builders normalize the author-facing shorthands of Config into the
// canonical Data fields. ClassName is split on whitespace into a ClassMap,
// StyleMap wins over Style, and supplying ClassName together with ClassMap
// fails with a *ConfigurationError.
//
// # Constructors
//
// A component constructor is referenced through a CtorRef: either the *Ctor
// itself or a Circular factory that defers the lookup until build time. This
// lets two component packages refer to each other without an import cycle.
//
// # Iteration
//
// I maps any Iterable source (slices, ordered sets and maps, iter.Seq values)
// to a slice, passing each item with its index and first/last markers:
//
//	rows := vdom.I(vdom.Slice(users), func(u User, i int, first, last bool) *vdom.VNode {
//	    ...
//	})
package vdom
