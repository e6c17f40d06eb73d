// Package host is a minimal in-memory host element tree.
//
// It plays the part of the DOM for the engine: elements with a tag name,
// ordered attributes and children. Tag names are reported upper case, as
// Element.tagName does in a browser.
package host
