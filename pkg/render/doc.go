// Package render serializes host element trees to HTML.
//
// Text and attribute values are escaped, void elements are written without
// a closing tag, and boolean attributes with an empty value are written as a
// bare name.
//
//	renderer := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := renderer.RenderToString(root)
package render
