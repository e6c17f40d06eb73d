package render

import (
	"strings"
	"unicode"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values also escape whitespace that would otherwise be
	// normalized by the parser.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes an attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// validTagName reports whether name can be written as an HTML start tag: an
// ASCII letter followed by anything but whitespace, "/", "<" or ">".
func validTagName(name string) bool {
	if name == "" {
		return false
	}
	if c := name[0]; !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r == '/' || r == '<' || r == '>' || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// validAttrName reports whether name can be written as an HTML attribute
// name without ending the attribute or the tag.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		switch r {
		case '"', '\'', '>', '/', '=', '<', unicode.ReplacementChar:
			return true
		}
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
