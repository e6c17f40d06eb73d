package vdom

import "strings"

// NormalizeClassName splits a class list on runs of whitespace. Duplicate
// tokens collapse into one entry.
func NormalizeClassName(className string) ClassMap {
	tokens := strings.Fields(className)
	m := make(ClassMap, len(tokens))
	for _, token := range tokens {
		m[token] = true
	}
	return m
}

// normalizeData turns a Config into canonical Data.
func normalizeData(sel string, cfg Config) (Data, error) {
	data := Data{
		Attrs: cfg.Attrs,
		Key:   cfg.Key,
		Is:    cfg.Is,
		Props: cfg.Props,
	}

	switch {
	case cfg.ClassName != "" && cfg.ClassMap != nil:
		return Data{}, &ConfigurationError{Sel: sel, Field: "className", Conflict: "classMap"}
	case cfg.ClassName != "":
		data.Class = NormalizeClassName(cfg.ClassName)
	case cfg.ClassMap != nil:
		data.Class = cfg.ClassMap
	}

	data.Style = normalizeStyle(cfg.Style, cfg.StyleMap)
	return data, nil
}

// normalizeStyle applies the style precedence: StyleMap, then string Style,
// then any other Style value as text.
func normalizeStyle(style any, styleMap StyleMap) Style {
	if styleMap != nil {
		return StyleProps(styleMap)
	}
	switch s := style.(type) {
	case nil:
		return Style{}
	case string:
		if s == "" {
			return Style{}
		}
		return StyleText(s)
	default:
		return StyleText(Stringify(s))
	}
}
