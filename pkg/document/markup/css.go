package markup

import (
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/stateful/qedit/pkg/document"
)

// Properties that lay out a box rather than format its text. These stay on
// the element style; everything else is inherited by leaves as value marks.
var boxPropertyPrefixes = []string{
	"margin",
	"padding",
	"border",
	"width",
	"height",
	"min-width",
	"min-height",
	"max-width",
	"max-height",
	"list-style",
	"display",
	"float",
}

func isBoxProperty(prop string) bool {
	for _, prefix := range boxPropertyPrefixes {
		if prop == prefix || strings.HasPrefix(prop, prefix+"-") {
			return true
		}
	}
	return false
}

// parseStyle splits a style attribute into box properties and text
// properties, both keyed by camelCased property name.
func parseStyle(raw string) (box, text document.Props, err error) {
	if strings.TrimSpace(raw) == "" {
		return box, text, nil
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return box, text, err
	}
	for _, decl := range decls {
		prop := strings.ToLower(strings.TrimSpace(decl.Property))
		value := strings.TrimSpace(decl.Value)
		if prop == "" || value == "" || value == "inherit" {
			continue
		}
		if isBoxProperty(prop) {
			box.Set(camelCase(prop), value)
		} else {
			text.Set(camelCase(prop), value)
		}
	}
	return box, text, nil
}

func camelCase(prop string) string {
	var b strings.Builder
	for i, part := range strings.Split(prop, "-") {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func kebabCase(key string) string {
	var b strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatStyle writes "prop: value; " pairs in insertion order. Toggle marks
// and non-string values other than numbers are skipped.
func formatStyle(p *document.Props, skip func(key string) bool) string {
	var b strings.Builder
	p.Range(func(k string, v any) bool {
		if skip != nil && skip(k) {
			return true
		}
		if _, ok := v.(bool); ok {
			return true
		}
		b.WriteString(kebabCase(k))
		b.WriteString(": ")
		b.WriteString(document.FormatValue(v))
		b.WriteString("; ")
		return true
	})
	return b.String()
}
