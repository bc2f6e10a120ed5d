package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

var textEscaper = strings.NewReplacer(
	"\t", "&emsp;",
	" ", "&nbsp;",
	"\n", "<br>",
)

// Serialize renders doc as HTML. The document is not modified.
func Serialize(doc *document.Document, opts SerializeOptions) ([]byte, error) {
	var b strings.Builder
	for _, n := range doc.Children {
		writeNode(&b, n)
	}

	out := b.String()
	if opts.Minify {
		var err error
		out, err = Minify(out)
		if err != nil {
			return nil, err
		}
	}
	return []byte(out), nil
}

// SerializeNode renders a single subtree.
func SerializeNode(n document.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n document.Node) {
	switch n := n.(type) {
	case *document.Text:
		writeText(b, n)
	case *document.Element:
		writeElement(b, n)
	}
}

func writeElement(b *strings.Builder, el *document.Element) {
	tag := "div"
	if spec, ok := schema.Lookup(el.Type); ok {
		tag = spec.Tag
	}

	b.WriteString("<" + tag)
	if el.ID != "" {
		writeAttr(b, "id", el.ID)
	}
	if el.ClassName != "" {
		writeAttr(b, "class", el.ClassName)
		if el.Placeholder != "" {
			writeAttr(b, placeholderAttr, el.Placeholder)
		}
	}
	if el.Type != schema.Paragraph && schema.HeadingLevel(el.Type) == 0 {
		writeAttr(b, typeAttribute, string(el.Type))
	}
	el.Attributes.Range(func(k string, v any) bool {
		writeAttr(b, k, document.FormatValue(v))
		return true
	})
	el.VoidData.Range(func(k string, v any) bool {
		writeAttr(b, voidAttrPrefix+kebabCase(k), document.FormatValue(v))
		return true
	})
	if style := formatStyle(&el.Style, nil); style != "" {
		writeAttr(b, "style", style)
	}
	b.WriteString(">")

	if hasEmptyBody(el) {
		b.WriteString("&nbsp;")
	} else {
		for _, c := range el.Children {
			writeNode(b, c)
		}
	}

	b.WriteString("</" + tag + ">")
}

// hasEmptyBody reports whether el has nothing to render but empty leaves.
func hasEmptyBody(el *document.Element) bool {
	for _, c := range el.Children {
		t, ok := c.(*document.Text)
		if !ok || t.Text != "" {
			return false
		}
	}
	return true
}

func writeText(b *strings.Builder, t *document.Text) {
	var span strings.Builder
	span.WriteString("<span")
	if style := formatStyle(&t.Marks, schema.IsToggleMark); style != "" {
		writeAttr(&span, "style", style)
	}
	span.WriteString(">")
	span.WriteString(textEscaper.Replace(html.EscapeString(t.Text)))
	span.WriteString("</span>")

	out := span.String()
	toggles := schema.Default().ToggleMarks()
	for i := len(toggles) - 1; i >= 0; i-- {
		if !t.Marks.Bool(string(toggles[i])) {
			continue
		}
		spec, _ := schema.Default().MarkSpec(toggles[i])
		out = "<" + spec.Tag + ">" + out + "</" + spec.Tag + ">"
	}
	b.WriteString(out)
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
