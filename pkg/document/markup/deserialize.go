package markup

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

var ErrSectionNotFound = errors.New("section not found")

const (
	typeAttribute     = "data-type"
	voidAttrPrefix    = "data-void-"
	placeholderAttr   = "placeholder"
	nbsp              = "\u00a0"
	emsp              = "\u2003"
	nbspPlaceholderRe = `^[\r\n]*\x{00A0}[\r\n]*$`
)

var (
	toggleTags = map[atom.Atom]schema.Mark{
		atom.Strong: schema.Bold,
		atom.B:      schema.Bold,
		atom.Em:     schema.Italic,
		atom.I:      schema.Italic,
		atom.U:      schema.Underline,
		atom.S:      schema.Strikethrough,
		atom.Strike: schema.Strikethrough,
		atom.Del:    schema.Strikethrough,
		atom.Sub:    schema.Subscript,
		atom.Sup:    schema.Superscript,
		atom.Code:   schema.Code,
		atom.Kbd:    schema.Kbd,
	}

	structuralTags = map[atom.Atom]schema.Type{
		atom.Blockquote: schema.Blockquote,
		atom.P:          schema.Paragraph,
		atom.Div:        schema.Paragraph,
		atom.H1:         schema.Heading(1),
		atom.H2:         schema.Heading(2),
		atom.H3:         schema.Heading(3),
		atom.H4:         schema.Heading(4),
		atom.H5:         schema.Heading(5),
		atom.H6:         schema.Heading(6),
		atom.Ul:         schema.UnorderedList,
		atom.Ol:         schema.OrderedList,
		atom.Li:         schema.ListItem,
		atom.Table:      schema.Table,
		atom.Tr:         schema.TableRow,
		atom.Td:         schema.TableCell,
		atom.Th:         schema.TableHeader,
		atom.Pre:        schema.CodeBlock,
		atom.A:          schema.Link,
		atom.Hr:         schema.Divider,
		atom.Img:        schema.InlineImage,
	}

	// Never rendered content.
	skippedTags = map[atom.Atom]bool{
		atom.Head:     true,
		atom.Script:   true,
		atom.Style:    true,
		atom.Template: true,
		atom.Noscript: true,
		atom.Title:    true,
		atom.Meta:     true,
		atom.Link:     true,
	}

	// Attributes that are either handled specially or editor-only.
	consumedAttrs = map[string]bool{
		"style":           true,
		"class":           true,
		"id":              true,
		"contenteditable": true,
		typeAttribute:     true,
		placeholderAttr:   true,
	}

	listStyles = map[schema.Type]string{
		schema.UnorderedList: "disc",
		schema.OrderedList:   "decimal",
	}

	leadingBreak    = regexp.MustCompile(`^\s*\n\s*`)
	trailingBreak   = regexp.MustCompile(`\s*\n\s*$`)
	innerBreak      = regexp.MustCompile(`\s*\n\s*`)
	nbspPlaceholder = regexp.MustCompile(nbspPlaceholderRe)
)

// Deserialize converts an HTML document or fragment into a Document. Input
// without content yields a document with one empty paragraph.
func Deserialize(data []byte, opts Options) (*document.Document, error) {
	opts = opts.withDefaults()

	if opts.Sanitize {
		data = Sanitize(data)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html")
	}

	container := findBody(root)
	if opts.Selector != "" {
		container, err = selectSection(root, opts.Selector)
		if err != nil {
			return nil, err
		}
	}

	d := &deserializer{opts: opts, log: opts.Logger}

	var nodes []document.Node
	if container != nil {
		nodes = d.children(container, state{})
	}

	return d.document(nodes), nil
}

// DeserializeFragment converts pasted HTML into a list of nodes without
// wrapping loose text into paragraphs.
func DeserializeFragment(data []byte, opts Options) ([]document.Node, error) {
	opts = opts.withDefaults()

	if opts.Sanitize {
		data = Sanitize(data)
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(bytes.NewReader(data), context)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html fragment")
	}

	d := &deserializer{opts: opts, log: opts.Logger}

	var nodes []document.Node
	for _, n := range parsed {
		nodes = append(nodes, d.node(n, state{})...)
	}
	return nodes, nil
}

func selectSection(root *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid section selector %q", selector)
	}
	match := sel.MatchFirst(root)
	if match == nil {
		return nil, errors.Wrapf(ErrSectionNotFound, "selector %q", selector)
	}
	return match, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// state is inherited top-down while walking the DOM.
type state struct {
	// marks accumulated from formatting tags and text-level CSS.
	marks document.Props
	// style holds box CSS not yet consumed by an element.
	style document.Props
	pre   bool
}

func (s state) derive() state {
	return state{
		marks: s.marks.Clone(),
		style: s.style.Clone(),
		pre:   s.pre,
	}
}

type deserializer struct {
	opts Options
	log  *zap.Logger
}

func (d *deserializer) document(nodes []document.Node) *document.Document {
	doc := &document.Document{}

	var run []document.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		p := d.newElement(schema.Paragraph, "", "")
		p.Children = padInlineVoid(run)
		doc.Children = append(doc.Children, p)
		run = nil
	}

	for _, n := range nodes {
		if document.IsBlock(n) || document.IsVoid(n) {
			flush()
			doc.Children = append(doc.Children, n)
			continue
		}
		run = append(run, n)
	}
	flush()

	if len(doc.Children) == 0 {
		doc.Children = []document.Node{d.newElement(schema.Paragraph, "", "")}
	}
	return doc
}

func (d *deserializer) children(n *html.Node, st state) []document.Node {
	var out []document.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, d.node(c, st)...)
	}
	return out
}

func (d *deserializer) node(n *html.Node, st state) []document.Node {
	switch n.Type {
	case html.TextNode:
		return d.text(n.Data, st)
	case html.ElementNode:
		return d.element(n, st)
	case html.DocumentNode:
		return d.children(n, st)
	default:
		return nil
	}
}

func (d *deserializer) text(data string, st state) []document.Node {
	if !st.pre {
		data = leadingBreak.ReplaceAllString(data, "")
		data = trailingBreak.ReplaceAllString(data, "")
		data = innerBreak.ReplaceAllString(data, " ")
	}
	if data == "" {
		return nil
	}
	data = strings.ReplaceAll(data, nbsp, " ")
	data = strings.ReplaceAll(data, emsp, "\t")
	return []document.Node{&document.Text{Text: data, Marks: st.marks.Clone()}}
}

func (d *deserializer) element(n *html.Node, parent state) []document.Node {
	if skippedTags[n.DataAtom] {
		return nil
	}

	st := parent.derive()

	if raw := getAttr(n, "style"); raw != "" {
		box, text, err := parseStyle(raw)
		if err != nil {
			d.log.Debug("ignoring unparsable style", zap.String("tag", n.Data), zap.Error(err))
		}
		st.style.Merge(box)
		st.marks.Merge(text)
	}

	if mark, ok := toggleTags[n.DataAtom]; ok {
		st.marks.Set(string(mark), true)
		return d.children(n, st)
	}

	switch n.DataAtom {
	case atom.Body:
		return d.children(n, st)
	case atom.Br:
		return []document.Node{&document.Text{Text: "\n", Marks: st.marks.Clone()}}
	}

	t, ok := d.typeOf(n)
	if !ok {
		if n.DataAtom == atom.Span && n.FirstChild == nil {
			// An empty leaf as the serializer writes it.
			return []document.Node{&document.Text{Marks: st.marks.Clone()}}
		}
		d.log.Debug("transparent tag", zap.String("tag", n.Data))
		return d.children(n, st)
	}

	el := d.newElement(t, getAttr(n, "id"), getAttr(n, placeholderAttr))
	el.Style = st.style
	st.style = document.Props{}

	if listStyle, ok := listStyles[t]; ok && !el.Style.Has("listStyleType") {
		el.Style.Set("listStyleType", listStyle)
	}

	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if consumedAttrs[key] {
			continue
		}
		if name, ok := strings.CutPrefix(key, voidAttrPrefix); ok {
			el.VoidData.Set(camelCase(name), attr.Val)
			continue
		}
		if n.DataAtom == atom.Img && (key == "src" || key == "alt") {
			el.VoidData.Set(key, attr.Val)
			continue
		}
		el.Attributes.Set(key, attr.Val)
	}

	if document.IsAnyVoid(el) {
		el.Children = []document.Node{document.NewText("")}
		return []document.Node{el}
	}

	if n.DataAtom == atom.Pre {
		st.pre = true
	}

	if isPlaceholderBody(n) {
		el.Children = []document.Node{&document.Text{Marks: st.marks.Clone()}}
		return []document.Node{el}
	}

	el.Children = padInlineVoid(d.children(n, st))
	if len(el.Children) == 0 {
		el.Children = []document.Node{&document.Text{Marks: st.marks.Clone()}}
	}
	return []document.Node{el}
}

func (d *deserializer) typeOf(n *html.Node) (schema.Type, bool) {
	if raw := getAttr(n, typeAttribute); raw != "" {
		t := schema.Type(raw)
		if schema.CategoryOf(t) != schema.UnknownCategory {
			return t, true
		}
		d.log.Debug("unknown data-type", zap.String("type", raw))
	}
	t, ok := structuralTags[n.DataAtom]
	return t, ok
}

func (d *deserializer) newElement(t schema.Type, id, placeholder string) *document.Element {
	el := document.NewElement(t)
	el.ID, _ = d.opts.IDs.Resolve(id)
	el.Placeholder = d.opts.Placeholder
	if placeholder != "" {
		el.Placeholder = placeholder
	}
	return el
}

// padInlineVoid keeps a leaf after a trailing inline void for the cursor
// to land in.
func padInlineVoid(nodes []document.Node) []document.Node {
	if len(nodes) > 0 && document.IsInlineVoid(nodes[len(nodes)-1]) {
		return append(nodes, document.NewText(""))
	}
	return nodes
}

// isPlaceholderBody reports whether n holds only the non-breaking space the
// serializer writes for an empty element.
func isPlaceholderBody(n *html.Node) bool {
	c := n.FirstChild
	return c != nil && c.NextSibling == nil && c.Type == html.TextNode && nbspPlaceholder.MatchString(c.Data)
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
