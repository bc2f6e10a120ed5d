package document

import (
	"fmt"
	"strings"

	"github.com/stateful/qedit/pkg/document/schema"
)

// Node is either a *Text leaf or an *Element composite.
type Node interface {
	isNode()
}

// Text is a leaf: a run of text with marks. Toggle marks hold true,
// value marks hold a string.
type Text struct {
	Text  string
	Marks Props
}

func (*Text) isNode() {}

func NewText(text string, marks ...any) *Text {
	return &Text{Text: text, Marks: NewProps(marks...)}
}

func (t *Text) HasMark(m schema.Mark) bool {
	return t.Marks.Bool(string(m))
}

// Element is a composite node. Its Type always belongs to exactly one
// registry in package schema.
type Element struct {
	Type     schema.Type
	ID       string
	Children []Node

	Style      Props
	Attributes Props
	VoidData   Props

	Placeholder  string
	ClassName    string
	PreviousType schema.Type
}

func (*Element) isNode() {}

// NewElement creates an element of a registered type. An element without
// children gets one empty leaf. It panics on an unregistered type.
func NewElement(t schema.Type, children ...Node) *Element {
	if schema.CategoryOf(t) == schema.UnknownCategory {
		panic(fmt.Sprintf("document: unregistered node type %q", t))
	}
	el := &Element{Type: t, Children: children}
	if len(el.Children) == 0 {
		el.Children = []Node{NewText("")}
	}
	return el
}

// NewVoid creates a void or inline-void element holding data.
func NewVoid(t schema.Type, data Props) *Element {
	el := NewElement(t)
	el.VoidData = data
	return el
}

func (e *Element) Category() schema.Category {
	return schema.CategoryOf(e.Type)
}

// Child returns the i-th child or nil.
func (e *Element) Child(i int) Node {
	if i < 0 || i >= len(e.Children) {
		return nil
	}
	return e.Children[i]
}

func IsLeaf(n Node) bool {
	_, ok := n.(*Text)
	return ok
}

func IsElement(n Node) bool {
	_, ok := n.(*Element)
	return ok
}

func isCategory(n Node, c schema.Category) bool {
	el, ok := n.(*Element)
	return ok && el.Category() == c
}

func IsBlock(n Node) bool { return isCategory(n, schema.Block) }

func IsInline(n Node) bool { return isCategory(n, schema.Inline) }

func IsVoid(n Node) bool { return isCategory(n, schema.Void) }

func IsInlineVoid(n Node) bool { return isCategory(n, schema.InlineVoid) }

// IsAnyVoid reports whether n renders as an opaque void, inline or not.
func IsAnyVoid(n Node) bool { return IsVoid(n) || IsInlineVoid(n) }

// IsType reports whether n is an element of type t.
func IsType(n Node, t schema.Type) bool {
	el, ok := n.(*Element)
	return ok && el.Type == t
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Text:
		return &Text{Text: n.Text, Marks: n.Marks.Clone()}
	case *Element:
		c := *n
		c.Style = n.Style.Clone()
		c.Attributes = n.Attributes.Clone()
		c.VoidData = n.VoidData.Clone()
		c.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = Clone(child)
		}
		return &c
	}
	return nil
}

// TextContent concatenates the text of all leaves under n.
func TextContent(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		b.WriteString(n.Text)
	case *Element:
		for _, c := range n.Children {
			writeText(b, c)
		}
	}
}

// IsEmpty reports whether n has no text and no void content.
func IsEmpty(n Node) bool {
	switch n := n.(type) {
	case *Text:
		return n.Text == ""
	case *Element:
		if IsAnyVoid(n) {
			return false
		}
		for _, c := range n.Children {
			if !IsEmpty(c) {
				return false
			}
		}
		return true
	}
	return true
}
