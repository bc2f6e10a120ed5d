package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

func paragraph(children ...document.Node) *document.Element {
	p := document.NewElement(schema.Paragraph, children...)
	p.ID = "p"
	return p
}

func text(s string, marks ...any) *document.Text {
	return document.NewText(s, marks...)
}

func newEditor(t *testing.T, nodes []document.Node, opts ...Option) *Editor {
	t.Helper()
	return New(&document.Document{Children: nodes}, opts...)
}

func selectAt(t *testing.T, e *Editor, path document.Path, offset int) {
	t.Helper()
	require.NoError(t, e.SelectPoint(Point{Path: path, Offset: offset}))
}

func texts(e *Editor) []string {
	var out []string
	for _, n := range e.Document().Children {
		out = append(out, document.TextContent(n))
	}
	return out
}

func TestNew(t *testing.T) {
	e := New(nil)
	require.Len(t, e.Document().Children, 1)
	assert.NotEmpty(t, e.Document().Children[0].(*document.Element).ID)
	assert.Nil(t, e.Selection())
}

func TestPluginOrder(t *testing.T) {
	var calls []string
	record := func(name string) Plugin {
		return func(_ *Editor, next Handlers) Handlers {
			insertText := next.InsertText
			next.InsertText = func(s string) error {
				calls = append(calls, name)
				return insertText(s)
			}
			return next
		}
	}

	e := newEditor(t, []document.Node{paragraph(text(""))}, WithPlugins(record("outer"), record("inner")))
	selectAt(t, e, document.Path{0, 0}, 0)
	require.NoError(t, e.InsertText("x"))

	assert.Equal(t, []string{"outer", "inner"}, calls)
	assert.Equal(t, []string{"x"}, texts(e))
}

func TestApply_InvalidOperation(t *testing.T) {
	e := newEditor(t, []document.Node{paragraph(text("abc"))})
	before := document.Dump(e.Document())

	testCases := []struct {
		name string
		op   Operation
	}{
		{"wrong text", Operation{Type: OpRemoveText, Path: document.Path{0, 0}, Offset: 1, Text: "x"}},
		{"text out of range", Operation{Type: OpInsertText, Path: document.Path{0, 0}, Offset: 9, Text: "x"}},
		{"text into element", Operation{Type: OpInsertText, Path: document.Path{0}, Text: "x"}},
		{"missing node", Operation{Type: OpRemoveNode, Path: document.Path{3}}},
		{"insert nothing", Operation{Type: OpInsertNode, Path: document.Path{1}}},
		{"split out of range", Operation{Type: OpSplitNode, Path: document.Path{0}, Position: 5}},
		{"merge first", Operation{Type: OpMergeNode, Path: document.Path{0}}},
		{"move into itself", Operation{Type: OpMoveNode, Path: document.Path{0}, NewPath: document.Path{0, 1}}},
		{"unknown type", Operation{Type: OpSetNode, Path: document.Path{0}, Properties: Properties{Type: "marquee"}}},
		{"bad selection", Operation{Type: OpSetSelection, Selection: Collapsed(Point{Path: document.Path{0}})}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.Apply(tc.op)
			assert.ErrorIs(t, err, ErrInvalidOperation)
			assert.Equal(t, before, document.Dump(e.Document()))
		})
	}
}

func TestApply_Observer(t *testing.T) {
	var ops []OpType
	e := newEditor(
		t,
		[]document.Node{paragraph(text("ab"))},
		WithObserver(func(op Operation) { ops = append(ops, op.Type) }),
	)
	selectAt(t, e, document.Path{0, 0}, 2)
	require.NoError(t, e.InsertText("c"))

	assert.Equal(t, []OpType{OpSetSelection, OpInsertText}, ops)
}

func TestSetNode(t *testing.T) {
	e := newEditor(t, []document.Node{paragraph(text("a"))})
	style := document.NewProps("marginLeft", "4px")

	require.NoError(t, e.SetNode(document.Path{0}, Properties{
		Type:            schema.HeadingOne,
		ClassName:       StringPtr("placeholder"),
		Style:           &style,
		NextType:        schema.Blockquote,
		KeepCurrentType: true,
	}))

	el := e.Document().Children[0].(*document.Element)
	assert.Equal(t, schema.HeadingOne, el.Type)
	assert.Equal(t, "placeholder", el.ClassName)
	assert.Equal(t, "4px", el.Style.String("marginLeft"))

	require.NoError(t, e.SetNode(document.Path{0}, Properties{ClassName: StringPtr("")}))
	assert.Empty(t, el.ClassName)
	assert.Equal(t, schema.HeadingOne, el.Type, "zero properties leave fields alone")
}

func TestWrapNode(t *testing.T) {
	e := newEditor(t, []document.Node{paragraph(text("a")), paragraph(text("b"))})
	selectAt(t, e, document.Path{1, 0}, 1)

	require.NoError(t, e.WrapNode(document.Path{1}, document.NewElement(schema.Blockquote)))

	quote := e.Document().Children[1].(*document.Element)
	assert.Equal(t, schema.Blockquote, quote.Type)
	require.Len(t, quote.Children, 1)
	assert.Equal(t, "b", document.TextContent(quote.Children[0]))
	assert.Equal(t, document.Path{1, 0, 0}, e.Selection().Anchor.Path)
}

func TestRemoveNode_SelectionFallback(t *testing.T) {
	e := newEditor(t, []document.Node{paragraph(text("ab")), paragraph(text("cd"))})

	selectAt(t, e, document.Path{1, 0}, 1)
	require.NoError(t, e.RemoveNode(document.Path{1}))
	assert.Equal(t, Point{Path: document.Path{0, 0}, Offset: 2}, e.Selection().Anchor)

	require.NoError(t, e.InsertNodes(document.Path{0}, paragraph(text("new"))))
	assert.Equal(t, document.Path{1, 0}, e.Selection().Anchor.Path)

	selectAt(t, e, document.Path{0, 0}, 0)
	require.NoError(t, e.RemoveNode(document.Path{0}))
	assert.Equal(t, Point{Path: document.Path{0, 0}, Offset: 0}, e.Selection().Anchor)
}
