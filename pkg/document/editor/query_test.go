package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

func queryEditor(t *testing.T) *Editor {
	cell := func(s string) *document.Element { return document.NewElement(schema.TableCell, text(s)) }
	table := document.NewElement(
		schema.Table,
		document.NewElement(schema.TableRow, cell("a"), cell("b")),
	)
	latex := document.NewVoid(schema.Latex, document.NewProps("latex", `\(y\)`))
	return newEditor(t, []document.Node{table, paragraph(text(""), latex, text("x"))})
}

func TestQueries_NoSelection(t *testing.T) {
	e := queryEditor(t)

	_, ok := e.NodeOfType(schema.Table)
	assert.False(t, ok)
	_, ok = e.ClosestLeaf()
	assert.False(t, ok)
	_, _, ok = e.SlicePath(1)
	assert.False(t, ok)
}

func TestQueries(t *testing.T) {
	e := queryEditor(t)
	selectAt(t, e, document.Path{0, 0, 1, 0}, 0)

	cell, ok := e.NodeOfType(schema.TableCell)
	require.True(t, ok)
	assert.Equal(t, document.Path{0, 0, 1}, cell.Path)

	table, ok := e.NodeOfType(schema.Table)
	require.True(t, ok)
	assert.Equal(t, document.Path{0}, table.Path)

	_, ok = e.NodeOfType(schema.ListItem)
	assert.False(t, ok)

	leaf, ok := e.ClosestLeaf()
	require.True(t, ok)
	assert.Equal(t, "b", leaf.Leaf.Text)

	anchor, focus, ok := e.SlicePath(2)
	require.True(t, ok)
	assert.Equal(t, document.Path{0, 0}, anchor)
	assert.Equal(t, document.Path{0, 0}, focus)

	block, ok := e.BlockAbove(document.Path{0, 0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, schema.TableCell, block.Element.Type)

	prev, ok := e.PreviousLeaf(document.Path{0, 0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "a", prev.Leaf.Text)
	next, ok := e.NextLeaf(document.Path{0})
	require.True(t, ok)
	assert.Equal(t, document.Path{1, 0}, next.Path)
}

func TestStartEnd(t *testing.T) {
	e := queryEditor(t)

	start, err := e.Start(document.Path{0})
	require.NoError(t, err)
	assert.Equal(t, Point{Path: document.Path{0, 0, 0, 0}}, start)

	end, err := e.End(document.Path{1})
	require.NoError(t, err)
	assert.Equal(t, Point{Path: document.Path{1, 2}, Offset: 1}, end)

	_, err = e.Start(document.Path{5})
	assert.Error(t, err)

	cell := document.Path{0, 0, 1}
	assert.True(t, e.IsStart(Point{Path: document.Path{0, 0, 1, 0}}, cell))
	assert.False(t, e.IsEnd(Point{Path: document.Path{0, 0, 1, 0}}, cell))
	assert.True(t, e.IsEnd(Point{Path: document.Path{0, 0, 1, 0}, Offset: 1}, cell))
	assert.False(t, e.IsStart(Point{Path: document.Path{0, 0, 1, 0}}, document.Path{1}))

	// An empty leaf before a void does not make the point after it a start.
	assert.False(t, e.IsStart(Point{Path: document.Path{1, 2}}, document.Path{1}))
	assert.True(t, e.IsStart(Point{Path: document.Path{1, 0}}, document.Path{1}))
	assert.True(t, e.IsEnd(Point{Path: document.Path{1, 2}, Offset: 1}, document.Path{1}))
}
