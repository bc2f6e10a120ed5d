package plugins

import (
	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/schema"
)

// Table keeps the table > row > cell grid intact while editing. Deletes stop
// at cell boundaries and only empty cells; a table goes away when it is
// deleted whole. A break adds a row, pasted content lands after the table
// and Tab moves between cells.
func Table(style TableStyle) editor.Plugin {
	style = style.withDefaults()

	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		deleteBackward := next.DeleteBackward
		next.DeleteBackward = func() error {
			sel := e.Selection()
			if sel == nil || !sel.IsCollapsed() {
				return deleteBackward()
			}
			if cell, ok := cellAt(e, sel.Anchor.Path); ok {
				if e.IsStart(sel.Anchor, cell.Path) {
					return nil
				}
				return deleteBackward()
			}
			block, ok := e.BlockAbove(sel.Anchor.Path)
			if ok && e.IsStart(sel.Anchor, block.Path) {
				if prev, ok := e.PreviousLeaf(block.Path); ok {
					if table, ok := tableOfCell(e, prev.Path); ok {
						return e.RemoveNode(table.Path)
					}
				}
			}
			return deleteBackward()
		}

		deleteForward := next.DeleteForward
		next.DeleteForward = func() error {
			sel := e.Selection()
			if sel == nil || !sel.IsCollapsed() {
				return deleteForward()
			}
			if cell, ok := cellAt(e, sel.Anchor.Path); ok {
				if e.IsEnd(sel.Anchor, cell.Path) {
					return nil
				}
				return deleteForward()
			}
			block, ok := e.BlockAbove(sel.Anchor.Path)
			if ok && e.IsEnd(sel.Anchor, block.Path) {
				if next, ok := e.NextLeaf(block.Path); ok {
					if table, ok := tableOfCell(e, next.Path); ok {
						return e.RemoveNode(table.Path)
					}
				}
			}
			return deleteForward()
		}

		deleteSelection := next.DeleteSelection
		next.DeleteSelection = func() error {
			return deleteAcrossTables(e, deleteSelection)
		}

		insertBreak := next.InsertBreak
		next.InsertBreak = func() error {
			if sel := e.Selection(); sel != nil && !sel.IsCollapsed() {
				if err := e.DeleteSelection(); err != nil {
					return err
				}
			}
			row, ok := e.NodeOfType(schema.TableRow)
			if !ok {
				return insertBreak()
			}
			table, ok := e.NodeOfType(schema.Table)
			if !ok {
				return insertBreak()
			}
			return insertRowAfter(e, table, row, style)
		}

		insertFragment := next.InsertFragment
		next.InsertFragment = func(nodes []document.Node) error {
			table, ok := e.NodeOfType(schema.Table)
			if !ok || len(nodes) == 0 {
				return insertFragment(nodes)
			}
			at := document.Path{table.Path[0] + 1}
			blocks := e.WrapInlines(nodes)
			if err := e.InsertNodes(at, blocks...); err != nil {
				return err
			}
			end, err := e.End(document.Path{at[0] + len(blocks) - 1})
			if err != nil {
				return err
			}
			return e.SelectPoint(end)
		}

		insertTab := next.InsertTab
		next.InsertTab = func(backward bool) error {
			sel := e.Selection()
			if sel == nil {
				return insertTab(backward)
			}
			cell, ok := cellAt(e, sel.Anchor.Path)
			if !ok {
				return insertTab(backward)
			}
			table, ok := e.AboveAt(cell.Path, isType(schema.Table))
			if !ok {
				return insertTab(backward)
			}
			return moveToCell(e, table, cell.Path, backward)
		}

		return next
	}
}

func isCell(t schema.Type) bool {
	return t == schema.TableCell || t == schema.TableHeader
}

func isType(t schema.Type) func(*document.Element, document.Path) bool {
	return func(el *document.Element, _ document.Path) bool {
		return el.Type == t
	}
}

func cellAt(e *editor.Editor, p document.Path) (document.ElementEntry, bool) {
	return e.AboveAt(p, func(el *document.Element, _ document.Path) bool {
		return isCell(el.Type)
	})
}

// tableOfCell returns the table around p when p lies in a cell.
func tableOfCell(e *editor.Editor, p document.Path) (document.ElementEntry, bool) {
	if _, ok := cellAt(e, p); !ok {
		return document.ElementEntry{}, false
	}
	return e.AboveAt(p, isType(schema.Table))
}

// deleteAcrossTables handles an expanded selection with an edge inside a
// cell. Covered text in partly selected tables is cleared, tables covered
// whole are removed, and the stretch between the tables goes to next.
func deleteAcrossTables(e *editor.Editor, next func() error) error {
	sel := e.Selection()
	if sel == nil || sel.IsCollapsed() {
		return next()
	}
	start, end := sel.Edges()
	first, inFirst := tableOfCell(e, start.Path)
	last, inLast := tableOfCell(e, end.Path)
	if !inFirst && !inLast {
		return next()
	}

	if inFirst && inLast && first.Path.Equal(last.Path) {
		if e.IsStart(start, first.Path) && e.IsEnd(end, first.Path) {
			return removeTable(e, first.Element)
		}
		if err := clearText(e, first.Path, start, end); err != nil {
			return err
		}
		return e.SelectPoint(start)
	}

	wholeFirst := inFirst && e.IsStart(start, first.Path)
	wholeLast := inLast && e.IsEnd(end, last.Path)

	if inFirst && !wholeFirst {
		tableEnd, err := e.End(first.Path)
		if err != nil {
			return err
		}
		if err := clearText(e, first.Path, start, tableEnd); err != nil {
			return err
		}
	}
	if inLast && !wholeLast {
		tableStart, err := e.Start(last.Path)
		if err != nil {
			return err
		}
		if err := clearText(e, last.Path, tableStart, end); err != nil {
			return err
		}
	}

	between := tablesBetween(e, start, end)
	for i := len(between) - 1; i >= 0; i-- {
		if err := e.RemoveNode(between[i]); err != nil {
			return err
		}
	}

	if err := deleteOutsideTables(e, first, inFirst, last, inLast, next); err != nil {
		return err
	}

	if wholeLast {
		if err := removeTable(e, last.Element); err != nil {
			return err
		}
	}
	if wholeFirst {
		return removeTable(e, first.Element)
	}
	return e.SelectPoint(start)
}

// deleteOutsideTables hands the part of the current selection that lies
// between the edge tables to next.
func deleteOutsideTables(e *editor.Editor, first document.ElementEntry, inFirst bool, last document.ElementEntry, inLast bool, next func() error) error {
	sel := e.Selection()
	if sel == nil {
		return nil
	}
	from, to := sel.Edges()

	if inFirst {
		leaf, ok := e.NextLeaf(first.Path)
		if !ok {
			return nil
		}
		from = editor.Point{Path: leaf.Path}
	}
	if inLast {
		lastPath, ok := pathOf(e, last.Element)
		if !ok {
			return nil
		}
		leaf, ok := e.PreviousLeaf(lastPath)
		if !ok {
			return nil
		}
		to = editor.Point{Path: leaf.Path, Offset: len([]rune(leaf.Leaf.Text))}
	}
	if from.Compare(to) >= 0 {
		return nil
	}

	if err := e.Select(editor.Selection{Anchor: from, Focus: to}); err != nil {
		return err
	}
	return next()
}

// clearText removes the text between from and to inside the node at within.
func clearText(e *editor.Editor, within document.Path, from, to editor.Point) error {
	for _, entry := range e.Document().Leaves() {
		if !entry.Path.HasPrefix(within) || entry.Path.IsBefore(from.Path) || entry.Path.IsAfter(to.Path) {
			continue
		}
		text := []rune(entry.Leaf.Text)
		lo, hi := 0, len(text)
		if entry.Path.Equal(from.Path) {
			lo = min(from.Offset, hi)
		}
		if entry.Path.Equal(to.Path) {
			hi = min(to.Offset, hi)
		}
		if lo >= hi {
			continue
		}
		err := e.Apply(editor.Operation{
			Type:   editor.OpRemoveText,
			Path:   entry.Path,
			Offset: lo,
			Text:   string(text[lo:hi]),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// tablesBetween returns the tables lying strictly between start and end.
func tablesBetween(e *editor.Editor, start, end editor.Point) []document.Path {
	var out []document.Path
	e.Document().Walk(func(p document.Path, n document.Node) bool {
		if !document.IsType(n, schema.Table) {
			return true
		}
		if p.IsAfter(start.Path) && p.IsBefore(end.Path) {
			out = append(out, p.Clone())
		}
		return false
	})
	return out
}

// removeTable removes table and selects whatever took its place. An empty
// document gets a fresh paragraph.
func removeTable(e *editor.Editor, table *document.Element) error {
	at, ok := pathOf(e, table)
	if !ok {
		return nil
	}
	if err := e.RemoveNode(at); err != nil {
		return err
	}
	if len(e.Document().Children) == 0 {
		p := document.NewElement(schema.Paragraph, document.NewText(""))
		p.ID = e.IDs().NewID()
		if err := e.InsertNodes(document.Path{0}, p); err != nil {
			return err
		}
		at = document.Path{0}
	}
	if !e.Document().Has(at) {
		return nil
	}
	start, err := e.Start(at)
	if err != nil {
		return err
	}
	return e.SelectPoint(start)
}

func pathOf(e *editor.Editor, target *document.Element) (document.Path, bool) {
	var found document.Path
	e.Document().Walk(func(p document.Path, n document.Node) bool {
		if found != nil {
			return false
		}
		if n == document.Node(target) {
			found = p.Clone()
			return false
		}
		return true
	})
	return found, found != nil
}

func insertRowAfter(e *editor.Editor, table, row document.ElementEntry, style TableStyle) error {
	rows := len(table.Element.Children) + 1
	cols := len(row.Element.Children)
	at := row.Path.Next()

	newRow := buildRow(at.Last(), rows, cols, e.IDs(), style)
	if err := e.InsertNodes(at, newRow); err != nil {
		return err
	}

	restyleTable(e, table.Path, style)

	start, err := e.Start(at)
	if err != nil {
		return err
	}
	return e.SelectPoint(start)
}

// restyleTable applies CellStyle to every cell whose style differs.
func restyleTable(e *editor.Editor, tablePath document.Path, style TableStyle) {
	table, err := e.Document().Element(tablePath)
	if err != nil {
		return
	}
	rows := len(table.Children)
	for r, rowNode := range table.Children {
		row, ok := rowNode.(*document.Element)
		if !ok {
			continue
		}
		cols := len(row.Children)
		for c, cellNode := range row.Children {
			cell, ok := cellNode.(*document.Element)
			if !ok || !isCell(cell.Type) {
				continue
			}
			want := CellStyle(r, c, rows, cols, style)
			if cell.Style.Equal(want) {
				continue
			}
			if err := e.SetNode(tablePath.Append(r, c), editor.Properties{Style: &want}); err != nil {
				e.Logger().Debug("failed to restyle cell", zap.Int("row", r), zap.Int("col", c), zap.Error(err))
			}
		}
	}
}

func moveToCell(e *editor.Editor, table document.ElementEntry, current document.Path, backward bool) error {
	var cells []document.Path
	for r, rowNode := range table.Element.Children {
		row, ok := rowNode.(*document.Element)
		if !ok {
			continue
		}
		for c, cellNode := range row.Children {
			if el, ok := cellNode.(*document.Element); ok && isCell(el.Type) {
				cells = append(cells, table.Path.Append(r, c))
			}
		}
	}

	idx := -1
	for i, p := range cells {
		if p.Equal(current) {
			idx = i
			break
		}
	}
	if backward {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= len(cells) {
		return nil
	}

	start, err := e.Start(cells[idx])
	if err != nil {
		return err
	}
	return e.SelectPoint(start)
}
