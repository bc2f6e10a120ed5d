package editor

import (
	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

func (e *Editor) insertText(text string) error {
	if e.selection == nil || text == "" {
		return nil
	}
	if !e.selection.IsCollapsed() {
		if err := e.DeleteSelection(); err != nil {
			return err
		}
	}
	pt := e.selection.Anchor
	return e.Apply(Operation{Type: OpInsertText, Path: pt.Path, Offset: pt.Offset, Text: text})
}

func (e *Editor) insertTab(backward bool) error {
	if backward {
		return nil
	}
	return e.InsertText("\t")
}

func (e *Editor) deleteBackward() error {
	if e.selection == nil {
		return nil
	}
	if !e.selection.IsCollapsed() {
		return e.DeleteSelection()
	}

	pt := e.selection.Anchor
	leaf, err := e.doc.Leaf(pt.Path)
	if err != nil {
		return err
	}
	if pt.Offset > 0 {
		return e.removeText(pt.Path, pt.Offset-1, runeSlice(leaf.Text, pt.Offset-1, pt.Offset))
	}

	block, ok := e.BlockAbove(pt.Path)
	if !ok {
		return nil
	}

	for {
		pt = e.selection.Anchor
		prev, ok := e.PreviousLeaf(pt.Path)
		if !ok {
			return nil
		}
		if !prev.Path.HasPrefix(block.Path) {
			break
		}
		if void, ok := e.VoidAbove(prev.Path); ok {
			return e.RemoveNode(void.Path)
		}
		if n := runeLen(prev.Leaf.Text); n > 0 {
			return e.removeText(prev.Path, n-1, runeSlice(prev.Leaf.Text, n-1, n))
		}
		if removed, err := e.removeEmptyLeaf(prev.Path, block.Path); err != nil || !removed {
			if err != nil {
				return err
			}
			break
		}
	}

	// At the start of the block: join it with the block before.
	block, _ = e.BlockAbove(e.selection.Anchor.Path)
	prev, _ := e.PreviousLeaf(e.selection.Anchor.Path)
	if void, ok := e.VoidAbove(prev.Path); ok && document.IsVoid(void.Element) {
		return e.RemoveNode(void.Path)
	}
	prevBlock, ok := e.BlockAbove(prev.Path)
	if !ok {
		return nil
	}
	return e.joinBlocks(prevBlock, block)
}

func (e *Editor) deleteForward() error {
	if e.selection == nil {
		return nil
	}
	if !e.selection.IsCollapsed() {
		return e.DeleteSelection()
	}

	pt := e.selection.Anchor
	leaf, err := e.doc.Leaf(pt.Path)
	if err != nil {
		return err
	}
	if pt.Offset < runeLen(leaf.Text) {
		return e.removeText(pt.Path, pt.Offset, runeSlice(leaf.Text, pt.Offset, pt.Offset+1))
	}

	block, ok := e.BlockAbove(pt.Path)
	if !ok {
		return nil
	}

	var next document.LeafEntry
	for {
		next, ok = e.NextLeaf(e.selection.Anchor.Path)
		if !ok {
			return nil
		}
		if !next.Path.HasPrefix(block.Path) {
			break
		}
		if void, ok := e.VoidAbove(next.Path); ok {
			return e.RemoveNode(void.Path)
		}
		if next.Leaf.Text != "" {
			return e.removeText(next.Path, 0, runeSlice(next.Leaf.Text, 0, 1))
		}
		if removed, err := e.removeEmptyLeaf(next.Path, block.Path); err != nil || !removed {
			if err != nil {
				return err
			}
			break
		}
	}

	// At the end of the block: pull the next block into it.
	block, _ = e.BlockAbove(e.selection.Anchor.Path)
	if void, ok := e.VoidAbove(next.Path); ok && document.IsVoid(void.Element) {
		return e.RemoveNode(void.Path)
	}
	nextBlock, ok := e.BlockAbove(next.Path)
	if !ok {
		return nil
	}
	return e.joinBlocks(block, nextBlock)
}

func (e *Editor) removeText(p document.Path, offset int, text string) error {
	return e.Apply(Operation{Type: OpRemoveText, Path: p, Offset: offset, Text: text})
}

// removeEmptyLeaf removes an empty leaf that does not hold the selection.
// A leaf that is the only child of an inline is removed with the inline.
func (e *Editor) removeEmptyLeaf(p, block document.Path) (bool, error) {
	target := p
	for parent := target.Parent(); len(parent) > len(block); parent = parent.Parent() {
		el, err := e.doc.Element(parent)
		if err != nil || len(el.Children) > 1 {
			break
		}
		target = parent
	}
	if target.Equal(p) {
		if el, err := e.doc.Element(p.Parent()); err == nil && len(el.Children) == 1 {
			return false, nil
		}
	}
	return true, e.RemoveNode(target)
}

// joinBlocks moves the content of second to the end of first and removes
// second. Adjacent siblings are merged in a single operation.
func (e *Editor) joinBlocks(first, second document.ElementEntry) error {
	if first.Path.HasPrefix(second.Path) || second.Path.HasPrefix(first.Path) {
		return nil
	}
	if first.Path.Next().Equal(second.Path) {
		return e.MergeNode(second.Path)
	}

	target := first.Path.Append(len(first.Element.Children))
	for range second.Element.Children {
		if err := e.MoveNode(second.Path.Append(0), target); err != nil {
			return err
		}
		target = target.Next()
	}
	return e.removeWithEmptyAncestors(second.Path)
}

func (e *Editor) insertBreak() error {
	if e.selection == nil {
		return nil
	}
	if !e.selection.IsCollapsed() {
		if err := e.DeleteSelection(); err != nil {
			return err
		}
	}
	pt := e.selection.Anchor
	block, ok := e.BlockAbove(pt.Path)
	if !ok {
		return nil
	}
	return e.SplitAt(pt, len(block.Path))
}

func (e *Editor) insertFragment(nodes []document.Node) error {
	if e.selection == nil || len(nodes) == 0 {
		return nil
	}
	if !e.selection.IsCollapsed() {
		if err := e.DeleteSelection(); err != nil {
			return err
		}
	}

	pt := e.selection.Anchor

	if allInline(nodes) {
		if err := e.Apply(Operation{Type: OpSplitNode, Path: pt.Path, Position: pt.Offset}); err != nil {
			return err
		}
		at := pt.Path.Next()
		if err := e.InsertNodes(at, nodes...); err != nil {
			return err
		}
		return e.selectEnd(at.Parent().Append(at.Last() + len(nodes) - 1))
	}

	block, ok := e.BlockAbove(pt.Path)
	if !ok {
		return nil
	}
	blocks := e.WrapInlines(nodes)
	at := block.Path.Next()
	replace := document.IsEmpty(block.Element)
	if replace {
		at = block.Path
	}
	if err := e.InsertNodes(at, blocks...); err != nil {
		return err
	}
	last := at.Parent().Append(at.Last() + len(blocks) - 1)
	if replace {
		if err := e.RemoveNode(last.Next()); err != nil {
			return err
		}
	}
	return e.selectEnd(last)
}

// WrapInlines groups runs of leaves and inline nodes into paragraphs so the
// result can be inserted among blocks.
func (e *Editor) WrapInlines(nodes []document.Node) []document.Node {
	var (
		out []document.Node
		run []document.Node
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		p := document.NewElement(schema.Paragraph, run...)
		p.ID = e.ids.NewID()
		out = append(out, p)
		run = nil
	}
	for _, n := range nodes {
		if document.IsBlock(n) || document.IsVoid(n) {
			flush()
			out = append(out, n)
			continue
		}
		run = append(run, n)
	}
	flush()
	return out
}

func allInline(nodes []document.Node) bool {
	for _, n := range nodes {
		if document.IsBlock(n) || document.IsVoid(n) {
			return false
		}
	}
	return true
}

func (e *Editor) selectEnd(p document.Path) error {
	end, err := e.End(p)
	if err != nil {
		return err
	}
	return e.SelectPoint(end)
}

// deleteSelection removes the covered text and nodes. Blocks left adjacent
// are joined.
func (e *Editor) deleteSelection() error {
	if e.selection == nil || e.selection.IsCollapsed() {
		return nil
	}

	start, end := e.selection.Edges()

	if start.Path.Equal(end.Path) {
		leaf, err := e.doc.Leaf(start.Path)
		if err != nil {
			return err
		}
		if err := e.removeText(start.Path, start.Offset, runeSlice(leaf.Text, start.Offset, end.Offset)); err != nil {
			return err
		}
		return e.SelectPoint(Point{Path: start.Path, Offset: start.Offset})
	}

	if err := e.Select(Selection{Anchor: start, Focus: end}); err != nil {
		return err
	}

	endLeaf, err := e.doc.Leaf(end.Path)
	if err != nil {
		return err
	}
	if end.Offset > 0 {
		if err := e.removeText(end.Path, 0, runeSlice(endLeaf.Text, 0, end.Offset)); err != nil {
			return err
		}
	}

	var between []document.LeafEntry
	for _, entry := range e.doc.Leaves() {
		if entry.Path.IsAfter(start.Path) && entry.Path.IsBefore(e.selection.Focus.Path) {
			between = append(between, entry)
		}
	}
	for i := len(between) - 1; i >= 0; i-- {
		if err := e.removeWithEmptyAncestors(between[i].Path); err != nil {
			return err
		}
	}

	start = e.selection.Anchor
	startLeaf, err := e.doc.Leaf(start.Path)
	if err != nil {
		return err
	}
	if n := runeLen(startLeaf.Text); start.Offset < n {
		if err := e.removeText(start.Path, start.Offset, runeSlice(startLeaf.Text, start.Offset, n)); err != nil {
			return err
		}
	}

	startBlock, okS := e.BlockAbove(e.selection.Anchor.Path)
	endBlock, okE := e.BlockAbove(e.selection.Focus.Path)
	if okS && okE && !startBlock.Path.Equal(endBlock.Path) {
		if err := e.joinBlocks(startBlock, endBlock); err != nil {
			return err
		}
	}

	return e.SelectPoint(e.selection.Anchor)
}
