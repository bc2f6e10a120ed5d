package editor

import (
	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

// InsertNodes inserts nodes as consecutive siblings starting at at.
func (e *Editor) InsertNodes(at document.Path, nodes ...document.Node) error {
	p := at.Clone()
	for _, n := range nodes {
		if err := e.Apply(Operation{Type: OpInsertNode, Path: p, Node: n}); err != nil {
			return err
		}
		p = p.Next()
	}
	return nil
}

func (e *Editor) RemoveNode(at document.Path) error {
	return e.Apply(Operation{Type: OpRemoveNode, Path: at.Clone()})
}

// MoveNode moves the node at from so that it ends up at to.
func (e *Editor) MoveNode(from, to document.Path) error {
	return e.Apply(Operation{Type: OpMoveNode, Path: from.Clone(), NewPath: to.Clone()})
}

func (e *Editor) SetNode(at document.Path, props Properties) error {
	return e.Apply(Operation{Type: OpSetNode, Path: at.Clone(), Properties: props})
}

// MergeNode merges the node at at into its previous sibling.
func (e *Editor) MergeNode(at document.Path) error {
	prevPath, ok := at.Previous()
	if !ok {
		return invalid(Operation{Type: OpMergeNode, Path: at}, "no previous sibling")
	}
	prev, err := e.doc.Get(prevPath)
	if err != nil {
		return err
	}
	position := 0
	switch prev := prev.(type) {
	case *document.Text:
		position = runeLen(prev.Text)
	case *document.Element:
		position = len(prev.Children)
	}
	return e.Apply(Operation{Type: OpMergeNode, Path: at.Clone(), Position: position})
}

// WrapNode puts the node at at inside wrapper. The wrapper's own children
// are discarded.
func (e *Editor) WrapNode(at document.Path, wrapper *document.Element) error {
	w := document.Clone(wrapper).(*document.Element)
	w.Children = nil
	if err := e.Apply(Operation{Type: OpInsertNode, Path: at.Clone(), Node: w}); err != nil {
		return err
	}
	return e.MoveNode(at.Next(), at.Append(0))
}

// SplitAt splits the leaf at pt and its ancestors up to and including the
// ancestor at the given depth.
func (e *Editor) SplitAt(pt Point, depth int) error {
	if depth < 1 || depth > len(pt.Path) {
		return invalid(Operation{Type: OpSplitNode, Path: pt.Path}, "depth %d out of range", depth)
	}
	position := pt.Offset
	for p := pt.Path.Clone(); len(p) >= depth; p = p.Parent() {
		if err := e.Apply(Operation{Type: OpSplitNode, Path: p, Position: position}); err != nil {
			return err
		}
		position = p.Last() + 1
	}
	return nil
}

func (e *Editor) Select(sel Selection) error {
	return e.Apply(Operation{Type: OpSetSelection, Selection: sel.Clone()})
}

// SelectPoint collapses the selection at pt.
func (e *Editor) SelectPoint(pt Point) error {
	return e.Apply(Operation{Type: OpSetSelection, Selection: Collapsed(pt)})
}

func (e *Editor) Deselect() error {
	return e.Apply(Operation{Type: OpSetSelection})
}

// SetBlockType requests a type change of the block holding the selection.
// A non-empty wrapper asks for the block to be wrapped in a list of that type.
func (e *Editor) SetBlockType(t, wrapper schema.Type) error {
	if e.selection == nil {
		return nil
	}
	block, ok := e.BlockAbove(e.selection.Anchor.Path)
	if !ok {
		return nil
	}
	return e.SetNode(block.Path, Properties{NextType: t, WrapperListType: wrapper})
}

// removeWithEmptyAncestors removes the node at p and then every ancestor
// left without children.
func (e *Editor) removeWithEmptyAncestors(p document.Path) error {
	if err := e.RemoveNode(p); err != nil {
		return err
	}
	for parent := p.Parent(); len(parent) > 0; parent = parent.Parent() {
		el, err := e.doc.Element(parent)
		if err != nil || len(el.Children) > 0 {
			return nil
		}
		if err := e.RemoveNode(parent); err != nil {
			return err
		}
	}
	return nil
}
