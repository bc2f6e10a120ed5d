package editor

import (
	"github.com/pkg/errors"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

// apply mutates the document. An operation that fails validation leaves the
// document and selection untouched.
func (e *Editor) apply(op Operation) error {
	if op.Type == OpSetSelection {
		if err := e.validateSelection(op.Selection); err != nil {
			return err
		}
		e.selection = op.Selection.Clone()
		e.notify(op)
		return nil
	}

	// Points inside a removed subtree move to the closest surviving leaf.
	var fallback *Selection
	if op.Type == OpRemoveNode && e.selection != nil {
		fallback = e.selectionAfterRemove(op.Path)
	}

	if err := e.mutate(op); err != nil {
		return err
	}

	e.rebaseSelection(op, fallback)
	e.notify(op)
	return nil
}

func (e *Editor) notify(op Operation) {
	for _, fn := range e.observers {
		fn(op)
	}
}

func invalid(op Operation, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidOperation, "%s: "+format, append([]any{op.Type}, args...)...)
}

func (e *Editor) mutate(op Operation) error {
	doc := e.doc

	switch op.Type {
	case OpInsertNode:
		if op.Node == nil {
			return invalid(op, "no node")
		}
		if err := doc.Insert(op.Path, document.Clone(op.Node)); err != nil {
			return invalid(op, "%v", err)
		}

	case OpRemoveNode:
		if _, err := doc.Remove(op.Path); err != nil {
			return invalid(op, "%v", err)
		}

	case OpMergeNode:
		prevPath, ok := op.Path.Previous()
		if !ok {
			return invalid(op, "no previous sibling at %s", op.Path)
		}
		node, err := doc.Get(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		prev, _ := doc.Get(prevPath)
		switch prev := prev.(type) {
		case *document.Text:
			t, ok := node.(*document.Text)
			if !ok {
				return invalid(op, "cannot merge element into leaf")
			}
			prev.Text += t.Text
		case *document.Element:
			el, ok := node.(*document.Element)
			if !ok {
				return invalid(op, "cannot merge leaf into element")
			}
			prev.Children = append(prev.Children, el.Children...)
		}
		_, _ = doc.Remove(op.Path)

	case OpMoveNode:
		if op.Path.Equal(op.NewPath) {
			return nil
		}
		if op.NewPath.HasPrefix(op.Path) {
			return invalid(op, "cannot move %s into itself", op.Path)
		}
		node, err := doc.Remove(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		if err := doc.Insert(op.NewPath, node); err != nil {
			_ = doc.Insert(op.Path, node)
			return invalid(op, "%v", err)
		}

	case OpSplitNode:
		node, err := doc.Get(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		var right document.Node
		switch n := node.(type) {
		case *document.Text:
			if op.Position < 0 || op.Position > runeLen(n.Text) {
				return invalid(op, "position %d out of range", op.Position)
			}
			left, rest := runeSplit(n.Text, op.Position)
			n.Text = left
			right = &document.Text{Text: rest, Marks: n.Marks.Clone()}
		case *document.Element:
			if op.Position < 0 || op.Position > len(n.Children) {
				return invalid(op, "position %d out of range", op.Position)
			}
			half := document.Clone(&document.Element{
				Type:         n.Type,
				ID:           n.ID,
				Style:        n.Style,
				Attributes:   n.Attributes,
				VoidData:     n.VoidData,
				Placeholder:  n.Placeholder,
				ClassName:    n.ClassName,
				PreviousType: n.PreviousType,
			}).(*document.Element)
			half.Children = append([]document.Node(nil), n.Children[op.Position:]...)
			n.Children = n.Children[:op.Position:op.Position]
			op.Properties.applyTo(half)
			right = half
		}
		_ = doc.Insert(op.Path.Next(), right)

	case OpInsertText:
		leaf, err := doc.Leaf(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		if op.Offset < 0 || op.Offset > runeLen(leaf.Text) {
			return invalid(op, "offset %d out of range", op.Offset)
		}
		before, after := runeSplit(leaf.Text, op.Offset)
		leaf.Text = before + op.Text + after

	case OpRemoveText:
		leaf, err := doc.Leaf(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		end := op.Offset + runeLen(op.Text)
		if op.Offset < 0 || end > runeLen(leaf.Text) {
			return invalid(op, "range %d..%d out of range", op.Offset, end)
		}
		if runeSlice(leaf.Text, op.Offset, end) != op.Text {
			return invalid(op, "text %q not found at %d", op.Text, op.Offset)
		}
		leaf.Text = runeSlice(leaf.Text, 0, op.Offset) + runeSlice(leaf.Text, end, runeLen(leaf.Text))

	case OpSetNode:
		el, err := doc.Element(op.Path)
		if err != nil {
			return invalid(op, "%v", err)
		}
		if op.Properties.Type != "" && schema.CategoryOf(op.Properties.Type) == schema.UnknownCategory {
			return invalid(op, "unregistered type %q", op.Properties.Type)
		}
		op.Properties.applyTo(el)

	default:
		return invalid(op, "unknown operation type")
	}

	return nil
}

func (e *Editor) validateSelection(sel *Selection) error {
	if sel == nil {
		return nil
	}
	for _, pt := range []Point{sel.Anchor, sel.Focus} {
		leaf, err := e.doc.Leaf(pt.Path)
		if err != nil {
			return errors.Wrapf(ErrInvalidOperation, "selection point %s: %v", pt, err)
		}
		if pt.Offset < 0 || pt.Offset > runeLen(leaf.Text) {
			return errors.Wrapf(ErrInvalidOperation, "selection point %s: offset out of range", pt)
		}
	}
	return nil
}

func (e *Editor) rebaseSelection(op Operation, fallback *Selection) {
	if e.selection == nil {
		return
	}

	anchor, okA := TransformPoint(e.selection.Anchor, op)
	focus, okF := TransformPoint(e.selection.Focus, op)

	if okA && okF {
		e.selection = &Selection{Anchor: anchor, Focus: focus}
		return
	}
	if fallback == nil {
		e.selection = nil
		return
	}
	if !okA {
		anchor = fallback.Anchor
	}
	if !okF {
		focus = fallback.Focus
	}
	e.selection = &Selection{Anchor: anchor, Focus: focus}
}

// selectionAfterRemove computes, before the node at path is removed, the
// collapsed selection to use for points inside it: the end of the previous
// leaf, or the start of the next one, in post-removal coordinates.
func (e *Editor) selectionAfterRemove(path document.Path) *Selection {
	removeOp := Operation{Type: OpRemoveNode, Path: path}

	if prev, ok := e.leafBefore(path); ok {
		p, _ := TransformPath(prev.Path, removeOp)
		return Collapsed(Point{Path: p, Offset: runeLen(prev.Leaf.Text)})
	}
	if next, ok := e.leafAfter(path); ok {
		p, _ := TransformPath(next.Path, removeOp)
		return Collapsed(Point{Path: p})
	}
	return nil
}

// leafBefore returns the last leaf that precedes the subtree at path.
func (e *Editor) leafBefore(path document.Path) (document.LeafEntry, bool) {
	var found document.LeafEntry
	ok := false
	for _, entry := range e.doc.Leaves() {
		if entry.Path.HasPrefix(path) || !entry.Path.IsBefore(path) {
			break
		}
		found, ok = entry, true
	}
	return found, ok
}

// leafAfter returns the first leaf that follows the subtree at path.
func (e *Editor) leafAfter(path document.Path) (document.LeafEntry, bool) {
	for _, entry := range e.doc.Leaves() {
		if entry.Path.IsAfter(path) {
			return entry, true
		}
	}
	return document.LeafEntry{}, false
}
