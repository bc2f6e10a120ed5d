package editor

import (
	"github.com/pkg/errors"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

// Above returns the lowest element enclosing the selection anchor that
// matches fn.
func (e *Editor) Above(match func(el *document.Element, p document.Path) bool) (document.ElementEntry, bool) {
	if e.selection == nil {
		return document.ElementEntry{}, false
	}
	return e.AboveAt(e.selection.Anchor.Path, match)
}

// AboveAt returns the lowest element enclosing p that matches fn.
func (e *Editor) AboveAt(p document.Path, match func(el *document.Element, p document.Path) bool) (document.ElementEntry, bool) {
	ancestors := e.doc.Ancestors(p)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if match(ancestors[i].Element, ancestors[i].Path) {
			return ancestors[i], true
		}
	}
	return document.ElementEntry{}, false
}

// NodeOfType returns the element of type t enclosing the selection.
func (e *Editor) NodeOfType(t schema.Type) (document.ElementEntry, bool) {
	return e.Above(func(el *document.Element, _ document.Path) bool {
		return el.Type == t
	})
}

// ClosestLeaf returns the leaf holding the selection anchor.
func (e *Editor) ClosestLeaf() (document.LeafEntry, bool) {
	if e.selection == nil {
		return document.LeafEntry{}, false
	}
	leaf, err := e.doc.Leaf(e.selection.Anchor.Path)
	if err != nil {
		return document.LeafEntry{}, false
	}
	return document.LeafEntry{Path: e.selection.Anchor.Path.Clone(), Leaf: leaf}, true
}

// SlicePath returns the anchor and focus paths cut to depth.
func (e *Editor) SlicePath(depth int) (anchor, focus document.Path, ok bool) {
	if e.selection == nil {
		return nil, nil, false
	}
	return e.selection.Anchor.Path.Slice(depth), e.selection.Focus.Path.Slice(depth), true
}

// BlockAbove returns the lowest block enclosing p.
func (e *Editor) BlockAbove(p document.Path) (document.ElementEntry, bool) {
	return e.AboveAt(p, func(el *document.Element, _ document.Path) bool {
		return document.IsBlock(el)
	})
}

// VoidAbove returns the void or inline-void element enclosing p.
func (e *Editor) VoidAbove(p document.Path) (document.ElementEntry, bool) {
	return e.AboveAt(p, func(el *document.Element, _ document.Path) bool {
		return document.IsAnyVoid(el)
	})
}

// PreviousLeaf returns the last leaf before the node at p.
func (e *Editor) PreviousLeaf(p document.Path) (document.LeafEntry, bool) {
	return e.leafBefore(p)
}

// NextLeaf returns the first leaf after the node at p.
func (e *Editor) NextLeaf(p document.Path) (document.LeafEntry, bool) {
	return e.leafAfter(p)
}

// Start returns the first point inside the node at p.
func (e *Editor) Start(p document.Path) (Point, error) {
	leaves := e.leavesIn(p)
	if len(leaves) == 0 {
		return Point{}, errors.Wrapf(document.ErrNotFound, "no leaf in %s", p)
	}
	return Point{Path: leaves[0].Path}, nil
}

// End returns the last point inside the node at p.
func (e *Editor) End(p document.Path) (Point, error) {
	leaves := e.leavesIn(p)
	if len(leaves) == 0 {
		return Point{}, errors.Wrapf(document.ErrNotFound, "no leaf in %s", p)
	}
	last := leaves[len(leaves)-1]
	return Point{Path: last.Path, Offset: runeLen(last.Leaf.Text)}, nil
}

// IsStart reports whether nothing visible precedes pt inside the node at p.
func (e *Editor) IsStart(pt Point, p document.Path) bool {
	if !pt.Path.HasPrefix(p) || pt.Offset != 0 {
		return false
	}
	for _, entry := range e.leavesIn(p) {
		if entry.Path.Equal(pt.Path) {
			return true
		}
		if entry.Leaf.Text != "" || e.inVoid(entry.Path) {
			return false
		}
	}
	return false
}

// IsEnd reports whether nothing visible follows pt inside the node at p.
func (e *Editor) IsEnd(pt Point, p document.Path) bool {
	if !pt.Path.HasPrefix(p) {
		return false
	}
	leaves := e.leavesIn(p)
	for i := len(leaves) - 1; i >= 0; i-- {
		entry := leaves[i]
		if entry.Path.Equal(pt.Path) {
			return pt.Offset == runeLen(entry.Leaf.Text)
		}
		if entry.Leaf.Text != "" || e.inVoid(entry.Path) {
			return false
		}
	}
	return false
}

func (e *Editor) leavesIn(p document.Path) []document.LeafEntry {
	var out []document.LeafEntry
	for _, entry := range e.doc.Leaves() {
		if entry.Path.HasPrefix(p) {
			out = append(out, entry)
		}
	}
	return out
}

func (e *Editor) inVoid(p document.Path) bool {
	_, ok := e.VoidAbove(p)
	return ok
}
