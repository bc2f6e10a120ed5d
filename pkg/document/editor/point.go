package editor

import (
	"fmt"

	"github.com/stateful/qedit/pkg/document"
)

// Point is a position inside a leaf. Offset counts runes.
type Point struct {
	Path   document.Path
	Offset int
}

func (p Point) Clone() Point {
	return Point{Path: p.Path.Clone(), Offset: p.Offset}
}

func (p Point) Equal(other Point) bool {
	return p.Offset == other.Offset && p.Path.Equal(other.Path)
}

// Compare orders points in document order.
func (p Point) Compare(other Point) int {
	if c := p.Path.Compare(other.Path); c != 0 || len(p.Path) != len(other.Path) {
		return c
	}
	switch {
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	}
	return 0
}

func (p Point) String() string {
	return fmt.Sprintf("%s:%d", p.Path, p.Offset)
}

// Selection is an anchor/focus pair. Anchor is where the selection started.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a selection with both points at p.
func Collapsed(p Point) *Selection {
	return &Selection{Anchor: p.Clone(), Focus: p.Clone()}
}

func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	return &Selection{Anchor: s.Anchor.Clone(), Focus: s.Focus.Clone()}
}

func (s *Selection) IsCollapsed() bool {
	return s.Anchor.Equal(s.Focus)
}

// Edges returns the points in document order.
func (s *Selection) Edges() (start, end Point) {
	if s.Anchor.Compare(s.Focus) <= 0 {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

func (s *Selection) String() string {
	if s.IsCollapsed() {
		return s.Anchor.String()
	}
	return s.Anchor.String() + " " + s.Focus.String()
}

// TransformPath returns where p ends up after op. False means the node at p
// was removed.
func TransformPath(p document.Path, op Operation) (document.Path, bool) {
	if len(p) == 0 {
		return p, true
	}

	o := op.Path
	out := p.Clone()

	switch op.Type {
	case OpInsertNode:
		if o.EndsAt(p) || o.EndsBefore(p) {
			out[len(o)-1]++
		}

	case OpRemoveNode:
		if o.Equal(p) || o.IsAncestorOf(p) {
			return nil, false
		}
		if o.EndsBefore(p) {
			out[len(o)-1]--
		}

	case OpMergeNode:
		if o.Equal(p) || o.EndsBefore(p) {
			out[len(o)-1]--
		} else if o.IsAncestorOf(p) {
			out[len(o)-1]--
			out[len(o)] += op.Position
		}

	case OpSplitNode:
		if o.Equal(p) {
			out[len(out)-1]++
		} else if o.EndsBefore(p) {
			out[len(o)-1]++
		} else if o.IsAncestorOf(p) && p[len(o)] >= op.Position {
			out[len(o)-1]++
			out[len(o)] -= op.Position
		}

	case OpMoveNode:
		if o.Equal(p) || o.IsAncestorOf(p) {
			return op.NewPath.Append(p[len(o):]...), true
		}
		if o.EndsBefore(out) {
			out[len(o)-1]--
		}
		np := op.NewPath
		if np.EndsAt(out) || np.EndsBefore(out) {
			out[len(np)-1]++
		}
	}

	return out, true
}

// TransformPoint returns where pt ends up after op. A point inside a split
// position moves to the new right half.
func TransformPoint(pt Point, op Operation) (Point, bool) {
	out := pt.Clone()

	switch op.Type {
	case OpInsertText:
		if pt.Path.Equal(op.Path) && op.Offset <= pt.Offset {
			out.Offset += runeLen(op.Text)
		}
		return out, true

	case OpRemoveText:
		if pt.Path.Equal(op.Path) && op.Offset <= pt.Offset {
			out.Offset -= min(pt.Offset-op.Offset, runeLen(op.Text))
		}
		return out, true

	case OpMergeNode:
		if pt.Path.Equal(op.Path) {
			out.Offset += op.Position
		}

	case OpSplitNode:
		if pt.Path.Equal(op.Path) {
			if op.Position <= pt.Offset {
				out.Offset -= op.Position
				out.Path = pt.Path.Next()
			}
			return out, true
		}

	case OpSetNode, OpSetSelection:
		return out, true
	}

	path, ok := TransformPath(pt.Path, op)
	if !ok {
		return Point{}, false
	}
	out.Path = path
	return out, true
}
