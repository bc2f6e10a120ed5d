package document

import (
	"github.com/pkg/errors"

	"github.com/stateful/qedit/pkg/document/schema"
)

// DefaultPlaceholder is the hint shown in an empty block.
const DefaultPlaceholder = "Type something..."

var (
	ErrNotFound   = errors.New("node not found")
	ErrNotElement = errors.New("node is not an element")
	ErrNotLeaf    = errors.New("node is not a leaf")
)

// IDGenerator issues identifiers for new elements.
type IDGenerator interface {
	NewID() string
}

// Document is the root of a tree: an ordered sequence of top-level blocks.
type Document struct {
	Children []Node
}

// NewDocument returns the minimum valid document: one empty paragraph.
func NewDocument(ids IDGenerator) *Document {
	p := NewElement(schema.Paragraph)
	if ids != nil {
		p.ID = ids.NewID()
	}
	return &Document{Children: []Node{p}}
}

// Get returns the node at p. The empty path does not address a node.
func (d *Document) Get(p Path) (Node, error) {
	if len(p) == 0 {
		return nil, errors.Wrap(ErrNotFound, "empty path")
	}
	children := d.Children
	var n Node
	for depth, idx := range p {
		if idx < 0 || idx >= len(children) {
			return nil, errors.Wrapf(ErrNotFound, "path %s", p)
		}
		n = children[idx]
		if depth == len(p)-1 {
			break
		}
		el, ok := n.(*Element)
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "path %s", p)
		}
		children = el.Children
	}
	return n, nil
}

func (d *Document) Has(p Path) bool {
	_, err := d.Get(p)
	return err == nil
}

func (d *Document) Element(p Path) (*Element, error) {
	n, err := d.Get(p)
	if err != nil {
		return nil, err
	}
	el, ok := n.(*Element)
	if !ok {
		return nil, errors.Wrapf(ErrNotElement, "path %s", p)
	}
	return el, nil
}

func (d *Document) Leaf(p Path) (*Text, error) {
	n, err := d.Get(p)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, errors.Wrapf(ErrNotLeaf, "path %s", p)
	}
	return t, nil
}

// Parent returns the element holding the node at p, or nil for a top-level
// node.
func (d *Document) Parent(p Path) (*Element, error) {
	if _, err := d.Get(p); err != nil {
		return nil, err
	}
	if len(p) == 1 {
		return nil, nil
	}
	return d.Element(p.Parent())
}

// ChildrenOf returns the child list of the node at p, the root for an empty
// path.
func (d *Document) ChildrenOf(p Path) ([]Node, error) {
	if len(p) == 0 {
		return d.Children, nil
	}
	el, err := d.Element(p)
	if err != nil {
		return nil, err
	}
	return el.Children, nil
}

func (d *Document) setChildrenOf(p Path, children []Node) error {
	if len(p) == 0 {
		d.Children = children
		return nil
	}
	el, err := d.Element(p)
	if err != nil {
		return err
	}
	el.Children = children
	return nil
}

// Insert places n at p, shifting later siblings.
func (d *Document) Insert(p Path, n Node) error {
	if len(p) == 0 {
		return errors.Wrap(ErrNotFound, "cannot insert at the root")
	}
	children, err := d.ChildrenOf(p.Parent())
	if err != nil {
		return err
	}
	idx := p.Last()
	if idx < 0 || idx > len(children) {
		return errors.Wrapf(ErrNotFound, "insert index %d out of range at %s", idx, p)
	}
	children = append(children, nil)
	copy(children[idx+1:], children[idx:])
	children[idx] = n
	return d.setChildrenOf(p.Parent(), children)
}

// Remove detaches and returns the node at p.
func (d *Document) Remove(p Path) (Node, error) {
	n, err := d.Get(p)
	if err != nil {
		return nil, err
	}
	children, _ := d.ChildrenOf(p.Parent())
	idx := p.Last()
	out := make([]Node, 0, len(children)-1)
	out = append(out, children[:idx]...)
	out = append(out, children[idx+1:]...)
	return n, d.setChildrenOf(p.Parent(), out)
}

// Replace swaps the node at p for n.
func (d *Document) Replace(p Path, n Node) error {
	if _, err := d.Get(p); err != nil {
		return err
	}
	children, _ := d.ChildrenOf(p.Parent())
	children[p.Last()] = n
	return nil
}

// Walk visits every node in document order. Returning false from fn skips
// the node's descendants.
func (d *Document) Walk(fn func(p Path, n Node) bool) {
	for i, c := range d.Children {
		walk(Path{i}, c, fn)
	}
}

func walk(p Path, n Node, fn func(Path, Node) bool) {
	if !fn(p, n) {
		return
	}
	if el, ok := n.(*Element); ok {
		for i, c := range el.Children {
			walk(p.Append(i), c, fn)
		}
	}
}

// LeafEntry is a leaf together with its path.
type LeafEntry struct {
	Path Path
	Leaf *Text
}

// Leaves returns all leaves in document order.
func (d *Document) Leaves() []LeafEntry {
	var out []LeafEntry
	d.Walk(func(p Path, n Node) bool {
		if t, ok := n.(*Text); ok {
			out = append(out, LeafEntry{Path: p, Leaf: t})
		}
		return true
	})
	return out
}

// Ancestors returns the elements enclosing p, outermost first, with their
// paths. The node at p itself is not included.
func (d *Document) Ancestors(p Path) []ElementEntry {
	var out []ElementEntry
	for depth := 1; depth < len(p); depth++ {
		el, err := d.Element(p.Slice(depth))
		if err != nil {
			break
		}
		out = append(out, ElementEntry{Path: p.Slice(depth), Element: el})
	}
	return out
}

type ElementEntry struct {
	Path    Path
	Element *Element
}

func (d *Document) Clone() *Document {
	c := &Document{Children: make([]Node, len(d.Children))}
	for i, n := range d.Children {
		c.Children[i] = Clone(n)
	}
	return c
}

func (d *Document) TextContent() string {
	return TextContent(&Element{Children: d.Children})
}
