package editor

import (
	"fmt"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/schema"
)

type OpType string

const (
	OpInsertNode   OpType = "insert_node"
	OpRemoveNode   OpType = "remove_node"
	OpMergeNode    OpType = "merge_node"
	OpMoveNode     OpType = "move_node"
	OpSplitNode    OpType = "split_node"
	OpInsertText   OpType = "insert_text"
	OpRemoveText   OpType = "remove_text"
	OpSetNode      OpType = "set_node"
	OpSetSelection OpType = "set_selection"
)

// Operation is a single structural change to the document or selection.
// Which fields are used depends on Type:
//
//	insert_node    Path, Node
//	remove_node    Path
//	merge_node     Path, Position (length of the previous sibling)
//	move_node      Path, NewPath (in the tree after removal)
//	split_node     Path, Position, Properties (of the new right half)
//	insert_text    Path, Offset, Text
//	remove_text    Path, Offset, Text
//	set_node       Path, Properties
//	set_selection  Selection (nil deselects)
type Operation struct {
	Type       OpType
	Path       document.Path
	NewPath    document.Path
	Node       document.Node
	Offset     int
	Text       string
	Position   int
	Properties Properties
	Selection  *Selection
}

func (op Operation) String() string {
	switch op.Type {
	case OpInsertText, OpRemoveText:
		return fmt.Sprintf("%s %s@%d %q", op.Type, op.Path, op.Offset, op.Text)
	case OpMoveNode:
		return fmt.Sprintf("%s %s -> %s", op.Type, op.Path, op.NewPath)
	case OpSplitNode, OpMergeNode:
		return fmt.Sprintf("%s %s@%d", op.Type, op.Path, op.Position)
	case OpSetSelection:
		if op.Selection == nil {
			return fmt.Sprintf("%s none", op.Type)
		}
		return fmt.Sprintf("%s %s", op.Type, op.Selection)
	default:
		return fmt.Sprintf("%s %s", op.Type, op.Path)
	}
}

// Properties are element fields changed by set_node or given to the new
// half of a split. Zero values and nil pointers leave a field unchanged.
type Properties struct {
	Type         schema.Type
	ID           string
	PreviousType schema.Type
	Placeholder  *string
	ClassName    *string
	// Style, Attributes and VoidData replace the whole map when non-nil.
	Style      *document.Props
	Attributes *document.Props
	VoidData   *document.Props

	// Requested changes that plugins turn into persisted ones. These are
	// never written to an element.
	NextType        schema.Type
	WrapperListType schema.Type
	KeepCurrentType bool
}

// StringPtr returns a pointer to s, for Properties fields.
func StringPtr(s string) *string { return &s }

// PropsPtr returns a pointer to a copy of p, for Properties fields.
func PropsPtr(p document.Props) *document.Props {
	c := p.Clone()
	return &c
}

func (p Properties) applyTo(el *document.Element) {
	if p.Type != "" {
		el.Type = p.Type
	}
	if p.ID != "" {
		el.ID = p.ID
	}
	if p.PreviousType != "" {
		el.PreviousType = p.PreviousType
	}
	if p.Placeholder != nil {
		el.Placeholder = *p.Placeholder
	}
	if p.ClassName != nil {
		el.ClassName = *p.ClassName
	}
	if p.Style != nil {
		el.Style = p.Style.Clone()
	}
	if p.Attributes != nil {
		el.Attributes = p.Attributes.Clone()
	}
	if p.VoidData != nil {
		el.VoidData = p.VoidData.Clone()
	}
}
