// Package schema holds the closed set of node types and marks known to the
// document model. Every element type belongs to exactly one category, and
// every category decides how the type nests, how it is selected and which
// HTML handler renders it.
package schema

import (
	"fmt"

	"go.uber.org/multierr"
)

// Type is the tag of a composite node.
type Type string

const (
	Paragraph     Type = "paragraph"
	HeadingOne    Type = "heading-one"
	HeadingTwo    Type = "heading-two"
	HeadingThree  Type = "heading-three"
	HeadingFour   Type = "heading-four"
	Blockquote    Type = "blockquote"
	OrderedList   Type = "ordered-list"
	UnorderedList Type = "unordered-list"
	ListItem      Type = "list-item"
	Table         Type = "table"
	TableRow      Type = "table-row"
	TableCell     Type = "table-cell"
	TableHeader   Type = "table-header"
	CodeBlock     Type = "code-block"
	CodeLine      Type = "code-line"
	Todo          Type = "todo"
	Tabbable      Type = "tabbable"

	Link       Type = "link"
	Mention    Type = "mention"
	CodeSyntax Type = "code-syntax"

	BlockImage Type = "block-image"
	Divider    Type = "divider"
	Excalidraw Type = "excalidraw"
	Video      Type = "video"

	InlineImage Type = "inline-image"
	Latex       Type = "latex"
)

// Category is one of the four disjoint registries.
type Category int

const (
	UnknownCategory Category = iota
	Block
	Inline
	Void
	InlineVoid
)

func (c Category) String() string {
	switch c {
	case Block:
		return "block"
	case Inline:
		return "inline"
	case Void:
		return "void"
	case InlineVoid:
		return "inline-void"
	default:
		return "unknown"
	}
}

// Spec describes one element type. Tag is the HTML element the serializer
// renders it with.
type Spec struct {
	Type     Type
	Category Category
	Tag      string
}

// Mark is the name of a formatting attribute on a text leaf.
type Mark string

const (
	Bold          Mark = "bold"
	Italic        Mark = "italic"
	Underline     Mark = "underline"
	Strikethrough Mark = "strikethrough"
	Subscript     Mark = "subscript"
	Superscript   Mark = "superscript"
	Code          Mark = "code"
	Kbd           Mark = "kbd"
)

// TextKey is reserved for the text of a leaf and is never a mark name.
const TextKey = "text"

type MarkKind int

const (
	ToggleMark MarkKind = iota + 1
	ValueMark
)

// MarkSpec describes a toggle mark. Value marks are open-ended and have no spec.
type MarkSpec struct {
	Name Mark
	Kind MarkKind
	Tag  string
}

// Registry is a read-only table of element and mark specs.
type Registry struct {
	types map[Type]Spec
	marks map[Mark]MarkSpec
	order []Type
	// toggle marks in serialization nesting order, outermost first
	toggles []Mark
}

// NewRegistry builds and validates a registry.
func NewRegistry(specs []Spec, marks []MarkSpec) (*Registry, error) {
	r := &Registry{
		types: make(map[Type]Spec, len(specs)),
		marks: make(map[Mark]MarkSpec, len(marks)),
	}

	var err error

	for _, s := range specs {
		if s.Type == "" {
			err = multierr.Append(err, fmt.Errorf("spec with empty type"))
			continue
		}
		if prev, ok := r.types[s.Type]; ok {
			err = multierr.Append(err, fmt.Errorf("type %q registered as %s and %s", s.Type, prev.Category, s.Category))
			continue
		}
		switch s.Category {
		case Block, Inline, Void, InlineVoid:
		default:
			err = multierr.Append(err, fmt.Errorf("type %q has no category", s.Type))
			continue
		}
		if s.Tag == "" {
			err = multierr.Append(err, fmt.Errorf("type %q has no render tag", s.Type))
			continue
		}
		r.types[s.Type] = s
		r.order = append(r.order, s.Type)
	}

	for _, m := range marks {
		if m.Name == "" || m.Name == TextKey {
			err = multierr.Append(err, fmt.Errorf("invalid mark name %q", m.Name))
			continue
		}
		if _, ok := r.marks[m.Name]; ok {
			err = multierr.Append(err, fmt.Errorf("mark %q registered twice", m.Name))
			continue
		}
		if m.Kind != ToggleMark {
			err = multierr.Append(err, fmt.Errorf("mark %q: only toggle marks are registered", m.Name))
			continue
		}
		if m.Tag == "" {
			err = multierr.Append(err, fmt.Errorf("toggle mark %q has no render tag", m.Name))
			continue
		}
		r.marks[m.Name] = m
		r.toggles = append(r.toggles, m.Name)
	}

	if err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns the spec of t.
func (r *Registry) Lookup(t Type) (Spec, bool) {
	s, ok := r.types[t]
	return s, ok
}

// CategoryOf returns the registry containing t, or UnknownCategory.
func (r *Registry) CategoryOf(t Type) Category {
	return r.types[t].Category
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []Type {
	return append([]Type(nil), r.order...)
}

// MarkSpec returns the spec of a toggle mark.
func (r *Registry) MarkSpec(m Mark) (MarkSpec, bool) {
	s, ok := r.marks[m]
	return s, ok
}

// ToggleMarks returns toggle marks in nesting order, outermost first.
func (r *Registry) ToggleMarks() []Mark {
	return append([]Mark(nil), r.toggles...)
}
