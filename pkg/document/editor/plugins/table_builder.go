package plugins

import (
	"github.com/pkg/errors"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/schema"
)

// TableStyle is the border policy shared by every table cell.
type TableStyle struct {
	BorderWidth     string
	EdgeBorderWidth string
	BorderColor     string
	CornerRadius    string
}

func (s TableStyle) withDefaults() TableStyle {
	if s.BorderWidth == "" {
		s.BorderWidth = "1px"
	}
	if s.EdgeBorderWidth == "" {
		s.EdgeBorderWidth = "2px"
	}
	if s.BorderColor == "" {
		s.BorderColor = "#d0d7de"
	}
	if s.CornerRadius == "" {
		s.CornerRadius = "6px"
	}
	return s
}

// CellStyle returns the style of the cell at row, col in a rows x cols grid.
// Cells on the outer edge get the edge border width on that side, and only
// the four corner cells get a rounded corner.
func CellStyle(row, col, rows, cols int, s TableStyle) document.Props {
	s = s.withDefaults()

	border := func(edge bool) string {
		width := s.BorderWidth
		if edge {
			width = s.EdgeBorderWidth
		}
		return width + " solid " + s.BorderColor
	}

	top, bottom := row == 0, row == rows-1
	left, right := col == 0, col == cols-1

	var p document.Props
	p.Set("borderTop", border(top))
	p.Set("borderRight", border(right))
	p.Set("borderBottom", border(bottom))
	p.Set("borderLeft", border(left))
	p.Set("padding", "4px 8px")

	if top && left {
		p.Set("borderTopLeftRadius", s.CornerRadius)
	}
	if top && right {
		p.Set("borderTopRightRadius", s.CornerRadius)
	}
	if bottom && left {
		p.Set("borderBottomLeftRadius", s.CornerRadius)
	}
	if bottom && right {
		p.Set("borderBottomRightRadius", s.CornerRadius)
	}
	return p
}

// BuildTable creates an empty rows x cols table.
func BuildTable(rows, cols int, ids document.IDGenerator, s TableStyle) (*document.Element, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Errorf("invalid table size %dx%d", rows, cols)
	}

	table := document.NewElement(schema.Table)
	table.ID = ids.NewID()
	table.Style = document.NewProps(
		"borderCollapse", "separate",
		"borderSpacing", "0",
		"width", "100%",
	)
	table.Children = make([]document.Node, rows)
	for r := 0; r < rows; r++ {
		table.Children[r] = buildRow(r, rows, cols, ids, s)
	}
	return table, nil
}

func buildRow(row, rows, cols int, ids document.IDGenerator, s TableStyle) *document.Element {
	el := document.NewElement(schema.TableRow)
	el.ID = ids.NewID()
	el.Children = make([]document.Node, cols)
	for c := 0; c < cols; c++ {
		cell := document.NewElement(schema.TableCell)
		cell.ID = ids.NewID()
		cell.Style = CellStyle(row, c, rows, cols, s)
		el.Children[c] = cell
	}
	return el
}

// InsertTable inserts a new table after the top-level block holding the
// selection, or at the end of the document, and puts the cursor in its
// first cell.
func InsertTable(e *editor.Editor, rows, cols int, s TableStyle) error {
	table, err := BuildTable(rows, cols, e.IDs(), s)
	if err != nil {
		return err
	}

	at := document.Path{len(e.Document().Children)}
	if anchor, _, ok := e.SlicePath(1); ok && len(anchor) == 1 {
		at = anchor.Next()
	}

	if err := e.InsertNodes(at, table); err != nil {
		return err
	}
	start, err := e.Start(at)
	if err != nil {
		return err
	}
	return e.SelectPoint(start)
}
