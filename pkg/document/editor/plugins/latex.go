package plugins

import (
	"strings"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/schema"
)

const (
	latexOpen  = `\(`
	latexClose = `\)`
)

// Latex replaces a typed \(...\) expression with a latex inline void
// followed by an empty leaf.
func Latex() editor.Plugin {
	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		insertText := next.InsertText
		next.InsertText = func(text string) error {
			sel := e.Selection()
			if sel == nil || !sel.IsCollapsed() {
				return insertText(text)
			}
			leaf, ok := e.ClosestLeaf()
			if !ok {
				return insertText(text)
			}

			pt := sel.Anchor
			typed := []rune(leaf.Leaf.Text)[:pt.Offset]
			start, expr, ok := matchLatex(string(typed) + text)
			if !ok || start >= len(typed) {
				return insertText(text)
			}
			// The closing fence comes from text, which is never inserted.
			fenced := string(typed[start:])
			return insertLatex(e, pt, start, fenced, expr, leaf.Leaf.Marks)
		}
		return next
	}
}

// matchLatex reports whether s ends with a non-empty \(...\) expression.
// It returns the rune index where the expression starts.
func matchLatex(s string) (int, string, bool) {
	if !strings.HasSuffix(s, latexClose) {
		return 0, "", false
	}
	body := strings.TrimSuffix(s, latexClose)
	idx := strings.LastIndex(body, latexOpen)
	if idx < 0 || idx+len(latexOpen) == len(body) {
		return 0, "", false
	}
	return len([]rune(s[:idx])), s[idx:], true
}

func insertLatex(e *editor.Editor, pt editor.Point, start int, fenced, expr string, marks document.Props) error {
	leafPath := pt.Path

	if fenced != "" {
		err := e.Apply(editor.Operation{Type: editor.OpRemoveText, Path: leafPath, Offset: start, Text: fenced})
		if err != nil {
			return err
		}
	}

	leaf, err := e.Document().Leaf(leafPath)
	if err != nil {
		return err
	}
	if len([]rune(leaf.Text)) > start {
		if err := e.Apply(editor.Operation{Type: editor.OpSplitNode, Path: leafPath, Position: start}); err != nil {
			return err
		}
	}

	void := document.NewVoid(schema.Latex, document.NewProps("latex", expr))
	void.ID = e.IDs().NewID()
	after := &document.Text{Marks: marks.Clone()}

	at := leafPath.Next()
	if err := e.InsertNodes(at, void, after); err != nil {
		return err
	}
	return e.SelectPoint(editor.Point{Path: at.Next()})
}
