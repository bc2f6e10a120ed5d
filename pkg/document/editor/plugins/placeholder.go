package plugins

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
)

// Placeholder keeps the placeholder class on the blocks around the selection
// in sync with their content. Split halves get the default placeholder text.
func Placeholder(text, class string) editor.Plugin {
	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		apply := next.Apply
		next.Apply = func(op editor.Operation) error {
			before := e.Selection()

			if op.Type == editor.OpSplitNode {
				if n, err := e.Document().Get(op.Path); err == nil && document.IsElement(n) {
					op.Properties.Placeholder = editor.StringPtr(text)
				}
			}

			if err := apply(op); err != nil {
				return err
			}

			switch op.Type {
			case editor.OpSetSelection, editor.OpSplitNode:
				if before != nil {
					refreshPlaceholder(e, before.Anchor.Path, class)
				}
				if sel := e.Selection(); sel != nil {
					refreshPlaceholder(e, sel.Anchor.Path, class)
				}
			case editor.OpInsertText, editor.OpRemoveText:
				if sel := e.Selection(); sel != nil {
					refreshPlaceholder(e, sel.Anchor.Path, class)
				}
			}
			return nil
		}
		return next
	}
}

// refreshPlaceholder sets class on the block holding p when it is empty and
// clears it otherwise. Failures leave the class as it was.
func refreshPlaceholder(e *editor.Editor, p document.Path, class string) {
	if !e.Document().Has(p) {
		e.Logger().Debug("placeholder target is gone", zap.Stringer("path", p))
		return
	}
	block, ok := e.BlockAbove(p)
	if !ok {
		return
	}

	want := ""
	if document.IsEmpty(block.Element) {
		want = class
	}
	if block.Element.ClassName == want {
		return
	}

	if err := e.SetNode(block.Path, editor.Properties{ClassName: editor.StringPtr(want)}); err != nil {
		e.Logger().Debug("failed to toggle placeholder class", zap.Stringer("path", block.Path), zap.Error(err))
	}
}

// PlaceholderStylesheet returns the CSS rule that renders the placeholder
// attribute of an element carrying class. Serialized empty blocks carry both.
func PlaceholderStylesheet(class string) string {
	return fmt.Sprintf(
		".%s[placeholder]::before { content: attr(placeholder); position: absolute; opacity: 0.5; pointer-events: none; }",
		class,
	)
}
