package plugins

import (
	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
)

// NodeID gives the second half of every split element a fresh identifier.
func NodeID() editor.Plugin {
	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		apply := next.Apply
		next.Apply = func(op editor.Operation) error {
			if op.Type == editor.OpSplitNode {
				if n, err := e.Document().Get(op.Path); err == nil && document.IsElement(n) {
					op.Properties.ID = e.IDs().NewID()
				}
			}
			return apply(op)
		}
		return next
	}
}
