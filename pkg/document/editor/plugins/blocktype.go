package plugins

import (
	"github.com/stateful/qedit/pkg/document/editor"
)

// BlockType turns a requested NextType into a persisted type change and
// records the type it replaced.
func BlockType() editor.Plugin {
	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		apply := next.Apply
		next.Apply = func(op editor.Operation) error {
			if op.Type != editor.OpSetNode || op.Properties.NextType == "" || op.Properties.KeepCurrentType {
				return apply(op)
			}
			el, err := e.Document().Element(op.Path)
			if err != nil {
				return apply(op)
			}
			if el.Type != op.Properties.NextType {
				op.Properties.PreviousType = el.Type
			}
			op.Properties.Type = op.Properties.NextType
			return apply(op)
		}
		return next
	}
}
