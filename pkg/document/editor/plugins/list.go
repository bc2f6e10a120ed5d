package plugins

import (
	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/schema"
)

var listStyleTypes = map[schema.Type]string{
	schema.OrderedList:   "decimal",
	schema.UnorderedList: "disc",
}

// List wraps a block that becomes a list item in a list of the requested
// wrapper type. Unwrapping is not handled.
func List() editor.Plugin {
	return func(e *editor.Editor, next editor.Handlers) editor.Handlers {
		apply := next.Apply
		next.Apply = func(op editor.Operation) error {
			p := op.Properties
			listStyle, ok := listStyleTypes[p.WrapperListType]
			if op.Type != editor.OpSetNode || p.NextType != schema.ListItem || !ok {
				return apply(op)
			}

			if parent, err := e.Document().Element(op.Path.Parent()); err == nil && parent.Type == p.WrapperListType {
				return apply(op)
			}

			wrapper := document.NewElement(p.WrapperListType)
			wrapper.ID = e.IDs().NewID()
			wrapper.Style.Set("listStyleType", listStyle)

			if err := e.WrapNode(op.Path, wrapper); err != nil {
				e.Logger().Debug("failed to wrap list item", zap.Stringer("path", op.Path), zap.Error(err))
				return apply(op)
			}

			op.Path = op.Path.Append(0)
			return apply(op)
		}
		return next
	}
}
