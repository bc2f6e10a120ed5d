// Package plugins implements the editing behaviors layered on top of the
// base editor. Every behavior is an editor.Plugin; Default returns them in
// the order they must be registered.
package plugins

import (
	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
)

const DefaultPlaceholderClass = "placeholder"

type Config struct {
	Placeholder      string
	PlaceholderClass string
	Table            TableStyle
}

func (c Config) withDefaults() Config {
	if c.Placeholder == "" {
		c.Placeholder = document.DefaultPlaceholder
	}
	if c.PlaceholderClass == "" {
		c.PlaceholderClass = DefaultPlaceholderClass
	}
	c.Table = c.Table.withDefaults()
	return c
}

// Default returns all plugins, outermost first.
func Default(cfg Config) []editor.Plugin {
	cfg = cfg.withDefaults()
	return []editor.Plugin{
		NodeID(),
		BlockType(),
		List(),
		Placeholder(cfg.Placeholder, cfg.PlaceholderClass),
		Latex(),
		Table(cfg.Table),
	}
}
