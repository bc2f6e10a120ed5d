// Package markup converts between HTML and the document tree.
package markup

import (
	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/identity"
)

// IdentityResolver hands out element identifiers. Resolve receives the id
// found in the input, possibly empty.
type IdentityResolver interface {
	NewID() string
	Resolve(existing string) (string, bool)
}

var _ IdentityResolver = (*identity.Resolver)(nil)

type Options struct {
	// IDs issues element identifiers. A fresh resolver is used when nil.
	IDs IdentityResolver
	// Placeholder is stamped on every element. Defaults to document.DefaultPlaceholder.
	Placeholder string
	// Selector, when set, limits deserialization to the children of the
	// first element matching this CSS selector.
	Selector string
	// Sanitize runs the input through the paste policy before parsing.
	Sanitize bool
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = identity.NewResolver("")
	}
	if o.Placeholder == "" {
		o.Placeholder = document.DefaultPlaceholder
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type SerializeOptions struct {
	// Minify collapses the output HTML.
	Minify bool
}
