// Package editor holds the live editing state of a document and applies
// operations to it through an ordered chain of plugins.
package editor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/identity"
)

var ErrInvalidOperation = errors.New("invalid operation")

// Handlers are the entry points a plugin can wrap. Apply is the single
// mutation entry point; the others are user commands built on top of it.
type Handlers struct {
	Apply          func(op Operation) error
	InsertText     func(text string) error
	DeleteBackward func() error
	DeleteForward  func() error
	InsertBreak    func() error
	InsertFragment func(nodes []document.Node) error
	InsertTab      func(backward bool) error

	// DeleteSelection runs whenever a command consumes an expanded
	// selection.
	DeleteSelection func() error
}

// Plugin wraps the handlers of the next layer. It returns next with the
// entries it intercepts replaced and must delegate to next for the rest.
type Plugin func(e *Editor, next Handlers) Handlers

// Editor exclusively owns one document and its selection. It is not safe
// for concurrent use.
type Editor struct {
	doc       *document.Document
	selection *Selection

	ids       document.IDGenerator
	logger    *zap.Logger
	plugins   []Plugin
	observers []func(Operation)

	handlers Handlers
}

type Option func(*Editor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

func WithIDGenerator(ids document.IDGenerator) Option {
	return func(e *Editor) {
		e.ids = ids
	}
}

// WithPlugins registers plugins. The first one is the outermost layer.
func WithPlugins(plugins ...Plugin) Option {
	return func(e *Editor) {
		e.plugins = append(e.plugins, plugins...)
	}
}

// WithObserver registers fn to be called after every applied operation.
func WithObserver(fn func(Operation)) Option {
	return func(e *Editor) {
		e.observers = append(e.observers, fn)
	}
}

// New creates an editor for doc. A nil doc starts with an empty paragraph.
func New(doc *document.Document, opts ...Option) *Editor {
	e := &Editor{doc: doc}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.ids == nil {
		e.ids = identity.NewResolver("")
	}
	if e.doc == nil {
		e.doc = document.NewDocument(e.ids)
	}

	h := e.baseHandlers()
	for i := len(e.plugins) - 1; i >= 0; i-- {
		h = e.plugins[i](e, h)
	}
	e.handlers = h

	return e
}

func (e *Editor) Document() *document.Document { return e.doc }

// Selection returns a copy of the current selection or nil.
func (e *Editor) Selection() *Selection { return e.selection.Clone() }

func (e *Editor) IDs() document.IDGenerator { return e.ids }

func (e *Editor) Logger() *zap.Logger { return e.logger }

// Apply runs op through the plugin chain.
func (e *Editor) Apply(op Operation) error {
	return e.handlers.Apply(op)
}

func (e *Editor) InsertText(text string) error {
	return e.handlers.InsertText(text)
}

func (e *Editor) DeleteBackward() error {
	return e.handlers.DeleteBackward()
}

func (e *Editor) DeleteForward() error {
	return e.handlers.DeleteForward()
}

func (e *Editor) InsertBreak() error {
	return e.handlers.InsertBreak()
}

func (e *Editor) InsertFragment(nodes []document.Node) error {
	return e.handlers.InsertFragment(nodes)
}

// InsertTab handles Tab, or Shift+Tab when backward is set.
func (e *Editor) InsertTab(backward bool) error {
	return e.handlers.InsertTab(backward)
}

// DeleteSelection removes the content of an expanded selection and
// collapses it at its start.
func (e *Editor) DeleteSelection() error {
	return e.handlers.DeleteSelection()
}

func (e *Editor) baseHandlers() Handlers {
	return Handlers{
		Apply:          e.apply,
		InsertText:     e.insertText,
		DeleteBackward: e.deleteBackward,
		DeleteForward:  e.deleteForward,
		InsertBreak:    e.insertBreak,
		InsertFragment: e.insertFragment,
		InsertTab:      e.insertTab,

		DeleteSelection: e.deleteSelection,
	}
}
