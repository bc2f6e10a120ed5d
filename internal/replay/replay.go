// Package replay drives an editor from a script with one command per line.
//
// Supported commands:
//
//	select <path>:<offset> [<path>:<offset>]
//	deselect
//	type <text>         (one character at a time)
//	break
//	backspace
//	delete
//	tab
//	untab
//	paste <html>
//	settype <type> [<list type>]
//	table <rows> <cols>
//
// Arguments are split like a shell would, so text with spaces must be
// quoted. Blank lines and lines starting with # are ignored.
package replay

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/editor/plugins"
	"github.com/stateful/qedit/pkg/document/markup"
	"github.com/stateful/qedit/pkg/document/schema"
)

type Runner struct {
	editor     *editor.Editor
	tableStyle plugins.TableStyle
	markupOpts markup.Options
	logger     *zap.Logger
}

type Option func(*Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithTableStyle(s plugins.TableStyle) Option {
	return func(r *Runner) {
		r.tableStyle = s
	}
}

// WithMarkupOptions sets the options used to parse pasted HTML. Identifiers
// always come from the editor.
func WithMarkupOptions(opts markup.Options) Option {
	return func(r *Runner) {
		r.markupOpts = opts
	}
}

func New(e *editor.Editor, opts ...Option) *Runner {
	r := &Runner{editor: e}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	r.markupOpts.IDs = resolverFor(e.IDs())
	r.markupOpts.Logger = r.logger

	return r
}

// Run executes the script line by line and stops at the first failure.
func (r *Runner) Run(ctx context.Context, script io.Reader) error {
	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil {
			return errors.Wrapf(err, "line %d: failed to parse %q", lineNo, line)
		}
		if err := r.Exec(args...); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return errors.WithStack(scanner.Err())
}

// Exec runs a single command.
func (r *Runner) Exec(args ...string) error {
	if len(args) == 0 {
		return nil
	}

	name, args := args[0], args[1:]
	r.logger.Debug("exec", zap.String("command", name), zap.Strings("args", args))

	e := r.editor

	switch name {
	case "select":
		return r.execSelect(args)
	case "deselect":
		return e.Deselect()
	case "type":
		if len(args) == 0 {
			return errors.New("type: missing text")
		}
		return typeText(e, strings.Join(args, " "))
	case "break":
		return e.InsertBreak()
	case "backspace":
		return e.DeleteBackward()
	case "delete":
		return e.DeleteForward()
	case "tab":
		return e.InsertTab(false)
	case "untab":
		return e.InsertTab(true)
	case "paste":
		return r.execPaste(args)
	case "settype":
		return r.execSetType(args)
	case "table":
		return r.execTable(args)
	default:
		return errors.Errorf("unknown command %q", name)
	}
}

// typeText inserts text one character at a time, like a keyboard would.
func typeText(e *editor.Editor, text string) error {
	for _, r := range text {
		if err := e.InsertText(string(r)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) execSelect(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.Errorf("select: expected 1 or 2 points, got %d", len(args))
	}
	anchor, err := ParsePoint(args[0])
	if err != nil {
		return err
	}
	focus := anchor
	if len(args) == 2 {
		focus, err = ParsePoint(args[1])
		if err != nil {
			return err
		}
	}
	return r.editor.Select(editor.Selection{Anchor: anchor, Focus: focus})
}

func (r *Runner) execPaste(args []string) error {
	if len(args) == 0 {
		return errors.New("paste: missing html")
	}
	nodes, err := markup.DeserializeFragment([]byte(strings.Join(args, " ")), r.markupOpts)
	if err != nil {
		return err
	}
	return r.editor.InsertFragment(nodes)
}

func (r *Runner) execSetType(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.Errorf("settype: expected a type and an optional list type, got %d arguments", len(args))
	}
	t := schema.Type(args[0])
	if !schema.IsBlockType(t) {
		return errors.Errorf("settype: %q is not a block type", t)
	}
	var wrapper schema.Type
	if len(args) == 2 {
		wrapper = schema.Type(args[1])
		if wrapper != schema.OrderedList && wrapper != schema.UnorderedList {
			return errors.Errorf("settype: %q is not a list type", wrapper)
		}
	}
	return r.editor.SetBlockType(t, wrapper)
}

func (r *Runner) execTable(args []string) error {
	if len(args) != 2 {
		return errors.Errorf("table: expected rows and cols, got %d arguments", len(args))
	}
	rows, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "table: invalid rows %q", args[0])
	}
	cols, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "table: invalid cols %q", args[1])
	}
	return plugins.InsertTable(r.editor, rows, cols, r.tableStyle)
}

// ParsePoint parses "<path>:<offset>", for example "0.1:3".
func ParsePoint(s string) (editor.Point, error) {
	rawPath, rawOffset, ok := strings.Cut(s, ":")
	if !ok {
		return editor.Point{}, errors.Errorf("invalid point %q", s)
	}
	p, err := document.ParsePath(rawPath)
	if err != nil {
		return editor.Point{}, err
	}
	offset, err := strconv.Atoi(rawOffset)
	if err != nil || offset < 0 {
		return editor.Point{}, errors.Errorf("invalid offset in point %q", s)
	}
	return editor.Point{Path: p, Offset: offset}, nil
}

type generatorResolver struct {
	document.IDGenerator
}

func (g generatorResolver) Resolve(string) (string, bool) {
	return g.NewID(), false
}

func resolverFor(ids document.IDGenerator) markup.IdentityResolver {
	if r, ok := ids.(markup.IdentityResolver); ok {
		return r
	}
	return generatorResolver{ids}
}
