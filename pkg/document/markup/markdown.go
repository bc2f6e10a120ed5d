package markup

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/stateful/qedit/pkg/document"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// DeserializeMarkdown renders Markdown to HTML and deserializes the result.
// Raw HTML in the source is dropped.
func DeserializeMarkdown(data []byte, opts Options) (*document.Document, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(data, &buf); err != nil {
		return nil, errors.Wrap(err, "failed to convert markdown")
	}
	return Deserialize(buf.Bytes(), opts)
}
