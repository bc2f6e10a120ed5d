package markup

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

var (
	pastePolicy = newPastePolicy()
	minifier    = newMinifier()
)

// The paste policy keeps formatting, ids and data attributes the
// deserializer understands and strips scripts and event handlers.
func newPastePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "span", "u", "s", "kbd", "sub", "sup", "strike", "del")
	p.AllowAttrs("style", "id", "placeholder").Globally()
	p.AllowDataAttributes()
	return p
}

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &mhtml.Minifier{
		KeepEndTags: true,
		KeepQuotes:  true,
	})
	return m
}

// Sanitize removes markup that must never reach the document.
func Sanitize(data []byte) []byte {
	return pastePolicy.SanitizeBytes(data)
}

// Minify collapses serialized HTML for export.
func Minify(s string) (string, error) {
	out, err := minifier.String("text/html", s)
	if err != nil {
		return "", errors.Wrap(err, "failed to minify html")
	}
	return out, nil
}
