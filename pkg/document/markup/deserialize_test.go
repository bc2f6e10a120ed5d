package markup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/identity"
	"github.com/stateful/qedit/pkg/document/schema"
)

func testOptions() Options {
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return Options{IDs: identity.NewResolver("q", identity.WithSeed(1), identity.WithClock(clock))}
}

func deserialize(t *testing.T, input string) *document.Document {
	t.Helper()
	doc, err := Deserialize([]byte(input), testOptions())
	require.NoError(t, err)
	return doc
}

func TestDeserialize_ScenarioA(t *testing.T) {
	doc := deserialize(t, `<p><strong>Hi</strong> there</p>`)

	require.Len(t, doc.Children, 1)
	p := doc.Children[0].(*document.Element)
	assert.Equal(t, schema.Paragraph, p.Type)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, document.DefaultPlaceholder, p.Placeholder)

	require.Len(t, p.Children, 2)
	hi := p.Children[0].(*document.Text)
	assert.Equal(t, "Hi", hi.Text)
	assert.Equal(t, map[string]any{"bold": true}, hi.Marks.Map())
	there := p.Children[1].(*document.Text)
	assert.Equal(t, " there", there.Text)
	assert.Equal(t, 0, there.Marks.Len())
}

func TestDeserialize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "<div></div>", "<body></body>"} {
		doc := deserialize(t, input)
		require.Len(t, doc.Children, 1, "input %q", input)
		p := doc.Children[0].(*document.Element)
		assert.Equal(t, schema.Paragraph, p.Type)
		require.Len(t, p.Children, 1)
		assert.Equal(t, "", p.Children[0].(*document.Text).Text)
	}
}

func TestDeserialize_Tags(t *testing.T) {
	testCases := []struct {
		input    string
		expected schema.Type
	}{
		{"<blockquote>q</blockquote>", schema.Blockquote},
		{"<div>d</div>", schema.Paragraph},
		{"<h1>h</h1>", schema.HeadingOne},
		{"<h2>h</h2>", schema.HeadingTwo},
		{"<h3>h</h3>", schema.HeadingThree},
		{"<h4>h</h4>", schema.HeadingFour},
		{"<h5>h</h5>", schema.HeadingFour},
		{"<h6>h</h6>", schema.HeadingFour},
		{"<ul><li>i</li></ul>", schema.UnorderedList},
		{"<ol><li>i</li></ol>", schema.OrderedList},
		{"<pre>x</pre>", schema.CodeBlock},
		{"<hr>", schema.Divider},
		{`<div data-type="todo">t</div>`, schema.Todo},
		{`<div data-type="nonsense">t</div>`, schema.Paragraph},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			doc := deserialize(t, tc.input)
			require.Len(t, doc.Children, 1)
			assert.Equal(t, tc.expected, doc.Children[0].(*document.Element).Type)
		})
	}
}

func TestDeserialize_Marks(t *testing.T) {
	doc := deserialize(t, `<p style="text-align: center; margin-left: 8px"><em><u>a</u></em><sub>b</sub><span style="color: red">c</span></p>`)

	p := doc.Children[0].(*document.Element)
	assert.Equal(t, map[string]any{"marginLeft": "8px"}, p.Style.Map())

	leaves := doc.Leaves()
	require.Len(t, leaves, 3)
	assert.Equal(t, map[string]any{"textAlign": "center", "italic": true, "underline": true}, leaves[0].Leaf.Marks.Map())
	assert.Equal(t, map[string]any{"textAlign": "center", "subscript": true}, leaves[1].Leaf.Marks.Map())
	assert.Equal(t, map[string]any{"textAlign": "center", "color": "red"}, leaves[2].Leaf.Marks.Map())
}

func TestDeserialize_TransparentAndLoose(t *testing.T) {
	doc := deserialize(t, "loose <marquee>text</marquee>\n<p>para</p>")

	require.Len(t, doc.Children, 2)
	first := doc.Children[0].(*document.Element)
	assert.Equal(t, schema.Paragraph, first.Type)
	assert.Equal(t, "loose text", document.TextContent(first))
	assert.Equal(t, "para", document.TextContent(doc.Children[1]))
}

func TestDeserialize_Attributes(t *testing.T) {
	doc := deserialize(t, `<p id="keep" class="x" contenteditable="true" lang="en" title="t">x</p>`)

	p := doc.Children[0].(*document.Element)
	assert.NotEqual(t, "keep", p.ID)
	assert.Equal(t, []string{"lang", "title"}, p.Attributes.Keys())
	assert.Empty(t, p.ClassName)
}

func TestDeserialize_PreserveIDs(t *testing.T) {
	r := identity.NewResolver("", identity.WithMode(identity.PreserveIdentity))
	id := r.NewID()

	doc, err := Deserialize([]byte(`<p id="`+id+`">a</p><p id="`+id+`">b</p>`), Options{IDs: identity.NewResolver("", identity.WithMode(identity.PreserveIdentity))})
	require.NoError(t, err)

	require.Len(t, doc.Children, 2)
	assert.Equal(t, id, doc.Children[0].(*document.Element).ID)
	assert.NotEqual(t, id, doc.Children[1].(*document.Element).ID)
}

func TestDeserialize_NoChildlessElements(t *testing.T) {
	doc := deserialize(t, `<table><tbody><tr><td></td><td>x</td></tr></tbody></table><ul><li></li></ul><p><img src="a.png" alt="A"></p>`)

	doc.Walk(func(p document.Path, n document.Node) bool {
		if el, ok := n.(*document.Element); ok {
			assert.NotEmpty(t, el.Children, "element %s at %s", el.Type, p)
			assert.NotEmpty(t, el.ID)
		}
		return true
	})

	table := doc.Children[0].(*document.Element)
	assert.Equal(t, schema.Table, table.Type)
	row := table.Children[0].(*document.Element)
	assert.Equal(t, schema.TableRow, row.Type, "tbody is transparent")
	assert.Len(t, row.Children, 2)

	list := doc.Children[1].(*document.Element)
	assert.Equal(t, "disc", list.Style.String("listStyleType"))

	img := doc.Children[2].(*document.Element).Children[0].(*document.Element)
	assert.Equal(t, schema.InlineImage, img.Type)
	assert.Equal(t, map[string]any{"src": "a.png", "alt": "A"}, img.VoidData.Map())
}

func TestDeserialize_Whitespace(t *testing.T) {
	doc := deserialize(t, "<div>\n  <p>a&nbsp;&nbsp;b&emsp;c</p>\n</div>")

	leaves := doc.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, "a  b\tc", leaves[0].Leaf.Text)
}

func TestDeserialize_Selector(t *testing.T) {
	page := `<html><body>
<div id="question"><p>Q?</p></div>
<div id="feedback"><p>Well done</p></div>
</body></html>`

	opts := testOptions()
	opts.Selector = "#feedback"
	doc, err := Deserialize([]byte(page), opts)
	require.NoError(t, err)
	assert.Equal(t, "Well done", doc.TextContent())

	opts.Selector = "#missing"
	_, err = Deserialize([]byte(page), opts)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	opts.Selector = "[["
	_, err = Deserialize([]byte(page), opts)
	assert.Error(t, err)
}

func TestDeserialize_Sanitize(t *testing.T) {
	opts := testOptions()
	opts.Sanitize = true
	doc, err := Deserialize([]byte(`<p onclick="alert(1)">safe<script>alert(2)</script></p>`), opts)
	require.NoError(t, err)

	assert.Equal(t, "safe", doc.TextContent())
	p := doc.Children[0].(*document.Element)
	assert.False(t, p.Attributes.Has("onclick"))
}

func TestDeserializeFragment(t *testing.T) {
	nodes, err := DeserializeFragment([]byte(`<b>bold</b> plain<p>block</p>`), testOptions())
	require.NoError(t, err)

	require.Len(t, nodes, 3)
	assert.True(t, nodes[0].(*document.Text).HasMark(schema.Bold))
	assert.Equal(t, " plain", nodes[1].(*document.Text).Text)
	assert.True(t, document.IsBlock(nodes[2]))
}
