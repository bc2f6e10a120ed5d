package schema

var defaultSpecs = []Spec{
	{Paragraph, Block, "div"},
	{HeadingOne, Block, "h1"},
	{HeadingTwo, Block, "h2"},
	{HeadingThree, Block, "h3"},
	{HeadingFour, Block, "h4"},
	{Blockquote, Block, "div"},
	{OrderedList, Block, "div"},
	{UnorderedList, Block, "div"},
	{ListItem, Block, "div"},
	{Table, Block, "div"},
	{TableRow, Block, "div"},
	{TableCell, Block, "div"},
	{TableHeader, Block, "div"},
	{CodeBlock, Block, "div"},
	{CodeLine, Block, "div"},
	{Todo, Block, "div"},
	{Tabbable, Block, "div"},

	{Link, Inline, "div"},
	{Mention, Inline, "div"},
	{CodeSyntax, Inline, "div"},

	{BlockImage, Void, "div"},
	{Divider, Void, "div"},
	{Excalidraw, Void, "div"},
	{Video, Void, "div"},

	{InlineImage, InlineVoid, "div"},
	{Latex, InlineVoid, "div"},
}

// The order is the nesting order used by the serializer: bold is outermost.
var defaultMarks = []MarkSpec{
	{Bold, ToggleMark, "strong"},
	{Code, ToggleMark, "code"},
	{Italic, ToggleMark, "em"},
	{Kbd, ToggleMark, "kbd"},
	{Strikethrough, ToggleMark, "s"},
	{Subscript, ToggleMark, "sub"},
	{Superscript, ToggleMark, "sup"},
	{Underline, ToggleMark, "u"},
}

var registry = mustRegistry(defaultSpecs, defaultMarks)

func mustRegistry(specs []Spec, marks []MarkSpec) *Registry {
	r, err := NewRegistry(specs, marks)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the process-wide registry.
func Default() *Registry { return registry }

func Lookup(t Type) (Spec, bool) { return registry.Lookup(t) }

func CategoryOf(t Type) Category { return registry.CategoryOf(t) }

func IsBlockType(t Type) bool { return registry.CategoryOf(t) == Block }

func IsInlineType(t Type) bool { return registry.CategoryOf(t) == Inline }

func IsVoidType(t Type) bool { return registry.CategoryOf(t) == Void }

func IsInlineVoidType(t Type) bool { return registry.CategoryOf(t) == InlineVoid }

// IsToggleMark reports whether key names a toggle mark. Every other key
// except TextKey is a value mark.
func IsToggleMark(key string) bool {
	_, ok := registry.MarkSpec(Mark(key))
	return ok
}

// HeadingLevel returns 1..4 for heading types and 0 otherwise.
func HeadingLevel(t Type) int {
	switch t {
	case HeadingOne:
		return 1
	case HeadingTwo:
		return 2
	case HeadingThree:
		return 3
	case HeadingFour:
		return 4
	}
	return 0
}

// Heading returns the heading type for an HTML heading level. Levels above
// four fold into HeadingFour.
func Heading(level int) Type {
	switch {
	case level <= 1:
		return HeadingOne
	case level == 2:
		return HeadingTwo
	case level == 3:
		return HeadingThree
	default:
		return HeadingFour
	}
}
