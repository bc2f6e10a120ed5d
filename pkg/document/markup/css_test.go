package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	box, text, err := parseStyle("margin-left: 8px; color: red; border-top: 1px solid; font-weight: inherit; padding: 2px")
	require.NoError(t, err)

	assert.Equal(t, []string{"marginLeft", "borderTop", "padding"}, box.Keys())
	assert.Equal(t, []string{"color"}, text.Keys())
	assert.Equal(t, "red", text.String("color"))
}

func TestParseStyle_Empty(t *testing.T) {
	box, text, err := parseStyle("  ")
	require.NoError(t, err)
	assert.Equal(t, 0, box.Len())
	assert.Equal(t, 0, text.Len())
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "borderTopLeftRadius", camelCase("border-top-left-radius"))
	assert.Equal(t, "border-top-left-radius", kebabCase("borderTopLeftRadius"))
	assert.Equal(t, "color", camelCase("color"))
	assert.False(t, isBoxProperty("color"))
	assert.True(t, isBoxProperty("list-style-type"))
	assert.False(t, isBoxProperty("borderless"))
}
