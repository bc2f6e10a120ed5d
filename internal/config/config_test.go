package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	expected := &Config{
		Version: "v1alpha1",
		Editor: Editor{
			Placeholder:      "Type something...",
			PlaceholderClass: "placeholder",
		},
		Table: Table{
			BorderWidth:     "1px",
			EdgeBorderWidth: "2px",
			BorderColor:     "#d0d7de",
			CornerRadius:    "6px",
		},
		Sections: map[string]string{
			"question":     "#question",
			"author_notes": "#author-notes",
			"feedback":     "#feedback",
			"algorithm":    "#algorithm",
		},
		Log: Log{Path: "/tmp/qedit.log"},
	}
	got := Default()
	opts := cmpopts.EquateEmpty()
	require.True(
		t,
		cmp.Equal(expected, got, opts),
		"%s",
		cmp.Diff(expected, got, opts),
	)

	// Callers get a copy.
	got.Sections["question"] = "main"
	assert.Equal(t, "#question", Default().Sections["question"])
}

func TestParseYAML(t *testing.T) {
	testCases := []struct {
		name           string
		rawConfig      string
		expected       func(*Config)
		errorSubstring string
	}{
		{
			name:      "only version",
			rawConfig: "version: v1alpha1\n",
			expected:  func(*Config) {},
		},
		{
			name: "editor and table",
			rawConfig: `version: v1alpha1
editor:
  placeholder: "Start typing"
  id_namespace: q1
  preserve_ids: true
table:
  border_color: black
`,
			expected: func(c *Config) {
				c.Editor.Placeholder = "Start typing"
				c.Editor.IDNamespace = "q1"
				c.Editor.PreserveIDs = true
				c.Table.BorderColor = "black"
			},
		},
		{
			name: "sections are merged",
			rawConfig: `version: v1alpha1
sections:
  question: "main > .question"
`,
			expected: func(c *Config) {
				c.Sections["question"] = "main > .question"
			},
		},
		{
			name: "log",
			rawConfig: `version: v1alpha1
log:
  enabled: true
  path: /var/log/qedit.log
  verbose: true
export:
  minify: true
`,
			expected: func(c *Config) {
				c.Log = Log{Enabled: true, Path: "/var/log/qedit.log", Verbose: true}
				c.Export.Minify = true
			},
		},
		{
			name:           "unknown version",
			rawConfig:      "version: v2\n",
			errorSubstring: `unknown version: "v2"`,
		},
		{
			name:           "missing version",
			rawConfig:      "editor:\n  placeholder: x\n",
			errorSubstring: "unknown version",
		},
		{
			name:           "unknown field",
			rawConfig:      "version: v1alpha1\neditor:\n  colour: red\n",
			errorSubstring: "field colour not found",
		},
		{
			name:           "unknown section",
			rawConfig:      "version: v1alpha1\nsections:\n  summary: \"#summary\"\n",
			errorSubstring: "oneof",
		},
		{
			name:           "invalid selector",
			rawConfig:      "version: v1alpha1\nsections:\n  feedback: \"[[\"\n",
			errorSubstring: "selector",
		},
		{
			name:           "log without path",
			rawConfig:      "version: v1alpha1\nlog:\n  enabled: true\n  path: \"\"\n",
			errorSubstring: "required_if",
		},
		{
			name:           "invalid namespace",
			rawConfig:      "version: v1alpha1\neditor:\n  id_namespace: \"a-b\"\n",
			errorSubstring: "alphanum",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseYAML([]byte(tc.rawConfig))

			if tc.errorSubstring != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorSubstring)
				return
			}

			require.NoError(t, err)
			expected := Default()
			tc.expected(expected)
			assert.True(t, cmp.Equal(expected, got), "%s", cmp.Diff(expected, got))
		})
	}
}

func TestParseYAML_MultipleErrors(t *testing.T) {
	_, err := ParseYAML([]byte(`version: v1alpha1
editor:
  placeholder: ""
table:
  corner_radius: ""
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Editor.Placeholder")
	assert.Contains(t, err.Error(), "Config.Table.CornerRadius")
}
