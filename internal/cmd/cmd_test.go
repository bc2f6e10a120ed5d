package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	root := Root()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetArgs(append([]string{"--chdir", dir}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestFmtCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", `<html><body>
<div id="question"><p><b>Hi</b> there</p></div>
<div id="feedback"><p>Well done</p></div>
</body></html>`)

	t.Run("Stdin", func(t *testing.T) {
		out, err := execute(t, dir, "<p>a b</p>", "fmt", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "<span>a&nbsp;b</span>")
		assert.True(t, strings.HasPrefix(out, "<div id=\""))
	})

	t.Run("Section", func(t *testing.T) {
		out, err := execute(t, dir, "", "fmt", "page.html", "--section", "feedback")
		require.NoError(t, err)
		assert.Contains(t, out, "Well&nbsp;done")
		assert.NotContains(t, out, "Hi")
	})

	t.Run("UnknownSection", func(t *testing.T) {
		_, err := execute(t, dir, "", "fmt", "page.html", "--section", "summary")
		assert.ErrorContains(t, err, `unknown section "summary"`)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := execute(t, dir, "", "fmt", "missing.html")
		assert.ErrorContains(t, err, "failed to read from file")
	})
}

func TestFmtCmd_Config(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "qedit.yaml", `version: v1alpha1
editor:
  id_namespace: q
  preserve_ids: true
sections:
  question: "main"
`)
	writeFile(t, dir, "page.html", `<main><p id="q-01HZ0000000000000000000000">kept</p></main><p>outside</p>`)

	out, err := execute(t, dir, "", "fmt", "page.html", "--section", "question")
	require.NoError(t, err)
	assert.Contains(t, out, `id="q-01HZ0000000000000000000000"`)
	assert.NotContains(t, out, "outside")
}

func TestFmtCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "qedit.yaml", "version: v0\n")

	_, err := execute(t, dir, "<p>x</p>", "fmt", "-")
	assert.ErrorContains(t, err, "unknown version")
}

func TestTreeCmd(t *testing.T) {
	out, err := execute(t, t.TempDir(), "<h2>Title</h2><ul><li>one</li></ul>", "tree", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "heading-two")
	assert.Contains(t, out, "unordered-list")
	assert.Contains(t, out, `"one"`)
}

func TestTableCmd(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "table", "--rows", "2", "--cols", "3")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, `data-type="table"`))
	assert.Equal(t, 2, strings.Count(out, `data-type="table-row"`))
	assert.Equal(t, 6, strings.Count(out, `data-type="table-cell"`))
	assert.Equal(t, 4, strings.Count(out, "radius"))

	_, err = execute(t, t.TempDir(), "", "table", "--rows", "0")
	assert.ErrorContains(t, err, "invalid table size")
}

func TestReplayCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "script.txt", "select 0.0:0\ntype hello\nbreak\ntype world\n")

	out, err := execute(t, dir, "", "replay", "--script", "script.txt", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, `"hello"`)
	assert.Contains(t, out, `"world"`)

	out, err = execute(t, dir, "<p>abc</p>", "replay", "-", "--script", "script.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "worldabc")

	_, err = execute(t, dir, "", "replay")
	assert.Error(t, err)
}

func TestFmtCmd_InputTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "q.md", "# Title\n\n*hello*\n")
	writeFile(t, dir, "image.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	out, err := execute(t, dir, "", "fmt", "q.md")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<em><span>hello</span></em>")

	_, err = execute(t, dir, "", "fmt", "image.png")
	assert.ErrorContains(t, err, "unsupported input type image/png")
}
