package markdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/supernova"
	"github.com/fwojciec/supernova/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(source string) string {
	return markdown.Render(source, 80, supernova.DefaultTheme())
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("empty source renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, render(""))
	})

	t.Run("paragraph text survives", func(t *testing.T) {
		t.Parallel()
		out := render("Misture os ingredientes e asse por 40 minutos.")
		assert.Contains(t, out, "Misture os ingredientes")
	})

	t.Run("paragraphs are separated by a blank line", func(t *testing.T) {
		t.Parallel()
		out := render("primeiro\n\nsegundo")
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "primeiro")
		assert.Empty(t, lines[1])
		assert.Contains(t, lines[2], "segundo")
	})

	t.Run("headings keep their text", func(t *testing.T) {
		t.Parallel()
		out := render("# Receita\n\ncorpo")
		assert.Contains(t, out, "Receita")
		assert.Contains(t, out, "corpo")
		assert.NotContains(t, out, "#")
	})

	t.Run("unordered list gets dash markers", func(t *testing.T) {
		t.Parallel()
		out := render("- ovos\n- farinha")
		assert.Contains(t, out, "- ovos")
		assert.Contains(t, out, "- farinha")
	})

	t.Run("ordered list is numbered from its start", func(t *testing.T) {
		t.Parallel()
		out := render("1. bater\n2. assar")
		assert.Contains(t, out, "1. bater")
		assert.Contains(t, out, "2. assar")
	})

	t.Run("nested list items are indented", func(t *testing.T) {
		t.Parallel()
		out := render("- topo\n  - dentro")
		assert.Contains(t, out, "- topo")
		assert.Contains(t, out, "  - dentro")
	})

	t.Run("code blocks keep lines behind a gutter", func(t *testing.T) {
		t.Parallel()
		out := render("```go\nfunc main() {}\n```")
		assert.Contains(t, out, "go")
		assert.Contains(t, out, "func main() {}")
		assert.Contains(t, out, "│")
	})

	t.Run("code lines are not rewrapped", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("x", 120)
		out := markdown.Render("```\n"+long+"\n```", 40, supernova.DefaultTheme())
		assert.Contains(t, out, long)
	})

	t.Run("inline markup does not leak delimiters", func(t *testing.T) {
		t.Parallel()
		out := render("um **negrito** e um `código`")
		assert.Contains(t, out, "negrito")
		assert.Contains(t, out, "código")
		assert.NotContains(t, out, "**")
		assert.NotContains(t, out, "`")
	})

	t.Run("links show their destination", func(t *testing.T) {
		t.Parallel()
		out := render("[docs](https://example.com)")
		assert.Contains(t, out, "docs")
		assert.Contains(t, out, "https://example.com")
	})

	t.Run("zero width falls back to a sane default", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("texto", 0, supernova.DefaultTheme())
		assert.Contains(t, out, "texto")
	})
}
