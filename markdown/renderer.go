package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/supernova"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type renderer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newRenderer(theme supernova.Theme) *renderer {
	return &renderer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, source, width, &buf)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (r *renderer) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph:
		r.wrapped(r.inline(n, source), width, buf)
		r.blockGap(n, buf)

	case *ast.Heading:
		r.wrapped(r.heading.Render(r.inline(n, source)), width, buf)
		r.blockGap(n, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.muted.Render(lang) + "\n")
		}
		r.codeLines(n.Lines(), source, buf)
		r.blockGap(n, buf)

	case *ast.CodeBlock:
		r.codeLines(n.Lines(), source, buf)
		r.blockGap(n, buf)

	case *ast.List:
		r.list(n, source, width, buf, 0)
		r.blockGap(n, buf)

	case *ast.ThematicBreak:
		buf.WriteString("---\n")
		r.blockGap(n, buf)

	default:
		// Blockquotes and other unrecognized blocks: recurse into
		// children, rendering what we know.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, source, width, buf)
		}
	}
}

func (r *renderer) wrapped(content string, width int, buf *bytes.Buffer) {
	buf.WriteString(lipgloss.NewStyle().Width(width).Render(content))
	buf.WriteString("\n")
}

// blockGap separates top-level blocks with a blank line, except after the
// last block.
func (r *renderer) blockGap(node ast.Node, buf *bytes.Buffer) {
	if node.NextSibling() != nil {
		buf.WriteString("\n")
	}
}

// codeLines writes code block lines behind a muted gutter, unwrapped.
func (r *renderer) codeLines(lines *text.Segments, source []byte, buf *bytes.Buffer) {
	gutter := r.muted.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(source)), "\n")
		buf.WriteString(gutter + line + "\n")
	}
}

func (r *renderer) list(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		prefix := strings.Repeat("  ", depth) + marker

		var content strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content.WriteString(r.inline(in, source))
			case *ast.List:
				if content.Len() > 0 {
					r.listItem(buf, prefix, content.String(), width)
					content.Reset()
					prefix = strings.Repeat(" ", len(prefix))
				}
				r.list(in, source, width, buf, depth+1)
			default:
				var inner bytes.Buffer
				r.block(ic, source, width, &inner)
				content.WriteString(inner.String())
			}
		}
		if content.Len() > 0 {
			r.listItem(buf, prefix, content.String(), width)
		}
	}
}

// listItem writes one item with continuation-line indentation under the
// marker.
func (r *renderer) listItem(buf *bytes.Buffer, prefix, content string, width int) {
	itemWidth := width - len(prefix)
	if itemWidth < 10 {
		itemWidth = 10
	}
	continuation := strings.Repeat(" ", len(prefix))
	wrapped := lipgloss.NewStyle().Width(itemWidth).Render(content)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
			continue
		}
		buf.WriteString(continuation + line + "\n")
	}
}

// inline collects the styled inline text of a node's children.
func (r *renderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inlineNode(c, source, &buf)
	}
	return buf.String()
}

func (r *renderer) inlineNode(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.inline(n, source)))

	case *ast.Link:
		buf.WriteString(r.underline.Render(r.inline(n, source)))
		buf.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		buf.WriteString(r.underline.Render(string(n.URL(source))))

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.inlineNode(c, source, buf)
		}
	}
}
