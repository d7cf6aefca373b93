package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type document struct {
	title   string
	summary string
	text    string
}

// extract walks the markdown AST once: the first level-1 heading becomes
// the title, the first paragraph the summary, and all text the body.
func (l *Loader) extract(body []byte) document {
	root := l.md.Parser().Parse(text.NewReader(body))

	var doc document
	var blocks []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			s := inlineText(node, body)
			if node.Level == 1 && doc.title == "" {
				doc.title = s
			}
			blocks = append(blocks, s)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			s := inlineText(node, body)
			if doc.summary == "" {
				doc.summary = s
			}
			blocks = append(blocks, s)
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock:
			blocks = append(blocks, inlineText(node, body))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			blocks = append(blocks, linesText(n, body))
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	doc.text = strings.Join(nonEmpty(blocks), "\n")
	return doc
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func linesText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
