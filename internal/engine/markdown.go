package engine

import (
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownEngine builds an outline from Markdown headings using goldmark.
type MarkdownEngine struct{}

func (e *MarkdownEngine) Outline(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	tree := &doctree.DocTree{
		Title: baseTitle(filename),
		Path:  filename,
	}

	b := doctree.NewBuilder()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := cleanTitle(headingText(heading, src))
		if title == "" {
			continue
		}
		b.Add(title, heading.Level, 0)
	}
	tree.Children = b.Nodes()

	return tree, nil
}

// headingText gets the inline text of a heading, including text nested in
// emphasis, links and code spans.
func headingText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(headingText(c, src))
		}
	}
	return buf.String()
}
