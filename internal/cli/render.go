package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/outline"
)

// nodeStyle maps a node's display attributes onto a lipgloss style.
func nodeStyle(n *bkm.Node) lipgloss.Style {
	s := lipgloss.NewStyle()
	if n.Style.Has(bkm.StyleBold) {
		s = s.Bold(true)
	}
	if n.Style.Has(bkm.StyleItalic) {
		s = s.Italic(true)
	}
	if n.Color != nil {
		s = s.Foreground(lipgloss.Color(n.Color.String()))
	}
	if n.IsUnchecked {
		s = s.Faint(true)
	}
	return s
}

// renderOutline writes a resolved outline as an indented tree.
func renderOutline(w io.Writer, docPath string, res *outline.Resolved) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render(docPath), dimStyle.Render("("+string(res.Source)+")"))
	for _, tree := range res.Set {
		if tree.Root == nil {
			fmt.Fprintln(w, dimStyle.Render("  no outline"))
			continue
		}
		tree.Walk(func(n *bkm.Node, depth int) bool {
			renderNode(w, n, depth)
			return true
		})
	}
}

func renderNode(w io.Writer, n *bkm.Node, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth+1))
	switch {
	case n.Child == nil:
		b.WriteString("- ")
	case n.IsOpenDefault:
		b.WriteString("v ")
	default:
		b.WriteString("> ")
	}
	b.WriteString(nodeStyle(n).Render(n.Title))
	if n.PageNo > 0 {
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("p.%d", n.PageNo)))
	}
	fmt.Fprintln(w, b.String())
}
