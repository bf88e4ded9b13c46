package bkm

import (
	"fmt"
	"io"
	"strings"
)

// viewTitle is the title header written for every tree.
const viewTitle = "default view"

// Marshal returns the canonical .bkm text for set.
func Marshal(set Set) []byte {
	var b strings.Builder
	for _, t := range set {
		writeTree(&b, t)
	}
	return []byte(b.String())
}

// Encoder writes outline sets to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the canonical text for set.
func (e *Encoder) Encode(set Set) error {
	if _, err := e.w.Write(Marshal(set)); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

func writeTree(b *strings.Builder, t *Tree) {
	fmt.Fprintf(b, "file: %s\n", t.SourcePath)
	b.WriteString("title: " + viewTitle + "\n")
	t.Walk(func(n *Node, depth int) bool {
		writeNode(b, n, depth)
		return true
	})
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	appendQuoted(b, n.Title)

	if n.Style.Has(StyleItalic) {
		b.WriteString(" font:italic")
	}
	if n.Style.Has(StyleBold) {
		b.WriteString(" font:bold")
	}
	if n.Color != nil {
		b.WriteString(" " + n.Color.String())
	}
	// A destination is only read back through a page: token, so one is
	// written for every node that has either.
	if n.PageNo > 0 || n.Dest != nil {
		fmt.Fprintf(b, " page:%d", n.PageNo)
	}
	if n.IsOpenDefault {
		b.WriteString(" open-default")
	}
	// open-toggled is keyed on IsOpenDefault, as in files written by
	// earlier exporters.
	if n.IsOpenDefault {
		b.WriteString(" open-toggled")
	}
	if n.IsUnchecked {
		b.WriteString(" unchecked")
	}
	writeDest(b, n.Dest)
	b.WriteByte('\n')
}

func writeDest(b *strings.Builder, d *Destination) {
	if d == nil {
		return
	}
	b.WriteString(" destkind:" + d.Kind)
	writeQuotedKV(b, "destname", d.Name)
	writeQuotedKV(b, "destvalue", d.Value)
	if d.PageNo > 0 {
		fmt.Fprintf(b, " destpage:%d", d.PageNo)
	}
	if r := d.Rect; !r.Empty() {
		fmt.Fprintf(b, " destrect:%f,%f,%f,%f", r.X, r.Y, r.Dx, r.Dy)
	}
}

func writeQuotedKV(b *strings.Builder, key, val string) {
	if val == "" {
		return
	}
	b.WriteString(" " + key + ":")
	appendQuoted(b, val)
}
