// Package bkm reads and writes .bkm files, the alternate-bookmarks format
// that stores a document outline next to the document it describes.
//
// A .bkm file looks like:
//
//	file: report.pdf
//	title: default view
//	"Chapter 1" font:bold page:3
//	  "Section 1.1" page:4
//	"Chapter 2" open-default page:10
//
// Two spaces of indentation mark one level of nesting. The node list ends at
// the first blank line or at end of input.
package bkm

// Set is an ordered list of outline trees. Files read by this package hold
// at most one tree.
type Set []*Tree

// Tree is a single outline. Root is nil for an empty outline.
type Tree struct {
	Name       string // Title header.
	SourcePath string // Document the outline belongs to (file header).
	Root       *Node
}

// StyleFlags holds the font styling of a node title.
type StyleFlags uint8

const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
)

// Has reports whether all bits of f are set.
func (s StyleFlags) Has(f StyleFlags) bool {
	return s&f == f
}

// Node is one outline entry. Next links to the following sibling and Child
// to the first entry one level deeper; a node is owned by exactly one of
// those links (or by Tree.Root).
type Node struct {
	Title string
	Next  *Node
	Child *Node

	PageNo int // 0 when unset.
	Style  StyleFlags
	Color  *Color // nil when unset.

	IsOpenDefault bool
	IsOpenToggled bool
	IsUnchecked   bool

	Dest *Destination
}

// Destination is a location inside the document a node points to. It is
// stored as given and never interpreted.
type Destination struct {
	Kind   string
	Name   string
	Value  string
	PageNo int
	Rect   Rect
}

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	X, Y   float64
	Dx, Dy float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Dx == 0 || r.Dy == 0
}

// DestKindScrollTo is the destination kind attached by page: tokens.
const DestKindScrollTo = "scrollto"

// AddSibling appends sibling to the end of n's sibling chain.
func (n *Node) AddSibling(sibling *Node) {
	last := n
	for last.Next != nil {
		last = last.Next
	}
	last.Next = sibling
}

// Walk visits the tree in pre-order, descending into Child before moving on
// to Next. depth is 0 for top-level nodes. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(t.Root, fn)
}

type walkItem struct {
	node  *Node
	depth int
}

// walk uses an explicit stack so that deeply nested outlines cannot exhaust
// the goroutine stack.
func walk(root *Node, fn func(n *Node, depth int) bool) {
	stack := []walkItem{{node: root, depth: 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := it.node
		descend := fn(n, it.depth)
		// Push Next first so Child is popped before it.
		if n.Next != nil {
			stack = append(stack, walkItem{node: n.Next, depth: it.depth})
		}
		if descend && n.Child != nil {
			stack = append(stack, walkItem{node: n.Child, depth: it.depth + 1})
		}
	}
}

// Count returns the number of nodes reachable from the root.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(*Node, int) bool {
		n++
		return true
	})
	return n
}
