package doctree

// DocTree is the outline a document carries itself.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Path     string     // Path the document was read from
	Children []*DocNode // Top-level entries
}

// DocNode is one outline entry.
type DocNode struct {
	Title    string     // Entry text
	Page     int        // Target page (0 if unknown)
	Level    int        // Heading level the entry came from (1 = top)
	Children []*DocNode // Nested entries
}

// Len returns the number of nodes in the tree.
func (t *DocTree) Len() int {
	n := 0
	var count func([]*DocNode)
	count = func(nodes []*DocNode) {
		for _, node := range nodes {
			n++
			count(node.Children)
		}
	}
	count(t.Children)
	return n
}

// Builder nests headings by level. A heading becomes a child of the nearest
// preceding heading with a lower level.
type Builder struct {
	root  DocNode
	stack []stackEntry
}

type stackEntry struct {
	node  *DocNode
	level int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{}
	// Root is level 0; all headings nest under it.
	b.stack = []stackEntry{{node: &b.root, level: 0}}
	return b
}

// Add appends a heading at level (1 = top) and returns its node.
func (b *Builder) Add(title string, level, page int) *DocNode {
	if level < 1 {
		level = 1
	}
	node := &DocNode{Title: title, Page: page, Level: level}

	// Pop stack until we find a parent with lower level.
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}

	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, stackEntry{node: node, level: level})
	return node
}

// Nodes returns the top-level nodes added so far.
func (b *Builder) Nodes() []*DocNode {
	return b.root.Children
}
