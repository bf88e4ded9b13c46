package bkm

// entry is a parsed node together with the depth it was indented to.
type entry struct {
	node  *Node
	depth int
}

// buildTree links a flat, ordered list of entries into a forest and returns
// its first node. Each entry is attached relative to the one before it:
//
//	a          a.Child = b1
//	  b1       b1.Next = b2
//	  b2
//	a2         appended to a's sibling chain
//	  b3       a2.Child = b3
//
// A depth that grows by more than one level is attached as a child all the
// same.
func buildTree(entries []entry) (*Node, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDocument
	}

	root := entries[0].node
	for i := 1; i < len(entries); i++ {
		curr := entries[i]
		prev := entries[i-1]
		switch {
		case curr.depth == prev.depth:
			prev.node.Next = curr.node
		case curr.depth > prev.depth:
			prev.node.Child = curr.node
		default:
			attachDedented(entries[:i], root, curr)
		}
	}
	return root, nil
}

// attachDedented appends curr to the sibling chain of the closest earlier
// entry at the same depth, or to the top-level chain if there is none.
func attachDedented(earlier []entry, root *Node, curr entry) {
	for j := len(earlier) - 1; j >= 0; j-- {
		if earlier[j].depth == curr.depth {
			earlier[j].node.AddSibling(curr.node)
			return
		}
	}
	root.AddSibling(curr.node)
}
