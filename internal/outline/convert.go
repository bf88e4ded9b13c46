package outline

import (
	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/doctree"
)

// FromDocTree converts a document's own outline into a bkm tree. Entries
// with a known page get a scroll-to destination for that page.
func FromDocTree(dt *doctree.DocTree) *bkm.Tree {
	return &bkm.Tree{
		Name:       dt.Title,
		SourcePath: dt.Path,
		Root:       convertNodes(dt.Children),
	}
}

// convertNodes links nodes into a sibling chain and returns its head.
func convertNodes(nodes []*doctree.DocNode) *bkm.Node {
	var head, prev *bkm.Node
	for _, dn := range nodes {
		n := &bkm.Node{
			Title: dn.Title,
			Child: convertNodes(dn.Children),
		}
		if dn.Page > 0 {
			n.PageNo = dn.Page
			n.Dest = &bkm.Destination{Kind: bkm.DestKindScrollTo, PageNo: dn.Page}
		}
		if prev == nil {
			head = n
		} else {
			prev.Next = n
		}
		prev = n
	}
	return head
}
