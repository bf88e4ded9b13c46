package outline

import (
	"github.com/dgallion1/docoutline/internal/bkm"
)

// TreeView is the JSON form of a bkm tree.
type TreeView struct {
	Name       string      `json:"name"`
	SourcePath string      `json:"source_path"`
	Nodes      []*NodeView `json:"nodes"`
}

// NodeView is the JSON form of a bkm node.
type NodeView struct {
	Title       string      `json:"title"`
	Page        int         `json:"page,omitempty"`
	Bold        bool        `json:"bold,omitempty"`
	Italic      bool        `json:"italic,omitempty"`
	Color       string      `json:"color,omitempty"`
	OpenDefault bool        `json:"open_default,omitempty"`
	OpenToggled bool        `json:"open_toggled,omitempty"`
	Unchecked   bool        `json:"unchecked,omitempty"`
	Dest        *DestView   `json:"dest,omitempty"`
	Children    []*NodeView `json:"children,omitempty"`
}

// DestView is the JSON form of a destination.
type DestView struct {
	Kind  string      `json:"kind"`
	Name  string      `json:"name,omitempty"`
	Value string      `json:"value,omitempty"`
	Page  int         `json:"page,omitempty"`
	Rect  *[4]float64 `json:"rect,omitempty"`
}

// ViewOf returns the JSON form of t. Nodes is never nil.
func ViewOf(t *bkm.Tree) *TreeView {
	v := &TreeView{
		Name:       t.Name,
		SourcePath: t.SourcePath,
		Nodes:      []*NodeView{},
	}

	// parents[d] is the node at depth d the next child attaches to.
	var parents []*NodeView
	t.Walk(func(n *bkm.Node, depth int) bool {
		nv := nodeView(n)
		parents = parents[:depth]
		if depth == 0 {
			v.Nodes = append(v.Nodes, nv)
		} else {
			p := parents[depth-1]
			p.Children = append(p.Children, nv)
		}
		parents = append(parents, nv)
		return true
	})
	return v
}

// ViewsOf returns the JSON form of every tree in set.
func ViewsOf(set bkm.Set) []*TreeView {
	views := make([]*TreeView, 0, len(set))
	for _, t := range set {
		views = append(views, ViewOf(t))
	}
	return views
}

func nodeView(n *bkm.Node) *NodeView {
	nv := &NodeView{
		Title:       n.Title,
		Page:        n.PageNo,
		Bold:        n.Style.Has(bkm.StyleBold),
		Italic:      n.Style.Has(bkm.StyleItalic),
		OpenDefault: n.IsOpenDefault,
		OpenToggled: n.IsOpenToggled,
		Unchecked:   n.IsUnchecked,
	}
	if n.Color != nil {
		nv.Color = n.Color.String()
	}
	if d := n.Dest; d != nil {
		nv.Dest = &DestView{Kind: d.Kind, Name: d.Name, Value: d.Value, Page: d.PageNo}
		if !d.Rect.Empty() {
			nv.Dest.Rect = &[4]float64{d.Rect.X, d.Rect.Y, d.Rect.Dx, d.Rect.Dy}
		}
	}
	return nv
}
