package outline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guideMD = `# Install

## Linux

## macOS

# Usage
`

func TestFromDocTree(t *testing.T) {
	dt := &doctree.DocTree{
		Title: "Guide",
		Path:  "guide.pdf",
		Children: []*doctree.DocNode{
			{Title: "One", Page: 3, Children: []*doctree.DocNode{
				{Title: "One.A"},
				{Title: "One.B", Page: 4},
			}},
			{Title: "Two"},
		},
	}

	tree := FromDocTree(dt)
	assert.Equal(t, "Guide", tree.Name)
	assert.Equal(t, "guide.pdf", tree.SourcePath)
	assert.Equal(t, 4, tree.Count())

	one := tree.Root
	require.NotNil(t, one)
	assert.Equal(t, "One", one.Title)
	assert.Equal(t, 3, one.PageNo)
	require.NotNil(t, one.Dest)
	assert.Equal(t, bkm.Destination{Kind: bkm.DestKindScrollTo, PageNo: 3}, *one.Dest)

	require.NotNil(t, one.Child)
	assert.Equal(t, "One.A", one.Child.Title)
	assert.Nil(t, one.Child.Dest)
	assert.Equal(t, "One.B", one.Child.Next.Title)
	assert.Equal(t, "Two", one.Next.Title)
	assert.Nil(t, one.Next.Next)
}

func TestFromDocTree_Empty(t *testing.T) {
	tree := FromDocTree(&doctree.DocTree{Title: "x"})
	assert.Nil(t, tree.Root)
	assert.Zero(t, tree.Count())
}

func TestViewOf(t *testing.T) {
	var set bkm.Set
	src := "file: a.pdf\ntitle: v\n\"A\" font:bold #ff0000 page:2\n  \"A1\"\n    \"A1x\" unchecked\n  \"A2\" font:italic\n\"B\" open-default\n"
	require.NoError(t, bkm.Parse([]byte(src), &set))

	v := ViewOf(set[0])
	assert.Equal(t, "v", v.Name)
	require.Len(t, v.Nodes, 2)

	a := v.Nodes[0]
	assert.True(t, a.Bold)
	assert.Equal(t, "#ff0000", a.Color)
	assert.Equal(t, 2, a.Page)
	require.NotNil(t, a.Dest)
	assert.Equal(t, bkm.DestKindScrollTo, a.Dest.Kind)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "A1", a.Children[0].Title)
	require.Len(t, a.Children[0].Children, 1)
	assert.True(t, a.Children[0].Children[0].Unchecked)
	assert.True(t, a.Children[1].Italic)
	assert.True(t, v.Nodes[1].OpenDefault)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"title":"A1x","unchecked":true`)
}

func TestViewOf_EmptyTree(t *testing.T) {
	b, err := json.Marshal(ViewOf(&bkm.Tree{Name: "e"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"e","source_path":"","nodes":[]}`, string(b))
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolver_NativeFallback(t *testing.T) {
	doc := writeDoc(t, "guide.md", guideMD)

	res, err := NewResolver(nil).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, SourceNative, res.Source)
	require.Len(t, res.Set, 1)
	assert.Equal(t, 4, res.Set[0].Count())
	assert.Equal(t, "Install", res.Set[0].Root.Title)
	assert.Equal(t, "guide.md", res.Set[0].SourcePath)
}

func TestResolver_PrefersAlternate(t *testing.T) {
	doc := writeDoc(t, "guide.md", guideMD)
	require.NoError(t, os.WriteFile(doc+bkm.Ext, []byte("file: guide.md\ntitle: mine\n\"Custom\" font:bold\n"), 0o644))

	res, err := NewResolver(nil).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, SourceAlternate, res.Source)
	assert.Equal(t, "Custom", res.Set[0].Root.Title)
}

func TestResolver_InvalidAlternateFallsBack(t *testing.T) {
	doc := writeDoc(t, "guide.md", guideMD)
	require.NoError(t, os.WriteFile(doc+bkm.Ext, []byte("file: guide.md\ntitle: mine\n\"ok\"\n \"odd\"\n"), 0o644))

	res, err := NewResolver(nil).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, SourceNative, res.Source)
	assert.Equal(t, "Install", res.Set[0].Root.Title)
}

func TestResolver_UnsupportedDocument(t *testing.T) {
	doc := writeDoc(t, "data.csv", "a,b\n")
	_, err := NewResolver(nil).Resolve(doc)
	assert.Error(t, err)
}

func TestResolver_Export(t *testing.T) {
	doc := writeDoc(t, "guide.md", guideMD)
	r := NewResolver(nil)

	out, err := r.Export(doc, false)
	require.NoError(t, err)
	assert.Equal(t, doc+bkm.Ext, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "file: guide.md\ntitle: default view\n\"Install\"\n  \"Linux\"\n  \"macOS\"\n\"Usage\"\n"
	assert.Equal(t, want, string(data))

	// Exported file now wins over the native outline.
	res, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, SourceAlternate, res.Source)

	_, err = r.Export(doc, false)
	assert.True(t, errors.Is(err, ErrExists))

	_, err = r.Export(doc, true)
	assert.NoError(t, err)
}

func TestResolver_ExportEmptyOutline(t *testing.T) {
	doc := writeDoc(t, "flat.md", "no headings here\n")
	_, err := NewResolver(nil).Export(doc, false)
	assert.ErrorIs(t, err, bkm.ErrEmptyDocument)
	_, statErr := os.Stat(doc + bkm.Ext)
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolver_ExportConcurrentNoOverwrite(t *testing.T) {
	doc := writeDoc(t, "guide.md", guideMD)
	r := NewResolver(nil)

	const writers = 8
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Export(doc, false)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrExists)
	}
	assert.Equal(t, 1, ok)
}

func TestResolved_HasEntries(t *testing.T) {
	assert.False(t, (&Resolved{Set: bkm.Set{{SourcePath: "a"}}}).HasEntries())
	assert.True(t, (&Resolved{Set: bkm.Set{{Root: &bkm.Node{Title: "x"}}}}).HasEntries())
}
