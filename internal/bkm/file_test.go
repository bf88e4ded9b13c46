package bkm

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportBkm = `file: report.pdf
title: default view
"Chapter 1" font:bold page:3
  "Section 1.1" page:4
"Chapter 2" open-default page:10
`

func TestParse_Example(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte(reportBkm), &set))
	require.Len(t, set, 1)

	tree := set[0]
	assert.Equal(t, "report.pdf", tree.SourcePath)
	assert.Equal(t, "default view", tree.Name)

	ch1 := tree.Root
	require.NotNil(t, ch1)
	assert.Equal(t, "Chapter 1", ch1.Title)
	assert.True(t, ch1.Style.Has(StyleBold))
	assert.False(t, ch1.Style.Has(StyleItalic))
	assert.Equal(t, 3, ch1.PageNo)

	sec := ch1.Child
	require.NotNil(t, sec)
	assert.Equal(t, "Section 1.1", sec.Title)
	assert.Equal(t, 4, sec.PageNo)
	assert.Nil(t, sec.Next)
	assert.Nil(t, sec.Child)

	ch2 := ch1.Next
	require.NotNil(t, ch2)
	assert.Equal(t, "Chapter 2", ch2.Title)
	assert.True(t, ch2.IsOpenDefault)
	assert.Equal(t, 10, ch2.PageNo)
	assert.Nil(t, ch2.Next)
	assert.Nil(t, ch2.Child)
}

func TestParse_StopsAtBlankLine(t *testing.T) {
	src := "file: a.pdf\ntitle: t\n\"one\"\n\n\"ignored\"\n"
	var set Set
	require.NoError(t, Parse([]byte(src), &set))
	require.Len(t, set, 1)
	assert.Equal(t, 1, set[0].Count())
}

func TestParse_CRLF(t *testing.T) {
	src := strings.ReplaceAll(reportBkm, "\n", "\r\n")
	var set Set
	require.NoError(t, Parse([]byte(src), &set))
	assert.Equal(t, "report.pdf", set[0].SourcePath)
	assert.Equal(t, 3, set[0].Count())
}

func TestParse_NoTrailingNewline(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte("file: a\ntitle: b\n\"x\""), &set))
	assert.Equal(t, "x", set[0].Root.Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{"empty input", "", ErrMissingHeader, 1},
		{"no file header", "title: x\n\"a\"\n", ErrMissingHeader, 1},
		{"empty file header", "file:   \ntitle: x\n\"a\"\n", ErrMissingHeader, 1},
		{"no title header", "file: a.pdf\n\"a\"\n", ErrMissingHeader, 2},
		{"missing title line", "file: a.pdf", ErrMissingHeader, 1},
		{"empty title", "file: a.pdf\ntitle:\n\"a\"\n", ErrMissingHeader, 2},
		{"no nodes", "file: a.pdf\ntitle: x\n", ErrEmptyDocument, 2},
		{"blank before nodes", "file: a.pdf\ntitle: x\n\n\"a\"\n", ErrEmptyDocument, 3},
		{"odd indent", "file: a.pdf\ntitle: x\n\"a\"\n   \"b\"\n", ErrMalformedIndentation, 4},
		{"bad title", "file: a.pdf\ntitle: x\n\"a\"\nb page:3\n", ErrMalformedTitle, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set Set
			err := Parse([]byte(tt.src), &set)
			require.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
			assert.Empty(t, set)
		})
	}
}

func TestParse_FailureKeepsExistingSet(t *testing.T) {
	existing := &Tree{Name: "kept", Root: &Node{Title: "k"}}
	set := Set{existing}

	// Valid through three node lines, malformed on the fourth.
	src := reportBkm + " \"bad\"\n"
	err := Parse([]byte(src), &set)
	require.ErrorIs(t, err, ErrMalformedIndentation)
	require.Len(t, set, 1)
	assert.Same(t, existing, set[0])
	assert.Equal(t, 1, set[0].Count())
}

func TestParseTree_NoPartialTree(t *testing.T) {
	tree, err := parseTree("file: a\ntitle: b\n\"1\"\n  \"2\"\n    \"3\"\n\"4\" page:1\n     \"5\"\n")
	require.Error(t, err)
	assert.Nil(t, tree)
}

func TestMarshal_Canonical(t *testing.T) {
	tree := &Tree{
		Name:       "ignored on output",
		SourcePath: `C:\docs\manual.pdf`,
		Root: &Node{
			Title:         `He said "hi" \o/`,
			Style:         StyleBold | StyleItalic,
			Color:         &Color{R: 0x12, G: 0x34, B: 0x56},
			PageNo:        2,
			IsOpenDefault: true,
			IsUnchecked:   true,
			Dest: &Destination{
				Kind:   "scrollto",
				Name:   `named "dest"`,
				Value:  "v",
				PageNo: 2,
				Rect:   Rect{X: 1, Y: 2, Dx: 3.5, Dy: 4},
			},
			Child: &Node{Title: "child", IsOpenToggled: true},
			Next:  &Node{Title: "next"},
		},
	}

	want := `file: C:\docs\manual.pdf
title: default view
"He said \"hi\" \\o/" font:italic font:bold #123456 page:2 open-default open-toggled unchecked destkind:scrollto destname:"named \"dest\"" destvalue:"v" destpage:2 destrect:1.000000,2.000000,3.500000,4.000000
  "child"
"next"
`
	assert.Equal(t, want, string(Marshal(Set{tree})))
}

func TestMarshal_MultipleTrees(t *testing.T) {
	set := Set{
		{SourcePath: "a.pdf", Root: &Node{Title: "a"}},
		{SourcePath: "b.pdf", Root: &Node{Title: "b"}},
	}
	want := "file: a.pdf\ntitle: default view\n\"a\"\nfile: b.pdf\ntitle: default view\n\"b\"\n"
	assert.Equal(t, want, string(Marshal(set)))
}

func TestMarshal_EmptyTree(t *testing.T) {
	got := Marshal(Set{{SourcePath: "a.pdf"}})
	assert.Equal(t, "file: a.pdf\ntitle: default view\n", string(got))
}

func TestRoundTrip_FixedPoint(t *testing.T) {
	inputs := []string{
		reportBkm,
		`file: x.pdf
title: anything
"A \"quoted\" \\ title" font:italic #abc OPEN-TOGGLED
  "B" unchecked page:2 unknown:token
    "C" font:bold font:italic
      "D"
  "E" Open-Default
"F"
  "G"
`,
		"file: a.pdf\ntitle: t\n\"a\" page:0\n",
		"file: a.pdf\ntitle: t\n\"a\" page:xyz\n  \"b\" page:-3\n\"c\" page:\n",
	}
	for _, in := range inputs {
		var first Set
		require.NoError(t, Parse([]byte(in), &first))
		once := Marshal(first)

		var second Set
		require.NoError(t, Parse(once, &second), "reparse:\n%s", once)
		twice := Marshal(second)
		assert.Equal(t, string(once), string(twice))
	}
}

func TestRoundTrip_DepthInvariant(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte("file: a\ntitle: b\n\"1\"\n  \"2\"\n    \"3\"\n  \"4\"\n\"5\"\n  \"6\"\n"), &set))

	depths := map[*Node]int{}
	set[0].Walk(func(n *Node, depth int) bool {
		depths[n] = depth
		return true
	})
	for n, d := range depths {
		if n.Child != nil {
			assert.Equal(t, d+1, depths[n.Child], "child of %q", n.Title)
		}
		if n.Next != nil {
			assert.Equal(t, d, depths[n.Next], "sibling of %q", n.Title)
		}
	}
}

func TestEncoder(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte(reportBkm), &set))

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(set))
	assert.Equal(t, string(Marshal(set)), buf.String())
}

func TestLoadAlternate(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(doc+Ext, []byte(reportBkm), 0o644))

	set, err := LoadAlternate(doc)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, "Chapter 1", set[0].Root.Title)
}

func TestLoadAlternate_Missing(t *testing.T) {
	set, err := LoadAlternate(filepath.Join(t.TempDir(), "none.pdf"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, set)
}

func TestLoadAlternate_Invalid(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(doc+Ext, []byte("file: bad.pdf\ntitle: x\n \"odd\"\n"), 0o644))

	set, err := LoadAlternate(doc)
	assert.ErrorIs(t, err, ErrMalformedIndentation)
	assert.Contains(t, err.Error(), "bad.pdf.bkm")
	assert.Nil(t, set)
}

func TestExport(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte(reportBkm), &set))

	path := filepath.Join(t.TempDir(), "out.bkm")
	require.NoError(t, Export(set, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(Marshal(set)), string(data))

	var reread Set
	require.NoError(t, ParseFile(path, &reread))
	assert.Equal(t, set[0].Count(), reread[0].Count())
}

func TestExport_FailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.bkm")
	err := Export(Set{{SourcePath: "a", Root: &Node{Title: "a"}}}, path)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestMarshal_DestinationWithoutPage(t *testing.T) {
	var set Set
	require.NoError(t, Parse([]byte("file: a.pdf\ntitle: t\n\"a\" page:xyz\n"), &set))
	require.NotNil(t, set[0].Root.Dest)

	want := "file: a.pdf\ntitle: default view\n\"a\" page:0 destkind:scrollto destpage:1\n"
	assert.Equal(t, want, string(Marshal(set)))

	var reread Set
	require.NoError(t, Parse(Marshal(set), &reread))
	assert.Equal(t, set[0].Root.Dest, reread[0].Root.Dest)
	assert.Equal(t, 0, reread[0].Root.PageNo)
}

func TestExportNew_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bkm")
	first := Set{{SourcePath: "a", Root: &Node{Title: "first"}}}
	second := Set{{SourcePath: "a", Root: &Node{Title: "second"}}}

	require.NoError(t, ExportNew(first, path))
	err := ExportNew(second, path)
	assert.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(Marshal(first)), string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}
