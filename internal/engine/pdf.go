package engine

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFEngine reads the bookmark outline stored in a PDF.
type PDFEngine struct{}

func (e *PDFEngine) Outline(r io.Reader, filename string) (tree *doctree.DocTree, err error) {
	// ledongthuc/pdf requires a ReaderAt+size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			tree, err = nil, fmt.Errorf("parse pdf: %v", p)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	tree = &doctree.DocTree{
		Title: baseTitle(filename),
		Path:  filename,
	}
	if title := cleanTitle(reader.Trailer().Key("Info").Key("Title").Text()); title != "" {
		tree.Title = title
	}

	// The library's outline carries titles only; pages stay unknown.
	tree.Children = convertPDFOutline(reader.Outline().Child, 1)
	return tree, nil
}

func convertPDFOutline(items []pdflib.Outline, level int) []*doctree.DocNode {
	var nodes []*doctree.DocNode
	for _, item := range items {
		nodes = append(nodes, &doctree.DocNode{
			Title:    cleanTitle(item.Title),
			Level:    level,
			Children: convertPDFOutline(item.Child, level+1),
		})
	}
	return nodes
}
