package engine

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"golang.org/x/text/unicode/norm"
)

// Engine reads the outline a document carries.
type Engine interface {
	Outline(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions an outline can be read from.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate engine for a filename.
func ForFile(filename string) (Engine, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextEngine{}, nil
	case ".md", ".markdown":
		return &MarkdownEngine{}, nil
	case ".html", ".htm":
		return &HTMLEngine{}, nil
	case ".pdf":
		return &PDFEngine{}, nil
	case ".docx":
		return &DOCXEngine{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// baseTitle strips the directory and extension from filename.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// cleanTitle collapses runs of whitespace, including newlines, to single
// spaces so the title fits on one outline line. Titles are NFC-normalized;
// PDF and DOCX producers often emit decomposed accents.
func cleanTitle(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
