package engine

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// TextEngine builds an outline from section-numbered lines such as
// "2 Scope", "2.1. Terms" or "2.1.3 Units". The number of components sets
// the level.
type TextEngine struct{}

var sectionLine = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)

func (e *TextEngine) Outline(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := doctree.NewBuilder()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := sectionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := strings.Count(m[1], ".") + 1
		b.Add(cleanTitle(m[1]+" "+m[2]), level, 0)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &doctree.DocTree{
		Title:    baseTitle(filename),
		Path:     filename,
		Children: b.Nodes(),
	}, nil
}
