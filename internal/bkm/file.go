package bkm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the extension of an alternate-bookmarks file. The file for
// "report.pdf" is "report.pdf.bkm".
const Ext = ".bkm"

type parseState int

const (
	stateFileHeader parseState = iota
	stateTitleHeader
	stateNodes
	stateDone
)

// decoder walks the input one line at a time.
type decoder struct {
	src    string
	lineNo int
}

// nextLine returns the next line without its terminator. ok is false once
// the input is exhausted.
func (d *decoder) nextLine() (line string, ok bool) {
	if d.src == "" {
		return "", false
	}
	line, d.src, _ = strings.Cut(d.src, "\n")
	d.lineNo++
	return strings.TrimSuffix(line, "\r"), true
}

func (d *decoder) errorf(err error) error {
	return &ParseError{Line: max(d.lineNo, 1), Err: err}
}

// Parse parses a .bkm document and appends the tree it describes to set.
// On error set is left untouched and nothing parsed so far is kept.
func Parse(data []byte, set *Set) error {
	t, err := parseTree(string(data))
	if err != nil {
		return err
	}
	*set = append(*set, t)
	return nil
}

func parseTree(src string) (*Tree, error) {
	d := &decoder{src: src}
	t := &Tree{}
	var entries []entry

	state := stateFileHeader
	for state != stateDone {
		line, ok := d.nextLine()
		switch state {
		case stateFileHeader:
			file, found := parseKV(line, "file")
			if !ok || !found {
				return nil, d.errorf(fmt.Errorf("%w: file", ErrMissingHeader))
			}
			t.SourcePath = file
			state = stateTitleHeader

		case stateTitleHeader:
			title, found := parseKV(line, "title")
			if !ok || !found {
				return nil, d.errorf(fmt.Errorf("%w: title", ErrMissingHeader))
			}
			t.Name = title
			state = stateNodes

		case stateNodes:
			if !ok || line == "" {
				state = stateDone
				continue
			}
			n, depth, err := parseLine(line)
			if err != nil {
				// Nodes parsed so far are dropped along with entries.
				return nil, d.errorf(err)
			}
			entries = append(entries, entry{node: n, depth: depth})
		}
	}

	root, err := buildTree(entries)
	if err != nil {
		return nil, d.errorf(err)
	}
	t.Root = root
	return t, nil
}

// ParseFile reads the .bkm file at path and appends its tree to set.
func ParseFile(path string, set *Set) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bookmarks: %w", err)
	}
	if err := Parse(data, set); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAlternate loads the alternate outline stored next to the document at
// docPath. A missing or invalid file is reported as an error; callers fall
// back to the document's own outline.
func LoadAlternate(docPath string) (Set, error) {
	var set Set
	if err := ParseFile(docPath+Ext, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// Export writes set to path. The file is replaced atomically, so a failed
// write leaves any previous file in place.
func Export(set Set, path string) error {
	return writeFileAtomic(path, Marshal(set), false)
}

// ExportNew is Export for a path that must not exist yet. If another writer
// got there first the error wraps fs.ErrExist and that file is kept.
func ExportNew(set Set, path string) error {
	return writeFileAtomic(path, Marshal(set), true)
}

// writeFileAtomic writes data to a temp file in the target directory and
// publishes it with a rename, or with a hard link when noClobber is set.
func writeFileAtomic(path string, data []byte, noClobber bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if noClobber {
		err := os.Link(tmpPath, path)
		os.Remove(tmpPath)
		if err != nil {
			return fmt.Errorf("link bookmarks file: %w", err)
		}
		return nil
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename bookmarks file: %w", err)
	}
	return nil
}
