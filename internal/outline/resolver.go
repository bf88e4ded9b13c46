package outline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/engine"
)

// Source says where a resolved outline came from.
type Source string

const (
	SourceAlternate Source = "alternate" // <document>.bkm
	SourceNative    Source = "native"    // the document's own outline
)

// ErrExists is returned by Export when the .bkm file is already present and
// overwriting was not requested.
var ErrExists = errors.New("alternate outline already exists")

// Resolved is the outline shown for a document.
type Resolved struct {
	Source Source
	Set    bkm.Set
}

// HasEntries reports whether any tree in the outline has a node. An outline
// without entries cannot be written as a loadable .bkm file.
func (r *Resolved) HasEntries() bool {
	for _, t := range r.Set {
		if t.Root != nil {
			return true
		}
	}
	return false
}

// Resolver picks the outline for a document.
type Resolver struct {
	log *slog.Logger
}

// NewResolver creates a Resolver. log may be nil.
func NewResolver(log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{log: log}
}

// Resolve returns the alternate outline stored next to the document when it
// loads, and the document's own outline otherwise.
func (r *Resolver) Resolve(docPath string) (*Resolved, error) {
	set, err := bkm.LoadAlternate(docPath)
	if err == nil {
		return &Resolved{Source: SourceAlternate, Set: set}, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Debug("no alternate outline", "path", docPath)
	} else {
		r.log.Warn("ignoring invalid alternate outline", "path", docPath, "error", err)
	}

	tree, err := r.Native(docPath)
	if err != nil {
		return nil, err
	}
	return &Resolved{Source: SourceNative, Set: bkm.Set{tree}}, nil
}

// Native reads the document's own outline.
func (r *Resolver) Native(docPath string) (*bkm.Tree, error) {
	e, err := engine.ForFile(docPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(docPath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	dt, err := e.Outline(f, docPath)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	r.log.Debug("read native outline", "path", docPath, "entries", dt.Len())
	tree := FromDocTree(dt)
	// A .bkm file sits next to its document, so it names it by base name.
	tree.SourcePath = filepath.Base(docPath)
	return tree, nil
}

// Export writes the document's own outline to <docPath>.bkm and returns the
// path written. Documents without an outline are not exported.
func (r *Resolver) Export(docPath string, overwrite bool) (string, error) {
	out := docPath + bkm.Ext
	if !overwrite {
		if _, err := os.Stat(out); err == nil {
			return "", fmt.Errorf("%s: %w", out, ErrExists)
		}
	}

	tree, err := r.Native(docPath)
	if err != nil {
		return "", err
	}
	if tree.Root == nil {
		return "", fmt.Errorf("%s: %w", docPath, bkm.ErrEmptyDocument)
	}

	write := bkm.ExportNew
	if overwrite {
		write = bkm.Export
	}
	if err := write(bkm.Set{tree}, out); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Created by another writer since the check above.
			return "", fmt.Errorf("%s: %w", out, ErrExists)
		}
		return "", fmt.Errorf("export outline: %w", err)
	}
	r.log.Info("exported outline", "path", out, "nodes", tree.Count())
	return out, nil
}
