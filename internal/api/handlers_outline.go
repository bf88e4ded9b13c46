package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/engine"
	"github.com/dgallion1/docoutline/internal/outline"
)

// handleOutline returns the outline shown for a document as JSON.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	rel, docPath, ok := s.docPathParam(w, r)
	if !ok {
		return
	}

	res, err := s.resolver.Resolve(docPath)
	if err != nil {
		s.resolveError(w, rel, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"path":   rel,
		"source": res.Source,
		"trees":  outline.ViewsOf(res.Set),
	})
}

// handleBkm returns the outline shown for a document in .bkm form.
func (s *Server) handleBkm(w http.ResponseWriter, r *http.Request) {
	rel, docPath, ok := s.docPathParam(w, r)
	if !ok {
		return
	}

	res, err := s.resolver.Resolve(docPath)
	if err != nil {
		s.resolveError(w, rel, err)
		return
	}

	if !res.HasEntries() {
		jsonError(w, "document has no outline: "+rel, http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Outline-Source", string(res.Source))
	w.Write(bkm.Marshal(res.Set))
}

// handleParseBkm validates a .bkm body and returns it as JSON.
func (s *Server) handleParseBkm(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	var set bkm.Set
	if err := bkm.Parse(data, &set); err != nil {
		body := map[string]any{
			"error": err.Error(),
			"kind":  parseErrorKind(err),
		}
		var perr *bkm.ParseError
		if errors.As(err, &perr) {
			body["line"] = perr.Line
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"trees":     outline.ViewsOf(set),
		"canonical": string(bkm.Marshal(set)),
	})
}

func parseErrorKind(err error) string {
	switch {
	case errors.Is(err, bkm.ErrMalformedIndentation):
		return "malformed_indentation"
	case errors.Is(err, bkm.ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, bkm.ErrMalformedTitle):
		return "malformed_title"
	case errors.Is(err, bkm.ErrEmptyDocument):
		return "empty_document"
	}
	return "unknown"
}

// docPathParam reads the "path" query parameter and resolves it inside the
// documents root. It writes the error response itself when ok is false.
func (s *Server) docPathParam(w http.ResponseWriter, r *http.Request) (rel, abs string, ok bool) {
	rel = r.URL.Query().Get("path")
	if rel == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return "", "", false
	}
	abs, err := s.resolveDocPath(rel)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return rel, abs, true
}

// resolveDocPath maps a client path onto the documents root, rejecting
// anything that would escape it.
func (s *Server) resolveDocPath(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if !filepath.IsLocal(clean) {
		return "", fmt.Errorf("invalid document path: %s", rel)
	}
	if !engine.IsSupportedExtension(clean) {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(clean))
	}
	return filepath.Join(s.cfg.DocsRoot, clean), nil
}

func (s *Server) resolveError(w http.ResponseWriter, rel string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "document not found: "+rel, http.StatusNotFound)
		return
	}
	s.log.Error("resolve outline failed", "path", rel, "error", err)
	jsonError(w, "failed to read outline: "+err.Error(), http.StatusUnprocessableEntity)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
