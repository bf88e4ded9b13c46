package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type exportRequest struct {
	Path      string   `json:"path"`
	Paths     []string `json:"paths"`
	Overwrite *bool    `json:"overwrite"`
}

func (s *Server) decodeExportRequest(w http.ResponseWriter, r *http.Request) (exportRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) overwrite(req exportRequest) bool {
	if req.Overwrite != nil {
		return *req.Overwrite
	}
	return s.cfg.ExportOverwrite
}

// handleExport writes <document>.bkm from the document's own outline.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExportRequest(w, r)
	if !ok {
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}
	docPath, err := s.resolveDocPath(req.Path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.resolver.Export(docPath, s.overwrite(req))
	switch {
	case err == nil:
	case errors.Is(err, outline.ErrExists):
		jsonError(w, "alternate outline already exists for "+req.Path, http.StatusConflict)
		return
	case errors.Is(err, fs.ErrNotExist):
		jsonError(w, "document not found: "+req.Path, http.StatusNotFound)
		return
	case errors.Is(err, bkm.ErrEmptyDocument):
		jsonError(w, "document has no outline: "+req.Path, http.StatusUnprocessableEntity)
		return
	default:
		s.log.Error("export failed", "path", req.Path, "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rel, err := filepath.Rel(s.cfg.DocsRoot, out)
	if err != nil {
		rel = filepath.Base(out)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"path":   req.Path,
		"output": filepath.ToSlash(rel),
	})
}

// handleBatchExport queues a job that exports outlines for several documents.
func (s *Server) handleBatchExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExportRequest(w, r)
	if !ok {
		return
	}
	if len(req.Paths) == 0 {
		jsonError(w, "at least one path is required", http.StatusBadRequest)
		return
	}

	paths := make([]string, 0, len(req.Paths))
	var rejected []map[string]any
	for _, p := range req.Paths {
		docPath, err := s.resolveDocPath(p)
		if err != nil {
			rejected = append(rejected, map[string]any{
				"path":  p,
				"error": err.Error(),
			})
			continue
		}
		paths = append(paths, docPath)
	}
	if len(paths) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":    "no exportable paths",
			"rejected": rejected,
		})
		return
	}

	job := pipeline.NewJob(paths, s.overwrite(req))
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"total":    len(paths),
		"rejected": rejected,
		"poll_url": fmt.Sprintf("/api/export/%s/status", job.ID),
	})
}

func (s *Server) handleExportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}
