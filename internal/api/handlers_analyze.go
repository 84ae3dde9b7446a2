package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleAnalyze accepts a multipart request with one or more document
// files plus persona and job_to_be_done fields, and queues an analysis
// job. The result is retrieved by polling.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBody := s.cfg.MaxUploadBytes*int64(s.cfg.MaxFilesPerRequest) + 10*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	personaText := strings.TrimSpace(r.FormValue("persona"))
	if personaText == "" {
		jsonError(w, "persona is required", http.StatusBadRequest)
		return
	}
	jobText := strings.TrimSpace(r.FormValue("job_to_be_done"))
	if jobText == "" {
		jsonError(w, "job_to_be_done is required", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if len(fileHeaders) > s.cfg.MaxFilesPerRequest {
		jsonError(w, fmt.Sprintf("too many files (max %d)", s.cfg.MaxFilesPerRequest), http.StatusBadRequest)
		return
	}

	files := make([]pipeline.JobFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}

		f, err := fh.Open()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to open %s", filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to read %s", filename), http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		files = append(files, pipeline.JobFile{Name: filename, Data: data})
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:          pipeline.NewJobID(),
		Status:      pipeline.StatusQueued,
		Phase:       "queued",
		Persona:     personaText,
		JobToBeDone: jobText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.SetFiles(files)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     job.ID,
		"status":     job.Status,
		"documents":  len(files),
		"poll_url":   fmt.Sprintf("/api/analyze/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/analyze/%s/result", job.ID),
	})
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
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

func (s *Server) handleAnalyzeResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	result := job.Result()
	if result == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"job_id": snap.ID,
				"status": snap.Status,
				"errors": snap.Progress.Errors,
			})
			return
		}
		jsonError(w, fmt.Sprintf("job not finished (status: %s)", snap.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
