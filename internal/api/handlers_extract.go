package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/coursekit/syllex/internal/acquire"
)

// handleExtract accepts one document as multipart form data (field
// "file") and responds with the configured sections mapped to their
// extracted text, or null for sections whose heading never matched.
// Extraction runs synchronously within the request.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "No file provided.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if header.Filename == "" {
		jsonError(w, "No file selected.", http.StatusBadRequest)
		return
	}
	if !acquire.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Read the payload up front so size violations surface before any
	// temp files or OCR work exist.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		jsonError(w, "empty document", http.StatusBadRequest)
		return
	}

	result, err := s.extractor.Extract(r.Context(), bytes.NewReader(data), filename)
	if err != nil {
		s.writeExtractError(w, filename, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) writeExtractError(w http.ResponseWriter, filename string, err error) {
	var inputErr *acquire.InputError
	if errors.As(err, &inputErr) {
		jsonError(w, inputErr.Reason, http.StatusBadRequest)
		return
	}

	s.log.Error().
		Err(err).
		Str("filename", filename).
		Msg("extraction failed")

	var acqErr *acquire.AcquisitionError
	if errors.As(err, &acqErr) {
		jsonError(w, acqErr.Error(), http.StatusInternalServerError)
		return
	}
	jsonError(w, "extraction failed: "+err.Error(), http.StatusInternalServerError)
}

// handleSections reports the static section configuration.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"sections": s.extractor.Specs(),
	})
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
