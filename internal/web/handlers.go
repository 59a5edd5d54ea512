package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/engine"
	"github.com/docuform/contact-extractor/internal/extractor"
)

// uploadField is the multipart form field carrying the document
const uploadField = "document"

// handleExtractUpload accepts a multipart PDF upload and returns the
// extraction record.
func (s *Server) handleExtractUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxFileSize); err != nil {
		writeJSON(w, http.StatusBadRequest, extractor.ErrorRecord(fmt.Errorf("invalid multipart request: %v", err)))
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			extractor.ErrorRecord(fmt.Errorf("missing %q form field", uploadField)))
		return
	}
	defer file.Close()

	if header.Size > s.config.MaxFileSize {
		writeJSON(w, http.StatusRequestEntityTooLarge,
			extractor.ErrorRecord(fmt.Errorf("file too large: %d bytes (max: %d bytes)", header.Size, s.config.MaxFileSize)))
		return
	}

	// Spool the upload so the PDF reader can open it by path.
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, extractor.ErrorRecord(fmt.Errorf("failed to store upload")))
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeJSON(w, http.StatusInternalServerError, extractor.ErrorRecord(fmt.Errorf("failed to store upload")))
		return
	}
	if err := tmp.Close(); err != nil {
		writeJSON(w, http.StatusInternalServerError, extractor.ErrorRecord(fmt.Errorf("failed to store upload")))
		return
	}

	record, err := s.service.ExtractFile(extractor.ExtractFileRequest{Path: tmp.Name()})
	if err != nil {
		writeJSON(w, statusForError(err), extractor.ErrorRecord(err))
		return
	}

	// The record carries the spool file's name; report the upload's.
	record.Metadata.FileName = header.Filename

	s.writer.Add(header.Filename, record)
	s.logger.WithRequestID(getRequestID(r.Context())).Info("document extracted",
		zap.String("file_name", header.Filename),
		zap.String("status", record.Status))

	writeJSON(w, http.StatusOK, record)
}

// handleExtractPath extracts from a server-local file path. Intended for
// trusted deployments where the caller and server share a filesystem.
func (s *Server) handleExtractPath(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, extractor.ErrorRecord(fmt.Errorf("invalid json body: %v", err)))
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, extractor.ErrorRecord(fmt.Errorf("path is required")))
		return
	}

	if _, err := os.Stat(req.Path); err != nil {
		writeJSON(w, http.StatusNotFound,
			extractor.ErrorRecord(fmt.Errorf("file does not exist: %s", req.Path)))
		return
	}

	record, err := s.service.ExtractFile(extractor.ExtractFileRequest{Path: req.Path})
	if err != nil {
		writeJSON(w, statusForError(err), extractor.ErrorRecord(err))
		return
	}

	s.writer.Add(filepath.Base(req.Path), record)
	s.logger.WithRequestID(getRequestID(r.Context())).Info("document extracted",
		zap.String("path", req.Path),
		zap.String("status", record.Status))

	writeJSON(w, http.StatusOK, record)
}

// handleExtractText extracts from raw text in the request body
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, extractor.ErrorRecord(fmt.Errorf("invalid json body: %v", err)))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, extractor.ErrorRecord(fmt.Errorf("text is required")))
		return
	}

	record, err := s.service.ExtractText(extractor.ExtractTextRequest{Text: req.Text})
	if err != nil {
		writeJSON(w, statusForError(err), extractor.ErrorRecord(err))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleExport serves the contact sheet of every document processed by
// this server instance.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.writer.WriteXLSX()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, extractor.ErrorRecord(fmt.Errorf("failed to build contact sheet")))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusForError maps extraction failures to HTTP status codes. Upstream
// document problems are unprocessable content; anything else is internal.
func statusForError(err error) int {
	var upstream *extractor.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, engine.ErrEmptyDocument) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
