package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/mwaldrop/bomgen/internal/export"
)

// handleServeUpload serves previews and stored drawings from the upload dir.
func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	name := sanitizeFilename(chi.URLParam(r, "filename"))
	http.ServeFile(w, r, filepath.Join(s.cfg.UploadDir, name))
}

// handleDownload serves a generated spreadsheet as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := sanitizeFilename(chi.URLParam(r, "filename"))
	w.Header().Set("Content-Type", export.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, filepath.Join(s.cfg.UploadDir, name))
}
