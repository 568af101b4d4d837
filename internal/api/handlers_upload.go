package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mwaldrop/bomgen/internal/bom"
	"github.com/mwaldrop/bomgen/internal/dxf"
	"github.com/mwaldrop/bomgen/internal/export"
	"github.com/mwaldrop/bomgen/internal/mapstore"
	"github.com/mwaldrop/bomgen/internal/metrics"
	"github.com/mwaldrop/bomgen/internal/preview"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, uploadPage{})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	filename, data, identity, err := s.readDrawingForm(w, r)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, uploadPage{Error: err.Error()})
		return
	}
	metrics.UploadBytes.Add(float64(len(data)))

	doc, err := dxf.Load(bytes.NewReader(data))
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, uploadPage{Error: err.Error(), Mapping: identity})
		return
	}

	res, err := s.pipe.Process(doc, identity)
	if err != nil {
		s.renderPage(w, statusForMappingError(err), uploadPage{Error: err.Error(), Mapping: identity})
		return
	}

	// Persist the drawing and its derived artifacts under a short id, the
	// way the upload dir has always been laid out.
	uid := uuid.NewString()[:8]
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.renderPage(w, http.StatusInternalServerError, uploadPage{Error: "upload dir: " + err.Error(), Mapping: identity})
		return
	}
	drawingName := uid + "_" + filename
	previewName := uid + "_preview.png"
	xlsxName := uid + "_BoM.xlsx"

	if err := os.WriteFile(filepath.Join(s.cfg.UploadDir, drawingName), data, 0o644); err != nil {
		s.log.Error("save drawing failed", "file", drawingName, "error", err)
	}
	if err := s.writePreview(doc, previewName); err != nil {
		s.log.Error("preview render failed", "file", previewName, "error", err)
		previewName = ""
	}
	if err := s.writeXLSX(res.Lines, xlsxName); err != nil {
		s.renderPage(w, http.StatusInternalServerError, uploadPage{Error: "spreadsheet export: " + err.Error(), Mapping: identity})
		return
	}

	reportHTML, err := export.RenderHTML(export.BuildMarkdown(res.Survey, res.Lines))
	if err != nil {
		s.renderPage(w, http.StatusInternalServerError, uploadPage{Error: err.Error(), Mapping: identity})
		return
	}

	page := uploadPage{
		Mapping:     identity,
		ReportHTML:  reportHTML,
		DownloadURL: "/download/" + xlsxName,
	}
	if previewName != "" {
		page.PreviewURL = "/uploads/" + previewName
	}
	s.renderPage(w, http.StatusOK, page)
}

func (s *Server) writePreview(doc *dxf.Document, name string) error {
	f, err := os.Create(filepath.Join(s.cfg.UploadDir, name))
	if err != nil {
		return err
	}
	if err := preview.Render(f, doc, s.cfg.PreviewMaxDim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Server) writeXLSX(lines []bom.Line, name string) error {
	f, err := os.Create(filepath.Join(s.cfg.UploadDir, name))
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page uploadPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.ExecuteTemplate(w, "upload.html", page); err != nil {
		s.log.Error("render page failed", "error", err)
	}
}

// readDrawingForm parses a multipart upload, enforces the size cap and the
// .dxf extension, and returns the file plus the chosen mapping identity.
func (s *Server) readDrawingForm(w http.ResponseWriter, r *http.Request) (filename string, data []byte, identity string, err error) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return "", nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, "", fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".dxf") {
		return "", nil, "", fmt.Errorf("unsupported file type %s, upload a DXF file", filepath.Ext(filename))
	}

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, "", fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, "", fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	identity = r.FormValue("mapping")
	if identity == "" {
		identity = "default"
	}
	return filename, data, identity, nil
}

func statusForMappingError(err error) int {
	var loadErr *mapstore.LoadError
	if errors.As(err, &loadErr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, mapstore.ErrBadIdentity) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
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
