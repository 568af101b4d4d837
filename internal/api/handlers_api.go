package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwaldrop/bomgen/internal/dxf"
	"github.com/mwaldrop/bomgen/internal/mapstore"
	"github.com/mwaldrop/bomgen/internal/metrics"
)

// handleBoM is the machine-facing variant of the upload flow: multipart DXF
// in, survey plus BoM out, no artifacts written.
func (s *Server) handleBoM(w http.ResponseWriter, r *http.Request) {
	_, data, identity, err := s.readDrawingForm(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.UploadBytes.Add(float64(len(data)))

	doc, err := dxf.Load(bytes.NewReader(data))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.pipe.Process(doc, identity)
	if err != nil {
		jsonError(w, err.Error(), statusForMappingError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	table, err := s.store.Load(identity)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			jsonError(w, "mapping not found", http.StatusNotFound)
		case errors.Is(err, mapstore.ErrBadIdentity):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

// handlePutMapping replaces a mapping table wholesale. Edits are
// last-writer-wins; there is no merge.
func (s *Server) handlePutMapping(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")

	var table mapstore.Table
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&table); err != nil {
		jsonError(w, "invalid mapping body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Save(identity, &table); err != nil {
		status := http.StatusInternalServerError
		var loadErr *mapstore.LoadError
		if errors.As(err, &loadErr) || errors.Is(err, mapstore.ErrBadIdentity) {
			status = http.StatusBadRequest
		}
		jsonError(w, err.Error(), status)
		return
	}

	s.log.Info("mapping replaced", "mapping", identity,
		"layers", len(table.Layers), "blocks", len(table.Blocks))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "mapping": identity})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.pipe.StatsSnapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
