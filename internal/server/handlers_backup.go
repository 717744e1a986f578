package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/meltforce/liftlog/internal/backup"
)

// maxImportSize caps backup uploads; state documents are small.
const maxImportSize = 16 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.manager.ExportData()
	if err != nil {
		s.log.Error("export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	if err := s.manager.ImportData(data); err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, backup.ErrInvalidBackup) {
			s.log.Warn("import rejected", "error", err)
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.manager.State())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.manager.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}
