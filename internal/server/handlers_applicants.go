// internal/server/handlers_applicants.go
package server

import (
	"io"
	"net/http"

	commonerrors "review-engine/internal/common/errors"
)

// maxImportBytes caps the upload at 32 MiB. Imports are spreadsheet-sized.
const maxImportBytes = 32 << 20

func (s *Server) handleImportApplicants(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, "import_applicants", commonerrors.NewInvalidArgumentError("unreadable request body"))
		return
	}

	count, err := s.importer.Import(r.Context(), payload)
	if err != nil {
		s.writeError(w, "import_applicants", err)
		return
	}
	s.progressCache.Invalidate(r.Context())

	s.writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (s *Server) handleClearApplicants(w http.ResponseWriter, r *http.Request) {
	if err := s.importer.Clear(r.Context()); err != nil {
		s.writeError(w, "clear_applicants", err)
		return
	}
	s.progressCache.Invalidate(r.Context())

	s.writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (s *Server) handleAliasExport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.importer.AliasExport(r.Context())
	if err != nil {
		s.writeError(w, "alias_export", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}
