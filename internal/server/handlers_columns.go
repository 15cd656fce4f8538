// internal/server/handlers_columns.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := s.columns.List(r.Context())
	if err != nil {
		s.writeError(w, "list_columns", commonerrors.NewInternalError("loading columns", err))
		return
	}
	s.writeJSON(w, http.StatusOK, columns)
}

// handleReplaceColumns installs a new import schema. Positions follow payload
// order; ids are assigned server-side so existing applicant responses keyed on
// old column ids are effectively orphaned, which is why this runs before
// import, not after.
func (s *Server) handleReplaceColumns(w http.ResponseWriter, r *http.Request) {
	var payload []struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
		Hidden      bool   `json:"hidden"`
		IsName      bool   `json:"isName"`
		IsEmail     bool   `json:"isEmail"`
		IsResume    bool   `json:"isResume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "replace_columns", commonerrors.NewInvalidArgumentError("body must be a JSON array of columns"))
		return
	}

	columns := make([]models.Column, 0, len(payload))
	for i, col := range payload {
		if col.Name == "" {
			s.writeError(w, "replace_columns", commonerrors.NewInvalidArgumentError("column name must not be empty"))
			return
		}
		columns = append(columns, models.Column{
			ID:          uuid.NewString(),
			Name:        col.Name,
			DisplayName: col.DisplayName,
			Hidden:      col.Hidden,
			IsName:      col.IsName,
			IsEmail:     col.IsEmail,
			IsResume:    col.IsResume,
			Index:       i,
		})
	}

	if err := s.columns.Replace(r.Context(), columns); err != nil {
		s.writeError(w, "replace_columns", commonerrors.NewInternalError("replacing columns", err))
		return
	}
	s.writeJSON(w, http.StatusOK, columns)
}

func (s *Server) handleUpdateColumn(w http.ResponseWriter, r *http.Request) {
	columnID := r.PathValue("id")

	var payload struct {
		DisplayName *string `json:"displayName"`
		Flag        *string `json:"flag"`
		Value       *bool   `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "update_column", commonerrors.NewInvalidArgumentError("malformed column update"))
		return
	}

	if payload.DisplayName != nil {
		if err := s.columns.SetDisplayName(r.Context(), columnID, *payload.DisplayName); err != nil {
			s.writeColumnError(w, columnID, err)
			return
		}
	}

	if payload.Flag != nil {
		flag := store.ColumnFlag(*payload.Flag)
		switch flag {
		case store.FlagHidden, store.FlagIsName, store.FlagIsEmail, store.FlagIsResume:
		default:
			s.writeError(w, "update_column", commonerrors.NewInvalidArgumentError("unknown column flag"))
			return
		}
		value := true
		if payload.Value != nil {
			value = *payload.Value
		}
		if err := s.columns.SetFlag(r.Context(), columnID, flag, value); err != nil {
			s.writeColumnError(w, columnID, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) writeColumnError(w http.ResponseWriter, columnID string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, "update_column", commonerrors.NewNotFoundError("column", columnID))
		return
	}
	s.writeError(w, "update_column", commonerrors.NewInternalError("updating column", err))
}
