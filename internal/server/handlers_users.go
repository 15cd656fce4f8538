// internal/server/handlers_users.go
package server

import (
	"encoding/json"
	"net/http"

	"review-engine/internal/auth"
	commonerrors "review-engine/internal/common/errors"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, "list_users", commonerrors.NewInternalError("loading users", err))
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var payload struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "set_role", commonerrors.NewInvalidArgumentError("malformed role update"))
		return
	}
	switch payload.Role {
	case "none", "reader", "admin":
	default:
		s.writeError(w, "set_role", commonerrors.NewInvalidArgumentError("role must be none, reader or admin"))
		return
	}

	if err := s.users.SetRole(r.Context(), userID, payload.Role); err != nil {
		s.writeError(w, "set_role", commonerrors.NewInternalError("setting role", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"role": payload.Role})
}

// handleMyRole tells any authenticated caller their own role, including
// "none". The frontend uses it to pick which surface to show.
func (s *Server) handleMyRole(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"role": identity.Role.String()})
}
