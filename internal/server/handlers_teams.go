// internal/server/handlers_teams.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/store"
)

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		s.writeError(w, "list_teams", commonerrors.NewInternalError("loading teams", err))
		return
	}
	s.writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string   `json:"name"`
		MemberIDs []string `json:"memberIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		s.writeError(w, "create_team", commonerrors.NewInvalidArgumentError("team name is required"))
		return
	}

	team, err := s.teams.Create(r.Context(), payload.Name, payload.MemberIDs)
	if err != nil {
		s.writeError(w, "create_team", commonerrors.NewInternalError("creating team", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, team)
}

func (s *Server) handleRenameTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		s.writeError(w, "rename_team", commonerrors.NewInvalidArgumentError("team name is required"))
		return
	}

	if err := s.teams.Rename(r.Context(), teamID, payload.Name); err != nil {
		s.writeTeamError(w, "rename_team", teamID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")

	if err := s.teams.Delete(r.Context(), teamID); err != nil {
		s.writeTeamError(w, "delete_team", teamID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	userID := r.PathValue("uid")

	if err := s.teams.AddMember(r.Context(), teamID, userID); err != nil {
		s.writeTeamError(w, "add_member", teamID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	userID := r.PathValue("uid")

	if err := s.teams.RemoveMember(r.Context(), teamID, userID); err != nil {
		s.writeTeamError(w, "remove_member", teamID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) writeTeamError(w http.ResponseWriter, operation, teamID string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, operation, commonerrors.NewNotFoundError("team", teamID))
		return
	}
	s.writeError(w, operation, commonerrors.NewInternalError(operation, err))
}
