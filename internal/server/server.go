// internal/server/server.go

// Package server exposes the review engine over HTTP. Every /api route sits
// behind the role gate; roles come from the user directory per request, never
// from token claims.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"review-engine/internal/auth"
	"review-engine/internal/cache"
	"review-engine/internal/common/config"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/observability"
	"review-engine/internal/engine"
	"review-engine/internal/notify"
	"review-engine/internal/store"
)

// Deps carries everything the server needs. ProgressCache and Notifier may be
// nil; both degrade to no-ops.
type Deps struct {
	Config *config.Config
	Logger logger.Logger
	Tokens *auth.TokenService

	Users   store.UserStore
	Teams   store.TeamStore
	Columns store.ColumnStore
	Reviews store.ReviewStore

	Generator      *engine.Generator
	Aggregator     *engine.Aggregator
	Recorder       *engine.Recorder
	Packager       *engine.Packager
	Importer       *engine.Importer
	GenerationLock store.GenerationLock

	ProgressCache *cache.ProgressCache
	Notifier      *notify.AssignmentNotifier
	Observability *observability.Observability
}

type Server struct {
	config *config.Config
	logger logger.Logger
	tokens *auth.TokenService

	users   store.UserStore
	teams   store.TeamStore
	columns store.ColumnStore
	reviews store.ReviewStore

	generator      *engine.Generator
	aggregator     *engine.Aggregator
	recorder       *engine.Recorder
	packager       *engine.Packager
	importer       *engine.Importer
	generationLock store.GenerationLock

	progressCache *cache.ProgressCache
	notifier      *notify.AssignmentNotifier
	obs           *observability.Observability

	mux  *http.ServeMux
	http *http.Server
}

func New(deps Deps) *Server {
	s := &Server{
		config:         deps.Config,
		logger:         deps.Logger.WithFields(map[string]interface{}{"component": "http"}),
		tokens:         deps.Tokens,
		users:          deps.Users,
		teams:          deps.Teams,
		columns:        deps.Columns,
		reviews:        deps.Reviews,
		generator:      deps.Generator,
		aggregator:     deps.Aggregator,
		recorder:       deps.Recorder,
		packager:       deps.Packager,
		importer:       deps.Importer,
		generationLock: deps.GenerationLock,
		progressCache:  deps.ProgressCache,
		notifier:       deps.Notifier,
		obs:            deps.Observability,
		mux:            http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	admin := func(op string, h http.HandlerFunc) http.HandlerFunc {
		return s.instrument(op, s.requireRole(auth.RoleAdmin, h))
	}
	reader := func(op string, h http.HandlerFunc) http.HandlerFunc {
		return s.instrument(op, s.requireRole(auth.RoleReader, h))
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/assignments/generate", admin("generate_assignments", s.handleGenerateAssignments))
	s.mux.HandleFunc("GET /api/assignments/exists", admin("has_assignments", s.handleHasAssignments))
	s.mux.HandleFunc("GET /api/progress", admin("get_progress", s.handleGetProgress))

	s.mux.HandleFunc("GET /api/reviews/mine", reader("my_reviews", s.handleMyReviews))
	s.mux.HandleFunc("GET /api/reviews/{id}", reader("get_review", s.handleGetReview))
	s.mux.HandleFunc("POST /api/reviews/{id}/complete", reader("complete_review", s.handleCompleteReview))

	s.mux.HandleFunc("POST /api/applicants/import", admin("import_applicants", s.handleImportApplicants))
	s.mux.HandleFunc("DELETE /api/applicants", admin("clear_applicants", s.handleClearApplicants))
	s.mux.HandleFunc("GET /api/applicants/aliases", admin("alias_export", s.handleAliasExport))

	s.mux.HandleFunc("GET /api/columns", admin("list_columns", s.handleListColumns))
	s.mux.HandleFunc("PUT /api/columns", admin("replace_columns", s.handleReplaceColumns))
	s.mux.HandleFunc("PATCH /api/columns/{id}", admin("update_column", s.handleUpdateColumn))

	s.mux.HandleFunc("GET /api/teams", admin("list_teams", s.handleListTeams))
	s.mux.HandleFunc("POST /api/teams", admin("create_team", s.handleCreateTeam))
	s.mux.HandleFunc("PATCH /api/teams/{id}", admin("rename_team", s.handleRenameTeam))
	s.mux.HandleFunc("DELETE /api/teams/{id}", admin("delete_team", s.handleDeleteTeam))
	s.mux.HandleFunc("POST /api/teams/{id}/members/{uid}", admin("add_member", s.handleAddMember))
	s.mux.HandleFunc("DELETE /api/teams/{id}/members/{uid}", admin("remove_member", s.handleRemoveMember))

	s.mux.HandleFunc("GET /api/users", admin("list_users", s.handleListUsers))
	s.mux.HandleFunc("PUT /api/users/{id}/role", admin("set_role", s.handleSetRole))
	s.mux.HandleFunc("GET /api/users/me/role", s.instrument("my_role", s.authenticate(s.handleMyRole)))
}

// Handler returns the route table; tests drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.mux,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Millisecond,
	}
	s.logger.Info("http server listening", map[string]interface{}{"port": s.config.Server.Port})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
