// internal/server/handlers_assignments.go
package server

import (
	"net/http"

	commonerrors "review-engine/internal/common/errors"
)

func (s *Server) handleGenerateAssignments(w http.ResponseWriter, r *http.Request) {
	acquired, err := s.generationLock.TryAcquire(r.Context())
	if err != nil {
		s.writeError(w, "generate_assignments", commonerrors.NewInternalError("acquiring generation lock", err))
		return
	}
	if !acquired {
		s.writeError(w, "generate_assignments", commonerrors.NewFailedPreconditionError(
			"An assignment generation run is already in progress"))
		return
	}
	defer func() {
		if err := s.generationLock.Release(r.Context()); err != nil {
			s.logger.WithError(err).Error("failed to release generation lock", nil)
		}
	}()

	summary, err := s.generator.Generate(r.Context())
	if err != nil {
		s.writeError(w, "generate_assignments", err)
		return
	}
	s.progressCache.Invalidate(r.Context())
	s.notifier.NotifyAssignments(r.Context(), summary.ReviewsByReader)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"teams":      summary.Teams,
		"applicants": summary.Applicants,
		"reviews":    summary.Reviews,
	})
}

func (s *Server) handleHasAssignments(w http.ResponseWriter, r *http.Request) {
	any, err := s.reviews.Any(r.Context())
	if err != nil {
		s.writeError(w, "has_assignments", commonerrors.NewInternalError("checking reviews", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"exists": any})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	if report := s.progressCache.Get(r.Context()); report != nil {
		s.writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.aggregator.Aggregate(r.Context())
	if err != nil {
		s.writeError(w, "get_progress", err)
		return
	}
	s.progressCache.Set(r.Context(), report)

	s.writeJSON(w, http.StatusOK, report)
}
