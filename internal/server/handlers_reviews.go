// internal/server/handlers_reviews.go
package server

import (
	"errors"
	"net/http"

	"review-engine/internal/auth"
	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/store"
)

func (s *Server) handleMyReviews(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	summaries, err := s.packager.ListForReader(r.Context(), identity.UID)
	if err != nil {
		s.writeError(w, "my_reviews", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

// handleGetReview serves the anonymized package. The owning reader sees their
// own reviews; admins may inspect any review. Anyone else gets NOT_FOUND, the
// same answer as for a review that does not exist, so review ids cannot be
// probed.
func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	reviewID := r.PathValue("id")

	review, err := s.reviews.Get(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, "get_review", commonerrors.NewNotFoundError("review", reviewID))
		} else {
			s.writeError(w, "get_review", commonerrors.NewInternalError("loading review", err))
		}
		return
	}
	if review.ReaderID != identity.UID && !identity.Role.Meets(auth.RoleAdmin) {
		s.writeError(w, "get_review", commonerrors.NewNotFoundError("review", reviewID))
		return
	}

	pkg, err := s.packager.Package(r.Context(), reviewID)
	if err != nil {
		s.writeError(w, "get_review", err)
		return
	}
	s.writeJSON(w, http.StatusOK, pkg)
}

// handleCompleteReview records completion. Only the assigned reader may
// complete a review; admins do not get a bypass here because completion is a
// statement that the assigned reader did the work.
func (s *Server) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	reviewID := r.PathValue("id")

	review, err := s.reviews.Get(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, "complete_review", commonerrors.NewNotFoundError("review", reviewID))
		} else {
			s.writeError(w, "complete_review", commonerrors.NewInternalError("loading review", err))
		}
		return
	}
	if review.ReaderID != identity.UID {
		s.writeError(w, "complete_review", commonerrors.NewNotFoundError("review", reviewID))
		return
	}

	if err := s.recorder.MarkComplete(r.Context(), reviewID); err != nil {
		s.writeError(w, "complete_review", err)
		return
	}
	s.progressCache.Invalidate(r.Context())

	s.writeJSON(w, http.StatusOK, map[string]bool{"complete": true})
}
