// internal/engine/complete.go
package engine

import (
	"context"
	"errors"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/metrics"
	"review-engine/internal/store"
)

// Recorder marks reviews complete and mirrors the fact into the owning
// applicant's completion map.
type Recorder struct {
	reviews    store.ReviewStore
	applicants store.ApplicantStore
	logger     logger.Logger
}

func NewRecorder(reviews store.ReviewStore, applicants store.ApplicantStore, log logger.Logger) *Recorder {
	return &Recorder{
		reviews:    reviews,
		applicants: applicants,
		logger:     log.WithFields(map[string]interface{}{"component": "recorder"}),
	}
}

// MarkComplete records completion of a single review. The review record is
// authoritative; the applicant's completion map is updated with a single-field
// write so two readers finishing siblings concurrently never clobber each
// other. Repeating the call for an already-complete review is a no-op.
func (r *Recorder) MarkComplete(ctx context.Context, reviewID string) error {
	review, err := r.reviews.Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return commonerrors.NewNotFoundError("review", reviewID)
		}
		return commonerrors.NewInternalError("loading review", err)
	}

	if err := r.reviews.MarkComplete(ctx, reviewID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return commonerrors.NewInternalError("marking review complete", err)
	}

	err = r.applicants.MarkReaderComplete(ctx, review.ApplicantID, review.ReaderID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Applicant was cleared after assignment. The review record already
		// carries the completion; the aggregator ignores the orphan.
		r.logger.Warn("completed review has no applicant", map[string]interface{}{
			"review_id":    reviewID,
			"applicant_id": review.ApplicantID,
		})
	case err != nil:
		// Review is complete but the applicant map is stale until the next
		// regeneration. Surface it so the caller knows the report may lag.
		return commonerrors.NewInternalError("updating applicant completion", err)
	}

	metrics.ReviewsCompleted.Inc()
	r.logger.Info("review completed", map[string]interface{}{
		"review_id":    reviewID,
		"applicant_id": review.ApplicantID,
		"reader_id":    review.ReaderID,
	})
	return nil
}
