// internal/engine/progress.go
package engine

import (
	"context"
	"sort"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/metrics"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// Aggregator builds the admin progress report from the review and applicant
// collections.
type Aggregator struct {
	applicants store.ApplicantStore
	reviews    store.ReviewStore
	users      store.UserStore
	logger     logger.Logger
}

func NewAggregator(applicants store.ApplicantStore, reviews store.ReviewStore, users store.UserStore, log logger.Logger) *Aggregator {
	return &Aggregator{
		applicants: applicants,
		reviews:    reviews,
		users:      users,
		logger:     log.WithFields(map[string]interface{}{"component": "aggregator"}),
	}
}

// Aggregate partitions every applicant into finished and remaining. An
// applicant is finished only when every one of its reviews is complete; an
// applicant with no reviews at all counts as finished, so the report is only
// meaningful after assignments have been generated.
func (a *Aggregator) Aggregate(ctx context.Context) (*models.ProgressReport, error) {
	applicants, err := a.applicants.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading applicants", err)
	}
	reviews, err := a.reviews.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading reviews", err)
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading users", err)
	}

	profiles := make(map[string]models.ReaderProfile, len(users))
	for _, user := range users {
		profiles[user.Profile.ID] = user.Profile
	}

	known := make(map[string]bool, len(applicants))
	for _, applicant := range applicants {
		known[applicant.ID] = true
	}

	byApplicant := make(map[string][]models.ReviewProgress)
	for _, review := range reviews {
		if !known[review.ApplicantID] {
			// A review can outlive its applicant when the applicant set is
			// cleared without regenerating. Skip it rather than fail the
			// whole report.
			a.logger.Warn("skipping review for unknown applicant", map[string]interface{}{
				"review_id":    review.ID,
				"applicant_id": review.ApplicantID,
			})
			metrics.DanglingReviewsSkipped.Inc()
			continue
		}

		reader, ok := profiles[review.ReaderID]
		if !ok {
			reader = models.ReaderProfile{ID: review.ReaderID}
		}
		byApplicant[review.ApplicantID] = append(byApplicant[review.ApplicantID], models.ReviewProgress{
			ReviewID: review.ID,
			Complete: review.Complete,
			Reader:   reader,
		})
	}

	report := &models.ProgressReport{
		TotalCount: len(applicants),
		Remaining:  []models.ApplicantProgress{},
		Completed:  []models.ApplicantProgress{},
	}

	for _, applicant := range applicants {
		entry := models.ApplicantProgress{
			ApplicantID: applicant.ID,
			Alias:       applicant.Alias,
			Finished:    true,
			Reviews:     byApplicant[applicant.ID],
		}
		for _, review := range entry.Reviews {
			if !review.Complete {
				entry.Finished = false
				break
			}
		}

		if entry.Finished {
			report.Completed = append(report.Completed, entry)
		} else {
			report.Remaining = append(report.Remaining, entry)
		}
	}

	sort.Slice(report.Completed, func(i, j int) bool { return report.Completed[i].Alias < report.Completed[j].Alias })
	sort.Slice(report.Remaining, func(i, j int) bool { return report.Remaining[i].Alias < report.Remaining[j].Alias })

	report.Finished = len(report.Remaining) == 0
	return report, nil
}
