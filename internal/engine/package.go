// internal/engine/package.go
package engine

import (
	"context"
	"errors"
	"sort"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// Packager assembles the anonymized view of an application that a reader is
// allowed to see.
type Packager struct {
	reviews    store.ReviewStore
	applicants store.ApplicantStore
	columns    store.ColumnStore
}

func NewPackager(reviews store.ReviewStore, applicants store.ApplicantStore, columns store.ColumnStore) *Packager {
	return &Packager{reviews: reviews, applicants: applicants, columns: columns}
}

// Package resolves a review into the applicant's alias plus the visible
// response fields in column order. Name, email and hidden columns never make
// it into the package; the resume column is surfaced separately as a document
// reference instead of an inline field.
func (p *Packager) Package(ctx context.Context, reviewID string) (*models.ReviewPackage, error) {
	review, err := p.reviews.Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, commonerrors.NewNotFoundError("review", reviewID)
		}
		return nil, commonerrors.NewInternalError("loading review", err)
	}

	applicant, err := p.applicants.Get(ctx, review.ApplicantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, commonerrors.NewNotFoundError("applicant", review.ApplicantID)
		}
		return nil, commonerrors.NewInternalError("loading applicant", err)
	}

	columns, err := p.columns.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading columns", err)
	}

	pkg := &models.ReviewPackage{
		ReviewID:       review.ID,
		ApplicantAlias: applicant.Alias,
		Complete:       review.Complete,
		Fields:         []models.PackagedField{},
	}

	for _, col := range columns {
		if col.PII() || col.Hidden {
			continue
		}
		value := applicant.Responses[col.ID]

		if col.IsResume {
			pkg.ResumeRef = value.Display()
			continue
		}

		label := col.DisplayName
		if label == "" {
			label = col.Name
		}
		pkg.Fields = append(pkg.Fields, models.PackagedField{
			Label: label,
			Value: value.Display(),
		})
	}

	return pkg, nil
}

// ListForReader returns the reader's work queue with each review's applicant
// resolved to its alias.
func (p *Packager) ListForReader(ctx context.Context, readerID string) ([]models.ReviewSummary, error) {
	reviews, err := p.reviews.ListByReader(ctx, readerID)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading reviews", err)
	}

	summaries := make([]models.ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		summary := models.ReviewSummary{
			ReviewID: review.ID,
			Complete: review.Complete,
		}
		applicant, err := p.applicants.Get(ctx, review.ApplicantID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Orphaned review; shown without an alias rather than hidden so
			// the queue length still matches the assignment count.
		case err != nil:
			return nil, commonerrors.NewInternalError("loading applicant", err)
		default:
			summary.ApplicantAlias = applicant.Alias
		}
		summaries = append(summaries, summary)
	}

	// Incomplete work first, alias order within each half.
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Complete != summaries[j].Complete {
			return !summaries[i].Complete
		}
		return summaries[i].ApplicantAlias < summaries[j].ApplicantAlias
	})
	return summaries, nil
}
