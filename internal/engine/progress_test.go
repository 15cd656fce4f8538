// internal/engine/progress_test.go
package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-engine/internal/common/logger"
	"review-engine/internal/models"
	"review-engine/internal/store/memory"
)

func TestAggregatePartitionsApplicants(t *testing.T) {
	ctx := context.Background()
	applicants := memory.NewApplicantStore()
	reviews := memory.NewReviewStore()
	users := memory.NewUserStore()

	require.NoError(t, users.UpsertProfile(ctx, models.ReaderProfile{ID: "reader-1", DisplayName: "Reader One"}))
	require.NoError(t, users.SetRole(ctx, "reader-1", "reader"))

	require.NoError(t, applicants.CreateBatch(ctx, []models.Applicant{
		{ID: "a1", Alias: "bold-otter-teal", ReaderCompletion: map[string]bool{}},
		{ID: "a2", Alias: "calm-heron-jade", ReaderCompletion: map[string]bool{}},
	}))
	require.NoError(t, reviews.CreateBatch(ctx, []models.Review{
		{ID: "r1", ApplicantID: "a1", ReaderID: "reader-1", Complete: true},
		{ID: "r2", ApplicantID: "a2", ReaderID: "reader-1", Complete: false},
		{ID: "r3", ApplicantID: "a2", ReaderID: "reader-2", Complete: true},
	}))

	agg := NewAggregator(applicants, reviews, users, logger.NewNoOpLogger())
	report, err := agg.Aggregate(ctx)
	require.NoError(t, err)

	assert.False(t, report.Finished)
	assert.Equal(t, 2, report.TotalCount)
	require.Len(t, report.Completed, 1)
	require.Len(t, report.Remaining, 1)

	assert.Equal(t, "a1", report.Completed[0].ApplicantID)
	assert.True(t, report.Completed[0].Finished)

	remaining := report.Remaining[0]
	assert.Equal(t, "a2", remaining.ApplicantID)
	assert.False(t, remaining.Finished)
	require.Len(t, remaining.Reviews, 2)

	// Known readers get their stored profile; unknown ones degrade to the id.
	for _, review := range remaining.Reviews {
		switch review.Reader.ID {
		case "reader-1":
			assert.Equal(t, "Reader One", review.Reader.DisplayName)
		case "reader-2":
			assert.Empty(t, review.Reader.DisplayName)
		default:
			t.Fatalf("unexpected reader %q", review.Reader.ID)
		}
	}
}

func TestAggregateApplicantWithoutReviewsCountsAsFinished(t *testing.T) {
	ctx := context.Background()
	applicants := memory.NewApplicantStore()
	reviews := memory.NewReviewStore()
	users := memory.NewUserStore()

	require.NoError(t, applicants.CreateBatch(ctx, []models.Applicant{
		{ID: "a1", Alias: "quiet-finch-coral", ReaderCompletion: map[string]bool{}},
	}))

	agg := NewAggregator(applicants, reviews, users, logger.NewNoOpLogger())
	report, err := agg.Aggregate(ctx)
	require.NoError(t, err)

	assert.True(t, report.Finished)
	assert.Len(t, report.Completed, 1)
	assert.Empty(t, report.Remaining)
}

func TestAggregateSkipsDanglingReviews(t *testing.T) {
	ctx := context.Background()
	applicants := memory.NewApplicantStore()
	reviews := memory.NewReviewStore()
	users := memory.NewUserStore()

	require.NoError(t, applicants.CreateBatch(ctx, []models.Applicant{
		{ID: "a1", Alias: "mellow-lynx-ivory", ReaderCompletion: map[string]bool{}},
	}))
	require.NoError(t, reviews.CreateBatch(ctx, []models.Review{
		{ID: "r1", ApplicantID: "a1", ReaderID: "reader-1", Complete: true},
		{ID: "r2", ApplicantID: "gone", ReaderID: "reader-1", Complete: false},
	}))

	agg := NewAggregator(applicants, reviews, users, logger.NewNoOpLogger())
	report, err := agg.Aggregate(ctx)
	require.NoError(t, err)

	// The orphaned review must neither appear nor hold the report open.
	assert.True(t, report.Finished)
	assert.Equal(t, 1, report.TotalCount)
	require.Len(t, report.Completed, 1)
	assert.Len(t, report.Completed[0].Reviews, 1)
}

func TestAggregateEmptyApplicantSetIsVacuouslyFinished(t *testing.T) {
	agg := NewAggregator(memory.NewApplicantStore(), memory.NewReviewStore(), memory.NewUserStore(), logger.NewNoOpLogger())
	report, err := agg.Aggregate(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Finished)
	assert.Zero(t, report.TotalCount)
	assert.Empty(t, report.Completed)
	assert.Empty(t, report.Remaining)
}
