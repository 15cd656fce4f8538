// internal/engine/package_test.go
package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/models"
	"review-engine/internal/store/memory"
)

func seedPackagingFixture(t *testing.T) (*memory.ReviewStore, *memory.ApplicantStore, *memory.ColumnStore) {
	t.Helper()
	ctx := context.Background()

	columns := memory.NewColumnStore()
	require.NoError(t, columns.Replace(ctx, []models.Column{
		{ID: "c-name", Name: "Full Name", IsName: true, Index: 0},
		{ID: "c-email", Name: "Email", IsEmail: true, Index: 1},
		{ID: "c-essay", Name: "essay", DisplayName: "Why us?", Index: 2},
		{ID: "c-score", Name: "score", Index: 3},
		{ID: "c-notes", Name: "notes", Hidden: true, Index: 4},
		{ID: "c-resume", Name: "resume", IsResume: true, Index: 5},
	}))

	applicants := memory.NewApplicantStore()
	require.NoError(t, applicants.CreateBatch(ctx, []models.Applicant{
		{
			ID:    "a1",
			Alias: "plucky-otter-teal",
			Responses: map[string]models.FieldValue{
				"c-essay":  models.StringValue("Because."),
				"c-score":  models.NumberValue(87),
				"c-notes":  models.StringValue("internal only"),
				"c-resume": models.StringValue("resumes/a1.pdf"),
			},
			ReaderCompletion: map[string]bool{},
		},
	}))

	reviews := memory.NewReviewStore()
	require.NoError(t, reviews.CreateBatch(ctx, []models.Review{
		{ID: "r1", ApplicantID: "a1", ReaderID: "reader-1"},
	}))

	return reviews, applicants, columns
}

func TestPackageExcludesPIIAndHiddenColumns(t *testing.T) {
	reviews, applicants, columns := seedPackagingFixture(t)
	p := NewPackager(reviews, applicants, columns)

	pkg, err := p.Package(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, "r1", pkg.ReviewID)
	assert.Equal(t, "plucky-otter-teal", pkg.ApplicantAlias)
	assert.Equal(t, "resumes/a1.pdf", pkg.ResumeRef)

	labels := make([]string, 0, len(pkg.Fields))
	for _, field := range pkg.Fields {
		labels = append(labels, field.Label)
	}
	// Display name where set, raw column name as fallback; nothing flagged
	// name, email or hidden.
	assert.Equal(t, []string{"Why us?", "score"}, labels)
	assert.Equal(t, "Because.", pkg.Fields[0].Value)
	assert.Equal(t, "87", pkg.Fields[1].Value)
}

func TestPackageUnknownReview(t *testing.T) {
	reviews, applicants, columns := seedPackagingFixture(t)
	p := NewPackager(reviews, applicants, columns)

	_, err := p.Package(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeNotFound, commonerrors.CodeOf(err))
}

func TestListForReaderOrdersIncompleteFirst(t *testing.T) {
	ctx := context.Background()
	applicants := memory.NewApplicantStore()
	reviews := memory.NewReviewStore()
	columns := memory.NewColumnStore()

	require.NoError(t, applicants.CreateBatch(ctx, []models.Applicant{
		{ID: "a1", Alias: "bold-crane-jade", ReaderCompletion: map[string]bool{}},
		{ID: "a2", Alias: "amber-fox-teal", ReaderCompletion: map[string]bool{}},
		{ID: "a3", Alias: "wise-owl-coral", ReaderCompletion: map[string]bool{}},
	}))
	require.NoError(t, reviews.CreateBatch(ctx, []models.Review{
		{ID: "r1", ApplicantID: "a1", ReaderID: "reader-1", Complete: true},
		{ID: "r2", ApplicantID: "a2", ReaderID: "reader-1", Complete: false},
		{ID: "r3", ApplicantID: "a3", ReaderID: "reader-1", Complete: false},
		{ID: "r4", ApplicantID: "a1", ReaderID: "reader-2", Complete: false},
	}))

	p := NewPackager(reviews, applicants, columns)
	summaries, err := p.ListForReader(ctx, "reader-1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "amber-fox-teal", summaries[0].ApplicantAlias)
	assert.Equal(t, "wise-owl-coral", summaries[1].ApplicantAlias)
	assert.Equal(t, "bold-crane-jade", summaries[2].ApplicantAlias)
	assert.True(t, summaries[2].Complete)
}
