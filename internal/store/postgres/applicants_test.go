// internal/store/postgres/applicants_test.go
package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-engine/internal/common/database"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

func newMockStore(t *testing.T) (*ApplicantStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewApplicantStore(&database.PostgresClient{DB: db}), mock
}

func TestMarkReaderCompleteIsSingleFieldUpdate(t *testing.T) {
	s, mock := newMockStore(t)

	// The whole point: one UPDATE with jsonb_set, never a read-modify-write
	// of the full map.
	mock.ExpectExec(`UPDATE applicants\s+SET reader_completion = jsonb_set\(reader_completion, ARRAY\[\$2\], 'true'::jsonb, true\)\s+WHERE id = \$1`).
		WithArgs("a1", "reader-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.MarkReaderComplete(context.Background(), "a1", "reader-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReaderCompleteUnknownApplicant(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE applicants`).
		WithArgs("missing", "reader-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkReaderComplete(context.Background(), "missing", "reader-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateBatchCommitsInOneTransaction(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applicants`).
		WithArgs("a1", "bold-otter-teal", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO applicants`).
		WithArgs("a2", "calm-heron-jade", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.CreateBatch(context.Background(), []models.Applicant{
		{ID: "a1", Alias: "bold-otter-teal"},
		{ID: "a2", Alias: "calm-heron-jade"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatchRollsBackOnFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applicants`).
		WithArgs("a1", "bold-otter-teal", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO applicants`).
		WithArgs("a2", "calm-heron-jade", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := s.CreateBatch(context.Background(), []models.Applicant{
		{ID: "a1", Alias: "bold-otter-teal"},
		{ID: "a2", Alias: "calm-heron-jade"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDecodesJSONColumns(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "alias", "responses", "reader_completion"}).
		AddRow("a1", "bold-otter-teal",
			[]byte(`{"c-essay": "Because.", "c-score": 87}`),
			[]byte(`{"reader-1": true, "reader-2": false}`))
	mock.ExpectQuery(`SELECT id, alias, responses, reader_completion FROM applicants WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(rows)

	applicant, err := s.Get(context.Background(), "a1")
	require.NoError(t, err)

	assert.Equal(t, "bold-otter-teal", applicant.Alias)
	assert.Equal(t, models.StringValue("Because."), applicant.Responses["c-essay"])
	assert.Equal(t, models.NumberValue(87), applicant.Responses["c-score"])
	assert.Equal(t, map[string]bool{"reader-1": true, "reader-2": false}, applicant.ReaderCompletion)
}

func TestGetUnknownApplicant(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, alias, responses, reader_completion FROM applicants WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "alias", "responses", "reader_completion"}))

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
