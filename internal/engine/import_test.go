// internal/engine/import_test.go
package engine

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-engine/internal/alias"
	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/logger"
	"review-engine/internal/models"
	"review-engine/internal/store/memory"
)

func newTestImporter(t *testing.T, columns *memory.ColumnStore, applicants *memory.ApplicantStore) *Importer {
	t.Helper()
	im, err := NewImporter(columns, applicants,
		alias.NewGenerator(rand.New(rand.NewSource(7))), 0, logger.NewNoOpLogger())
	require.NoError(t, err)
	return im
}

func seedImportColumns(t *testing.T, columns *memory.ColumnStore) {
	t.Helper()
	require.NoError(t, columns.Replace(context.Background(), []models.Column{
		{ID: "c-name", Name: "name", IsName: true, Index: 0},
		{ID: "c-email", Name: "email", IsEmail: true, Index: 1},
		{ID: "c-essay", Name: "essay", Index: 2},
		{ID: "c-score", Name: "score", Index: 3},
	}))
}

func TestImportStripsNameAndEmailValues(t *testing.T) {
	ctx := context.Background()
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	seedImportColumns(t, columns)

	im := newTestImporter(t, columns, applicants)
	count, err := im.Import(ctx, []byte(`[
		{"name": "Ada Lovelace", "email": "ada@example.com", "essay": "Numbers.", "score": 99},
		{"name": "Alan Turing", "email": "alan@example.com", "essay": "Machines.", "score": 95}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := applicants.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	for _, applicant := range stored {
		// The name and email never reach storage, not even under their
		// column ids.
		assert.NotContains(t, applicant.Responses, "c-name")
		assert.NotContains(t, applicant.Responses, "c-email")
		assert.Contains(t, applicant.Responses, "c-essay")
		assert.Contains(t, applicant.Responses, "c-score")

		parts := strings.Split(applicant.Alias, "-")
		require.Len(t, parts, 3)
		assert.True(t, alias.InVocabulary(parts[0], parts[1], parts[2]),
			"alias %q outside vocabulary", applicant.Alias)
		assert.Empty(t, applicant.ReaderCompletion)
	}
}

func TestImportRequiresColumns(t *testing.T) {
	im := newTestImporter(t, memory.NewColumnStore(), memory.NewApplicantStore())
	_, err := im.Import(context.Background(), []byte(`[{"essay": "hi"}]`))
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeFailedPrecondition, commonerrors.CodeOf(err))
}

func TestImportRejectsMalformedPayloads(t *testing.T) {
	columns := memory.NewColumnStore()
	seedImportColumns(t, columns)
	im := newTestImporter(t, columns, memory.NewApplicantStore())

	cases := map[string]string{
		"not json":       `{"essay": `,
		"not an array":   `{"essay": "hi"}`,
		"nested object":  `[{"essay": {"deep": true}}]`,
		"array value":    `[{"essay": ["a", "b"]}]`,
		"scalar element": `["hi"]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := im.Import(context.Background(), []byte(payload))
			require.Error(t, err)
			assert.Equal(t, commonerrors.ErrCodeInvalidArgument, commonerrors.CodeOf(err))
		})
	}
}

func TestImportEmptyArrayIsNoOp(t *testing.T) {
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	im := newTestImporter(t, columns, applicants)

	count, err := im.Import(context.Background(), []byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportKeepsScalarKinds(t *testing.T) {
	ctx := context.Background()
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	require.NoError(t, columns.Replace(ctx, []models.Column{
		{ID: "c-a", Name: "a", Index: 0},
		{ID: "c-b", Name: "b", Index: 1},
		{ID: "c-c", Name: "c", Index: 2},
		{ID: "c-d", Name: "d", Index: 3},
	}))
	im := newTestImporter(t, columns, applicants)

	_, err := im.Import(ctx, []byte(`[{"a": "text", "b": 4.5, "c": true, "d": null}]`))
	require.NoError(t, err)

	stored, err := applicants.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	responses := stored[0].Responses
	assert.Equal(t, models.StringValue("text"), responses["c-a"])
	assert.Equal(t, models.NumberValue(4.5), responses["c-b"])
	assert.Equal(t, models.BoolValue(true), responses["c-c"])
	assert.Equal(t, models.NullValue(), responses["c-d"])
}

func TestClearRemovesAllApplicants(t *testing.T) {
	ctx := context.Background()
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	seedImportColumns(t, columns)
	im := newTestImporter(t, columns, applicants)

	_, err := im.Import(ctx, []byte(`[{"essay": "one"}, {"essay": "two"}]`))
	require.NoError(t, err)
	require.NoError(t, im.Clear(ctx))

	count, err := applicants.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAliasExportPairsIDsWithAliases(t *testing.T) {
	ctx := context.Background()
	columns := memory.NewColumnStore()
	applicants := memory.NewApplicantStore()
	seedImportColumns(t, columns)
	im := newTestImporter(t, columns, applicants)

	_, err := im.Import(ctx, []byte(`[{"essay": "one"}, {"essay": "two"}]`))
	require.NoError(t, err)

	entries, err := im.AliasExport(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	stored, err := applicants.List(ctx)
	require.NoError(t, err)
	aliases := make(map[string]string, len(stored))
	for _, applicant := range stored {
		aliases[applicant.ID] = applicant.Alias
	}
	for _, entry := range entries {
		assert.Equal(t, aliases[entry.ApplicantID], entry.Alias)
	}
}
