// internal/engine/import.go
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"review-engine/internal/alias"
	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/logger"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// importSchema constrains the upload to an array of flat records whose values
// are JSON scalars. Nested objects and arrays have no column representation
// and are rejected up front.
const importSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"additionalProperties": {
			"type": ["string", "number", "boolean", "null"]
		}
	}
}`

// Importer loads applicant records, assigns each a pseudonym and strips the
// values of columns flagged as name or email before anything is persisted.
type Importer struct {
	columns    store.ColumnStore
	applicants store.ApplicantStore
	aliases    *alias.Generator
	batchSize  int
	schema     *gojsonschema.Schema
	logger     logger.Logger
}

func NewImporter(columns store.ColumnStore, applicants store.ApplicantStore, aliases *alias.Generator, batchSize int, log logger.Logger) (*Importer, error) {
	if batchSize <= 0 {
		batchSize = 300
	}
	if aliases == nil {
		aliases = alias.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(importSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling import schema: %w", err)
	}

	return &Importer{
		columns:    columns,
		applicants: applicants,
		aliases:    aliases,
		batchSize:  batchSize,
		schema:     schema,
		logger:     log.WithFields(map[string]interface{}{"component": "importer"}),
	}, nil
}

// Import validates and persists a raw JSON upload, returning the number of
// applicants created.
func (im *Importer) Import(ctx context.Context, payload []byte) (int, error) {
	result, err := im.schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return 0, commonerrors.NewInvalidArgumentError("import payload is not valid JSON")
	}
	if !result.Valid() {
		detail := "import payload is malformed"
		if errs := result.Errors(); len(errs) > 0 {
			detail = fmt.Sprintf("import payload is malformed: %s", errs[0].String())
		}
		return 0, commonerrors.NewInvalidArgumentError(detail)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(payload, &rows); err != nil {
		return 0, commonerrors.NewInvalidArgumentError("import payload is not a JSON array")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	columns, err := im.columns.List(ctx)
	if err != nil {
		return 0, commonerrors.NewInternalError("loading columns", err)
	}
	if len(columns) == 0 {
		return 0, commonerrors.NewFailedPreconditionError("Columns must be configured before importing applicants")
	}

	applicants := make([]models.Applicant, 0, len(rows))
	for _, row := range rows {
		responses := make(map[string]models.FieldValue)
		for _, col := range columns {
			// Name and email values are dropped at the door; only the alias
			// ever identifies an applicant to a reader.
			if col.IsName || col.IsEmail {
				continue
			}
			raw, ok := row[col.Name]
			if !ok {
				continue
			}
			value, err := models.FromAny(raw)
			if err != nil {
				return 0, commonerrors.NewInvalidArgumentError(
					fmt.Sprintf("column %q: %v", col.Name, err))
			}
			responses[col.ID] = value
		}

		applicants = append(applicants, models.Applicant{
			ID:               uuid.NewString(),
			Alias:            im.aliases.Next(),
			Responses:        responses,
			ReaderCompletion: map[string]bool{},
		})
	}

	for start := 0; start < len(applicants); start += im.batchSize {
		end := start + im.batchSize
		if end > len(applicants) {
			end = len(applicants)
		}
		if err := im.applicants.CreateBatch(ctx, applicants[start:end]); err != nil {
			return 0, commonerrors.NewInternalError("persisting applicant batch", err)
		}
	}

	im.logger.Info("applicants imported", map[string]interface{}{"count": len(applicants)})
	return len(applicants), nil
}

// Clear removes every applicant. Reviews are untouched; the next generation
// run wipes them.
func (im *Importer) Clear(ctx context.Context) error {
	if err := im.applicants.Clear(ctx); err != nil {
		return commonerrors.NewInternalError("clearing applicants", err)
	}
	im.logger.Info("applicants cleared", nil)
	return nil
}

// AliasEntry pairs an applicant with its pseudonym for the de-anonymization
// export admins use after decisions are made.
type AliasEntry struct {
	ApplicantID string `json:"applicantId"`
	Alias       string `json:"alias"`
}

func (im *Importer) AliasExport(ctx context.Context) ([]AliasEntry, error) {
	applicants, err := im.applicants.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading applicants", err)
	}
	entries := make([]AliasEntry, 0, len(applicants))
	for _, applicant := range applicants {
		entries = append(entries, AliasEntry{ApplicantID: applicant.ID, Alias: applicant.Alias})
	}
	return entries, nil
}
