// internal/store/postgres/applicants.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"review-engine/internal/common/database"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// ApplicantStore is the postgres-backed applicant collection.
type ApplicantStore struct {
	db *database.PostgresClient
}

func NewApplicantStore(db *database.PostgresClient) *ApplicantStore {
	return &ApplicantStore{db: db}
}

func (s *ApplicantStore) List(ctx context.Context) ([]models.Applicant, error) {
	rows, err := s.db.Query(ctx, `SELECT id, alias, responses, reader_completion FROM applicants`)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []models.Applicant
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, *applicant)
	}
	return applicants, rows.Err()
}

func (s *ApplicantStore) Get(ctx context.Context, id string) (*models.Applicant, error) {
	row := s.db.QueryRow(ctx, `SELECT id, alias, responses, reader_completion FROM applicants WHERE id = $1`, id)

	applicant, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return applicant, nil
}

func (s *ApplicantStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM applicants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count applicants: %w", err)
	}
	return count, nil
}

func (s *ApplicantStore) CreateBatch(ctx context.Context, applicants []models.Applicant) error {
	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		for _, applicant := range applicants {
			responses, err := json.Marshal(applicant.Responses)
			if err != nil {
				return fmt.Errorf("encode responses: %w", err)
			}
			completion, err := json.Marshal(nonNilCompletion(applicant.ReaderCompletion))
			if err != nil {
				return fmt.Errorf("encode reader completion: %w", err)
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO applicants (id, alias, responses, reader_completion) VALUES ($1, $2, $3, $4)`,
				applicant.ID, applicant.Alias, responses, completion,
			)
			if err != nil {
				return fmt.Errorf("insert applicant: %w", err)
			}
		}
		return nil
	})
}

func (s *ApplicantStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM applicants`); err != nil {
		return fmt.Errorf("clear applicants: %w", err)
	}
	return nil
}

func (s *ApplicantStore) SetReaderCompletionBatch(ctx context.Context, completion map[string]map[string]bool) error {
	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		for applicantID, readers := range completion {
			encoded, err := json.Marshal(nonNilCompletion(readers))
			if err != nil {
				return fmt.Errorf("encode reader completion: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`UPDATE applicants SET reader_completion = $2 WHERE id = $1`,
				applicantID, encoded,
			)
			if err != nil {
				return fmt.Errorf("set reader completion: %w", err)
			}
		}
		return nil
	})
}

// MarkReaderComplete flips one key of the completion map in a single
// statement. jsonb_set makes the write a targeted field-path update, so two
// readers finishing the same applicant concurrently can never overwrite each
// other's flag.
func (s *ApplicantStore) MarkReaderComplete(ctx context.Context, applicantID, readerID string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE applicants
		 SET reader_completion = jsonb_set(reader_completion, ARRAY[$2], 'true'::jsonb, true)
		 WHERE id = $1`,
		applicantID, readerID,
	)
	if err != nil {
		return fmt.Errorf("mark reader complete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reader complete: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplicant(row rowScanner) (*models.Applicant, error) {
	var applicant models.Applicant
	var responses, completion []byte

	if err := row.Scan(&applicant.ID, &applicant.Alias, &responses, &completion); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responses, &applicant.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if err := json.Unmarshal(completion, &applicant.ReaderCompletion); err != nil {
		return nil, fmt.Errorf("decode reader completion: %w", err)
	}
	return &applicant, nil
}

func nonNilCompletion(m map[string]bool) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	return m
}
