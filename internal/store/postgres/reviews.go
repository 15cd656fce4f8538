// internal/store/postgres/reviews.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"review-engine/internal/common/database"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// ReviewStore is the postgres-backed review collection.
type ReviewStore struct {
	db *database.PostgresClient
}

func NewReviewStore(db *database.PostgresClient) *ReviewStore {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Get(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := s.db.QueryRow(ctx,
		`SELECT id, applicant_id, reader_id, complete FROM reviews WHERE id = $1`, id,
	).Scan(&review.ID, &review.ApplicantID, &review.ReaderID, &review.Complete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	return s.list(ctx, `SELECT id, applicant_id, reader_id, complete FROM reviews`)
}

func (s *ReviewStore) ListByReader(ctx context.Context, readerID string) ([]models.Review, error) {
	return s.list(ctx, `SELECT id, applicant_id, reader_id, complete FROM reviews WHERE reader_id = $1`, readerID)
}

func (s *ReviewStore) list(ctx context.Context, query string, args ...interface{}) ([]models.Review, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.ApplicantID, &review.ReaderID, &review.Complete); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *ReviewStore) CreateBatch(ctx context.Context, reviews []models.Review) error {
	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		for _, review := range reviews {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO reviews (id, applicant_id, reader_id, complete) VALUES ($1, $2, $3, $4)`,
				review.ID, review.ApplicantID, review.ReaderID, review.Complete,
			)
			if err != nil {
				return fmt.Errorf("insert review: %w", err)
			}
		}
		return nil
	})
}

func (s *ReviewStore) MarkComplete(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `UPDATE reviews SET complete = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark review complete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark review complete: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ReviewStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

func (s *ReviewStore) Any(ctx context.Context) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reviews: %w", err)
	}
	return exists, nil
}
