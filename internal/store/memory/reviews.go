// internal/store/memory/reviews.go
package memory

import (
	"context"
	"errors"
	"sync"

	"review-engine/internal/models"
	"review-engine/internal/store"
)

var errBatchRejected = errors.New("batch rejected")

// ReviewStore is an in-memory review collection.
type ReviewStore struct {
	mu      sync.Mutex
	reviews map[string]*models.Review

	// FailCreates makes the next N CreateBatch calls fail; used to exercise
	// the generator's bounded batch retry.
	FailCreates int
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: make(map[string]*models.Review)}
}

func (s *ReviewStore) Get(ctx context.Context, id string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		out = append(out, *review)
	}
	return out, nil
}

func (s *ReviewStore) ListByReader(ctx context.Context, readerID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Review
	for _, review := range s.reviews {
		if review.ReaderID == readerID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (s *ReviewStore) CreateBatch(ctx context.Context, reviews []models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreates > 0 {
		s.FailCreates--
		return errBatchRejected
	}

	for _, review := range reviews {
		copied := review
		s.reviews[review.ID] = &copied
	}
	return nil
}

func (s *ReviewStore) MarkComplete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return store.ErrNotFound
	}
	review.Complete = true
	return nil
}

func (s *ReviewStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = make(map[string]*models.Review)
	return nil
}

func (s *ReviewStore) Any(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews) > 0, nil
}
