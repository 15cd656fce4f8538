// internal/store/memory/applicants.go

// Package memory provides mutex-guarded in-memory store implementations used
// as test doubles and for local development without postgres.
package memory

import (
	"context"
	"sync"

	"review-engine/internal/models"
	"review-engine/internal/store"
)

// ApplicantStore is an in-memory applicant collection.
type ApplicantStore struct {
	mu         sync.Mutex
	applicants map[string]*models.Applicant
}

func NewApplicantStore() *ApplicantStore {
	return &ApplicantStore{applicants: make(map[string]*models.Applicant)}
}

func (s *ApplicantStore) List(ctx context.Context) ([]models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Applicant, 0, len(s.applicants))
	for _, applicant := range s.applicants {
		out = append(out, copyApplicant(applicant))
	}
	return out, nil
}

func (s *ApplicantStore) Get(ctx context.Context, id string) (*models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicant, ok := s.applicants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := copyApplicant(applicant)
	return &copied, nil
}

func (s *ApplicantStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applicants), nil
}

func (s *ApplicantStore) CreateBatch(ctx context.Context, applicants []models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, applicant := range applicants {
		copied := copyApplicant(&applicant)
		s.applicants[applicant.ID] = &copied
	}
	return nil
}

func (s *ApplicantStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicants = make(map[string]*models.Applicant)
	return nil
}

func (s *ApplicantStore) SetReaderCompletionBatch(ctx context.Context, completion map[string]map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for applicantID, readers := range completion {
		applicant, ok := s.applicants[applicantID]
		if !ok {
			return store.ErrNotFound
		}
		replacement := make(map[string]bool, len(readers))
		for reader, done := range readers {
			replacement[reader] = done
		}
		applicant.ReaderCompletion = replacement
	}
	return nil
}

// MarkReaderComplete flips the single key under the lock, mirroring the
// field-path semantics of the postgres implementation.
func (s *ApplicantStore) MarkReaderComplete(ctx context.Context, applicantID, readerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicant, ok := s.applicants[applicantID]
	if !ok {
		return store.ErrNotFound
	}
	if applicant.ReaderCompletion == nil {
		applicant.ReaderCompletion = make(map[string]bool)
	}
	applicant.ReaderCompletion[readerID] = true
	return nil
}

func copyApplicant(a *models.Applicant) models.Applicant {
	copied := models.Applicant{
		ID:               a.ID,
		Alias:            a.Alias,
		Responses:        make(map[string]models.FieldValue, len(a.Responses)),
		ReaderCompletion: make(map[string]bool, len(a.ReaderCompletion)),
	}
	for k, v := range a.Responses {
		copied.Responses[k] = v
	}
	for k, v := range a.ReaderCompletion {
		copied.ReaderCompletion[k] = v
	}
	return copied
}
