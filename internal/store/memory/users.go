// internal/store/memory/users.go
package memory

import (
	"context"
	"sync"

	"review-engine/internal/models"
	"review-engine/internal/store"
)

// UserStore is an in-memory user directory.
type UserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) GetRole(ctx context.Context, uid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		return "", nil
	}
	return user.Role, nil
}

func (s *UserStore) SetRole(ctx context.Context, uid, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		user = &models.User{Profile: models.ReaderProfile{ID: uid}}
		s.users[uid] = user
	}
	user.Role = role
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for _, user := range s.users {
		if user.Role == "reader" || user.Role == "admin" {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *UserStore) GetProfile(ctx context.Context, uid string) (*models.ReaderProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	profile := user.Profile
	return &profile, nil
}

func (s *UserStore) UpsertProfile(ctx context.Context, profile models.ReaderProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[profile.ID]
	if !ok {
		user = &models.User{Role: "none"}
		s.users[profile.ID] = user
	}
	user.Profile = profile
	return nil
}
