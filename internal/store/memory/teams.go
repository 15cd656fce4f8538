// internal/store/memory/teams.go
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"review-engine/internal/models"
	"review-engine/internal/store"
)

// TeamStore is an in-memory team collection.
type TeamStore struct {
	mu    sync.Mutex
	teams map[string]*models.Team
}

func NewTeamStore() *TeamStore {
	return &TeamStore{teams: make(map[string]*models.Team)}
}

func (s *TeamStore) List(ctx context.Context) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Team, 0, len(s.teams))
	for _, team := range s.teams {
		out = append(out, copyTeam(team))
	}
	return out, nil
}

func (s *TeamStore) Get(ctx context.Context, id string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := copyTeam(team)
	return &copied, nil
}

func (s *TeamStore) Create(ctx context.Context, name string, memberIDs []string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := &models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		MemberIDs: append([]string{}, memberIDs...),
	}
	s.teams[team.ID] = team

	copied := copyTeam(team)
	return &copied, nil
}

func (s *TeamStore) Rename(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok {
		return store.ErrNotFound
	}
	team.Name = name
	return nil
}

func (s *TeamStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.teams, id)
	return nil
}

func (s *TeamStore) AddMember(ctx context.Context, teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return store.ErrNotFound
	}
	for _, member := range team.MemberIDs {
		if member == userID {
			return nil
		}
	}
	team.MemberIDs = append(team.MemberIDs, userID)
	return nil
}

func (s *TeamStore) RemoveMember(ctx context.Context, teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return store.ErrNotFound
	}
	kept := team.MemberIDs[:0]
	for _, member := range team.MemberIDs {
		if member != userID {
			kept = append(kept, member)
		}
	}
	team.MemberIDs = kept
	return nil
}

func copyTeam(t *models.Team) models.Team {
	return models.Team{
		ID:        t.ID,
		Name:      t.Name,
		MemberIDs: append([]string{}, t.MemberIDs...),
	}
}
