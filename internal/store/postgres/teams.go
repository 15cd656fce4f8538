// internal/store/postgres/teams.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"review-engine/internal/common/database"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// TeamStore is the postgres-backed team collection.
type TeamStore struct {
	db *database.PostgresClient
}

func NewTeamStore(db *database.PostgresClient) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) List(ctx context.Context) ([]models.Team, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, member_ids FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		var members pq.StringArray
		if err := rows.Scan(&team.ID, &team.Name, &members); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		team.MemberIDs = []string(members)
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *TeamStore) Get(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	var members pq.StringArray
	err := s.db.QueryRow(ctx, `SELECT id, name, member_ids FROM teams WHERE id = $1`, id).
		Scan(&team.ID, &team.Name, &members)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	team.MemberIDs = []string(members)
	return &team, nil
}

func (s *TeamStore) Create(ctx context.Context, name string, memberIDs []string) (*models.Team, error) {
	team := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		MemberIDs: memberIDs,
	}
	if team.MemberIDs == nil {
		team.MemberIDs = []string{}
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO teams (id, name, member_ids) VALUES ($1, $2, $3)`,
		team.ID, team.Name, pq.StringArray(team.MemberIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return &team, nil
}

func (s *TeamStore) Rename(ctx context.Context, id, name string) error {
	result, err := s.db.Exec(ctx, `UPDATE teams SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("rename team: %w", err)
	}
	return requireAffected(result)
}

func (s *TeamStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return requireAffected(result)
}

func (s *TeamStore) AddMember(ctx context.Context, teamID, userID string) error {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	for _, member := range team.MemberIDs {
		if member == userID {
			return nil
		}
	}

	_, err = s.db.Exec(ctx,
		`UPDATE teams SET member_ids = array_append(member_ids, $2) WHERE id = $1`,
		teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

func (s *TeamStore) RemoveMember(ctx context.Context, teamID, userID string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE teams SET member_ids = array_remove(member_ids, $2) WHERE id = $1`,
		teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
