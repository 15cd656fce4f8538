// internal/store/postgres/users.go
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

// UserStore is the postgres-backed user directory.
type UserStore struct {
	db *database.PostgresClient
}

func NewUserStore(db *database.PostgresClient) *UserStore {
	return &UserStore{db: db}
}

// GetRole returns the stored role string, or "" for unknown users; the role
// gate treats both the same way.
func (s *UserStore) GetRole(ctx context.Context, uid string) (string, error) {
	var role string
	err := s.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, uid).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (s *UserStore) SetRole(ctx context.Context, uid, role string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, role) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role`,
		uid, role,
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// List returns every user holding the reader or admin role, profile included.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, display_name, email, avatar_url, role FROM users WHERE role IN ('reader', 'admin')`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Profile.ID, &user.Profile.DisplayName,
			&user.Profile.Email, &user.Profile.AvatarURL, &user.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserStore) GetProfile(ctx context.Context, uid string) (*models.ReaderProfile, error) {
	var profile models.ReaderProfile
	err := s.db.QueryRow(ctx,
		`SELECT id, display_name, email, avatar_url FROM users WHERE id = $1`, uid,
	).Scan(&profile.ID, &profile.DisplayName, &profile.Email, &profile.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile writes directory fields without touching the role assignment.
func (s *UserStore) UpsertProfile(ctx context.Context, profile models.ReaderProfile) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, display_name, email, avatar_url) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url`,
		profile.ID, profile.DisplayName, profile.Email, profile.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
