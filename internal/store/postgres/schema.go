// internal/store/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"review-engine/internal/common/database"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS applicants (
		id                TEXT PRIMARY KEY,
		alias             TEXT NOT NULL,
		responses         JSONB NOT NULL DEFAULT '{}'::jsonb,
		reader_completion JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		member_ids TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id           TEXT PRIMARY KEY,
		applicant_id TEXT NOT NULL,
		reader_id    TEXT NOT NULL,
		complete     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_reader_idx ON reviews (reader_id)`,
	`CREATE TABLE IF NOT EXISTS columns (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		display_name TEXT NOT NULL,
		hidden       BOOLEAN NOT NULL DEFAULT FALSE,
		is_name      BOOLEAN NOT NULL DEFAULT FALSE,
		is_email     BOOLEAN NOT NULL DEFAULT FALSE,
		is_resume    BOOLEAN NOT NULL DEFAULT FALSE,
		ordinal      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		avatar_url   TEXT NOT NULL DEFAULT '',
		role         TEXT NOT NULL DEFAULT 'none'
	)`,
}

// Migrate creates the record collections if they do not exist. There is no
// relational foreign-key enforcement between them; referential integrity is
// an engine invariant, not a storage guarantee.
func Migrate(ctx context.Context, db *database.PostgresClient) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
