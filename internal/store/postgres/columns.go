// internal/store/postgres/columns.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"review-engine/internal/common/database"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// ColumnStore is the postgres-backed import schema.
type ColumnStore struct {
	db *database.PostgresClient
}

func NewColumnStore(db *database.PostgresClient) *ColumnStore {
	return &ColumnStore{db: db}
}

func (s *ColumnStore) List(ctx context.Context) ([]models.Column, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, display_name, hidden, is_name, is_email, is_resume, ordinal
		 FROM columns ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		if err := rows.Scan(&col.ID, &col.Name, &col.DisplayName, &col.Hidden,
			&col.IsName, &col.IsEmail, &col.IsResume, &col.Index); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// Replace swaps the whole schema in one transaction; column ids referenced by
// previously imported responses go stale, which is why a schema replacement
// normally precedes a fresh applicant import.
func (s *ColumnStore) Replace(ctx context.Context, columns []models.Column) error {
	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM columns`); err != nil {
			return fmt.Errorf("clear columns: %w", err)
		}
		for _, col := range columns {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO columns (id, name, display_name, hidden, is_name, is_email, is_resume, ordinal)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				col.ID, col.Name, col.DisplayName, col.Hidden,
				col.IsName, col.IsEmail, col.IsResume, col.Index,
			)
			if err != nil {
				return fmt.Errorf("insert column: %w", err)
			}
		}
		return nil
	})
}

func (s *ColumnStore) SetDisplayName(ctx context.Context, id, displayName string) error {
	result, err := s.db.Exec(ctx, `UPDATE columns SET display_name = $2 WHERE id = $1`, id, displayName)
	if err != nil {
		return fmt.Errorf("set column display name: %w", err)
	}
	return requireAffected(result)
}

// SetFlag toggles a column attribute. The exclusive flags (is_name, is_email,
// is_resume) are cleared on every other column in the same transaction, so at
// most one carrier exists at a time.
func (s *ColumnStore) SetFlag(ctx context.Context, id string, flag store.ColumnFlag, value bool) error {
	column, ok := flagColumns[flag]
	if !ok {
		return fmt.Errorf("unknown column flag %q", flag)
	}

	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		if value && flag != store.FlagHidden {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf(`UPDATE columns SET %s = FALSE WHERE id <> $1`, column), id); err != nil {
				return fmt.Errorf("clear column flag: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE columns SET %s = $2 WHERE id = $1`, column), id, value)
		if err != nil {
			return fmt.Errorf("set column flag: %w", err)
		}
		return requireAffected(result)
	})
}

// flagColumns whitelists flag-to-column names; flags never reach SQL as
// caller-provided text.
var flagColumns = map[store.ColumnFlag]string{
	store.FlagHidden:   "hidden",
	store.FlagIsName:   "is_name",
	store.FlagIsEmail:  "is_email",
	store.FlagIsResume: "is_resume",
}
