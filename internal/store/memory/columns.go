// internal/store/memory/columns.go
package memory

import (
	"context"
	"sort"
	"sync"

	"review-engine/internal/models"
	"review-engine/internal/store"
)

// ColumnStore is an in-memory import schema.
type ColumnStore struct {
	mu      sync.Mutex
	columns map[string]*models.Column
}

func NewColumnStore() *ColumnStore {
	return &ColumnStore{columns: make(map[string]*models.Column)}
}

func (s *ColumnStore) List(ctx context.Context) ([]models.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Column, 0, len(s.columns))
	for _, col := range s.columns {
		out = append(out, *col)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (s *ColumnStore) Replace(ctx context.Context, columns []models.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.columns = make(map[string]*models.Column, len(columns))
	for _, col := range columns {
		copied := col
		s.columns[col.ID] = &copied
	}
	return nil
}

func (s *ColumnStore) SetDisplayName(ctx context.Context, id, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.columns[id]
	if !ok {
		return store.ErrNotFound
	}
	col.DisplayName = displayName
	return nil
}

func (s *ColumnStore) SetFlag(ctx context.Context, id string, flag store.ColumnFlag, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.columns[id]
	if !ok {
		return store.ErrNotFound
	}

	if value && flag != store.FlagHidden {
		for _, other := range s.columns {
			setColumnFlag(other, flag, false)
		}
	}
	setColumnFlag(col, flag, value)
	return nil
}

func setColumnFlag(col *models.Column, flag store.ColumnFlag, value bool) {
	switch flag {
	case store.FlagHidden:
		col.Hidden = value
	case store.FlagIsName:
		col.IsName = value
	case store.FlagIsEmail:
		col.IsEmail = value
	case store.FlagIsResume:
		col.IsResume = value
	}
}
