// internal/store/postgres/lock.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"review-engine/internal/common/database"
)

// generationLockKey is an arbitrary fixed advisory lock id shared by every
// instance pointing at the same database.
const generationLockKey = 7243_6153

// GenerationLock serializes generation runs with pg_try_advisory_lock.
// Advisory locks are session-scoped, so the lock pins a dedicated connection
// from acquire to release.
type GenerationLock struct {
	db *database.PostgresClient

	mu   sync.Mutex
	conn *sql.Conn
}

func NewGenerationLock(db *database.PostgresClient) *GenerationLock {
	return &GenerationLock{db: db}
}

func (l *GenerationLock) TryAcquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return false, nil
	}

	conn, err := l.db.DB.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("acquiring lock connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx,
		`SELECT pg_try_advisory_lock($1)`, generationLockKey,
	).Scan(&acquired); err != nil {
		conn.Close()
		return false, fmt.Errorf("acquiring generation lock: %w", err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}

	l.conn = conn
	return true, nil
}

func (l *GenerationLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn == nil {
		return nil
	}
	_, err := l.conn.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, generationLockKey)
	closeErr := l.conn.Close()
	l.conn = nil

	if err != nil {
		return fmt.Errorf("releasing generation lock: %w", err)
	}
	return closeErr
}
