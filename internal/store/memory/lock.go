// internal/store/memory/lock.go
package memory

import (
	"context"
	"sync"
)

// GenerationLock is a process-local stand-in for the advisory lock.
type GenerationLock struct {
	mu   sync.Mutex
	held bool
}

func NewGenerationLock() *GenerationLock {
	return &GenerationLock{}
}

func (l *GenerationLock) TryAcquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *GenerationLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = false
	return nil
}
