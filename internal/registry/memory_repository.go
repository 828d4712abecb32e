package registry

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu         sync.RWMutex
	depositors map[string]Depositor
}

// NewMemoryRepository builds an in-memory depositor store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{depositors: make(map[string]Depositor)}
}

func (r *memoryRepository) Create(_ context.Context, depositor Depositor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.depositors[depositor.Handle]; exists {
		return ErrHandleTaken
	}
	r.depositors[depositor.Handle] = depositor
	return nil
}

func (r *memoryRepository) FindByHandle(_ context.Context, handle string) (Depositor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	depositor, ok := r.depositors[handle]
	if !ok {
		return Depositor{}, ErrNotFound
	}
	return depositor, nil
}
