package persist

import (
	"context"
	"sync"
)

// MemoryRepository keeps encoded snapshots in process memory. Values are
// stored encoded so a later mutation of the caller's state never leaks into
// the saved copy.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(_ context.Context, namespace string, v any) (bool, error) {
	if namespace == "" {
		return false, ErrInvalidNamespace
	}
	r.mu.RLock()
	data, ok := r.data[namespace]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := decode(namespace, data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *MemoryRepository) Save(_ context.Context, namespace string, v any) error {
	data, err := encode(namespace, v)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data[namespace] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, namespace string) error {
	r.mu.Lock()
	delete(r.data, namespace)
	r.mu.Unlock()
	return nil
}

// Raw returns the encoded snapshot for a namespace.
func (r *MemoryRepository) Raw(namespace string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.data[namespace]
	return data, ok
}
