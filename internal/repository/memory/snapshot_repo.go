// Package memory keeps snapshots in process memory. It backs local development
// and the service tests; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"alcyxob/fitplan/internal/repository"
)

type memorySnapshotRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemorySnapshotRepository creates an empty in-memory store.
func NewMemorySnapshotRepository() repository.SnapshotRepository {
	return &memorySnapshotRepository{docs: make(map[string][]byte)}
}

func (r *memorySnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (r *memorySnapshotRepository) Save(ctx context.Context, key string, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append([]byte(nil), doc...)
	return nil
}

func (r *memorySnapshotRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.docs, k)
	}
	return nil
}
