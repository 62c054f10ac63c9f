package repository

import (
	"context"
	"sync"
	"time"

	"github.com/standards-dev/propdash/pkg/metrics"
)

// MemStore is an in-memory Store. It backs tests and the zero-config dev
// mode; production deployments use the Postgres adapter.
type MemStore struct {
	mu   sync.RWMutex
	docs []map[string]any
}

// NewMemStore creates an in-memory store, optionally pre-seeded.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRollups returns the seeded documents. The backing maps are shared;
// callers hold to the read-only contract.
func (s *MemStore) ListRollups(ctx context.Context) ([]map[string]any, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]any, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

// GetRollup returns the document for one handle.
func (s *MemStore) GetRollup(ctx context.Context, handle string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.docs {
		if docHandle(doc) == handle {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

// Count returns the number of seeded contributors.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
