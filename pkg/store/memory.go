package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps decisions in memory. Suitable for one-shot runs and
// tests; contents are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records []DecisionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists one decision.
func (s *MemoryStore) Save(_ context.Context, rec DecisionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns all decisions of a run ordered by client code.
func (s *MemoryStore) List(_ context.Context, runID string) ([]DecisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []DecisionRecord
	for _, rec := range s.records {
		if rec.RunID == runID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientCode < out[j].ClientCode
	})
	return out, nil
}

// Counts returns per-product decision counts for a run.
func (s *MemoryStore) Counts(_ context.Context, runID string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, rec := range s.records {
		if rec.RunID == runID {
			counts[rec.Product]++
		}
	}
	return counts, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
