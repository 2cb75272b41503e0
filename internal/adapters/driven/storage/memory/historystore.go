// Package memory provides in-memory store implementations.
// Used for tests and as a fallback when the SQLite store is
// unavailable.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.ReleaseRecord
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		records: make(map[string]domain.ReleaseRecord),
	}
}

// Save persists a record, replacing any record with the same ID.
func (s *HistoryStore) Save(_ context.Context, rec domain.ReleaseRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.ReleaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns records ordered by start time, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ReleaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ReleaseRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
