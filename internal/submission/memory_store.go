package submission

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	records []Submission
}

// NewMemoryStore builds an in-memory submission store for testing.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Append(_ context.Context, record Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *memoryStore) All(_ context.Context) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Submission, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memoryStore) ByOwner(_ context.Context, ownerUserID string) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByOwner(s.records, ownerUserID), nil
}

func (s *memoryStore) ByID(_ context.Context, id string) (Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (s *memoryStore) SetStatus(_ context.Context, id string, status Status) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
			return s.records[i], nil
		}
	}
	return Submission{}, ErrNotFound
}
