package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryRepository builds an in-memory user store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return findByEmail(r.users, email)
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) Create(_ context.Context, candidate Candidate) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := findByEmail(r.users, candidate.Email); err == nil {
		return User{}, ErrDuplicate
	}
	record, err := newRecord(candidate)
	if err != nil {
		return User{}, err
	}
	r.users = append(r.users, record)
	return record, nil
}
